package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nicheclub/storefront/internal/cart"
	"github.com/nicheclub/storefront/internal/catalog"
	"github.com/nicheclub/storefront/internal/checkout"
	"github.com/nicheclub/storefront/internal/config"
	"github.com/nicheclub/storefront/internal/database"
	"github.com/nicheclub/storefront/internal/notify"
	"github.com/nicheclub/storefront/internal/payment"
	"github.com/nicheclub/storefront/internal/reviews"
	"github.com/nicheclub/storefront/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	if err := payment.ValidateCurrency(cfg.Pricing.Currency); err != nil {
		log.Fatalf("Validate config: %v", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database successfully")

	pricing := cart.Pricing{
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		FlatShippingFee:       cfg.Pricing.FlatShippingFee,
		TaxRate:               cfg.Pricing.TaxRate,
	}

	stripe := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	square := payment.NewSquareClient(cfg.Square.AccessToken, cfg.Square.LocationID, cfg.Square.RedirectURL)
	products := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.CacheTTL)
	mailer := notify.NewSMTPMailer(cfg.SMTP)

	orch := checkout.NewOrchestrator(products, stripe, checkout.NewOrderWriter(db), mailer, pricing, cfg.Pricing.Currency)
	carts := cart.NewStore(cart.NewPostgresRepository(db), pricing)

	srv := server.New(db, orch, stripe, square, carts, reviews.Default(), cfg.Pricing.Currency)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
