package server

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nicheclub/storefront/internal/cart"
	"github.com/nicheclub/storefront/internal/checkout"
	"github.com/nicheclub/storefront/internal/payment"
	"github.com/nicheclub/storefront/internal/reviews"
)

// Server wires the HTTP surface: checkout and payment endpoints, the
// session cart, reviews and the admin views.
type Server struct {
	db       *sql.DB
	checkout *checkout.Orchestrator
	gateway  payment.Gateway
	square   *payment.SquareClient
	carts    *cart.Store
	reviews  *reviews.Generator
	currency string
}

func New(db *sql.DB, orch *checkout.Orchestrator, gateway payment.Gateway, square *payment.SquareClient, carts *cart.Store, gen *reviews.Generator, currency string) *Server {
	return &Server{
		db:       db,
		checkout: orch,
		gateway:  gateway,
		square:   square,
		carts:    carts,
		reviews:  gen,
		currency: currency,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/checkout", s.handleCheckout)
		r.Post("/create-payment-intent", s.handleCreatePaymentIntent)
		r.Post("/save-order", s.handleSaveOrder)
		r.Post("/update-order-status", s.handleUpdateOrderStatus)
		r.Get("/orders/{orderNumber}", s.handleGetOrder)

		r.Post("/webhooks/stripe", s.handleStripeWebhook)

		r.Route("/square", func(r chi.Router) {
			r.Post("/create-payment-link", s.handleCreatePaymentLink)
			r.Get("/get-order", s.handleGetSquareOrder)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Delete("/", s.handleClearCart)
			r.Post("/items", s.handleAddCartItem)
			r.Delete("/items", s.handleRemoveCartItem)
		})

		r.Route("/products/{productKey}/reviews", func(r chi.Router) {
			r.Get("/", s.handleListReviews)
			r.Post("/", s.handleCreateReview)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/stats", s.handleAdminStats)
			r.Get("/orders", s.handleAdminOrders)
		})
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
