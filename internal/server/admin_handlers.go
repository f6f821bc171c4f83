package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/nicheclub/storefront/internal/admin"
	"github.com/nicheclub/storefront/internal/models"
	"github.com/nicheclub/storefront/internal/store"
)

const (
	defaultStatsWindowDays = 30
	defaultOrderPageSize   = 20
	maxOrderPageSize       = 100
)

type adminStatsResponse struct {
	Summary      admin.Summary          `json:"summary"`
	RevenueByDay []admin.DailyRevenue   `json:"revenue_by_day"`
	TopProducts  []admin.ProductRevenue `json:"top_products"`
	RecentOrders []models.Order         `json:"recent_orders"`
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	days := defaultStatsWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	since := time.Now().UTC().AddDate(0, 0, -days)

	orders, err := store.ListOrdersWithItems(r.Context(), s.db, since)
	if err != nil {
		log.Printf("admin stats: list orders failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	customers, err := store.ListCustomers(r.Context(), s.db)
	if err != nil {
		log.Printf("admin stats: list customers failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch customers")
		return
	}

	respondJSON(w, http.StatusOK, adminStatsResponse{
		Summary:      admin.Summarize(orders, customers),
		RevenueByDay: admin.RevenueByDay(orders),
		TopProducts:  admin.TopProducts(orders, 10),
		RecentOrders: admin.RecentOrders(orders, 10),
	})
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultOrderPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxOrderPageSize {
		limit = maxOrderPageSize
	}

	page, err := store.ListOrdersCursor(r.Context(), s.db, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		log.Printf("admin orders: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	respondJSON(w, http.StatusOK, page)
}
