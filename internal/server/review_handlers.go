package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nicheclub/storefront/internal/models"
	"github.com/nicheclub/storefront/internal/reviews"
	"github.com/nicheclub/storefront/internal/store"
)

type reviewsResponse struct {
	Sample []reviews.SampleReview `json:"sample"`
	Live   []models.Review        `json:"live"`
}

// handleListReviews serves the deterministic sample reviews alongside any
// customer-submitted ones. The sample set is stable per product key, so the
// same product page always shows the same content.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	productKey := chi.URLParam(r, "productKey")

	resp := reviewsResponse{
		Sample: s.reviews.ForProduct(productKey),
		Live:   []models.Review{},
	}

	if s.db != nil {
		live, err := store.ListProductReviews(r.Context(), s.db, productKey)
		if err != nil {
			log.Printf("list reviews for %s failed: %v", productKey, err)
			respondError(w, http.StatusInternalServerError, "failed to fetch reviews")
			return
		}
		if live != nil {
			resp.Live = live
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type createReviewRequest struct {
	CustomerName string `json:"customer_name"`
	Message      string `json:"message"`
	Rating       int    `json:"rating"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	productKey := chi.URLParam(r, "productKey")

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerName == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, "customer_name and message are required")
		return
	}

	review, err := store.CreateReview(r.Context(), s.db, productKey, req.CustomerName, req.Message, req.Rating)
	if err != nil {
		if errors.Is(err, store.ErrInvalidRating) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("create review for %s failed: %v", productKey, err)
		respondError(w, http.StatusInternalServerError, "failed to create review")
		return
	}

	respondJSON(w, http.StatusCreated, review)
}
