package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nicheclub/storefront/internal/cart"
	"github.com/nicheclub/storefront/internal/models"
)

const sessionCookie = "cart_session"

// sessionID reads the cart session cookie, minting one on first contact so
// the cart survives page reloads.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

type cartView struct {
	Items  []models.LineItem `json:"items"`
	Count  int               `json:"count"`
	Totals cart.Totals       `json:"totals"`
}

func (s *Server) viewOf(c *cart.Cart) cartView {
	items := c.Items
	if items == nil {
		items = []models.LineItem{}
	}
	return cartView{
		Items:  items,
		Count:  c.Count(),
		Totals: s.carts.Totals(c),
	}
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	c := s.carts.Get(r.Context(), sessionID(w, r))
	respondJSON(w, http.StatusOK, s.viewOf(c))
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var item models.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.carts.Add(r.Context(), sessionID(w, r), item)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, cart.ErrOutOfStock):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to add item")
		}
		return
	}

	respondJSON(w, http.StatusOK, s.viewOf(c))
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	c := s.carts.Remove(r.Context(), sessionID(w, r),
		productID, r.URL.Query().Get("size"), r.URL.Query().Get("color"))
	respondJSON(w, http.StatusOK, s.viewOf(c))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.carts.Clear(r.Context(), sessionID(w, r))
	w.WriteHeader(http.StatusNoContent)
}
