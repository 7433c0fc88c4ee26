package handlers

import (
	"context"
	"net/http"

	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/cache"
	"github.com/bargainhunt/backend/internal/models"
)

// GiftCardLister lists current gift-card deals
type GiftCardLister interface {
	List(ctx context.Context) []models.GiftCardDeal
}

// GiftCardHandler serves gift-card promotions
type GiftCardHandler struct {
	deals GiftCardLister
}

// NewGiftCardHandler creates a new gift-card handler
func NewGiftCardHandler(deals GiftCardLister) *GiftCardHandler {
	return &GiftCardHandler{deals: deals}
}

// List handles GET /api/gift-cards
func (h *GiftCardHandler) List(w http.ResponseWriter, r *http.Request) {
	deals := h.deals.List(r.Context())

	etag := cache.GetETag(deals)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if r.Header.Get("If-None-Match") == etag {
		response.NotModified(w)
		return
	}
	response.OK(w, deals)
}
