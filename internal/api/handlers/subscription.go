package handlers

import (
	"net/http"

	"github.com/bargainhunt/backend/internal/api/request"
	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/models"
	"github.com/bargainhunt/backend/internal/service"
)

// SubscriptionHandler serves store-alert subscriptions
type SubscriptionHandler struct {
	subs *service.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subs *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

type subscriptionRequest struct {
	Email     string `json:"email"`
	StoreName string `json:"storeName"`
}

// Subscribe handles POST /api/subscribe
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if _, err := h.subs.Subscribe(r.Context(), req.Email, req.StoreName); err != nil {
		writeError(w, r, err, "Email and Store Name are required")
		return
	}
	response.Success(w, "Subscribed to "+models.NormalizeStoreName(req.StoreName))
}

// Unsubscribe handles POST /api/unsubscribe
func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.subs.Unsubscribe(r.Context(), req.Email, req.StoreName); err != nil {
		writeError(w, r, err, "Email and Store Name are required")
		return
	}
	response.Success(w, "")
}

// List handles GET /api/subscriptions?email=
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subs.ListByEmail(r.Context(), request.GetQueryString(r, "email", ""))
	if err != nil {
		writeError(w, r, err, "Email is required")
		return
	}
	response.OK(w, subs)
}
