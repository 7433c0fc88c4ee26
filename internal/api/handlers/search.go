package handlers

import (
	"net/http"

	"github.com/bargainhunt/backend/internal/api/request"
	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/service"
)

// SearchHandler serves quota-gated deal search and e-mail drafting
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

type searchRequest struct {
	UserID    string `json:"userId"`
	StoreName string `json:"storeName"`
}

// Search handles POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.search.Search(r.Context(), req.UserID, req.StoreName)
	if err != nil {
		writeError(w, r, err, "userId and storeName are required")
		return
	}
	response.OK(w, result)
}

// EmailDraft handles POST /api/email-draft
func (h *SearchHandler) EmailDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StoreName string `json:"storeName"`
	}
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	draft, err := h.search.DraftEmail(r.Context(), req.StoreName)
	if err != nil {
		writeError(w, r, err, "storeName is required")
		return
	}
	response.OK(w, draft)
}
