package handlers

import (
	"net/http"

	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/service"
)

// StatsHandler serves the global savings counter
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

type statsResponse struct {
	Count int64 `json:"count"`
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	count, err := h.stats.Get(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	response.OK(w, statsResponse{Count: count})
}

// Increment handles POST /api/stats/increment
func (h *StatsHandler) Increment(w http.ResponseWriter, r *http.Request) {
	if _, err := h.stats.Increment(r.Context()); err != nil {
		writeError(w, r, err, "")
		return
	}
	response.Success(w, "")
}
