package handlers

import (
	"net/http"

	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/models"
	"github.com/bargainhunt/backend/internal/service"
)

// TierInfo describes what a tier allows
type TierInfo struct {
	Name              models.Tier `json:"name"`
	DailySearchLimit  int         `json:"dailySearchLimit"` // -1 means unlimited
	RequestsPerMinute int         `json:"requestsPerMinute"`
	Features          []string    `json:"features"`
}

var tierFeatures = map[models.Tier][]string{
	models.TierFree: {"Deal search", "Gift card deals", "Store alerts", "Discount e-mail drafts"},
	models.TierPro:  {"Unlimited deal search", "Gift card deals", "Store alerts", "Discount e-mail drafts"},
}

// TiersHandler serves tier information
type TiersHandler struct {
	quota             *service.QuotaService
	requestsPerMinute int
}

// NewTiersHandler creates a tiers handler
func NewTiersHandler(quota *service.QuotaService, requestsPerMinute int) *TiersHandler {
	return &TiersHandler{quota: quota, requestsPerMinute: requestsPerMinute}
}

// List handles GET /api/tiers
func (h *TiersHandler) List(w http.ResponseWriter, r *http.Request) {
	tiers := make([]TierInfo, 0, 2)
	for _, tier := range []models.Tier{models.TierFree, models.TierPro} {
		tiers = append(tiers, TierInfo{
			Name:              tier,
			DailySearchLimit:  h.quota.LimitFor(tier),
			RequestsPerMinute: h.requestsPerMinute,
			Features:          tierFeatures[tier],
		})
	}
	response.OK(w, tiers)
}
