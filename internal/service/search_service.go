package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bargainhunt/backend/internal/logger"
	"github.com/bargainhunt/backend/internal/metrics"
	"github.com/bargainhunt/backend/internal/models"
)

// Fallback e-mail used when drafting fails
const (
	FallbackEmailSubject = "Student discount inquiry"
	FallbackEmailBody    = "Hi there,\n\nI'm an international student and a huge fan of your brand. " +
		"I'm on a tight budget and was wondering if you offer any student discounts or promo codes?\n\nThank you!"
)

// SearchResult is the response of a quota-gated deal search
type SearchResult struct {
	Result     *models.BargainResult `json:"result"`
	DailyCount int                   `json:"dailyCount"`
}

// SearchService runs deal searches behind the daily quota
type SearchService struct {
	quota  *QuotaService
	stats  *StatsService
	finder DealFinder
	drafts EmailDrafter
}

// NewSearchService creates a search service
func NewSearchService(quota *QuotaService, stats *StatsService, finder DealFinder, drafts EmailDrafter) *SearchService {
	return &SearchService{
		quota:  quota,
		stats:  stats,
		finder: finder,
		drafts: drafts,
	}
}

// Search consumes one unit of quota, then asks the finder for deals.
// The quota stays consumed when the finder fails.
func (s *SearchService) Search(ctx context.Context, userID, storeName string) (*SearchResult, error) {
	storeName = models.NormalizeStoreName(storeName)
	if storeName == "" {
		return nil, fmt.Errorf("storeName is required: %w", ErrInvalidInput)
	}

	count, err := s.quota.Consume(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.finder.FindDeals(ctx, storeName)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("deals").Inc()
		logger.Error("deal search failed", "store", storeName, "user_id", userID, "error", err)
		return nil, fmt.Errorf("search %s: %w", storeName, errors.Join(ErrUpstream, err))
	}

	if _, err := s.stats.Increment(ctx); err != nil {
		logger.Warn("failed to increment savings count", "error", err)
	}

	return &SearchResult{Result: result, DailyCount: count}, nil
}

// DraftEmail writes a discount-request e-mail for the store.
// Any drafting failure yields the fallback template.
func (s *SearchService) DraftEmail(ctx context.Context, storeName string) (*models.EmailDraft, error) {
	storeName = models.NormalizeStoreName(storeName)
	if storeName == "" {
		return nil, fmt.Errorf("storeName is required: %w", ErrInvalidInput)
	}

	if s.drafts != nil {
		draft, err := s.drafts.DraftEmail(ctx, storeName)
		if err == nil && draft != nil && draft.Subject != "" && draft.Body != "" {
			return draft, nil
		}
		if err != nil {
			metrics.UpstreamFailures.WithLabelValues("email").Inc()
			logger.Warn("email draft failed, using fallback", "store", storeName, "error", err)
		}
	}

	return FallbackEmail(), nil
}

// FallbackEmail returns the built-in discount-request template
func FallbackEmail() *models.EmailDraft {
	return &models.EmailDraft{
		Subject:  FallbackEmailSubject,
		Body:     FallbackEmailBody,
		Fallback: true,
	}
}
