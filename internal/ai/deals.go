package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bargainhunt/backend/internal/logger"
	"github.com/bargainhunt/backend/internal/models"
)

// ErrMalformedResponse is returned when the model reply is not the expected JSON
var ErrMalformedResponse = errors.New("malformed model response")

// DealService finds deals for a store through the model's web search tool
type DealService struct {
	client *GeminiClient
	cache  *AICache
}

// NewDealService creates a deal service. cache may be nil.
func NewDealService(client *GeminiClient, cache *AICache) *DealService {
	return &DealService{client: client, cache: cache}
}

// FindDeals returns the deals for a store, served from cache when possible
func (s *DealService) FindDeals(ctx context.Context, storeName string) (*models.BargainResult, error) {
	storeName = models.NormalizeStoreName(storeName)

	if s.cache != nil {
		cached, err := s.cache.GetDeals(ctx, storeName)
		if err != nil {
			logger.Warn("deals cache read failed", "store", storeName, "error", err)
		}
		if cached != nil {
			cached.Cached = true
			return cached, nil
		}
	}

	result, err := s.search(ctx, storeName)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDeals(ctx, storeName, result); err != nil {
			logger.Warn("deals cache write failed", "store", storeName, "error", err)
		}
	}
	return result, nil
}

// RefreshDeals bypasses the cache and stores the fresh result
func (s *DealService) RefreshDeals(ctx context.Context, storeName string) (*models.BargainResult, error) {
	if s.cache != nil {
		if err := s.cache.InvalidateDeals(ctx, storeName); err != nil {
			logger.Warn("deals cache invalidate failed", "store", storeName, "error", err)
		}
	}
	return s.FindDeals(ctx, storeName)
}

func (s *DealService) search(ctx context.Context, storeName string) (*models.BargainResult, error) {
	prompt, err := RenderDealsPrompt(storeName)
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	text, err := s.client.GenerateText(ctx, prompt,
		[]Tool{{GoogleSearch: &struct{}{}}},
		&GenerationConfig{Temperature: 0.2},
	)
	if err != nil {
		return nil, fmt.Errorf("deal search failed: %w", err)
	}

	result, err := parseDealsResponse(text)
	if err != nil {
		logger.Debug("unparseable deals reply", "store", storeName, "reply", text)
		return nil, err
	}
	if result.StoreName == "" {
		result.StoreName = storeName
	}
	return result, nil
}

func parseDealsResponse(content string) (*models.BargainResult, error) {
	content = cleanJSONResponse(content)

	var result models.BargainResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		extracted := extractJSON(content)
		if extracted == "" {
			return nil, fmt.Errorf("%w: no JSON object", ErrMalformedResponse)
		}
		if err := json.Unmarshal([]byte(extracted), &result); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	codes := make([]models.DiscountCode, 0, len(result.Codes))
	for _, c := range result.Codes {
		c.Code = strings.TrimSpace(c.Code)
		c.Description = strings.TrimSpace(c.Description)
		if c.Code == "" && c.Description == "" {
			continue
		}
		c.Type = normalizeDealType(string(c.Type))
		c.Confidence = normalizeConfidence(string(c.Confidence))
		codes = append(codes, c)
	}
	result.Codes = codes
	result.Summary = strings.TrimSpace(result.Summary)
	result.StoreName = models.NormalizeStoreName(result.StoreName)

	return &result, nil
}

func normalizeDealType(t string) models.DealType {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "giftcard", "gift_card", "gift card":
		return models.DealTypeGiftCard
	case "cashback":
		return models.DealTypeCashback
	case "membership":
		return models.DealTypeMembership
	case "perk":
		return models.DealTypePerk
	case "sale":
		return models.DealTypeSale
	default:
		return models.DealTypeCode
	}
}

func normalizeConfidence(c string) models.Confidence {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "high":
		return models.ConfidenceHigh
	case "medium":
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
