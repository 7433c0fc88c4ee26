// Package giftcards lists discounted gift-card promotions from a feed, with a built-in fallback.
package giftcards

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bargainhunt/backend/internal/cache"
	"github.com/bargainhunt/backend/internal/logger"
	"github.com/bargainhunt/backend/internal/models"
	"github.com/bargainhunt/backend/internal/parser"
)

const (
	cacheKey        = "giftcards:deals"
	DefaultCacheTTL = time.Hour
	maxOfferLen     = 120
)

// knownStores are matched against feed text to name the retailer of a deal
var knownStores = []string{"Woolworths", "Coles", "Big W", "ShopBack", "TopCashback", "Kmart", "Target", "JB Hi-Fi", "Officeworks", "Amazon"}

// Service lists gift-card deals
type Service struct {
	feedURL string
	parser  *parser.FeedParser
	cleaner *parser.Cleaner
	cache   *cache.Redis
	ttl     time.Duration
	now     func() time.Time
}

// NewService creates a gift-card service. An empty feedURL serves the built-in list; redis may be nil.
func NewService(feedURL string, feedParser *parser.FeedParser, redis *cache.Redis, ttl time.Duration) *Service {
	if feedParser == nil {
		feedParser = parser.NewFeedParser()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		feedURL: feedURL,
		parser:  feedParser,
		cleaner: parser.NewCleaner(),
		cache:   redis,
		ttl:     ttl,
		now:     time.Now,
	}
}

// List returns current deals. Feed failures fall back to the built-in list and are never surfaced.
func (s *Service) List(ctx context.Context) []models.GiftCardDeal {
	if s.feedURL == "" {
		return StaticDeals()
	}

	if s.cache != nil {
		var cached []models.GiftCardDeal
		err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			return cached
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn("gift card cache read failed", "error", err)
		}
	}

	deals, err := s.fetch(ctx)
	if err != nil {
		logger.Warn("gift card feed unavailable, using built-in list", "url", s.feedURL, "error", err)
		return StaticDeals()
	}
	if len(deals) == 0 {
		return StaticDeals()
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, deals, s.ttl); err != nil {
			logger.Warn("gift card cache write failed", "error", err)
		}
	}
	return deals
}

func (s *Service) fetch(ctx context.Context) ([]models.GiftCardDeal, error) {
	feed, err := s.parser.ParseURL(ctx, s.feedURL)
	if err != nil {
		return nil, err
	}

	now := s.now()
	deals := make([]models.GiftCardDeal, 0)
	for _, item := range feed.Items {
		if !item.Mentions("gift card", "giftcard", "gift-card") {
			continue
		}
		text := s.cleaner.Clean(item.Description)
		deals = append(deals, models.GiftCardDeal{
			Title: s.cleaner.Clean(item.Title),
			Store: detectStore(item.Title + " " + text),
			Offer: s.cleaner.Truncate(text, maxOfferLen),
			Dates: formatDate(item.PubDate),
			Type:  classify(item.PubDate, now),
			Link:  item.Link,
		})
	}
	return deals, nil
}

func detectStore(text string) string {
	lower := strings.ToLower(text)
	for _, store := range knownStores {
		if strings.Contains(lower, strings.ToLower(store)) {
			return store
		}
	}
	return "Various"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "While stocks last"
	}
	return t.Format("2 Jan")
}

// classify buckets a deal by publication date relative to now
func classify(published, now time.Time) models.GiftCardDealType {
	switch {
	case published.IsZero():
		return models.GiftCardOngoing
	case published.After(now):
		return models.GiftCardNextWeek
	case now.Sub(published) <= 7*24*time.Hour:
		return models.GiftCardThisWeek
	default:
		return models.GiftCardOngoing
	}
}

// StaticDeals is the built-in list served when no feed is available
func StaticDeals() []models.GiftCardDeal {
	return []models.GiftCardDeal{
		{Title: "Apple Gift Cards", Store: "Woolworths", Offer: "20x Everyday Rewards points", Dates: "4 Mar - 10 Mar", Type: models.GiftCardNextWeek},
		{Title: "Drummond Golf & Smiggle", Store: "Big W", Offer: "20x EDR points", Dates: "26 Feb - 4 Mar", Type: models.GiftCardThisWeek},
		{Title: "Timezone & Hoyts", Store: "Big W", Offer: "10% Off", Dates: "26 Feb - 4 Mar", Type: models.GiftCardThisWeek},
		{Title: "TCN Gift, Him, Her, Baby", Store: "Coles", Offer: "1,000 Flybuys points on $50", Dates: "4 Mar - 10 Mar", Type: models.GiftCardNextWeek},
		{Title: "Luxury Escapes, DoorDash", Store: "Coles", Offer: "20x Flybuys points", Dates: "25 Feb - 3 Mar", Type: models.GiftCardThisWeek},
		{Title: "Didi & Amart", Store: "ShopBack", Offer: "10% Cashback", Dates: "While stocks last", Type: models.GiftCardOngoing},
	}
}
