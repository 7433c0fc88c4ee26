package service

import (
	"context"
	"time"

	"github.com/bargainhunt/backend/internal/metrics"
	"github.com/bargainhunt/backend/internal/models"
)

// Unlimited marks a tier without a daily cap
const Unlimited = -1

// QuotaLimits is the number of searches per calendar day for each tier
type QuotaLimits map[models.Tier]int

// DefaultQuotaLimits caps free users at 5 searches a day and leaves pro unlimited
var DefaultQuotaLimits = QuotaLimits{
	models.TierFree: 5,
	models.TierPro:  Unlimited,
}

// QuotaService enforces the per-user, per-day search cap.
// A search is counted when it is attempted, before the external search runs.
type QuotaService struct {
	users  *UserService
	logs   SearchLogStore
	limits QuotaLimits
	loc    *time.Location
	now    func() time.Time
}

// NewQuotaService creates a quota service. A nil location means UTC.
func NewQuotaService(users *UserService, logs SearchLogStore, limits QuotaLimits, loc *time.Location) *QuotaService {
	if limits == nil {
		limits = DefaultQuotaLimits
	}
	if loc == nil {
		loc = time.UTC
	}
	return &QuotaService{
		users:  users,
		logs:   logs,
		limits: limits,
		loc:    loc,
		now:    time.Now,
	}
}

// SetClock replaces the clock used to decide "today"
func (s *QuotaService) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the current calendar day at midnight in the quota location
func (s *QuotaService) Today() time.Time {
	return dayOf(s.now(), s.loc)
}

// LimitFor returns the daily cap of a tier, or Unlimited
func (s *QuotaService) LimitFor(tier models.Tier) int {
	limit, ok := s.limits[tier]
	if !ok {
		return s.limits[models.TierFree]
	}
	return limit
}

// Limits returns the configured caps
func (s *QuotaService) Limits() QuotaLimits {
	return s.limits
}

// DailyCount returns the number of searches the user logged on day.
// Only the calendar date of day is used, as returned by Today.
func (s *QuotaService) DailyCount(ctx context.Context, userID string, day time.Time) (int, error) {
	return s.logs.CountForDate(ctx, userID, calendarDate(day))
}

// TodayCount returns the number of searches the user logged today
func (s *QuotaService) TodayCount(ctx context.Context, userID string) (int, error) {
	return s.logs.CountForDate(ctx, userID, s.Today())
}

// LogSearch appends one search dated today
func (s *QuotaService) LogSearch(ctx context.Context, userID string) error {
	if err := s.logs.Append(ctx, userID, s.Today()); err != nil {
		return err
	}
	metrics.SearchesLogged.Inc()
	return nil
}

// Consume checks the user's remaining quota and, if allowed, logs one search.
// It returns the count including the search just logged. A denied attempt is not logged.
func (s *QuotaService) Consume(ctx context.Context, userID string) (int, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	count, err := s.TodayCount(ctx, user.ID)
	if err != nil {
		return 0, err
	}

	if limit := s.LimitFor(user.Tier); limit != Unlimited && count >= limit {
		metrics.QuotaDenied.WithLabelValues(string(user.Tier)).Inc()
		return count, ErrQuotaExceeded
	}

	if err := s.LogSearch(ctx, user.ID); err != nil {
		return count, err
	}
	return count + 1, nil
}

// Status returns the user with today's search count
func (s *QuotaService) Status(ctx context.Context, user *models.User) (*models.UserStatus, error) {
	count, err := s.TodayCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.UserStatus{User: user, DailyCount: count}, nil
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	return calendarDate(t.In(loc))
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
