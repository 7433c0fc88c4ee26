package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bargainhunt/backend/internal/models"
	"github.com/bargainhunt/backend/internal/testutil"
)

type fakeFinder struct {
	result *models.BargainResult
	err    error
	calls  int
}

func (f *fakeFinder) FindDeals(_ context.Context, storeName string) (*models.BargainResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	res.StoreName = storeName
	return &res, nil
}

type fakeDrafter struct {
	draft *models.EmailDraft
	err   error
}

func (f *fakeDrafter) DraftEmail(context.Context, string) (*models.EmailDraft, error) {
	return f.draft, f.err
}

type services struct {
	store  *testutil.MemoryStore
	users  *UserService
	quota  *QuotaService
	subs   *SubscriptionService
	stats  *StatsService
	finder *fakeFinder
	search *SearchService
}

func newServices(t *testing.T) *services {
	t.Helper()
	store := testutil.NewMemoryStore()
	users := NewUserService(store)
	quota := NewQuotaService(users, store, nil, time.UTC)
	quota.SetClock(func() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC) })
	stats := NewStatsService(store, DefaultSavingsBaseline)
	require.NoError(t, stats.Seed(context.Background()))
	finder := &fakeFinder{result: &models.BargainResult{Summary: "ok"}}
	return &services{
		store:  store,
		users:  users,
		quota:  quota,
		subs:   NewSubscriptionService(store),
		stats:  stats,
		finder: finder,
		search: NewSearchService(quota, stats, finder, nil),
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	first, err := s.users.EnsureUser(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.TierFree, first.Tier)

	require.NoError(t, s.users.Upgrade(ctx, "abc"))

	second, err := s.users.EnsureUser(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, second.Tier, "init must not reset the tier")
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestEnsureUserRejectsEmptyID(t *testing.T) {
	s := newServices(t)
	_, err := s.users.EnsureUser(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserNotFound(t *testing.T) {
	s := newServices(t)
	_, err := s.users.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpgradeAndReset(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.users.EnsureUser(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, s.users.Reset(ctx, "u1"))
	user, err := s.users.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.TierFree, user.Tier)

	require.NoError(t, s.users.Upgrade(ctx, "u1"))
	require.NoError(t, s.users.Upgrade(ctx, "u1"))
	user, err = s.users.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, user.Tier)

	require.NoError(t, s.users.Reset(ctx, "u1"))
	user, err = s.users.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.TierFree, user.Tier)
}

func TestUpgradeCreatesUnknownUser(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	require.NoError(t, s.users.Upgrade(ctx, "newcomer"))
	user, err := s.users.GetUser(ctx, "newcomer")
	require.NoError(t, err)
	assert.Equal(t, models.TierPro, user.Tier)
}

func TestConsumeEnforcesFreeLimit(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	_, err := s.users.EnsureUser(ctx, "abc")
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		count, err := s.quota.Consume(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	count, err := s.quota.Consume(ctx, "abc")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 5, count)

	today, err := s.quota.TodayCount(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 5, today, "denied attempts are not logged")
}

func TestConsumeProIsUnlimited(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	require.NoError(t, s.users.Upgrade(ctx, "pro"))

	for i := 1; i <= 20; i++ {
		count, err := s.quota.Consume(ctx, "pro")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}
}

func TestConsumeUnknownUser(t *testing.T) {
	s := newServices(t)
	_, err := s.quota.Consume(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, s.store.SearchLogCount())
}

func TestYesterdayDoesNotCountToday(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	_, err := s.users.EnsureUser(ctx, "abc")
	require.NoError(t, err)

	yesterday := s.quota.Today().AddDate(0, 0, -1)
	for i := 0; i < 5; i++ {
		s.store.AddSearchLog("abc", yesterday)
	}

	count, err := s.quota.DailyCount(ctx, "abc", yesterday)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	newCount, err := s.quota.Consume(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, newCount)
}

func TestTodayUsesQuotaLocation(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	q := NewQuotaService(nil, nil, nil, sydney)
	// 20:00 UTC on the 10th is already the 11th in Sydney.
	q.SetClock(func() time.Time { return time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC) })
	assert.Equal(t, "2024-03-11", q.Today().Format(time.DateOnly))
}

func TestDailyCountMatchesTodayWestOfUTC(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	store := testutil.NewMemoryStore()
	users := NewUserService(store)
	q := NewQuotaService(users, store, QuotaLimits{models.TierFree: 5}, newYork)
	q.SetClock(func() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC) })

	ctx := context.Background()
	_, err = users.EnsureUser(ctx, "abc")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := q.Consume(ctx, "abc")
		require.NoError(t, err)
	}

	today := q.Today()
	assert.Equal(t, "2024-03-10", today.Format(time.DateOnly))

	todayCount, err := q.TodayCount(ctx, "abc")
	require.NoError(t, err)
	dailyCount, err := q.DailyCount(ctx, "abc", today)
	require.NoError(t, err)
	assert.Equal(t, 3, todayCount)
	assert.Equal(t, todayCount, dailyCount)

	yesterday, err := q.DailyCount(ctx, "abc", today.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Zero(t, yesterday)
}

func TestLimitFor(t *testing.T) {
	q := NewQuotaService(nil, nil, QuotaLimits{models.TierFree: 3, models.TierPro: Unlimited}, nil)
	assert.Equal(t, 3, q.LimitFor(models.TierFree))
	assert.Equal(t, Unlimited, q.LimitFor(models.TierPro))
	assert.Equal(t, 3, q.LimitFor(models.Tier("unknown")))
}

func TestSubscribeDeduplicates(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	created, err := s.subs.Subscribe(ctx, "Shopper@Example.com ", "Nike")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.subs.Subscribe(ctx, "shopper@example.com", "  Nike ")
	require.NoError(t, err)
	assert.False(t, created)

	subs, err := s.subs.ListByEmail(ctx, "SHOPPER@example.com")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Nike", subs[0].StoreName)
	assert.Equal(t, "shopper@example.com", subs[0].Email)
}

func TestSubscribeValidation(t *testing.T) {
	s := newServices(t)
	_, err := s.subs.Subscribe(context.Background(), "", "Nike")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.subs.Subscribe(context.Background(), "a@b.c", " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.subs.ListByEmail(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUnsubscribeIsNoOpWhenAbsent(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	assert.NoError(t, s.subs.Unsubscribe(ctx, "a@b.c", "Nike"))
	assert.NoError(t, s.subs.Unsubscribe(ctx, "", ""))

	_, err := s.subs.Subscribe(ctx, "a@b.c", "Nike")
	require.NoError(t, err)
	require.NoError(t, s.subs.Unsubscribe(ctx, "a@b.c", "Nike"))

	subs, err := s.subs.ListByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestDistinctStores(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	for _, pair := range [][2]string{{"a@x.io", "Nike"}, {"b@x.io", "Nike"}, {"a@x.io", "Adidas"}} {
		_, err := s.subs.Subscribe(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	stores, err := s.subs.DistinctStores(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Adidas", "Nike"}, stores)

	groups, err := s.subs.SubscribersByStore(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@x.io", "b@x.io"}, groups["Nike"])
}

func TestSubscribersByStoreFoldsCase(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	for _, pair := range [][2]string{{"a@x.io", "Nike"}, {"b@x.io", "nike"}, {"a@x.io", "NIKE"}} {
		_, err := s.subs.Subscribe(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	groups, err := s.subs.SubscribersByStore(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.ElementsMatch(t, []string{"a@x.io", "b@x.io"}, groups["NIKE"])

	stores, err := s.subs.DistinctStores(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"NIKE"}, stores)
}

func TestStatsConcurrentIncrements(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	before, err := s.stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSavingsBaseline, before)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.stats.Increment(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	after, err := s.stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+2, after)
}

func TestSearchConsumesQuotaAndCountsSavings(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	_, err := s.users.EnsureUser(ctx, "abc")
	require.NoError(t, err)

	res, err := s.search.Search(ctx, "abc", "  Nike ")
	require.NoError(t, err)
	assert.Equal(t, 1, res.DailyCount)
	assert.Equal(t, "Nike", res.Result.StoreName)

	count, err := s.stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSavingsBaseline+1, count)
}

func TestSearchUpstreamFailureStillConsumesQuota(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	_, err := s.users.EnsureUser(ctx, "abc")
	require.NoError(t, err)

	s.finder.err = errors.New("boom")
	_, err = s.search.Search(ctx, "abc", "Nike")
	assert.ErrorIs(t, err, ErrUpstream)

	today, err := s.quota.TodayCount(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, today)

	count, err := s.stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSavingsBaseline, count)
}

func TestSearchDeniedDoesNotCallFinder(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	_, err := s.users.EnsureUser(ctx, "abc")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := s.search.Search(ctx, "abc", "Nike")
		require.NoError(t, err)
	}
	_, err = s.search.Search(ctx, "abc", "Nike")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, 5, s.finder.calls)
}

func TestSearchRequiresStore(t *testing.T) {
	s := newServices(t)
	_, err := s.search.Search(context.Background(), "abc", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDraftEmailFallback(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	draft, err := s.search.DraftEmail(ctx, "Nike")
	require.NoError(t, err)
	assert.True(t, draft.Fallback)
	assert.Equal(t, FallbackEmailSubject, draft.Subject)

	failing := NewSearchService(s.quota, s.stats, s.finder, &fakeDrafter{err: errors.New("down")})
	draft, err = failing.DraftEmail(ctx, "Nike")
	require.NoError(t, err)
	assert.True(t, draft.Fallback)

	ok := NewSearchService(s.quota, s.stats, s.finder, &fakeDrafter{draft: &models.EmailDraft{Subject: "Hi", Body: "Deal?"}})
	draft, err = ok.DraftEmail(ctx, "Nike")
	require.NoError(t, err)
	assert.False(t, draft.Fallback)
	assert.Equal(t, "Hi", draft.Subject)

	_, err = ok.DraftEmail(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
