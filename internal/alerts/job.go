// Package alerts re-runs deal searches for subscribed stores and notifies
// subscribers about codes they have not been told about yet.
package alerts

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bargainhunt/backend/internal/logger"
	"github.com/bargainhunt/backend/internal/metrics"
	"github.com/bargainhunt/backend/internal/models"
)

// Subscribers lists subscriber e-mails per store
type Subscribers interface {
	SubscribersByStore(ctx context.Context) (map[string][]string, error)
}

// DealSource finds current deals for a store
type DealSource interface {
	RefreshDeals(ctx context.Context, storeName string) (*models.BargainResult, error)
}

// Config controls the fan-out of a run
type Config struct {
	Workers      int
	StoreTimeout time.Duration
}

// Result summarises one run
type Result struct {
	Stores        int           `json:"stores"`
	FailedStores  int           `json:"failedStores"`
	NewCodes      int           `json:"newCodes"`
	Notifications int           `json:"notifications"`
	Duration      time.Duration `json:"duration"`
}

// Job performs one alert pass over every subscribed store
type Job struct {
	subs     Subscribers
	deals    DealSource
	seen     *SeenStore
	notifier Notifier
	cfg      Config
}

// NewJob creates an alert job
func NewJob(subs Subscribers, deals DealSource, seen *SeenStore, notifier Notifier, cfg Config) *Job {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 2 * time.Minute
	}
	return &Job{subs: subs, deals: deals, seen: seen, notifier: notifier, cfg: cfg}
}

// RunOnce checks every subscribed store. A failing store is logged and counted, never fatal.
func (j *Job) RunOnce(ctx context.Context) (*Result, error) {
	start := time.Now()

	byStore, err := j.subs.SubscribersByStore(ctx)
	if err != nil {
		return nil, err
	}
	groups := mergeStores(byStore)

	var failed, newCodes, sent atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.cfg.Workers)
	for store, emails := range groups {
		store, emails := store, emails
		g.Go(func() error {
			codes, notified, err := j.processStore(gctx, store, emails)
			if err != nil {
				failed.Add(1)
				logger.Warn("store alert check failed", "component", "alerts", "store", store, "error", err)
				return nil
			}
			newCodes.Add(int64(codes))
			sent.Add(int64(notified))
			return nil
		})
	}
	_ = g.Wait()

	result := &Result{
		Stores:        len(groups),
		FailedStores:  int(failed.Load()),
		NewCodes:      int(newCodes.Load()),
		Notifications: int(sent.Load()),
		Duration:      time.Since(start),
	}
	logger.Info("alert run completed", "component", "alerts",
		"stores", result.Stores,
		"failed", result.FailedStores,
		"new_codes", result.NewCodes,
		"notifications", result.Notifications,
		"duration", result.Duration.Round(time.Millisecond),
	)
	return result, ctx.Err()
}

func (j *Job) processStore(ctx context.Context, store string, emails []string) (int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, j.cfg.StoreTimeout)
	defer cancel()

	result, err := j.deals.RefreshDeals(ctx, store)
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("alerts").Inc()
		return 0, 0, err
	}

	fresh, err := j.seen.Unseen(ctx, store, result.Codes)
	if err != nil {
		return 0, 0, err
	}
	if len(fresh) == 0 {
		return 0, 0, nil
	}

	notified := 0
	for _, email := range emails {
		alert := Alert{Email: email, StoreName: store, Summary: result.Summary, Codes: fresh}
		if err := j.notifier.Notify(ctx, alert); err != nil {
			logger.Warn("notification failed", "component", "alerts", "store", store, "email", email, "error", err)
			continue
		}
		notified++
		metrics.AlertNotifications.Inc()
	}

	if err := j.seen.MarkSeen(ctx, store, fresh); err != nil {
		return len(fresh), notified, err
	}
	return len(fresh), notified, nil
}

// mergeStores folds store names that differ only in case or spacing into one group,
// since they share a deal cache entry and a seen set. The lexically smallest spelling names the group.
func mergeStores(byStore map[string][]string) map[string][]string {
	names := make([]string, 0, len(byStore))
	for name := range byStore {
		names = append(names, name)
	}
	sort.Strings(names)

	display := make(map[string]string)
	merged := make(map[string][]string)
	member := make(map[string]map[string]bool)
	for _, name := range names {
		key := models.StoreKey(name)
		if key == "" {
			continue
		}
		if _, ok := display[key]; !ok {
			display[key] = name
			member[key] = make(map[string]bool)
		}
		for _, email := range byStore[name] {
			if member[key][email] {
				continue
			}
			member[key][email] = true
			merged[display[key]] = append(merged[display[key]], email)
		}
	}
	return merged
}
