// Package testutil provides in-memory stand-ins for the PostgreSQL repositories.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/bargainhunt/backend/internal/models"
	"github.com/bargainhunt/backend/internal/repository"
)

// ErrInjected is returned by a MemoryStore when Fail is set
var ErrInjected = errors.New("injected store failure")

type subKey struct {
	email string
	store string
}

// MemoryStore implements the user, search-log, subscription and stats stores in memory
type MemoryStore struct {
	mu sync.Mutex

	// Fail makes every call return ErrInjected
	Fail bool

	users  map[string]*models.User
	logs   []models.SearchLogEntry
	subs   map[subKey]models.Subscription
	stats  map[string]int64
	nextID int64
	now    func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
		subs:  make(map[subKey]models.Subscription),
		stats: make(map[string]int64),
		now:   time.Now,
	}
}

func (m *MemoryStore) check() error {
	if m.Fail {
		return ErrInjected
	}
	return nil
}

func (m *MemoryStore) CreateIfAbsent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	if _, ok := m.users[id]; !ok {
		now := m.now()
		m.users[id] = &models.User{ID: id, Tier: models.TierFree, CreatedAt: now, UpdatedAt: now}
	}
	return nil
}

func (m *MemoryStore) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *MemoryStore) SetTier(_ context.Context, id string, tier models.Tier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	now := m.now()
	user, ok := m.users[id]
	if !ok {
		user = &models.User{ID: id, CreatedAt: now}
		m.users[id] = user
	}
	user.Tier = tier
	user.UpdatedAt = now
	return nil
}

func (m *MemoryStore) CountForDate(_ context.Context, userID string, day time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return 0, err
	}
	date := day.Format(time.DateOnly)
	count := 0
	for _, entry := range m.logs {
		if entry.UserID == userID && entry.SearchDate == date {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) Append(_ context.Context, userID string, day time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	if _, ok := m.users[userID]; !ok {
		return errors.New("search log references unknown user")
	}
	m.nextID++
	m.logs = append(m.logs, models.SearchLogEntry{
		ID:         m.nextID,
		UserID:     userID,
		SearchDate: day.Format(time.DateOnly),
		CreatedAt:  m.now(),
	})
	return nil
}

func (m *MemoryStore) Add(_ context.Context, email, storeName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return false, err
	}
	key := subKey{email, storeName}
	if _, ok := m.subs[key]; ok {
		return false, nil
	}
	m.nextID++
	m.subs[key] = models.Subscription{ID: m.nextID, Email: email, StoreName: storeName, CreatedAt: m.now()}
	return true, nil
}

func (m *MemoryStore) Remove(_ context.Context, email, storeName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	delete(m.subs, subKey{email, storeName})
	return nil
}

func (m *MemoryStore) ListByEmail(_ context.Context, email string) ([]models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	out := make([]models.Subscription, 0)
	for _, sub := range m.subs {
		if sub.Email == email {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListAll(_ context.Context) ([]models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	out := make([]models.Subscription, 0, len(m.subs))
	for _, sub := range m.subs {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StoreName != out[j].StoreName {
			return out[i].StoreName < out[j].StoreName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) Seed(_ context.Context, key string, baseline int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return err
	}
	if _, ok := m.stats[key]; !ok {
		m.stats[key] = baseline
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return 0, err
	}
	return m.stats[key], nil
}

func (m *MemoryStore) Increment(_ context.Context, key string, baseline int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return 0, err
	}
	if _, ok := m.stats[key]; !ok {
		m.stats[key] = baseline
	}
	m.stats[key]++
	return m.stats[key], nil
}

// AddSearchLog inserts a log entry for an arbitrary day
func (m *MemoryStore) AddSearchLog(userID string, day time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.logs = append(m.logs, models.SearchLogEntry{
		ID:         m.nextID,
		UserID:     userID,
		SearchDate: day.Format(time.DateOnly),
		CreatedAt:  m.now(),
	})
}

// SearchLogCount returns the total number of log rows
func (m *MemoryStore) SearchLogCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.logs)
}

// SetFail toggles injected failures
func (m *MemoryStore) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fail = fail
}
