package models

import (
	"time"
)

// Tier is the access level of a user
type Tier string

// Tier constants
const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// IsValid checks if a tier is known
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierPro:
		return true
	default:
		return false
	}
}

// User is an anonymous, client-identified user of the search service
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Tier      Tier      `json:"tier" db:"tier"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SearchLogEntry records one counted search for quota accounting
type SearchLogEntry struct {
	ID         int64     `json:"id" db:"id"`
	UserID     string    `json:"userId" db:"user_id"`
	SearchDate string    `json:"searchDate" db:"search_date"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// UserStatus is a user together with today's search count
type UserStatus struct {
	User       *User `json:"user"`
	DailyCount int   `json:"dailyCount"`
}
