package models

import "time"

// Subscription is a request for future deal alerts for a store
type Subscription struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	StoreName string    `json:"storeName" db:"store_name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SavingsCountKey is the global_stats key of the public savings counter
const SavingsCountKey = "savings_count"

// GlobalStat is a named integer counter
type GlobalStat struct {
	Key   string `json:"key" db:"key"`
	Value int64  `json:"value" db:"value"`
}
