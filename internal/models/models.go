package models

import "strings"

// DealType classifies a discovered offer
type DealType string

const (
	DealTypeCode       DealType = "code"
	DealTypeGiftCard   DealType = "giftcard"
	DealTypeCashback   DealType = "cashback"
	DealTypeMembership DealType = "membership"
	DealTypePerk       DealType = "perk"
	DealTypeSale       DealType = "sale"
)

// Confidence is how sure the search agent is that a deal works
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DiscountCode is a single offer found for a store
type DiscountCode struct {
	Type               DealType   `json:"type"`
	Code               string     `json:"code"`
	Description        string     `json:"description"`
	Expiry             string     `json:"expiry,omitempty"`
	SourceURL          string     `json:"sourceUrl"`
	Confidence         Confidence `json:"confidence"`
	VerificationStatus string     `json:"verificationStatus,omitempty"`
	LastVerified       string     `json:"lastVerified,omitempty"`
}

// Key identifies a code for "have we seen this before" comparisons
func (d DiscountCode) Key() string {
	return strings.ToLower(string(d.Type) + "|" + strings.TrimSpace(d.Code) + "|" + strings.TrimSpace(d.Description))
}

// BargainResult is the outcome of a deal search for one store
type BargainResult struct {
	StoreName string         `json:"storeName"`
	Summary   string         `json:"summary"`
	Codes     []DiscountCode `json:"codes"`
	Cached    bool           `json:"cached,omitempty"`
}

// EmailDraft is a discount-request e-mail addressed to a store
type EmailDraft struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Fallback bool   `json:"fallback"`
}

// GiftCardDealType groups gift-card promotions by when they run
type GiftCardDealType string

const (
	GiftCardThisWeek GiftCardDealType = "this_week"
	GiftCardNextWeek GiftCardDealType = "next_week"
	GiftCardOngoing  GiftCardDealType = "ongoing"
)

// GiftCardDeal is a discounted gift-card promotion at a retailer
type GiftCardDeal struct {
	Title string           `json:"title"`
	Store string           `json:"store"`
	Offer string           `json:"offer"`
	Dates string           `json:"dates"`
	Type  GiftCardDealType `json:"type"`
	Link  string           `json:"link,omitempty"`
}

// NormalizeStoreName trims and collapses whitespace in a store name
func NormalizeStoreName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// StoreKey identifies a store regardless of case and spacing
func StoreKey(name string) string {
	return strings.ToLower(NormalizeStoreName(name))
}
