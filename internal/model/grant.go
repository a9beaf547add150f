package model

import "time"

// AccessGrant records a confirmed payment for library access.
// It is created once per payment and never mutated by this service.
type AccessGrant struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Plan      string    `json:"plan"`
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expires_at"`
	PaymentID string    `json:"payment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidAt reports whether the grant entitles its owner at instant t.
func (g AccessGrant) ValidAt(t time.Time) bool {
	return g.Active && g.ExpiresAt.After(t)
}
