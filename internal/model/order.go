package model

import "time"

// PaymentOrder is a provider order created at checkout. A payment is only confirmed against an
// order recorded here, for the user and amount it was issued with.
type PaymentOrder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Receipt   string    `json:"receipt"`
	CreatedAt time.Time `json:"created_at"`
}
