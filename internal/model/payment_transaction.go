package model

import "time"

// Provider-facing payment states mirrored from the checkout session.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
	PaymentExpired = "expired"
)

// Coarse local transaction states.
const (
	TransactionInitiated = "initiated"
	TransactionComplete  = "complete"
)

// PaymentTransaction tracks one hosted checkout session. SessionID is the
// provider's identifier and is unique across all transactions.
type PaymentTransaction struct {
	ID            string            `db:"id" json:"id"`
	UserID        string            `db:"user_id" json:"user_id"`
	SessionID     string            `db:"session_id" json:"session_id"`
	PackageID     string            `db:"package_id" json:"package_id"`
	Amount        float64           `db:"amount" json:"amount"`
	Currency      string            `db:"currency" json:"currency"`
	PaymentStatus string            `db:"payment_status" json:"payment_status"`
	Status        string            `db:"status" json:"status"`
	Metadata      map[string]string `db:"metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// SubscriptionPackage is a server-side catalog entry. Client requests carry
// only the package id; amount and currency are never taken from the client.
type SubscriptionPackage struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
