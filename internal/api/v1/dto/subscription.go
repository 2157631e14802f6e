package dto

// CheckoutCreateDTO is used when starting a Stripe checkout session.
type CheckoutCreateDTO struct {
	PackageID string `json:"package_id" validate:"required"`
}

// CheckoutResponseDTO is returned after a checkout session has been created.
type CheckoutResponseDTO struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CheckoutStatusResponseDTO reports the current state of a checkout session.
type CheckoutStatusResponseDTO struct {
	SessionID     string  `json:"session_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	PackageID     string  `json:"package_id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}
