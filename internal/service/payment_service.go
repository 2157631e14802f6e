package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"moodnest/internal/config"
	"moodnest/internal/model"
	"moodnest/internal/repository"
)

var (
	ErrUnknownPackage      = errors.New("unknown subscription package")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Server-side package catalog. Amounts are dollars; the client only ever
// sends a package id.
var subscriptionPackages = []model.SubscriptionPackage{
	{ID: "premium_monthly", Name: "MoodNest Premium Monthly", Amount: 4.99, Currency: "usd"},
	{ID: "premium_yearly", Name: "MoodNest Premium Yearly", Amount: 49.99, Currency: "usd"},
}

// PackageByID looks up a catalog entry.
func PackageByID(id string) (model.SubscriptionPackage, bool) {
	for _, p := range subscriptionPackages {
		if p.ID == id {
			return p, true
		}
	}
	return model.SubscriptionPackage{}, false
}

// CheckoutResult is what the client needs to continue a hosted checkout.
type CheckoutResult struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, userID, packageID string) (*CheckoutResult, error)
	// GetCheckoutStatus refreshes the transaction from the provider and
	// returns it. The transaction must belong to the calling user.
	GetCheckoutStatus(ctx context.Context, userID, sessionID string) (*model.PaymentTransaction, error)
	// ApplyPaidSession marks the transaction paid and activates the buyer's
	// subscription. The status poll and the webhook both funnel through
	// here; a transaction already marked paid is left untouched, so the
	// second arrival is a no-op.
	ApplyPaidSession(ctx context.Context, sessionID string) error
	HandleWebhook(w http.ResponseWriter, r *http.Request)
}

type paymentService struct {
	cfg         *config.Config
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewPaymentService initializes the Stripe key and returns the service with
// a scoped logger.
func NewPaymentService(cfg *config.Config, paymentRepo repository.PaymentRepository, userRepo repository.UserRepository, logger zerolog.Logger) PaymentService {
	stripe.Key = cfg.StripeSecretKey
	return &paymentService{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "PaymentService").Logger(),
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, userID, packageID string) (*CheckoutResult, error) {
	pkg, ok := PackageByID(packageID)
	if !ok {
		return nil, ErrUnknownPackage
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(pkg.Currency),
				UnitAmount: stripe.Int64(int64(math.Round(pkg.Amount * 100))),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(pkg.Name),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(s.cfg.CheckoutSuccessURL),
		CancelURL:  stripe.String(s.cfg.CheckoutCancelURL),
		Metadata: map[string]string{
			"user_id":    userID,
			"package_id": packageID,
		},
	}
	sess, err := checkoutsession.New(params)
	if err != nil {
		s.logger.Error().Err(err).Str("package_id", packageID).Msg("Failed to create Stripe checkout session")
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	tx := &model.PaymentTransaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		SessionID:     sess.ID,
		PackageID:     packageID,
		Amount:        pkg.Amount,
		Currency:      pkg.Currency,
		PaymentStatus: model.PaymentPending,
		Status:        model.TransactionInitiated,
		Metadata: map[string]string{
			"user_id":    userID,
			"package_id": packageID,
		},
	}
	if err := s.paymentRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return &CheckoutResult{URL: sess.URL, SessionID: sess.ID}, nil
}

func (s *paymentService) GetCheckoutStatus(ctx context.Context, userID, sessionID string) (*model.PaymentTransaction, error) {
	tx, err := s.paymentRepo.GetTransactionBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.UserID != userID {
		return nil, ErrTransactionNotFound
	}

	sess, err := checkoutsession.Get(sessionID, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("Failed to fetch Stripe checkout session")
		return nil, fmt.Errorf("fetch checkout session: %w", err)
	}

	switch {
	case sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		if err := s.ApplyPaidSession(ctx, sessionID); err != nil {
			return nil, err
		}
	case sess.Status == stripe.CheckoutSessionStatusExpired:
		if err := s.paymentRepo.UpdateTransactionStatus(ctx, sessionID, model.PaymentExpired, model.TransactionInitiated); err != nil {
			return nil, err
		}
	}

	refreshed, err := s.paymentRepo.GetTransactionBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if refreshed == nil {
		return nil, ErrTransactionNotFound
	}
	return refreshed, nil
}

func (s *paymentService) ApplyPaidSession(ctx context.Context, sessionID string) error {
	tx, err := s.paymentRepo.GetTransactionBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if tx == nil {
		return ErrTransactionNotFound
	}
	if tx.PaymentStatus == model.PaymentPaid {
		// Already applied by whichever path got here first.
		return nil
	}

	if err := s.paymentRepo.UpdateTransactionStatus(ctx, sessionID, model.PaymentPaid, model.TransactionComplete); err != nil {
		return err
	}
	if err := s.userRepo.ActivateSubscription(ctx, tx.UserID, tx.PackageID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID).Str("user_id", tx.UserID).Str("package_id", tx.PackageID).Msg("Subscription activated")
	return nil
}

// HandleWebhook processes Stripe webhook events.
func (s *paymentService) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read Stripe webhook payload")
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}
	sig := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, s.cfg.StripeWebhookSecret)
	if err != nil {
		s.logger.Error().Err(err).Msg("Signature verification failed for Stripe webhook")
		http.Error(w, "signature verification failed", http.StatusBadRequest)
		return
	}
	s.logger.Info().Str("event_type", string(event.Type)).Msg("Stripe webhook received")

	ctx := r.Context()
	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			s.logger.Error().Err(err).Msg("Invalid checkout.session data")
			http.Error(w, "invalid checkout.session data", http.StatusBadRequest)
			return
		}
		if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			s.logger.Info().Str("session_id", cs.ID).Str("payment_status", string(cs.PaymentStatus)).Msg("Checkout session not paid yet, skipping")
			break
		}
		if err := s.ApplyPaidSession(ctx, cs.ID); err != nil {
			if errors.Is(err, ErrTransactionNotFound) {
				s.logger.Warn().Str("session_id", cs.ID).Msg("Webhook for unknown checkout session")
				break
			}
			s.logger.Error().Err(err).Str("session_id", cs.ID).Msg("Failed to apply paid session")
			http.Error(w, "failed to apply paid session", http.StatusInternalServerError)
			return
		}
	default:
		s.logger.Warn().Str("event_type", string(event.Type)).Msg("Unhandled Stripe webhook event")
	}
	w.WriteHeader(http.StatusOK)
}
