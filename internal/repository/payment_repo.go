package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"moodnest/internal/model"
)

// PaymentRepository defines payment-transaction DB operations. Transactions
// are keyed by the checkout session id so webhook and polling paths converge
// on the same row.
type PaymentRepository interface {
	CreateTransaction(ctx context.Context, t *model.PaymentTransaction) error
	GetTransactionBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error)
	UpdateTransactionStatus(ctx context.Context, sessionID, paymentStatus, status string) error
}

type paymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) CreateTransaction(ctx context.Context, t *model.PaymentTransaction) error {
	metadata, err := json.Marshal(t.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	query := `INSERT INTO payment_transactions (id, user_id, session_id, package_id, amount, currency, payment_status, status, metadata)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		t.ID, t.UserID, t.SessionID, t.PackageID, t.Amount, t.Currency, t.PaymentStatus, t.Status, metadata,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *paymentRepo) GetTransactionBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	var t model.PaymentTransaction
	var rawMetadata []byte
	query := `SELECT id, user_id, session_id, package_id, amount, currency, payment_status, status, metadata, created_at, updated_at
              FROM payment_transactions WHERE session_id=$1`
	row := r.db.QueryRowContext(ctx, query, sessionID)
	if err := row.Scan(&t.ID, &t.UserID, &t.SessionID, &t.PackageID, &t.Amount, &t.Currency, &t.PaymentStatus, &t.Status, &rawMetadata, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(rawMetadata, &t.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata for transaction %s: %w", t.ID, err)
	}
	return &t, nil
}

func (r *paymentRepo) UpdateTransactionStatus(ctx context.Context, sessionID, paymentStatus, status string) error {
	query := `UPDATE payment_transactions SET payment_status=$2, status=$3, updated_at=now() WHERE session_id=$1`
	if _, err := r.db.ExecContext(ctx, query, sessionID, paymentStatus, status); err != nil {
		return fmt.Errorf("update transaction %s: %w", sessionID, err)
	}
	return nil
}
