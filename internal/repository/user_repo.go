package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"moodnest/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, u *model.User) error
	ActivateSubscription(ctx context.Context, userID, packageID string) error
}

type userRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) error {
	times, err := json.Marshal(u.NotificationTimes)
	if err != nil {
		return fmt.Errorf("marshal notification_times: %w", err)
	}
	query := `INSERT INTO users (id, name, email, password_hash, theme_preference, notification_enabled, notification_times, subscription_status)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`
	err = r.db.QueryRowContext(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.ThemePreference, u.NotificationEnabled, times, u.SubscriptionStatus,
	).Scan(&u.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, theme_preference, notification_enabled, notification_times, subscription_status, subscription_package, created_at
              FROM users WHERE id=$1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, theme_preference, notification_enabled, notification_times, subscription_status, subscription_package, created_at
              FROM users WHERE email=$1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepo) scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var rawTimes []byte
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.ThemePreference,
		&u.NotificationEnabled,
		&rawTimes,
		&u.SubscriptionStatus,
		&u.SubscriptionPackage,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(rawTimes, &u.NotificationTimes); err != nil {
		return nil, fmt.Errorf("unmarshal notification_times for user %s: %w", u.ID, err)
	}
	return &u, nil
}

func (r *userRepo) UpdateUser(ctx context.Context, u *model.User) error {
	times, err := json.Marshal(u.NotificationTimes)
	if err != nil {
		return fmt.Errorf("marshal notification_times: %w", err)
	}
	query := `UPDATE users
              SET name=$2, theme_preference=$3, notification_enabled=$4, notification_times=$5
              WHERE id=$1`
	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.ThemePreference, u.NotificationEnabled, times); err != nil {
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	return nil
}

// ActivateSubscription flips the account to an active subscription on the
// given package.
func (r *userRepo) ActivateSubscription(ctx context.Context, userID, packageID string) error {
	query := `UPDATE users SET subscription_status=$2, subscription_package=$3 WHERE id=$1`
	if _, err := r.db.ExecContext(ctx, query, userID, model.SubscriptionActive, packageID); err != nil {
		return fmt.Errorf("activate subscription for user %s: %w", userID, err)
	}
	return nil
}
