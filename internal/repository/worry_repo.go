package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"moodnest/internal/model"
)

// WorryRepository defines worry-tree DB operations. Reads and writes are
// always scoped to the owning user.
type WorryRepository interface {
	CreateWorry(ctx context.Context, w *model.Worry) error
	GetWorriesByUser(ctx context.Context, userID string, limit int) ([]model.Worry, error)
	GetWorryByID(ctx context.Context, id, userID string) (*model.Worry, error)
	UpdateWorry(ctx context.Context, w *model.Worry) error
	// DeleteWorry removes the worry and reports whether a row existed.
	DeleteWorry(ctx context.Context, id, userID string) (bool, error)
}

type worryRepo struct {
	db *sql.DB
}

func NewWorryRepo(db *sql.DB) WorryRepository {
	return &worryRepo{db: db}
}

func (r *worryRepo) CreateWorry(ctx context.Context, w *model.Worry) error {
	query := `INSERT INTO worries (id, user_id, description, intensity, category)
              VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, w.ID, w.UserID, w.Description, w.Intensity, w.Category).Scan(&w.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *worryRepo) GetWorriesByUser(ctx context.Context, userID string, limit int) ([]model.Worry, error) {
	query := `SELECT id, user_id, description, intensity, category, created_at, resolved_at, resolution_note
              FROM worries WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query worries: %w", err)
	}
	defer rows.Close()

	worries := []model.Worry{}
	for rows.Next() {
		var w model.Worry
		if err := rows.Scan(&w.ID, &w.UserID, &w.Description, &w.Intensity, &w.Category, &w.CreatedAt, &w.ResolvedAt, &w.ResolutionNote); err != nil {
			return nil, fmt.Errorf("failed to scan worry: %w", err)
		}
		worries = append(worries, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return worries, nil
}

func (r *worryRepo) GetWorryByID(ctx context.Context, id, userID string) (*model.Worry, error) {
	var w model.Worry
	query := `SELECT id, user_id, description, intensity, category, created_at, resolved_at, resolution_note
              FROM worries WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	if err := row.Scan(&w.ID, &w.UserID, &w.Description, &w.Intensity, &w.Category, &w.CreatedAt, &w.ResolvedAt, &w.ResolutionNote); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *worryRepo) UpdateWorry(ctx context.Context, w *model.Worry) error {
	query := `UPDATE worries
              SET description=$3, intensity=$4, category=$5, resolved_at=$6, resolution_note=$7
              WHERE id=$1 AND user_id=$2`
	if _, err := r.db.ExecContext(ctx, query, w.ID, w.UserID, w.Description, w.Intensity, w.Category, w.ResolvedAt, w.ResolutionNote); err != nil {
		return fmt.Errorf("update worry %s: %w", w.ID, err)
	}
	return nil
}

func (r *worryRepo) DeleteWorry(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM worries WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete worry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete worry %s: %w", id, err)
	}
	return n > 0, nil
}
