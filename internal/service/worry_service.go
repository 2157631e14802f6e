package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"moodnest/internal/model"
	"moodnest/internal/repository"
)

var ErrWorryNotFound = errors.New("worry not found")

const maxListWorries = 1000

type WorryService interface {
	CreateWorry(ctx context.Context, w *model.Worry) (*model.Worry, error)
	GetWorries(ctx context.Context, userID string) ([]model.Worry, error)
	UpdateWorry(ctx context.Context, id, userID string, upd *model.WorryUpdate) (*model.Worry, error)
	DeleteWorry(ctx context.Context, id, userID string) error
}

type worryService struct {
	worryRepo repository.WorryRepository
}

func NewWorryService(worryRepo repository.WorryRepository) WorryService {
	return &worryService{worryRepo: worryRepo}
}

func (s *worryService) CreateWorry(ctx context.Context, w *model.Worry) (*model.Worry, error) {
	w.ID = uuid.NewString()
	if w.Category == "" {
		w.Category = model.WorryTakeAction
	}
	if err := s.worryRepo.CreateWorry(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *worryService) GetWorries(ctx context.Context, userID string) ([]model.Worry, error) {
	return s.worryRepo.GetWorriesByUser(ctx, userID, maxListWorries)
}

// UpdateWorry applies the non-nil fields. The resolution timestamp is set
// exactly once, when the worry first moves into the resolved category.
func (s *worryService) UpdateWorry(ctx context.Context, id, userID string, upd *model.WorryUpdate) (*model.Worry, error) {
	w, err := s.worryRepo.GetWorryByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWorryNotFound
	}

	if upd.Description != nil {
		w.Description = *upd.Description
	}
	if upd.Intensity != nil {
		w.Intensity = *upd.Intensity
	}
	if upd.Category != nil {
		if *upd.Category == model.WorryResolved && w.Category != model.WorryResolved {
			now := time.Now().UTC()
			w.ResolvedAt = &now
		}
		w.Category = *upd.Category
	}
	if upd.ResolutionNote != nil {
		w.ResolutionNote = upd.ResolutionNote
	}

	if err := s.worryRepo.UpdateWorry(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *worryService) DeleteWorry(ctx context.Context, id, userID string) error {
	deleted, err := s.worryRepo.DeleteWorry(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWorryNotFound
	}
	return nil
}
