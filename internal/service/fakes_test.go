package service

import (
	"context"
	"sort"
	"time"

	"moodnest/internal/model"
	"moodnest/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users         map[string]*model.User
	activateCalls int
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *model.User) error {
	u.CreatedAt = time.Now().UTC()
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, u *model.User) error {
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserRepo) ActivateSubscription(_ context.Context, userID, packageID string) error {
	f.activateCalls++
	if u, ok := f.users[userID]; ok {
		u.SubscriptionStatus = model.SubscriptionActive
		u.SubscriptionPackage = &packageID
	}
	return nil
}

type fakeMoodRepo struct {
	entries []model.MoodEntry
}

var _ repository.MoodRepository = (*fakeMoodRepo)(nil)

func (f *fakeMoodRepo) CreateEntry(_ context.Context, e *model.MoodEntry) error {
	e.CreatedAt = time.Now().UTC()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeMoodRepo) GetEntriesSince(_ context.Context, userID string, since time.Time, limit int) ([]model.MoodEntry, error) {
	matched := []model.MoodEntry{}
	for _, e := range f.entries {
		if e.UserID == userID && !e.Timestamp.Before(since) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeMoodRepo) GetAllEntries(_ context.Context, userID string, limit int) ([]model.MoodEntry, error) {
	return f.GetEntriesSince(context.Background(), userID, time.Time{}, limit)
}

type fakeWorryRepo struct {
	worries []model.Worry
}

var _ repository.WorryRepository = (*fakeWorryRepo)(nil)

func (f *fakeWorryRepo) CreateWorry(_ context.Context, w *model.Worry) error {
	w.CreatedAt = time.Now().UTC()
	f.worries = append(f.worries, *w)
	return nil
}

func (f *fakeWorryRepo) GetWorriesByUser(_ context.Context, userID string, limit int) ([]model.Worry, error) {
	matched := []model.Worry{}
	for _, w := range f.worries {
		if w.UserID == userID {
			matched = append(matched, w)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeWorryRepo) GetWorryByID(_ context.Context, id, userID string) (*model.Worry, error) {
	for _, w := range f.worries {
		if w.ID == id && w.UserID == userID {
			copied := w
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeWorryRepo) UpdateWorry(_ context.Context, w *model.Worry) error {
	for i := range f.worries {
		if f.worries[i].ID == w.ID && f.worries[i].UserID == w.UserID {
			f.worries[i] = *w
		}
	}
	return nil
}

func (f *fakeWorryRepo) DeleteWorry(_ context.Context, id, userID string) (bool, error) {
	for i := range f.worries {
		if f.worries[i].ID == id && f.worries[i].UserID == userID {
			f.worries = append(f.worries[:i], f.worries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakePredictionRepo struct {
	predictions []model.Prediction
}

var _ repository.PredictionRepository = (*fakePredictionRepo)(nil)

func (f *fakePredictionRepo) CreatePrediction(_ context.Context, p *model.Prediction) error {
	p.CreatedAt = time.Now().UTC()
	f.predictions = append(f.predictions, *p)
	return nil
}

func (f *fakePredictionRepo) GetActivePredictions(_ context.Context, userID string, limit int) ([]model.Prediction, error) {
	matched := []model.Prediction{}
	for _, p := range f.predictions {
		if p.UserID == userID && p.IsActive {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

type fakePaymentRepo struct {
	txs         map[string]*model.PaymentTransaction
	statusCalls int
}

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{txs: map[string]*model.PaymentTransaction{}}
}

func (f *fakePaymentRepo) CreateTransaction(_ context.Context, t *model.PaymentTransaction) error {
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	stored := *t
	f.txs[t.SessionID] = &stored
	return nil
}

func (f *fakePaymentRepo) GetTransactionBySessionID(_ context.Context, sessionID string) (*model.PaymentTransaction, error) {
	t, ok := f.txs[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (f *fakePaymentRepo) UpdateTransactionStatus(_ context.Context, sessionID, paymentStatus, status string) error {
	f.statusCalls++
	if t, ok := f.txs[sessionID]; ok {
		t.PaymentStatus = paymentStatus
		t.Status = status
		t.UpdatedAt = time.Now().UTC()
	}
	return nil
}

type fakeLLM struct {
	reply      string
	err        error
	lastSystem string
	lastPrompt string
	calls      int
}

var _ OpenAIClient = (*fakeLLM)(nil)

func (f *fakeLLM) Complete(_ context.Context, systemMessage, userMessage string) (string, error) {
	f.calls++
	f.lastSystem = systemMessage
	f.lastPrompt = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}
