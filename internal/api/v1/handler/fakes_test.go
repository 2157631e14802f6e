package handler

import (
	"context"
	"net/http"
	"time"

	"moodnest/internal/middleware"
	"moodnest/internal/model"
	"moodnest/internal/service"
)

const testUserID = "user-1"

// withUser stands in for the auth middleware and injects a fixed user id.
func withUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// passThrough leaves the context untouched, as when no token was presented.
func passThrough(next http.Handler) http.Handler { return next }

var _ service.UserService = (*fakeUserService)(nil)

type fakeUserService struct {
	user       *model.User
	token      string
	err        error
	lastUpdate *model.UserUpdate
}

func (f *fakeUserService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, f.token, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, f.token, nil
}

func (f *fakeUserService) Get(ctx context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, id string, upd *model.UserUpdate) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastUpdate = upd
	return f.user, nil
}

var _ service.MoodService = (*fakeMoodService)(nil)

type fakeMoodService struct {
	entries    []model.MoodEntry
	stats      *model.MoodStats
	exportUser *model.User
	err        error
	created    []*model.MoodEntry
	lastDays   int
}

func (f *fakeMoodService) CreateEntry(ctx context.Context, e *model.MoodEntry) (*model.MoodEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e.ID = "mood-1"
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	e.CreatedAt = time.Now().UTC()
	f.created = append(f.created, e)
	return e, nil
}

func (f *fakeMoodService) GetEntries(ctx context.Context, userID string, days int) ([]model.MoodEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastDays = days
	return f.entries, nil
}

func (f *fakeMoodService) GetStats(ctx context.Context, userID string, days int) (*model.MoodStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastDays = days
	return f.stats, nil
}

func (f *fakeMoodService) Export(ctx context.Context, userID string) (*model.User, []model.MoodEntry, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.exportUser, f.entries, nil
}

var _ service.WorryService = (*fakeWorryService)(nil)

type fakeWorryService struct {
	worries    []model.Worry
	worry      *model.Worry
	err        error
	deleted    []string
	lastUpdate *model.WorryUpdate
}

func (f *fakeWorryService) CreateWorry(ctx context.Context, w *model.Worry) (*model.Worry, error) {
	if f.err != nil {
		return nil, f.err
	}
	w.ID = "worry-1"
	if w.Category == "" {
		w.Category = model.WorryTakeAction
	}
	w.CreatedAt = time.Now().UTC()
	return w, nil
}

func (f *fakeWorryService) GetWorries(ctx context.Context, userID string) ([]model.Worry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.worries, nil
}

func (f *fakeWorryService) UpdateWorry(ctx context.Context, id, userID string, upd *model.WorryUpdate) (*model.Worry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastUpdate = upd
	return f.worry, nil
}

func (f *fakeWorryService) DeleteWorry(ctx context.Context, id, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

var _ service.PredictionService = (*fakePredictionService)(nil)

type fakePredictionService struct {
	prediction  *model.Prediction
	predictions []model.Prediction
	err         error
	genCalls    int
}

func (f *fakePredictionService) GeneratePrediction(ctx context.Context, userID string) (*model.Prediction, error) {
	f.genCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.prediction, nil
}

func (f *fakePredictionService) GetPredictions(ctx context.Context, userID string) ([]model.Prediction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.predictions, nil
}

var _ service.AchievementService = (*fakeAchievementService)(nil)

type fakeAchievementService struct {
	achievements []model.Achievement
	summary      model.AchievementSummary
	err          error
}

func (f *fakeAchievementService) GetAchievements(ctx context.Context, userID string) ([]model.Achievement, model.AchievementSummary, error) {
	if f.err != nil {
		return nil, model.AchievementSummary{}, f.err
	}
	return f.achievements, f.summary, nil
}

var _ service.PaymentService = (*fakePaymentService)(nil)

type fakePaymentService struct {
	checkout *service.CheckoutResult
	tx       *model.PaymentTransaction
	err      error
	applied  []string
}

func (f *fakePaymentService) CreateCheckout(ctx context.Context, userID, packageID string) (*service.CheckoutResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.checkout, nil
}

func (f *fakePaymentService) GetCheckoutStatus(ctx context.Context, userID, sessionID string) (*model.PaymentTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func (f *fakePaymentService) ApplyPaidSession(ctx context.Context, sessionID string) error {
	if f.err != nil {
		return f.err
	}
	f.applied = append(f.applied, sessionID)
	return nil
}

func (f *fakePaymentService) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
