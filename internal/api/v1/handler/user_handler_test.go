package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"moodnest/internal/model"
	"moodnest/internal/service"

	"github.com/go-playground/validator/v10"
)

func newUserMux(svc *fakeUserService, authMw func(http.Handler) http.Handler) *http.ServeMux {
	h := NewUserHandler(svc, validator.New(validator.WithRequiredStructEnabled()))
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, authMw)
	return mux
}

func testUser() *model.User {
	return &model.User{
		ID:                  testUserID,
		Name:                "Ada",
		Email:               "ada@example.com",
		ThemePreference:     "light",
		NotificationEnabled: true,
		NotificationTimes:   []string{"09:00", "14:00", "20:00"},
		SubscriptionStatus:  model.SubscriptionNone,
		CreatedAt:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegisterReturnsTokenAndUser(t *testing.T) {
	svc := &fakeUserService{user: testUser(), token: "tok-123"}
	mux := newUserMux(svc, passThrough)

	body := `{"name": "Ada", "email": "ada@example.com", "password": "hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Fatalf("expected token tok-123, got %q", resp.Token)
	}
	if resp.User.ID != testUserID || resp.User.Email != "ada@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"short password", `{"name": "Ada", "email": "ada@example.com", "password": "abc"}`},
		{"bad email", `{"name": "Ada", "email": "not-an-email", "password": "hunter22"}`},
		{"missing name", `{"email": "ada@example.com", "password": "hunter22"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeUserService{user: testUser(), token: "tok"}
			mux := newUserMux(svc, passThrough)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", w.Code)
			}
		})
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	svc := &fakeUserService{err: service.ErrEmailAlreadyRegistered}
	mux := newUserMux(svc, passThrough)

	body := `{"name": "Ada", "email": "ada@example.com", "password": "hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &fakeUserService{err: service.ErrInvalidCredentials}
	mux := newUserMux(svc, passThrough)

	body := `{"email": "ada@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	svc := &fakeUserService{user: testUser(), token: "tok-456"}
	mux := newUserMux(svc, passThrough)

	body := `{"email": "ada@example.com", "password": "hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token != "tok-456" {
		t.Fatalf("expected token tok-456, got %q", resp.Token)
	}
}

func TestGetMe(t *testing.T) {
	svc := &fakeUserService{user: testUser()}
	mux := newUserMux(svc, withUser(testUserID))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		ID                string   `json:"id"`
		NotificationTimes []string `json:"notification_times"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != testUserID {
		t.Fatalf("expected id %q, got %q", testUserID, resp.ID)
	}
	if len(resp.NotificationTimes) != 3 {
		t.Fatalf("expected 3 notification times, got %v", resp.NotificationTimes)
	}
}

func TestGetMeWithoutAuthContext(t *testing.T) {
	svc := &fakeUserService{user: testUser()}
	mux := newUserMux(svc, passThrough)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUpdateProfilePassesSubset(t *testing.T) {
	svc := &fakeUserService{user: testUser()}
	mux := newUserMux(svc, withUser(testUserID))

	body := `{"theme_preference": "dark"}`
	req := httptest.NewRequest(http.MethodPut, "/auth/profile", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastUpdate == nil {
		t.Fatal("expected update to reach the service")
	}
	if svc.lastUpdate.ThemePreference == nil || *svc.lastUpdate.ThemePreference != "dark" {
		t.Fatalf("expected theme dark, got %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Name != nil {
		t.Fatalf("expected name untouched, got %q", *svc.lastUpdate.Name)
	}
}

func TestUpdateProfileRejectsNonPut(t *testing.T) {
	svc := &fakeUserService{user: testUser()}
	mux := newUserMux(svc, withUser(testUserID))

	req := httptest.NewRequest(http.MethodPost, "/auth/profile", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
