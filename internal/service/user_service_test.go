package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"moodnest/internal/model"
)

const testSecret = "test-secret"

func TestRegisterAppliesDefaults(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testSecret)

	u, token, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}
	if u.ThemePreference != "light" {
		t.Fatalf("expected light theme default, got %q", u.ThemePreference)
	}
	if !u.NotificationEnabled {
		t.Fatal("expected notifications enabled by default")
	}
	if len(u.NotificationTimes) != 3 || u.NotificationTimes[0] != "09:00" {
		t.Fatalf("unexpected notification times %v", u.NotificationTimes)
	}
	if u.SubscriptionStatus != model.SubscriptionNone {
		t.Fatalf("expected subscription none, got %q", u.SubscriptionStatus)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testSecret)

	if _, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), "Imposter", "ada@example.com", "different")
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testSecret)
	if _, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		u, token, err := svc.Login(context.Background(), "ada@example.com", "hunter22")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if token == "" || u.Email != "ada@example.com" {
			t.Fatalf("unexpected login result user=%+v token=%q", u, token)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "ada@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "ghost@example.com", "hunter22")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestUpdateProfileSubset(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testSecret)
	registered, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	theme := "dark"
	updated, err := svc.UpdateProfile(context.Background(), registered.ID, &model.UserUpdate{ThemePreference: &theme})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.ThemePreference != "dark" {
		t.Fatalf("expected dark theme, got %q", updated.ThemePreference)
	}
	if updated.Name != "Ada" {
		t.Fatalf("name should be untouched, got %q", updated.Name)
	}
	if len(updated.NotificationTimes) != 3 {
		t.Fatalf("notification times should be untouched, got %v", updated.NotificationTimes)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), testSecret)

	name := "Nobody"
	_, err := svc.UpdateProfile(context.Background(), "ghost", &model.UserUpdate{Name: &name})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
