package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"moodnest/internal/model"
	"moodnest/internal/repository"
	"moodnest/internal/util"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// Defaults applied to every new account.
var defaultNotificationTimes = []string{"09:00", "14:00", "20:00"}

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Get(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, upd *model.UserUpdate) (*model.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewUserService(userRepo repository.UserRepository, jwtSecret string) UserService {
	return &userService{userRepo: userRepo, jwtSecret: jwtSecret}
}

// Register creates an account with default preferences and returns it with
// a freshly issued token.
func (s *userService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		ID:                  uuid.NewString(),
		Name:                name,
		Email:               email,
		PasswordHash:        string(hashed),
		ThemePreference:     "light",
		NotificationEnabled: true,
		NotificationTimes:   append([]string(nil), defaultNotificationTimes...),
		SubscriptionStatus:  model.SubscriptionNone,
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateToken(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(u.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields and returns the stored user.
func (s *userService) UpdateProfile(ctx context.Context, id string, upd *model.UserUpdate) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.ThemePreference != nil {
		u.ThemePreference = *upd.ThemePreference
	}
	if upd.NotificationEnabled != nil {
		u.NotificationEnabled = *upd.NotificationEnabled
	}
	if upd.NotificationTimes != nil {
		u.NotificationTimes = *upd.NotificationTimes
	}

	if err := s.userRepo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
