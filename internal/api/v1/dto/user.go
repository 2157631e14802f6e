package dto

import "time"

// RegisterDTO is the register request body.
type RegisterDTO struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginDTO is the login request body.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdateDTO carries the optional profile fields. Absent fields are left
// untouched.
type UserUpdateDTO struct {
	Name                *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	ThemePreference     *string   `json:"theme_preference,omitempty" validate:"omitempty,min=1"`
	NotificationEnabled *bool     `json:"notification_enabled,omitempty"`
	NotificationTimes   *[]string `json:"notification_times,omitempty"`
}

// UserResponseDTO is returned in API responses.
type UserResponseDTO struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	ThemePreference     string    `json:"theme_preference"`
	NotificationEnabled bool      `json:"notification_enabled"`
	NotificationTimes   []string  `json:"notification_times"`
	SubscriptionStatus  string    `json:"subscription_status"`
	SubscriptionPackage *string   `json:"subscription_package,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// AuthResponseDTO is returned from register and login.
type AuthResponseDTO struct {
	Token string          `json:"token"`
	User  UserResponseDTO `json:"user"`
}
