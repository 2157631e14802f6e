package model

import "time"

// Subscription states a user account can be in.
const (
	SubscriptionNone   = "none"
	SubscriptionActive = "active"
)

// User represents a registered account.
type User struct {
	ID                  string    `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	Email               string    `db:"email" json:"email"`
	PasswordHash        string    `db:"password_hash" json:"-"`
	ThemePreference     string    `db:"theme_preference" json:"theme_preference"`
	NotificationEnabled bool      `db:"notification_enabled" json:"notification_enabled"`
	NotificationTimes   []string  `db:"notification_times" json:"notification_times"`
	SubscriptionStatus  string    `db:"subscription_status" json:"subscription_status"`
	SubscriptionPackage *string   `db:"subscription_package" json:"subscription_package,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// UserUpdate carries the optional profile fields a profile update may change.
// Nil fields are left untouched.
type UserUpdate struct {
	Name                *string   `json:"name"`
	ThemePreference     *string   `json:"theme_preference"`
	NotificationEnabled *bool     `json:"notification_enabled"`
	NotificationTimes   *[]string `json:"notification_times"`
}
