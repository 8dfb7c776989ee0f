package model

import (
	"time"
)

type UserStatus int

const (
	UserStatusWaitingVerification UserStatus = 1
	UserStatusActive              UserStatus = 2
)

type User struct {
	ID              string     `db:"id"`
	Login           string     `db:"login"`
	Email           string     `db:"email"`
	PasswordHash    string     `db:"password_hash"`
	Status          UserStatus `db:"status"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	APIToken        string     `db:"api_token"`
	Locale          string     `db:"locale"`
	Timezone        string     `db:"timezone"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Activate transitions the user to active and records when the email was
// verified. The transition is one-way: an already active user stays active.
func (u *User) Activate(at time.Time) {
	if u.IsActive() {
		return
	}
	u.Status = UserStatusActive
	u.EmailVerifiedAt = &at
}
