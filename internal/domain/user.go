package domain

import (
	"strings"
	"time"
)

// UserStatus is the approval state of an account.
type UserStatus string

// Account approval states.
const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusApproved UserStatus = "APPROVED"
)

// ParseUserStatus normalizes s (case-insensitive) into a UserStatus.
func ParseUserStatus(s string) (UserStatus, error) {
	status := UserStatus(strings.ToUpper(strings.TrimSpace(s)))
	if status != UserStatusPending && status != UserStatusApproved {
		return "", NewValidationErrorWithValue("status", "must be one of PENDING, APPROVED", s)
	}

	return status, nil
}

// User is an account that can log in and, once approved, submit quotes.
type User struct {
	// Email is the primary key, always lowercase.
	Email string

	// PasswordHash is a bcrypt hash, never the plain secret.
	PasswordHash string

	DisplayName string
	Status      UserStatus

	// IsAdmin grants moderation rights. Admins are always APPROVED.
	IsAdmin bool

	CreatedAt time.Time
}

// Normalize lowercases the email, fills the display name and enforces the
// admin-implies-approved rule.
func (u *User) Normalize() {
	u.Email = NormalizeEmail(u.Email)
	u.DisplayName = strings.TrimSpace(u.DisplayName)

	if u.DisplayName == "" {
		u.DisplayName = EmailLocalPart(u.Email)
	}

	if u.Status == "" {
		u.Status = UserStatusPending
	}

	if u.IsAdmin {
		u.Status = UserStatusApproved
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocalPart returns the part of email before '@'.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
