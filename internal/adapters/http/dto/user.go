package dto

import (
	"time"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// UserResponse is the HTTP representation of an account. The password hash
// never leaves the service.
type UserResponse struct {
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Status      string    `json:"status"`
	IsAdmin     bool      `json:"isAdmin"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Status:      string(u.Status),
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
	}
}

// IdentityResponse describes the authenticated caller.
type IdentityResponse struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
	Status      string `json:"status"`
	Source      string `json:"source"`
}

// NewIdentityResponse converts a resolved identity.
func NewIdentityResponse(i *domain.Identity) IdentityResponse {
	return IdentityResponse{
		Email:       i.Email,
		DisplayName: i.DisplayName,
		IsAdmin:     i.IsAdmin,
		Status:      string(i.Status),
		Source:      string(i.Source),
	}
}

// RegisterUserRequest is the body of POST /users.
type RegisterUserRequest struct {
	Email       string `json:"email"       validate:"required,email,max=254"`
	Password    string `json:"password"    validate:"required,bcryptmax,excludes=:"`
	DisplayName string `json:"displayName" validate:"omitempty,max=100"`
}

// SessionRequest is the body of POST /session. Email is optional for
// static admin secrets; Role "admin" asks for admin privileges.
type SessionRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required,excludes=:"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

// SetAdminRequest is the body of PUT /admin/users/:email/admin.
type SetAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}

// UserListQuery holds the admin user list filters.
type UserListQuery struct {
	Status        string `form:"status"`
	IncludeAdmins bool   `form:"includeAdmins"`
}
