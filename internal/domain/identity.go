package domain

// IdentitySource records which credential source resolved an identity.
type IdentitySource string

// Credential sources, in resolution order.
const (
	IdentitySourceStatic  IdentitySource = "static"
	IdentitySourceAccount IdentitySource = "account"
	IdentitySourceToken   IdentitySource = "token"
)

// RoleAdmin is the role hint that requests admin privileges.
const RoleAdmin = "admin"

// Identity is the authenticated caller handed to request handlers.
type Identity struct {
	Email       string
	DisplayName string
	IsAdmin     bool
	Status      UserStatus
	Source      IdentitySource
}

// IsApproved reports whether the identity passes the approval gate.
// Admins bypass it.
func (i *Identity) IsApproved() bool {
	return i.IsAdmin || i.Status == UserStatusApproved
}

// IdentityFromUser builds the identity for a database account.
func IdentityFromUser(u *User) *Identity {
	return &Identity{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		Status:      u.Status,
		Source:      IdentitySourceAccount,
	}
}
