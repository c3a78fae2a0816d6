// Package auth resolves presented credentials into identities.
//
// A credential is checked against three sources in a fixed order: admins
// configured at startup, database accounts, and finally an external token
// verifier. The first source that recognizes the credential decides the
// outcome.
package auth

import (
	"errors"
	"strings"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// credentialSeparator joins the parts of a credential bundle. It is not
// escaped, so secrets must not contain it.
const credentialSeparator = ":"

// ErrSeparatorInSecret rejects secrets that would not survive Encode and
// ParseCredential.
var ErrSeparatorInSecret = errors.New(`secret must not contain ":"`)

// CheckSecret returns ErrSeparatorInSecret when secret contains the
// credential separator.
func CheckSecret(secret string) error {
	if strings.Contains(secret, credentialSeparator) {
		return ErrSeparatorInSecret
	}

	return nil
}

// CredentialKind identifies the shape of a presented token.
type CredentialKind int

// Credential shapes.
const (
	// KindOpaque is a bare secret or an external token.
	KindOpaque CredentialKind = iota

	// KindSecretRole is "secret:role".
	KindSecretRole

	// KindEmailSecretRole is "email:secret:role".
	KindEmailSecretRole
)

func (k CredentialKind) String() string {
	switch k {
	case KindSecretRole:
		return "secret_role"
	case KindEmailSecretRole:
		return "email_secret_role"
	default:
		return "opaque"
	}
}

// Credential is a parsed token. Email and Role are normalized to lowercase.
type Credential struct {
	Kind   CredentialKind
	Email  string
	Secret string
	Role   string
}

// ParseCredential splits token into its parts. Tokens with more than three
// parts, such as JWTs with colons in them, are treated as opaque.
func ParseCredential(token string) Credential {
	parts := strings.Split(token, credentialSeparator)

	switch len(parts) {
	case 2:
		return Credential{
			Kind:   KindSecretRole,
			Secret: parts[0],
			Role:   normalizeRole(parts[1]),
		}
	case 3:
		return Credential{
			Kind:   KindEmailSecretRole,
			Email:  domain.NormalizeEmail(parts[0]),
			Secret: parts[1],
			Role:   normalizeRole(parts[2]),
		}
	default:
		return Credential{Kind: KindOpaque, Secret: token}
	}
}

// NewCredential builds the bundle for an optional email and role hint.
func NewCredential(email, secret, role string) Credential {
	email = domain.NormalizeEmail(email)
	role = normalizeRole(role)

	switch {
	case email != "":
		return Credential{Kind: KindEmailSecretRole, Email: email, Secret: secret, Role: role}
	case role != "":
		return Credential{Kind: KindSecretRole, Secret: secret, Role: role}
	default:
		return Credential{Kind: KindOpaque, Secret: secret}
	}
}

// Encode renders the credential in the form ParseCredential reads.
func (c Credential) Encode() string {
	switch c.Kind {
	case KindSecretRole:
		return c.Secret + credentialSeparator + c.Role
	case KindEmailSecretRole:
		return c.Email + credentialSeparator + c.Secret + credentialSeparator + c.Role
	default:
		return c.Secret
	}
}

// WantsAdmin reports whether the role hint asks for admin privileges.
func (c Credential) WantsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
