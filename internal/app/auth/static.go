package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/jsamuelsen/quoteboard/internal/domain"
)

// LocalAdminEmail names the single admin created from a bare password.
const LocalAdminEmail = "local-admin"

// DefaultAdminName is the display name of static admins when none is configured.
const DefaultAdminName = "Admin"

// StaticAdminConfig is the admin credential material from configuration.
type StaticAdminConfig struct {
	// Credentials are explicit "email:password" pairs. When set, Emails and
	// Passwords are ignored.
	Credentials []string

	// Emails and Passwords pair 1:1, or one password is shared by all emails.
	Emails    []string
	Passwords []string

	// Name is the display name of every static admin.
	Name string
}

type staticAdmin struct {
	email  string
	digest [32]byte
}

// StaticAdmins holds admin credentials fixed at startup. Secrets are kept
// only as SHA-256 digests.
type StaticAdmins struct {
	entries []staticAdmin
	name    string
}

// NewStaticAdmins builds the admin table from cfg.
func NewStaticAdmins(cfg StaticAdminConfig) (*StaticAdmins, error) {
	pairs, err := staticPairs(cfg)
	if err != nil {
		return nil, err
	}

	s := &StaticAdmins{name: strings.TrimSpace(cfg.Name)}
	if s.name == "" {
		s.name = DefaultAdminName
	}

	for _, p := range pairs {
		if err := CheckSecret(p[1]); err != nil {
			return nil, fmt.Errorf("admin password for %s: %w", maskEmail(p[0]), err)
		}

		s.entries = append(s.entries, staticAdmin{
			email:  p[0],
			digest: sha256.Sum256([]byte(p[1])),
		})
	}

	return s, nil
}

func staticPairs(cfg StaticAdminConfig) ([][2]string, error) {
	var pairs [][2]string

	if creds := nonEmpty(cfg.Credentials); len(creds) > 0 {
		for _, c := range creds {
			email, password, ok := strings.Cut(c, credentialSeparator)
			email = domain.NormalizeEmail(email)

			if !ok || email == "" || password == "" {
				return nil, fmt.Errorf("admin credential %q must be email:password", maskEmail(email))
			}

			pairs = append(pairs, [2]string{email, password})
		}

		return pairs, nil
	}

	emails := nonEmpty(cfg.Emails)
	passwords := nonEmpty(cfg.Passwords)

	switch {
	case len(passwords) == 0:
		return nil, nil
	case len(emails) == 0 && len(passwords) == 1:
		return [][2]string{{LocalAdminEmail, passwords[0]}}, nil
	case len(emails) == 0:
		return nil, fmt.Errorf("%d admin passwords configured without admin emails", len(passwords))
	case len(passwords) == 1:
		for _, e := range emails {
			pairs = append(pairs, [2]string{domain.NormalizeEmail(e), passwords[0]})
		}
	case len(passwords) == len(emails):
		for i, e := range emails {
			pairs = append(pairs, [2]string{domain.NormalizeEmail(e), passwords[i]})
		}
	default:
		return nil, fmt.Errorf("admin emails (%d) and passwords (%d) must pair 1:1 or share one password",
			len(emails), len(passwords))
	}

	return pairs, nil
}

// Match returns the admin identity for (email, secret). With an empty email
// the first entry holding secret matches.
func (s *StaticAdmins) Match(email, secret string) (*domain.Identity, bool) {
	if s == nil || secret == "" {
		return nil, false
	}

	email = domain.NormalizeEmail(email)
	digest := sha256.Sum256([]byte(secret))

	for _, e := range s.entries {
		if email != "" && e.email != email {
			continue
		}

		if subtle.ConstantTimeCompare(digest[:], e.digest[:]) == 1 {
			return &domain.Identity{
				Email:       e.email,
				DisplayName: s.name,
				IsAdmin:     true,
				Status:      domain.UserStatusApproved,
				Source:      domain.IdentitySourceStatic,
			}, true
		}
	}

	return nil, false
}

// Len returns the number of configured admins.
func (s *StaticAdmins) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))

	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}

// maskEmail keeps the first character of the local part and the domain,
// which is enough to find the entry in configuration.
func maskEmail(email string) string {
	local, domainPart, ok := strings.Cut(email, "@")

	switch {
	case email == "":
		return "<empty>"
	case !ok || local == "":
		return "***"
	default:
		return local[:1] + "***@" + domainPart
	}
}
