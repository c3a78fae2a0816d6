package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// jwtPattern matches compact JWS tokens.
	jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	// bearerPattern matches raw Authorization header values.
	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)

	// bcryptPattern matches stored password hashes.
	bcryptPattern = regexp.MustCompile(`^\$2[aby]?\$\d{2}\$[./A-Za-z0-9]{53}$`)

	// credentialPattern matches the "email:secret[:role]" credential form
	// accepted in bearer headers, session cookies and ADMIN_CREDENTIALS.
	credentialPattern = regexp.MustCompile(`^[^\s:@]+@[^\s:]+:[^\s:]+(:(admin|user))?$`)
)

// sensitiveFields are attribute and struct field names whose values never
// reach a log line.
var sensitiveFields = []string{
	"password", "Password",
	"password_hash", "passwordHash", "PasswordHash",
	"secret", "credential", "credentials", "Credentials",
	"token", "bearer", "authorization", "Authorization",
	"cookie", "admin_token", "session",
	"dsn", "DSN", "uri", "URI",
}

// DefaultRedactOptions returns the masq options applied to every handler
// that supports ReplaceAttr.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveFields)+5)

	for _, name := range sensitiveFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(bcryptPattern),
		masq.WithRegex(credentialPattern),
	)
}

// NewReplaceAttr returns a slog ReplaceAttr hook that redacts everything
// DefaultRedactOptions covers plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
