package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf key, so messages name the same
// path an operator sets in YAML or the environment.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}

		return name
	})

	return v
}()

// ErrInvalid wraps every configuration problem reported by Validate.
var ErrInvalid = errors.New("config validation failed")

// Validate checks field constraints and the rules that span several
// fields. All problems are reported at once; the service must not start
// with any of them.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}

		for _, fe := range fieldErrs {
			problems = append(problems, describe(fe))
		}
	}

	problems = append(problems, c.crossFieldProblems()...)

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("%w:\n  %s", ErrInvalid, strings.Join(problems, "\n  "))
}

func (c *Config) crossFieldProblems() []string {
	var problems []string

	// Emails and passwords pair up positionally; a single password is
	// shared by every email. Credentials, when present, replace both.
	admin := c.Auth.Admin
	if len(admin.Credentials) == 0 && len(admin.Passwords) > 1 {
		switch {
		case len(admin.Emails) == 0:
			problems = append(problems, "auth.admin.passwords must hold a single password when no emails are configured")
		case len(admin.Passwords) != len(admin.Emails):
			problems = append(problems, "auth.admin.passwords must hold one password per email or a single shared password")
		}
	}

	// Admin secrets travel inside "email:secret:role" cookies, so the
	// password half of a credential cannot hold another separator.
	for i, cred := range admin.Credentials {
		if strings.Count(cred, ":") > 1 {
			problems = append(problems, fmt.Sprintf(`auth.admin.credentials[%d] password must not contain ":"`, i))
		}
	}

	switch c.Storage.Backend {
	case StorageBackendSQL:
		if blank(c.Storage.SQL.DSN) {
			problems = append(problems, "storage.sql.dsn is required when storage.backend is sql")
		}
	case StorageBackendMongo:
		if blank(c.Storage.Mongo.URI) {
			problems = append(problems, "storage.mongo.uri is required when storage.backend is mongo")
		}

		if blank(c.Storage.Mongo.Database) {
			problems = append(problems, "storage.mongo.database is required when storage.backend is mongo")
		}
	}

	if c.Telemetry.Enabled && c.Telemetry.Endpoint != "" {
		if u, err := url.Parse(c.Telemetry.Endpoint); err == nil && u.Scheme != "http" && u.Scheme != "https" {
			problems = append(problems, "telemetry.endpoint must use the http or https scheme")
		}
	}

	return problems
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// describe renders one field error as "<koanf path> <problem>".
func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}

	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", path, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", path, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", path, fe.Param())
	case "url":
		return path + " must be a valid URL"
	case "email":
		return path + " must be a valid email address"
	case "contains":
		return fmt.Sprintf("%s must contain %q", path, fe.Param())
	case "excludes":
		return fmt.Sprintf("%s must not contain %q", path, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", path, fe.Tag())
	}
}
