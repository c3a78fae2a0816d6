package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// legacyKeys maps the environment names of earlier deployments to config
// keys. List values are comma separated.
var legacyKeys = map[string]string{
	"LOCAL_MODE":                 "auth.local",
	"LOCAL_DB_PATH":              "storage.sql.dsn",
	"MONGODB_URI":                "storage.mongo.uri",
	"MONGODB_DB":                 "storage.mongo.database",
	"MONGODB_COLLECTION":         "storage.mongo.quotes",
	"ADMIN_EMAILS":               "auth.admin.emails",
	"ADMIN_PASSWORD":             "auth.admin.passwords",
	"ADMIN_CREDENTIALS":          "auth.admin.credentials",
	"ADMIN_NAME":                 "auth.admin.name",
	"INSTANTDB_JWKS_URL":         "auth.jwks.url",
	"INSTANTDB_TOKEN_VERIFY_URL": "auth.jwks.url",
}

// legacyListKeys hold comma separated values.
var legacyListKeys = map[string]bool{
	"auth.admin.emails":      true,
	"auth.admin.passwords":   true,
	"auth.admin.credentials": true,
}

// loadLegacyEnv layers the legacy variables onto k. LOCAL_MODE selects the
// embedded sqlite store and otherwise MONGODB_URI selects the document
// store. INSTANTDB_JWKS_URL wins over INSTANTDB_TOKEN_VERIFY_URL.
func loadLegacyEnv(k *koanf.Koanf) error {
	err := k.Load(env.ProviderWithValue("", ".", func(name, value string) (string, any) {
		key, ok := legacyKeys[name]
		if !ok || strings.TrimSpace(value) == "" {
			return "", nil
		}

		if name == "INSTANTDB_TOKEN_VERIFY_URL" && os.Getenv("INSTANTDB_JWKS_URL") != "" {
			return "", nil
		}

		switch {
		case key == "auth.local":
			return key, parseTruthy(value)
		case legacyListKeys[key]:
			return key, splitList(value)
		default:
			return key, strings.TrimSpace(value)
		}
	}), nil)
	if err != nil {
		return err
	}

	return k.Load(confmap.Provider(legacyBackend(), "."), nil)
}

// legacyBackend derives the storage backend from the legacy variables.
func legacyBackend() map[string]any {
	switch {
	case parseTruthy(os.Getenv("LOCAL_MODE")):
		return map[string]any{
			"storage.backend":    StorageBackendSQL,
			"storage.sql.driver": "sqlite",
		}
	case strings.TrimSpace(os.Getenv("MONGODB_URI")) != "":
		return map[string]any{"storage.backend": StorageBackendMongo}
	default:
		return map[string]any{}
	}
}

// parseTruthy accepts 1, true, yes and on, case-insensitively.
func parseTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func splitList(value string) []string {
	var out []string

	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
