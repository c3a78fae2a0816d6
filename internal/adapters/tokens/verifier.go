// Package tokens verifies externally issued JWT bearer tokens against a
// JSON Web Key Set.
package tokens

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

const (
	defaultCacheTTL = time.Hour

	// unknownKidCooldown bounds how often an unknown key ID can force a
	// refresh of an otherwise fresh key set.
	unknownKidCooldown = 30 * time.Second
)

// supportedMethods are the JWS algorithms accepted. Symmetric algorithms
// are excluded because the key set only carries public keys.
var supportedMethods = []string{"RS256", "RS384", "RS512", "ES256", "ES384"}

// KeySource fetches the current signing keys indexed by key ID.
type KeySource interface {
	FetchKeys(ctx context.Context) (map[string]crypto.PublicKey, error)
}

// Config configures a Verifier.
type Config struct {
	// Issuer is the expected iss claim. Empty disables the check.
	Issuer string

	// Audience is the expected aud claim. Empty disables the check.
	Audience string

	// CacheTTL controls how long fetched keys are trusted. Default: 1 hour.
	CacheTTL time.Duration
}

// Verifier implements ports.TokenVerifier.
type Verifier struct {
	cfg   Config
	cache *keyCache
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier creates a verifier backed by the given key source.
func NewVerifier(source KeySource, cfg Config) *Verifier {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	return &Verifier{
		cfg: cfg,
		cache: &keyCache{
			source: source,
			ttl:    cfg.CacheTTL,
			now:    time.Now,
		},
	}
}

// Verify checks the token signature, expiry and the configured issuer and
// audience, then returns its identity claims.
func (v *Verifier) Verify(ctx context.Context, token string) (*ports.TokenClaims, error) {
	parsed, err := jwtlib.Parse(token, func(t *jwtlib.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)

		return v.cache.getKey(ctx, kid)
	}, v.parserOptions()...)
	if err != nil {
		logging.FromContext(ctx).Debug("token verification failed", "error", err)

		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return &ports.TokenClaims{
		Subject: claimString(claims, "sub"),
		Email:   strings.ToLower(strings.TrimSpace(claimString(claims, "email"))),
		Role:    claimString(claims, "role"),
	}, nil
}

func (v *Verifier) parserOptions() []jwtlib.ParserOption {
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods(supportedMethods),
		jwtlib.WithExpirationRequired(),
	}

	if v.cfg.Issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(v.cfg.Issuer))
	}

	if v.cfg.Audience != "" {
		opts = append(opts, jwtlib.WithAudience(v.cfg.Audience))
	}

	return opts
}

func claimString(claims jwtlib.MapClaims, key string) string {
	s, _ := claims[key].(string)

	return s
}

// keyCache caches the key set with a TTL.
type keyCache struct {
	mu        sync.RWMutex
	keys      map[string]crypto.PublicKey
	fetchedAt time.Time
	ttl       time.Duration
	source    KeySource
	now       func() time.Time
}

// getKey returns the key for kid, refreshing the set when it has expired
// or does not know kid. A token without a kid is accepted only when the set
// holds exactly one key.
func (c *keyCache) getKey(ctx context.Context, kid string) (crypto.PublicKey, error) {
	c.mu.RLock()
	key, ok := c.lookup(kid)
	fresh := c.fresh()
	c.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if key, ok := c.lookup(kid); ok && c.fresh() {
		return key, nil
	}

	if c.fresh() && c.now().Sub(c.fetchedAt) < unknownKidCooldown {
		return nil, fmt.Errorf("key %q not found in key set", kid)
	}

	keys, err := c.source.FetchKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching key set: %w", err)
	}

	c.keys = keys
	c.fetchedAt = c.now()

	logging.FromContext(ctx).Debug("key set refreshed", "keys", len(keys))

	key, ok = c.lookup(kid)
	if !ok {
		return nil, fmt.Errorf("key %q not found in key set", kid)
	}

	return key, nil
}

// lookup must be called with the lock held.
func (c *keyCache) lookup(kid string) (crypto.PublicKey, bool) {
	if kid == "" {
		if len(c.keys) != 1 {
			return nil, false
		}

		for _, key := range c.keys {
			return key, true
		}
	}

	key, ok := c.keys[kid]

	return key, ok
}

func (c *keyCache) fresh() bool {
	return c.keys != nil && c.now().Sub(c.fetchedAt) < c.ttl
}
