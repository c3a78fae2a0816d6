package tokens

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rsaPriv *rsa.PrivateKey
	ecPriv  *ecdsa.PrivateKey
)

func init() {
	var err error

	rsaPriv, err = rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}

	ecPriv, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic(err)
	}
}

// fakeSource serves a fixed key set and counts fetches.
type fakeSource struct {
	keys    map[string]crypto.PublicKey
	err     error
	fetches atomic.Int32
}

func (f *fakeSource) FetchKeys(context.Context) (map[string]crypto.PublicKey, error) {
	f.fetches.Add(1)

	if f.err != nil {
		return nil, f.err
	}

	return f.keys, nil
}

func defaultSource() *fakeSource {
	return &fakeSource{keys: map[string]crypto.PublicKey{
		"rsa": &rsaPriv.PublicKey,
		"ec":  &ecPriv.PublicKey,
	}}
}

func sign(t *testing.T, method jwtlib.SigningMethod, kid string, key any, claims jwtlib.MapClaims) string {
	t.Helper()

	token := jwtlib.NewWithClaims(method, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}

	s, err := token.SignedString(key)
	require.NoError(t, err)

	return s
}

func validClaims() jwtlib.MapClaims {
	return jwtlib.MapClaims{
		"sub":   "user-1",
		"email": " Jane@Example.com ",
		"role":  "admin",
		"iss":   "https://idp.example.com",
		"aud":   "quoteboard",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerifier_Verify(t *testing.T) {
	tests := []struct {
		name   string
		method jwtlib.SigningMethod
		kid    string
		key    any
	}{
		{"RS256", jwtlib.SigningMethodRS256, "rsa", rsaPriv},
		{"RS512", jwtlib.SigningMethodRS512, "rsa", rsaPriv},
		{"ES256", jwtlib.SigningMethodES256, "ec", ecPriv},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(defaultSource(), Config{Issuer: "https://idp.example.com", Audience: "quoteboard"})

			claims, err := v.Verify(context.Background(), sign(t, tt.method, tt.kid, tt.key, validClaims()))
			require.NoError(t, err)

			assert.Equal(t, "user-1", claims.Subject)
			assert.Equal(t, "jane@example.com", claims.Email)
			assert.Equal(t, "admin", claims.Role)
		})
	}
}

func TestVerifier_Rejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noExp := validClaims()
	delete(noExp, "exp")

	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "https://evil.example.com"

	wrongAudience := validClaims()
	wrongAudience["aud"] = "someone-else"

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", sign(t, jwtlib.SigningMethodRS256, "rsa", rsaPriv, expired)},
		{"missing expiry", sign(t, jwtlib.SigningMethodRS256, "rsa", rsaPriv, noExp)},
		{"wrong issuer", sign(t, jwtlib.SigningMethodRS256, "rsa", rsaPriv, wrongIssuer)},
		{"wrong audience", sign(t, jwtlib.SigningMethodRS256, "rsa", rsaPriv, wrongAudience)},
		{"wrong signature", sign(t, jwtlib.SigningMethodRS256, "rsa", otherKey, validClaims())},
		{"symmetric algorithm", sign(t, jwtlib.SigningMethodHS256, "rsa", []byte("secret"), validClaims())},
		{"key type mismatch", sign(t, jwtlib.SigningMethodES256, "rsa", ecPriv, validClaims())},
		{"unknown kid", sign(t, jwtlib.SigningMethodRS256, "missing", rsaPriv, validClaims())},
		{"no kid with several keys", sign(t, jwtlib.SigningMethodRS256, "", rsaPriv, validClaims())},
		{"not a jwt", "jane@example.com:pw:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(defaultSource(), Config{Issuer: "https://idp.example.com", Audience: "quoteboard"})

			claims, err := v.Verify(context.Background(), tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestVerifier_SingleKeyWithoutKid(t *testing.T) {
	source := &fakeSource{keys: map[string]crypto.PublicKey{"only": &rsaPriv.PublicKey}}
	v := NewVerifier(source, Config{})

	claims, err := v.Verify(context.Background(), sign(t, jwtlib.SigningMethodRS256, "", rsaPriv, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestVerifier_SourceError(t *testing.T) {
	v := NewVerifier(&fakeSource{err: errors.New("provider down")}, Config{})

	_, err := v.Verify(context.Background(), sign(t, jwtlib.SigningMethodRS256, "rsa", rsaPriv, validClaims()))
	assert.ErrorContains(t, err, "provider down")
}

func TestKeyCache_TTL(t *testing.T) {
	source := defaultSource()
	now := time.Now()

	c := &keyCache{source: source, ttl: time.Hour, now: func() time.Time { return now }}

	for range 3 {
		_, err := c.getKey(context.Background(), "rsa")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), source.fetches.Load(), "fresh keys are served from cache")

	now = now.Add(2 * time.Hour)

	_, err := c.getKey(context.Background(), "rsa")
	require.NoError(t, err)
	assert.Equal(t, int32(2), source.fetches.Load(), "expired keys are refetched")
}

func TestKeyCache_UnknownKidCooldown(t *testing.T) {
	source := defaultSource()
	now := time.Now()

	c := &keyCache{source: source, ttl: time.Hour, now: func() time.Time { return now }}

	_, err := c.getKey(context.Background(), "rsa")
	require.NoError(t, err)

	_, err = c.getKey(context.Background(), "rotated")
	require.Error(t, err)
	assert.Equal(t, int32(1), source.fetches.Load(), "unknown kid inside cooldown does not refetch")

	source.keys = map[string]crypto.PublicKey{"rotated": &rsaPriv.PublicKey}
	now = now.Add(unknownKidCooldown + time.Second)

	key, err := c.getKey(context.Background(), "rotated")
	require.NoError(t, err)
	assert.NotNil(t, key)
	assert.Equal(t, int32(2), source.fetches.Load())
}

func TestKeyCache_ConcurrentRefresh(t *testing.T) {
	source := defaultSource()
	c := &keyCache{source: source, ttl: time.Hour, now: time.Now}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := c.getKey(context.Background(), "ec")
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), source.fetches.Load())
}
