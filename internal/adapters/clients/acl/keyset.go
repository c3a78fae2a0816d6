package acl

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"github.com/jsamuelsen/quoteboard/internal/adapters/clients"
	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// KeySetServiceName names the identity provider in errors, logs and health checks.
const KeySetServiceName = "jwks"

// jwk is the external representation of a single JSON Web Key.
type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

// signingKey pairs a key ID with the translated public key.
type signingKey struct {
	kid string
	key crypto.PublicKey
}

var errUnsupportedKey = errors.New("unsupported key")

// KeySetClient fetches the provider's JSON Web Key Set and returns the
// signing keys as Go public keys indexed by key ID.
type KeySetClient struct {
	client *clients.Client
}

// NewKeySetClient creates a key-set client. The client's base URL must be
// the full JWKS document URL.
func NewKeySetClient(client *clients.Client) *KeySetClient {
	return &KeySetClient{client: client}
}

// FetchKeys downloads the key set. RSA and EC (P-256, P-384) signing keys
// are returned; encryption keys and unsupported types are skipped. A set
// with no usable keys is an error.
func (c *KeySetClient) FetchKeys(ctx context.Context) (map[string]crypto.PublicKey, error) {
	set, err := getJSON[jwkSet](ctx, c.client, KeySetServiceName, "", "fetch signing keys")
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	keys := make(map[string]crypto.PublicKey, len(set.Keys))

	// One unsupported key must not take the others down with it.
	for i := range set.Keys {
		k, err := translateJWK(&set.Keys[i])
		if err != nil {
			logger.Debug("skipping key", "index", i, "kid", set.Keys[i].Kid, "error", err)
			continue
		}

		keys[k.kid] = k.key
	}

	if len(keys) == 0 {
		return nil, domain.NewUnavailableError(KeySetServiceName, "key set contains no usable signing keys")
	}

	return keys, nil
}

// Name implements ports.HealthChecker.
func (c *KeySetClient) Name() string {
	return KeySetServiceName
}

// Check implements ports.HealthChecker by fetching the key set.
func (c *KeySetClient) Check(ctx context.Context) error {
	_, err := c.FetchKeys(ctx)

	return err
}

func translateJWK(k *jwk) (signingKey, error) {
	if k.Use != "" && k.Use != "sig" {
		return signingKey{}, fmt.Errorf("%w: use %q", errUnsupportedKey, k.Use)
	}

	switch k.Kty {
	case "RSA":
		key, err := rsaKey(k)
		if err != nil {
			return signingKey{}, err
		}

		return signingKey{kid: k.Kid, key: key}, nil

	case "EC":
		key, err := ecKey(k)
		if err != nil {
			return signingKey{}, err
		}

		return signingKey{kid: k.Kid, key: key}, nil

	default:
		return signingKey{}, fmt.Errorf("%w: kty %q", errUnsupportedKey, k.Kty)
	}
}

func rsaKey(k *jwk) (*rsa.PublicKey, error) {
	n, err := decodeBigInt(k.N)
	if err != nil {
		return nil, fmt.Errorf("decoding modulus: %w", err)
	}

	e, err := decodeBigInt(k.E)
	if err != nil {
		return nil, fmt.Errorf("decoding exponent: %w", err)
	}

	if !e.IsInt64() || e.Int64() < 3 || e.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("%w: rsa exponent out of range", errUnsupportedKey)
	}

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func ecKey(k *jwk) (*ecdsa.PublicKey, error) {
	var curve elliptic.Curve

	switch k.Crv {
	case "P-256":
		curve = elliptic.P256()
	case "P-384":
		curve = elliptic.P384()
	default:
		return nil, fmt.Errorf("%w: curve %q", errUnsupportedKey, k.Crv)
	}

	x, err := decodeBigInt(k.X)
	if err != nil {
		return nil, fmt.Errorf("decoding x: %w", err)
	}

	y, err := decodeBigInt(k.Y)
	if err != nil {
		return nil, fmt.Errorf("decoding y: %w", err)
	}

	if !curve.IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: point not on curve %s", errUnsupportedKey, k.Crv)
	}

	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

func decodeBigInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("empty value")
	}

	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}

	return new(big.Int).SetBytes(b), nil
}
