package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// ErrInvalidSession is returned when a session cookie fails verification.
var ErrInvalidSession = errors.New("invalid session")

const keyInfo = "simrig-shop session signing key"

type claims struct {
	jwt.RegisteredClaims
	Values map[string]any `json:"vals,omitempty"`
}

// Codec signs session values into a compact JWT (HS256) and verifies them on
// the way back. The HMAC key is derived from the configured secret with HKDF.
type Codec struct {
	key []byte
	now func() time.Time
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return &Codec{key: key, now: time.Now}, nil
}

// Encode signs values. A positive ttl adds an expiry to the token.
func (c *Codec) Encode(values map[string]any, ttl time.Duration) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiry(now, ttl),
		},
		Values: values,
	})

	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns the values it carries. Numbers come back
// as json.Number.
func (c *Codec) Decode(token string) (map[string]any, error) {
	parsed := &claims{}
	tok, err := jwt.ParseWithClaims(token, parsed, func(*jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithJSONNumber(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidSession
	}
	if parsed.Values == nil {
		parsed.Values = map[string]any{}
	}
	return parsed.Values, nil
}

func expiry(now time.Time, ttl time.Duration) *jwt.NumericDate {
	if ttl <= 0 {
		return nil
	}
	return jwt.NewNumericDate(now.Add(ttl))
}
