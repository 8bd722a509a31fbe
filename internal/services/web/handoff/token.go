package handoff

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeyLength is the shortest accepted HMAC key in bytes.
const MinKeyLength = 32

const (
	tokenIssuer   = "greenblade-web"
	tokenAudience = "quote-handoff"
)

// ErrInvalidToken reports a handoff token that is malformed, forged or expired.
var ErrInvalidToken = errors.New("invalid handoff token")

// Signer issues and verifies HS256 handoff tokens whose subject is a draft id.
type Signer struct {
	key []byte
	now func() time.Time
}

// NewSigner builds a signer for key.
func NewSigner(key []byte) (*Signer, error) {
	if len(key) < MinKeyLength {
		return nil, fmt.Errorf("handoff key must be at least %d bytes, got %d", MinKeyLength, len(key))
	}
	return &Signer{key: append([]byte(nil), key...), now: time.Now}, nil
}

// Issue signs a token for draftID that expires at expiresAt.
func (s *Signer) Issue(draftID string, expiresAt time.Time) (string, error) {
	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return "", errors.New("draft id is required")
	}
	now := s.now()
	if !expiresAt.After(now) {
		return "", errors.New("token expiry must be in the future")
	}
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   draftID,
		Audience:  jwt.ClaimStrings{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign handoff token: %w", err)
	}
	return signed, nil
}

// Verify checks token and returns its draft id.
func (s *Signer) Verify(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Issuer != tokenIssuer || !slices.Contains(claims.Audience, tokenAudience) {
		return "", fmt.Errorf("%w: issuer or audience mismatch", ErrInvalidToken)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(s.now()) {
		return "", fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return subject, nil
}

// GenerateKey returns a random key suitable for NewSigner.
func GenerateKey() ([]byte, error) {
	key := make([]byte, MinKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate handoff key: %w", err)
	}
	return key, nil
}

// DecodeKey decodes a standard or URL-safe base64 key.
func DecodeKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if key, err := enc.DecodeString(encoded); err == nil {
			return key, nil
		}
	}
	return nil, errors.New("handoff key must be base64 encoded")
}
