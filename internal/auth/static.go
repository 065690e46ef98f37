package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pogo/internal/domain"
)

var (
	// ErrEmptyToken is returned when constructing a session without a token.
	ErrEmptyToken = errors.New("access token is empty")
	// ErrUnknownProvider is returned for providers other than google and ptc.
	ErrUnknownProvider = errors.New("unknown auth provider")
)

// StaticSession is an AuthSession around a fixed access token.
type StaticSession struct {
	provider domain.Provider
	token    string
	signer   domain.Signer
}

// NewStaticSession validates provider and token. signer may be nil.
func NewStaticSession(provider domain.Provider, token string, signer domain.Signer) (*StaticSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}
	p, err := ParseProvider(string(provider))
	if err != nil {
		return nil, err
	}
	return &StaticSession{provider: p, token: token, signer: signer}, nil
}

// ParseProvider normalises a provider name.
func ParseProvider(s string) (domain.Provider, error) {
	switch p := domain.Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case domain.ProviderGoogle, domain.ProviderPTC:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// AccessToken returns the token.
func (s *StaticSession) AccessToken() string { return s.token }

// Provider returns the token issuer.
func (s *StaticSession) Provider() domain.Provider { return s.provider }

// Signer returns the configured signer, or nil.
func (s *StaticSession) Signer() domain.Signer { return s.signer }

// ExpiresAt returns the token's exp claim. ok is false for opaque tokens and
// JWTs without exp. The signature is not verified; the service stays the
// authority on validity.
func (s *StaticSession) ExpiresAt() (exp time.Time, ok bool) {
	return TokenExpiry(s.token)
}

// Expired reports whether the token is a JWT whose exp lies before now.
func (s *StaticSession) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !exp.After(now)
}

// TokenExpiry reads the exp claim of a JWT without verifying it.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

var _ domain.AuthSession = (*StaticSession)(nil)
