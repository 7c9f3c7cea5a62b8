package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/classroom-api/internal/config"
	"github.com/classroom-api/internal/domain"
	"github.com/classroom-api/internal/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. An access token can never be replayed as a reset token or
// vice versa: each decode path rejects the other purpose.
const (
	PurposeAccess        = "access"
	PurposePasswordReset = "password_reset"
)

// Claims holds the JWT payload fields. Subject carries the user's email for
// both token kinds.
type Claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs for both token kinds.
// Expiry is exact: there is no clock-skew leeway, and a token without an
// exp claim fails verification.
type Provider struct {
	secret    []byte
	accessTTL time.Duration
	resetTTL  time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("signing secret is empty")
	}
	if cfg.Algorithm != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	return &Provider{
		secret:    []byte(cfg.SecretKey),
		accessTTL: cfg.AccessTokenTTL,
		resetTTL:  cfg.ResetTokenTTL,
	}, nil
}

// IssueAccess mints an access token for the given email.
func (p *Provider) IssueAccess(email string) (string, error) {
	return p.sign(email, PurposeAccess, "", p.accessTTL)
}

// IssueReset mints a password-reset token for the given email and returns it
// together with its jti. The jti is recorded server-side when the token is
// consumed, making each reset token single-use.
func (p *Provider) IssueReset(email string) (token, jti string, err error) {
	jti = id.New()
	token, err = p.sign(email, PurposePasswordReset, jti, p.resetTTL)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// VerifyAccess validates an access token and returns the subject email.
func (p *Provider) VerifyAccess(tokenStr string) (string, error) {
	claims, err := p.parse(tokenStr, PurposeAccess)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// DecodeReset validates a password-reset token and returns its claims.
func (p *Provider) DecodeReset(tokenStr string) (*Claims, error) {
	return p.parse(tokenStr, PurposePasswordReset)
}

func (p *Provider) sign(email, purpose, jti string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *Provider) parse(tokenStr, wantPurpose string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidToken)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims: %w", domain.ErrInvalidToken)
	}
	if claims.Purpose != wantPurpose {
		return nil, fmt.Errorf("wrong token purpose: %w", domain.ErrInvalidToken)
	}
	return claims, nil
}
