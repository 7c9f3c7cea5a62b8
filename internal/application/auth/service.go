package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/classroom-api/internal/domain"
	"github.com/classroom-api/internal/infrastructure/token"
	"github.com/classroom-api/internal/pkg/password"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Profile(ctx context.Context, email string) (*domain.User, error)
	RequestReset(ctx context.Context, email string) error
	ConfirmReset(ctx context.Context, req ResetConfirmRequest) (accessToken string, err error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type consumedTokenStore interface {
	Consume(ctx context.Context, jti string, expiresAt time.Time) error
}

type tokenCodec interface {
	IssueAccess(email string) (string, error)
	IssueReset(email string) (tok, jti string, err error)
	DecodeReset(tok string) (*token.Claims, error)
}

type service struct {
	userRepo     userStore
	consumedRepo consumedTokenStore
	mailer       Mailer
	tokens       tokenCodec
}

// Mailer is the slice of the SMTP mailer this service needs.
type Mailer interface {
	SendEmail(to, subject, body, contentType string) error
}

type ServiceDeps struct {
	UserRepo     userStore
	ConsumedRepo consumedTokenStore
	Mailer       Mailer
	Tokens       tokenCodec
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:     deps.UserRepo,
		consumedRepo: deps.ConsumedRepo,
		mailer:       deps.Mailer,
		tokens:       deps.Tokens,
	}
}

// Login verifies the credentials and mints an access token bound to the
// user's email. Unknown email and wrong password produce the same error
// through the same code path.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	accessToken, err := s.tokens.IssueAccess(u.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, AccessToken: accessToken}, nil
}

// Profile returns the record of the authenticated user. The account may have
// been deleted after the token was issued; that surfaces as unauthorized, not
// as a missing resource.
func (s *service) Profile(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("account no longer exists: %w", domain.ErrUnauthorized)
	}
	return u, nil
}

// RequestReset mints a reset token for the account and dispatches the reset
// email in the background. Returns once the send is scheduled; a delivery
// failure is logged, not surfaced.
func (s *service) RequestReset(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	resetToken, _, err := s.tokens.IssueReset(u.Email)
	if err != nil {
		return err
	}
	body := resetEmailBody(u.Name, resetToken)
	go func() {
		if err := s.mailer.SendEmail(u.Email, "Reset Password", body, "text/html"); err != nil {
			slog.Error("password reset email send failed", "email", u.Email, "err", err)
		}
	}()
	return nil
}

// ConfirmReset exchanges a valid, unconsumed reset token for a password
// change and a fresh access token. The jti is recorded before the hash is
// written, so a token can only be exchanged once and two racing confirms
// cannot both succeed.
func (s *service) ConfirmReset(ctx context.Context, req ResetConfirmRequest) (string, error) {
	claims, err := s.tokens.DecodeReset(req.Token)
	if err != nil {
		return "", err
	}
	if err := s.consumedRepo.Consume(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", fmt.Errorf("reset token already used: %w", domain.ErrInvalidToken)
		}
		return "", err
	}
	u, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return "", fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	hash, err := password.Hash(req.Password)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{"password_hash": hash}); err != nil {
		return "", err
	}
	return s.tokens.IssueAccess(u.Email)
}

func resetEmailBody(name, resetToken string) string {
	return fmt.Sprintf(`<html>
<body>
<p>Hi %s,</p>
<p>We received a request to reset your password. Use the token below to set a new one. It expires in a few minutes.</p>
<p><code>%s</code></p>
<p>If you didn't request this, you can ignore this email.</p>
</body>
</html>`, name, resetToken)
}
