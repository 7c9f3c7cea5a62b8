package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/classroom-api/internal/domain"
	"github.com/classroom-api/internal/pkg/id"
)

// Service manages one role-membership collection (administrators, professors
// or students). The same implementation serves all three; only the backing
// table differs.
type Service interface {
	Create(ctx context.Context, req domain.CreateMembershipRequest) (*domain.Membership, error)
	Get(ctx context.Context, membershipID string) (*domain.Membership, error)
	GetByUser(ctx context.Context, userID string) (*domain.Membership, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Membership, string, error)
	Delete(ctx context.Context, membershipID string) error
}

type membershipStore interface {
	Put(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, membershipID string) (*domain.Membership, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Membership, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Membership, string, error)
	Delete(ctx context.Context, membershipID string) error
}

type userGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	kind     domain.MembershipKind
	repo     membershipStore
	userRepo userGetter
}

func NewService(kind domain.MembershipKind, repo membershipStore, userRepo userGetter) Service {
	return &service{kind: kind, repo: repo, userRepo: userRepo}
}

func (s *service) Create(ctx context.Context, req domain.CreateMembershipRequest) (*domain.Membership, error) {
	u, err := s.userRepo.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if _, err := s.repo.GetByUserID(ctx, req.UserID); err == nil {
		return nil, fmt.Errorf("user is already a %s: %w", s.kind, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	m := &domain.Membership{
		MembershipID: id.New(),
		UserID:       u.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, m); err != nil {
		return nil, err
	}
	m.User = u
	return m, nil
}

func (s *service) Get(ctx context.Context, membershipID string) (*domain.Membership, error) {
	m, err := s.repo.Get(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	s.attachUser(ctx, m)
	return m, nil
}

func (s *service) GetByUser(ctx context.Context, userID string) (*domain.Membership, error) {
	m, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.attachUser(ctx, m)
	return m, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Membership, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) Delete(ctx context.Context, membershipID string) error {
	if _, err := s.repo.Get(ctx, membershipID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, membershipID)
}

// attachUser hydrates the membership's user for responses. A lookup failure
// (user deleted after the membership was created) leaves User nil.
func (s *service) attachUser(ctx context.Context, m *domain.Membership) {
	if u, err := s.userRepo.Get(ctx, m.UserID); err == nil {
		m.User = u
	}
}
