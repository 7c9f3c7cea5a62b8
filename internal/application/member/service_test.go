package member

import (
	"context"
	"testing"

	"github.com/classroom-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockMembershipStore struct{ mock.Mock }

func (m *mockMembershipStore) Put(ctx context.Context, mb *domain.Membership) error {
	return m.Called(ctx, mb).Error(0)
}
func (m *mockMembershipStore) Get(ctx context.Context, membershipID string) (*domain.Membership, error) {
	args := m.Called(ctx, membershipID)
	if mb, _ := args.Get(0).(*domain.Membership); mb != nil {
		return mb, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMembershipStore) GetByUserID(ctx context.Context, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, userID)
	if mb, _ := args.Get(0).(*domain.Membership); mb != nil {
		return mb, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMembershipStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Membership, string, error) {
	args := m.Called(ctx, limit, cursor)
	return args.Get(0).([]domain.Membership), args.String(1), args.Error(2)
}
func (m *mockMembershipStore) Delete(ctx context.Context, membershipID string) error {
	return m.Called(ctx, membershipID).Error(0)
}

type mockUserGetter struct{ mock.Mock }

func (m *mockUserGetter) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- Create ---

func TestCreate_Success(t *testing.T) {
	users := &mockUserGetter{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Alice"}, nil)
	repo := &mockMembershipStore{}
	repo.On("GetByUserID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Membership")).Return(nil)

	svc := NewService(domain.KindProfessor, repo, users)
	m, err := svc.Create(context.Background(), domain.CreateMembershipRequest{UserID: "u1"})

	require.NoError(t, err)
	assert.NotEmpty(t, m.MembershipID)
	assert.Equal(t, "u1", m.UserID)
	require.NotNil(t, m.User)
	assert.Equal(t, "Alice", m.User.Name)
}

func TestCreate_UserMissing(t *testing.T) {
	users := &mockUserGetter{}
	users.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(domain.KindStudent, &mockMembershipStore{}, users)
	_, err := svc.Create(context.Background(), domain.CreateMembershipRequest{UserID: "ghost"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_AlreadyMember(t *testing.T) {
	users := &mockUserGetter{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	repo := &mockMembershipStore{}
	repo.On("GetByUserID", mock.Anything, "u1").Return(&domain.Membership{MembershipID: "m1", UserID: "u1"}, nil)

	svc := NewService(domain.KindAdministrator, repo, users)
	_, err := svc.Create(context.Background(), domain.CreateMembershipRequest{UserID: "u1"})

	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

// --- Get / List / Delete ---

func TestGetByUser_NotFound(t *testing.T) {
	repo := &mockMembershipStore{}
	repo.On("GetByUserID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	svc := NewService(domain.KindStudent, repo, &mockUserGetter{})
	_, err := svc.GetByUser(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_HydratesUser(t *testing.T) {
	repo := &mockMembershipStore{}
	repo.On("Get", mock.Anything, "m1").Return(&domain.Membership{MembershipID: "m1", UserID: "u1"}, nil)
	users := &mockUserGetter{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Alice"}, nil)

	svc := NewService(domain.KindProfessor, repo, users)
	m, err := svc.Get(context.Background(), "m1")

	require.NoError(t, err)
	require.NotNil(t, m.User)
	assert.Equal(t, "Alice", m.User.Name)
}

func TestList_DefaultsLimit(t *testing.T) {
	repo := &mockMembershipStore{}
	repo.On("ScanPage", mock.Anything, int32(50), "").Return([]domain.Membership{{MembershipID: "m1"}}, "", nil)

	svc := NewService(domain.KindStudent, repo, &mockUserGetter{})
	ms, cursor, err := svc.List(context.Background(), 0, "")

	require.NoError(t, err)
	assert.Len(t, ms, 1)
	assert.Empty(t, cursor)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockMembershipStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(domain.KindAdministrator, repo, &mockUserGetter{})
	err := svc.Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
