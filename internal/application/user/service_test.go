package user

import (
	"context"
	"errors"
	"testing"

	"github.com/classroom-api/internal/domain"
	"github.com/classroom-api/internal/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	args := m.Called(ctx, limit, cursor)
	return args.Get(0).([]domain.User), args.String(1), args.Error(2)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- helpers ---

func baseReq() domain.CreateUserRequest {
	return domain.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	}
}

func strPtr(s string) *string { return &s }

// --- Register ---

func TestRegister_Success(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	var stored *domain.User
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.User) }).
		Return(nil)

	svc := NewService(repo)
	u, err := svc.Register(context.Background(), baseReq())

	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	// Stored hash, never the plaintext.
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, password.Verify("password123", stored.PasswordHash))
}

func TestRegister_EmailConflict(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{UserID: "u1"}, nil)

	svc := NewService(repo)
	_, err := svc.Register(context.Background(), baseReq())

	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_PutFails(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := NewService(repo)
	_, err := svc.Register(context.Background(), baseReq())
	assert.Error(t, err)
}

// --- Get / List / Delete ---

func TestGet_NotFound(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_DefaultsLimit(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("ScanPage", mock.Anything, int32(50), "").Return([]domain.User{{UserID: "u1"}}, "next", nil)

	svc := NewService(repo)
	users, cursor, err := svc.List(context.Background(), 0, "")

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "next", cursor)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_Success(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	repo.On("Delete", mock.Anything, "u1").Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.Delete(context.Background(), "u1"))
	repo.AssertExpectations(t)
}

// --- Update ---

func TestUpdate_NoFields_ReturnsCurrent(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Alice"}, nil)

	svc := NewService(repo)
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{})

	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_RehashesPassword(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	var updates map[string]interface{}
	repo.On("Update", mock.Anything, "u1", mock.Anything).
		Run(func(args mock.Arguments) { updates = args.Get(2).(map[string]interface{}) }).
		Return(nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Password: strPtr("newpassword")})

	require.NoError(t, err)
	hash, ok := updates[fieldPasswordHash].(string)
	require.True(t, ok)
	assert.True(t, password.Verify("newpassword", hash))
}

func TestUpdate_EmailTakenByAnotherUser(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{UserID: "u2"}, nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Email: strPtr("taken@example.com")})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_MissingUser(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), "missing", domain.UpdateUserRequest{Name: strPtr("Bob")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
