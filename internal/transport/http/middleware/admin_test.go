package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/classroom-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserDir struct{ mock.Mock }

func (m *mockUserDir) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMembershipDir struct{ mock.Mock }

func (m *mockMembershipDir) GetByUserID(ctx context.Context, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, userID)
	if mb, _ := args.Get(0).(*domain.Membership); mb != nil {
		return mb, args.Error(1)
	}
	return nil, args.Error(1)
}

func subjectReq(email string) *http.Request {
	ctx := context.WithValue(context.Background(), SubjectKey, email)
	return httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
}

func TestRequireAdmin_NoSubjectInContext(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	RequireAdmin(&mockUserDir{}, &mockMembershipDir{})(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAdmin_UserVanished(t *testing.T) {
	users := &mockUserDir{}
	users.On("GetByEmail", mock.Anything, "gone@x.com").Return(nil, domain.ErrNotFound)

	rr := httptest.NewRecorder()
	RequireAdmin(users, &mockMembershipDir{})(http.HandlerFunc(okHandler)).ServeHTTP(rr, subjectReq("gone@x.com"))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAdmin_NotAnAdministrator(t *testing.T) {
	users := &mockUserDir{}
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1"}, nil)
	admins := &mockMembershipDir{}
	admins.On("GetByUserID", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	rr := httptest.NewRecorder()
	RequireAdmin(users, admins)(http.HandlerFunc(okHandler)).ServeHTTP(rr, subjectReq("a@x.com"))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireAdmin_Administrator(t *testing.T) {
	users := &mockUserDir{}
	users.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1"}, nil)
	admins := &mockMembershipDir{}
	admins.On("GetByUserID", mock.Anything, "u1").Return(&domain.Membership{MembershipID: "m1", UserID: "u1"}, nil)

	rr := httptest.NewRecorder()
	RequireAdmin(users, admins)(http.HandlerFunc(okHandler)).ServeHTTP(rr, subjectReq("a@x.com"))
	assert.Equal(t, http.StatusOK, rr.Code)
}
