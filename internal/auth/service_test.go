package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iedc-carmel/club-management-backend/internal/apperr"
	"github.com/iedc-carmel/club-management-backend/internal/member"
)

func seedMember(t *testing.T, repo *member.MemoryRepository, uid, email, regNo, password, role, status string) {
	t.Helper()
	var hash string
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}
	require.NoError(t, repo.Create(context.Background(), &member.User{
		UID:            uid,
		FullName:       "Test User",
		Email:          email,
		RegisterNumber: regNo,
		Role:           role,
		Status:         status,
		PasswordHash:   hash,
	}))
}

func newLoginService(t *testing.T) (Service, *member.MemoryRepository, *DevTokenProvider) {
	t.Helper()
	repo := member.NewMemoryRepository()
	provider := NewDevTokenProvider("test-secret")
	return NewService(repo, provider), repo, provider
}

func TestLoginByEmail(t *testing.T) {
	svc, repo, provider := newLoginService(t)
	seedMember(t, repo, "uid-1", "anu@example.com", "CC21CS001", "secret123", RoleAdmin, member.StatusApproved)

	result, err := svc.LoginWithPassword(context.Background(), LoginInput{
		Identifier: "Anu@Example.Com",
		Password:   "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "uid-1", result.User.UID)

	// The minted token must carry uid and role claims.
	principal, err := provider.Verify(context.Background(), result.CustomToken)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", principal.UID)
	assert.Equal(t, RoleAdmin, principal.Role)
}

func TestLoginByRegisterNumber(t *testing.T) {
	svc, repo, _ := newLoginService(t)
	seedMember(t, repo, "uid-1", "anu@example.com", "CC21CS001", "secret123", RoleStudent, member.StatusApproved)

	result, err := svc.LoginWithPassword(context.Background(), LoginInput{
		Identifier: "CC21CS001",
		Password:   "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", result.User.UID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, _ := newLoginService(t)
	seedMember(t, repo, "uid-1", "anu@example.com", "", "secret123", RoleStudent, member.StatusApproved)

	_, err := svc.LoginWithPassword(context.Background(), LoginInput{
		Identifier: "anu@example.com",
		Password:   "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestLoginUnknownAccountIsMasked(t *testing.T) {
	svc, _, _ := newLoginService(t)

	_, err := svc.LoginWithPassword(context.Background(), LoginInput{
		Identifier: "nobody@example.com",
		Password:   "whatever",
	})
	require.Error(t, err)
	// Same message as a wrong password so account existence leaks nothing.
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	assert.Equal(t, "invalid credentials", apperr.MessageOf(err))
}

func TestLoginWithoutPasswordHash(t *testing.T) {
	svc, repo, _ := newLoginService(t)
	seedMember(t, repo, "uid-1", "anu@example.com", "", "", RoleStudent, member.StatusApproved)

	_, err := svc.LoginWithPassword(context.Background(), LoginInput{
		Identifier: "anu@example.com",
		Password:   "anything",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestLoginPendingMembershipRejected(t *testing.T) {
	svc, repo, _ := newLoginService(t)
	seedMember(t, repo, "uid-1", "anu@example.com", "", "secret123", RoleStudent, member.StatusPendingApproval)

	_, err := svc.LoginWithPassword(context.Background(), LoginInput{
		Identifier: "anu@example.com",
		Password:   "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.PermissionDenied, apperr.KindOf(err))
}

func TestDevTokenRoundTrip(t *testing.T) {
	provider := NewDevTokenProvider("test-secret")
	ctx := context.Background()

	token, err := provider.MintCustomToken(ctx, "uid-9", map[string]interface{}{
		"role":  RoleSuperAdmin,
		"email": "root@example.com",
	})
	require.NoError(t, err)

	principal, err := provider.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "uid-9", principal.UID)
	assert.Equal(t, RoleSuperAdmin, principal.Role)
	assert.Equal(t, "root@example.com", principal.Email)
	assert.True(t, principal.IsAdmin())
}

func TestDevTokenRejectsWrongSecret(t *testing.T) {
	ctx := context.Background()

	token, err := NewDevTokenProvider("secret-a").MintCustomToken(ctx, "uid-9", nil)
	require.NoError(t, err)

	_, err = NewDevTokenProvider("secret-b").Verify(ctx, token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestDevTokenDefaultsToStudentRole(t *testing.T) {
	provider := NewDevTokenProvider("test-secret")
	ctx := context.Background()

	token, err := provider.MintCustomToken(ctx, "uid-9", nil)
	require.NoError(t, err)

	principal, err := provider.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, principal.Role)
	assert.False(t, principal.IsAdmin())
}
