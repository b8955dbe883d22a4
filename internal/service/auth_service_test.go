package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/service"
	"go-floor-inventory/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (service.AuthService, *mockUserRepo, *model.User) {
	t.Helper()
	repo := newMockUserRepo()
	user := &model.User{
		Email:       "kumazawa@example.com",
		DisplayName: "Kumazawa",
		Role:        model.RoleSupervisor,
		IsActive:    true,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, repo.Create(context.Background(), user))

	tokens := jwt.NewManager("test-secret", "go-floor-inventory", time.Hour)
	return service.NewAuthService(repo, tokens, testLogger()), repo, user
}

func TestLogin_IssuesToken(t *testing.T) {
	svc, _, user := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Kumazawa", resp.User.DisplayName)
	assert.Contains(t, resp.Privileges, model.PrivStockRequestDelete)

	actor, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.UserID)
	assert.Equal(t, "Kumazawa", actor.DisplayName)
	assert.True(t, actor.HasPrivilege(model.PrivOverflowDelete))
}

func TestLogin_Failures(t *testing.T) {
	svc, repo, user := newAuthFixture(t)

	_, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, service.ErrAuth)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	user.IsActive = false
	require.NoError(t, repo.Update(context.Background(), user))
	_, err = svc.Login(context.Background(), user.Email, "secret123")
	assert.ErrorIs(t, err, service.ErrUserInactive)
}

func TestLogin_ReplacesEarlierSession(t *testing.T) {
	svc, _, user := newAuthFixture(t)

	first, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), first.Token)
	assert.ErrorIs(t, err, service.ErrSessionReplaced)
	assert.ErrorIs(t, err, service.ErrAuth)

	_, err = svc.ValidateToken(context.Background(), second.Token)
	assert.NoError(t, err)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc, repo, user := newAuthFixture(t)

	_, err := svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, service.ErrAuth)

	_, err = svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, service.ErrAuth)

	resp, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)
	stored, _ := repo.FindByID(context.Background(), user.ID)
	stored.IsActive = false
	require.NoError(t, repo.Update(context.Background(), stored))

	_, err = svc.ValidateToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, service.ErrUserInactive)
}

func TestResetPassword(t *testing.T) {
	svc, _, user := newAuthFixture(t)
	session, err := svc.Login(context.Background(), user.Email, "secret123")
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), user.Email, "secret123", "abc")
	assert.ErrorIs(t, err, service.ErrValidation)

	err = svc.ResetPassword(context.Background(), "nobody@example.com", "secret123", "newsecret")
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svc.ResetPassword(context.Background(), user.Email, "wrong", "newsecret")
	assert.ErrorIs(t, err, service.ErrWrongPassword)

	require.NoError(t, svc.ResetPassword(context.Background(), user.Email, "secret123", "newsecret"))

	_, err = svc.ValidateToken(context.Background(), session.Token)
	assert.ErrorIs(t, err, service.ErrSessionReplaced)

	_, err = svc.Login(context.Background(), user.Email, "secret123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), user.Email, "newsecret")
	assert.NoError(t, err)
}

func TestResetPassword_StorageFailureIsNotNotFound(t *testing.T) {
	svc, repo, user := newAuthFixture(t)
	repo.failNext = errors.New("connection reset")

	err := svc.ResetPassword(context.Background(), user.Email, "secret123", "newsecret")
	assert.EqualError(t, err, "connection reset")
	assert.NotErrorIs(t, err, service.ErrNotFound)
}
