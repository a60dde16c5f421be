package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/dmitrijs2005/trackit/internal/server/auth"
	"github.com/dmitrijs2005/trackit/internal/server/config"
)

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: 30 * time.Minute,
		GuestTokenValidityDuration:  20 * time.Minute,
	}
	return NewUserService(nil, rm, cfg)
}

func TestRegister_Success(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	user, err := s.Register(context.Background(), "u@example.com", "user", "longenough")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "u@example.com", user.Email)
	assert.NotEqual(t, "longenough", user.HashedPassword)
	assert.True(t, auth.CheckPassword(user.HashedPassword, "longenough"))
}

func TestRegister_EmailTaken(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "u@example.com", "first", "longenough")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "u@example.com", "second", "longenough")
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestRegister_UsernameTaken(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "a@example.com", "user", "longenough")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "b@example.com", "user", "longenough")
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestRegister_ShortPassword(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "u@example.com", "user", "short")
	assert.ErrorIs(t, err, common.ErrPasswordLength)
}

func TestRegister_UsernameLength(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "u@example.com", "ab", "longenough")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestLogin_Success(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "u@example.com", "user", "longenough")
	require.NoError(t, err)

	result, err := s.Login(context.Background(), "u@example.com", "longenough")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "u@example.com", result.User.Email)
	assert.False(t, result.User.IsGuest)

	claims, err := auth.ParseToken(result.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "u@example.com", claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "u@example.com", "user", "longenough")
	require.NoError(t, err)

	_, err = s.Login(context.Background(), "u@example.com", "not-it")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	_, err := s.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestGuestLogin_MintsEphemeralIdentity(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	result, err := s.GuestLogin(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.User.ID)
	assert.True(t, result.User.IsGuest)
	assert.True(t, strings.HasPrefix(result.User.Username, "Guest_"))
	assert.True(t, strings.HasSuffix(result.User.Email, "@trackit.temp"))

	// No database row was created for the guest.
	assert.Empty(t, rm.u.users)

	claims, err := auth.ParseToken(result.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.True(t, claims.IsGuest)
	assert.Zero(t, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(20*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestGuestLogin_IdentitiesAreUnique(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	first, err := s.GuestLogin(context.Background())
	require.NoError(t, err)
	second, err := s.GuestLogin(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.User.Email, second.User.Email)
	assert.NotEqual(t, first.User.Username, second.User.Username)
}
