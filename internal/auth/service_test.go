package auth

import (
	"testing"

	"townkeeper/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testSecret = []byte("test-secret")

func newTestService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	return NewService(db, testSecret)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register(&RegisterRequest{
		Username: "chief",
		Email:    "chief@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "chief", user.Username)
	assert.NotEqual(t, "hunter22", user.PasswordHash, "password must be hashed")
	assert.True(t, user.IsActive)

	loggedIn, tokens, err := svc.Login(&LoginRequest{Username: "chief", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotNil(t, loggedIn.LastLogin)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterRequest{Username: "chief", Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{Username: "chief", Email: "b@example.com", Password: "hunter22"})
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindConflict))
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterRequest{Username: "chief", Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, _, err = svc.Login(&LoginRequest{Username: "chief", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&LoginRequest{Username: "nobody", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "missing user and bad password look the same")
}

func TestRefresh(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterRequest{Username: "chief", Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)
	_, tokens, err := svc.Login(&LoginRequest{Username: "chief", Password: "hunter22"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenPairRoundTrip(t *testing.T) {
	userID := uuid.New()

	pair, err := GenerateTokenPair(testSecret, userID)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, pair.AccessToken, "access")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	_, err = ParseToken(testSecret, pair.AccessToken, "refresh")
	require.Error(t, err, "token type is enforced")

	_, err = ParseToken([]byte("other-secret"), pair.AccessToken, "access")
	require.Error(t, err, "signature is enforced")
}
