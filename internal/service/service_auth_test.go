package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/opsboard/internal/config"
	"github.com/MKhiriev/opsboard/internal/crypto"
	"github.com/MKhiriev/opsboard/internal/logger"
	"github.com/MKhiriev/opsboard/internal/mock"
	"github.com/MKhiriev/opsboard/internal/store"
	"github.com/MKhiriev/opsboard/internal/validators"
	"github.com/MKhiriev/opsboard/models"
)

var testAuthConfig = config.Auth{
	BcryptCost:    4,
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "opsboard-test",
	TokenDuration: time.Hour,
	Version:       "0.0.1-test",
}

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	svc := NewAuthService(repo, crypto.NewBcryptHasher(testAuthConfig.BcryptCost), validators.NewCredentialsValidator(), testAuthConfig, logger.Nop())
	return svc, repo
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	var persisted models.User
	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			persisted = user
			user.UserID = 1
			return user, nil
		})

	registered, err := svc.RegisterUser(ctx, models.User{Username: "demo", Password: "demo1234"})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, registered.Role, "self-registration always yields the user role")
	assert.Empty(t, persisted.Password, "plaintext must never reach the store")
	assert.NotEmpty(t, persisted.PasswordHash)
	assert.NotEqual(t, "demo1234", persisted.PasswordHash)
}

func TestRegisterUser_SaltedHashesDiffer(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	hashes := make([]string, 0, 2)
	repo.EXPECT().CreateUser(ctx, gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			hashes = append(hashes, user.PasswordHash)
			return user, nil
		})

	_, err := svc.RegisterUser(ctx, models.User{Username: "first", Password: "same-secret"})
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, models.User{Username: "second", Password: "same-secret"})
	require.NoError(t, err)

	require.Len(t, hashes, 2)
	assert.NotEqual(t, hashes[0], hashes[1], "identical plaintexts must not produce byte-equal hashes")
}

func TestRegisterUser_Duplicate(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	repo.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrUsernameAlreadyExists)

	_, err := svc.RegisterUser(ctx, models.User{Username: "demo", Password: "demo1234"})
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, models.User{Username: "demo", Password: strings.Repeat("p", 73)})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(ctx, models.User{Username: "demo"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(ctx, models.User{Password: "demo1234"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_ThenLogin_ShortPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	// No minimum length: "demo123" must register and verify as-is.
	var persisted models.User
	repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, user models.User) (models.User, error) {
			persisted = user
			user.UserID = 1
			return user, nil
		})

	_, err := svc.RegisterUser(ctx, models.User{Username: "demo", Password: "demo123"})
	require.NoError(t, err)

	repo.EXPECT().FindUserByUsername(ctx, "demo").Return(persisted, nil)

	user, err := svc.Login(ctx, "demo", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "demo", user.Username)
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	hash, err := crypto.NewBcryptHasher(4).Hash("demo1234")
	require.NoError(t, err)

	repo.EXPECT().FindUserByUsername(ctx, "demo").Return(models.User{
		UserID:       1,
		Username:     "demo",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}, nil)

	user, err := svc.Login(ctx, "demo", "demo1234")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	hash, err := crypto.NewBcryptHasher(4).Hash("demo1234")
	require.NoError(t, err)

	repo.EXPECT().FindUserByUsername(ctx, "demo").Return(models.User{
		Username:     "demo",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}, nil)

	_, err = svc.Login(ctx, "demo", "not-the-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	repo.EXPECT().FindUserByUsername(ctx, "ghostuser").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(ctx, "ghostuser", "whatever1")
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestCreateToken_ParseToken_RoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user := models.User{UserID: 7, Username: "demo", Role: models.RoleAdmin}

	token, err := svc.CreateToken(ctx, user, "session-42")
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, models.RoleAdmin, parsed.UserRole)
	assert.Equal(t, "session-42", parsed.SessionID)
}

func TestParseToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.ParseToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
