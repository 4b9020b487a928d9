package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"forum-api/internal/domain/apperrors"
	"forum-api/internal/infrastructure/memory"
	"forum-api/pkg/helpers"
)

func newAuthService(store *memory.Store) *AuthService {
	return NewAuthService(
		store.Users(),
		helpers.NewHasher(bcrypt.MinCost),
		helpers.NewJWTManager("test-secret", time.Hour),
		nil,
	)
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newAuthService(memory.NewStore())
	ctx := context.Background()

	u, creds, err := svc.Register(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.NotEqual(t, "secret123", u.PasswordHash, "plaintext must never be stored")
	require.NotNil(t, creds)

	username, err := svc.JWT.Parse(creds.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	logged, creds2, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	require.NotNil(t, creds2)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService(memory.NewStore())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	_, _, wrongPwd := svc.Login(ctx, "alice", "not-the-password")
	_, _, noUser := svc.Login(ctx, "nobody", "secret123")

	assert.ErrorIs(t, wrongPwd, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, apperrors.ErrInvalidCredentials)
}

func TestRegisterDuplicates(t *testing.T) {
	svc := newAuthService(memory.NewStore())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "alice@x.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice", "other@x.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)

	_, _, err = svc.Register(ctx, "bob", "alice@x.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	// Username collides first when both are taken.
	_, _, err = svc.Register(ctx, "alice", "alice@x.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(memory.NewStore())
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"username too short", "ab", "a@x.com", "secret123"},
		{"username too long", "abcdefghijklmnop", "a@x.com", "secret123"},
		{"blank email", "alice", "", "secret123"},
		{"malformed email", "alice", "not-an-email", "secret123"},
		{"password too short", "alice", "alice@x.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

// Registration bounds are in characters. A 15-rune multibyte username is
// 30 bytes and must still be accepted; six characters is the password floor.
func TestRegisterBoundsCountCharacters(t *testing.T) {
	svc := newAuthService(memory.NewStore())
	ctx := context.Background()

	wideName := strings.Repeat("á", 15)
	u, _, err := svc.Register(ctx, wideName, "wide@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, wideName, u.Username)

	_, _, err = svc.Register(ctx, strings.Repeat("á", 16), "other@x.com", "secret")
	assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)

	_, _, err = svc.Register(ctx, "bob", "bob@x.com", "five5")
	assert.True(t, apperrors.IsValidation(err), "five characters is below the password floor")
}

func TestFindAbsenceIsNotAnError(t *testing.T) {
	svc := newAuthService(memory.NewStore())
	ctx := context.Background()

	u, err := svc.FindByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = svc.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u)
}
