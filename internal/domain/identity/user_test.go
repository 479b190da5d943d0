package identity

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	bcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(tenantID, "  Owner@Example.com ", "secret123", RoleUser)

		require.NoError(t, err)
		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, "owner@example.com", user.Email)
		assert.Equal(t, RoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret123"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("fails without tenant", func(t *testing.T) {
		_, err := NewUser(uuid.Nil, "a@b.com", "secret123", RoleUser)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser(tenantID, "not-an-email", "secret123", RoleUser)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "a@b.com", "12345", RoleUser)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 6")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser(tenantID, "a@b.com", "secret123", Role("ROOT"))
		assert.Error(t, err)
	})
}

func TestUser_SetPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "secret123", RoleEmployee)
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("newsecret"))
	assert.True(t, user.VerifyPassword("newsecret"))
	assert.False(t, user.VerifyPassword("secret123"))

	assert.Error(t, user.SetPassword("x"))
}

func TestUser_RecordLogin(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "secret123", RoleEmployee)
	require.NoError(t, err)
	assert.Nil(t, user.LastLoginAt)

	now := time.Now()
	user.RecordLogin(now)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, now, *user.LastLoginAt)
}

func TestUser_ChangeEmailAndName(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "secret123", RoleEmployee)
	require.NoError(t, err)

	require.NoError(t, user.ChangeEmail("NEW@b.com"))
	assert.Equal(t, "new@b.com", user.Email)
	assert.Error(t, user.ChangeEmail(""))

	user.SetName(" Ayse ", "Yilmaz ")
	assert.Equal(t, "Ayse Yilmaz", user.FullName())
}
