package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdmin(t *testing.T) {
	u, err := CreateAdmin("Coach Admin", "coach@gritgym.ph", "secret123")
	require.NoError(t, err)

	assert.True(t, u.IsAdmin())
	assert.True(t, u.IsActive())
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("secret124"))
}

func TestCreateAdminValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"short password", "Coach", "coach@gritgym.ph", "1234567"},
		{"invalid email", "Coach", "coach", "secret123"},
		{"short name", "Al", "al@gritgym.ph", "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateAdmin(tt.userName, tt.email, tt.password)
			assert.Error(t, err)
		})
	}

	_, err := CreateAdmin("Coach", "coach@gritgym.ph", "1234567")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestCreateAdminNormalizesEmail(t *testing.T) {
	u, err := CreateAdmin("  Coach Admin ", " Coach@GritGym.PH ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "coach@gritgym.ph", u.Email)
	assert.Equal(t, "Coach Admin", u.Name)
}

func TestSetPassword(t *testing.T) {
	u := &User{Role: RoleStaff, Status: StatusDisabled}
	require.NoError(t, u.SetPassword("another12"))

	assert.True(t, u.CheckPassword("another12"))
	assert.False(t, u.IsAdmin())
	assert.False(t, u.IsActive())
	assert.ErrorIs(t, u.SetPassword("short"), ErrPasswordTooShort)
}

func TestProviderAccountTokenExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	assert.False(t, (&ProviderAccount{}).TokenExpired(now))
	assert.True(t, (&ProviderAccount{ExpiresAt: &past}).TokenExpired(now))
	assert.True(t, (&ProviderAccount{ExpiresAt: &now}).TokenExpired(now))
	assert.False(t, (&ProviderAccount{ExpiresAt: &future}).TokenExpired(now))
}
