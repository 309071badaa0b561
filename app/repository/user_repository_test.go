package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/GritGym/app/models"
)

var userColumns = []string{"id", "name", "email", "password", "role", "status"}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(3, "Coach", "coach@gritgym.ph", "hash", models.RoleAdmin, models.StatusActive))

	u, err := repo.GetByEmail("coach@gritgym.ph")
	require.NoError(t, err)
	assert.Equal(t, uint(3), u.ID)
	assert.True(t, u.IsAdmin())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows(userColumns))

	u, err := repo.GetByID(42)
	assert.Nil(t, u)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_LinkProviderAccountUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `provider_accounts`") + ".*" + regexp.QuoteMeta("ON DUPLICATE KEY UPDATE")).
		WillReturnResult(sqlmock.NewResult(5, 1))

	err := repo.LinkProviderAccount(&models.ProviderAccount{
		UserID:         3,
		Provider:       "google",
		ProviderUserID: "g-123",
		Email:          "coach@gritgym.ph",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
