package repository

import (
	"context"
	"errors"

	"github.com/ManuelReschke/GritGym/app/models"
)

// ErrNotFound is returned by every store when a record does not exist
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateLastLogin(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	LinkProviderAccount(account *models.ProviderAccount) error
}

// PaymentRepository defines the persistence operations for payment applications.
// Only the status column is ever written after Create.
type PaymentRepository interface {
	Create(ctx context.Context, app *models.PaymentApplication) error
	GetByID(ctx context.Context, id string) (*models.PaymentApplication, error)
	// List returns applications newest first, filtered by exact status when status is not empty.
	List(ctx context.Context, status string) ([]models.PaymentApplication, error)
	// UpdateStatusIfPending moves a pending application to status and reports
	// whether a row was changed.
	UpdateStatusIfPending(ctx context.Context, id string, status string) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
