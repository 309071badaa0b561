package repository

import (
	"context"

	"github.com/ManuelReschke/GritGym/app/models"
	"gorm.io/gorm"
)

// paymentRepository implements the PaymentRepository interface on MySQL
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment application repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts a new application; id, status and timestamp are assigned by the model hook
func (r *paymentRepository) Create(ctx context.Context, app *models.PaymentApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID retrieves an application by its id
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*models.PaymentApplication, error) {
	var app models.PaymentApplication
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

// List retrieves applications ordered by creation time, newest first
func (r *paymentRepository) List(ctx context.Context, status string) ([]models.PaymentApplication, error) {
	var apps []models.PaymentApplication
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&apps).Error
	return apps, err
}

// UpdateStatusIfPending writes the new status only while the row is still pending
func (r *paymentRepository) UpdateStatusIfPending(ctx context.Context, id string, status string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.PaymentApplication{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CountByStatus counts applications with the given status
func (r *paymentRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentApplication{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
