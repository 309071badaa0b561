package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ManuelReschke/GritGym/app/models"
)

// userRepository keeps the staff accounts in MySQL
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	return r.first("id = ?", id)
}

// GetByEmail looks up a login email. Emails are stored normalized with a binary collation.
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email = ?", models.NormalizeEmail(email))
}

func (r *userRepository) first(query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.Where(query, args...).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Update saves all user fields
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) UpdateLastLogin(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login_at", time.Now()).Error
}

// List returns users ordered by id
func (r *userRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// LinkProviderAccount inserts the provider identity or refreshes its owner and tokens
func (r *userRepository) LinkProviderAccount(account *models.ProviderAccount) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}, {Name: "provider_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "email", "access_token", "refresh_token", "expires_at", "last_sign_in_at",
		}),
	}).Create(account).Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
