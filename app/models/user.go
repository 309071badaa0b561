package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"

	StatusActive   = "active"
	StatusDisabled = "disabled"

	MinPasswordLength = 8
)

var ErrPasswordTooShort = errors.New("password must be at least 8 characters")

var userValidator = validator.New()

// User is a staff account. Only active admins may open the moderation area.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email       string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,max=200"`
	Password    string         `gorm:"type:text" json:"-" validate:"required"`
	Role        string         `gorm:"type:varchar(50);default:'staff'" json:"role" validate:"oneof=staff admin"`
	Status      string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active disabled"`
	AvatarURL   string         `gorm:"type:varchar(255);default:null" json:"avatar_url,omitempty" validate:"max=255"`
	LastLoginAt *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// NormalizeEmail is applied before storing or looking up a login email
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) Validate() error {
	return userValidator.Struct(u)
}

// CreateAdmin builds an active admin account with a hashed password
func CreateAdmin(name, email, password string) (*User, error) {
	u := &User{
		Name:   strings.TrimSpace(name),
		Email:  NormalizeEmail(email),
		Role:   RoleAdmin,
		Status: StatusActive,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) IsActive() bool { return u.Status == StatusActive }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// CheckPassword compares password with the stored bcrypt hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// SetPassword replaces the stored hash. The length check runs on the plain value.
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}
