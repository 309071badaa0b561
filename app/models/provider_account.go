package models

import "time"

// ProviderAccount links an admin to an identity at a hosted sign-in provider.
// Accounts are only ever linked to existing admins, never used to create one.
type ProviderAccount struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"index;not null" json:"user_id"`
	Provider       string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_identity" json:"provider"`
	ProviderUserID string     `gorm:"type:varchar(191);not null;uniqueIndex:idx_provider_identity" json:"provider_user_id"`
	Email          string     `gorm:"type:varchar(200)" json:"email"`
	AccessToken    string     `gorm:"type:text" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	ExpiresAt      *time.Time `gorm:"type:timestamp;default:null" json:"expires_at,omitempty"`
	LinkedAt       time.Time  `gorm:"autoCreateTime" json:"linked_at"`
	LastSignInAt   time.Time  `gorm:"autoUpdateTime" json:"last_sign_in_at"`
}

func (ProviderAccount) TableName() string {
	return "provider_accounts"
}

// TokenExpired reports whether the stored access token is past its expiry.
// Tokens without an expiry never expire.
func (p *ProviderAccount) TokenExpired(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}
