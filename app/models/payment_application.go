package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

const (
	PaymentMethodGCash = "gcash"
	PaymentMethodMaya  = "maya"
)

// CustomPlanLabel is shown for applications that carry no plan name.
const CustomPlanLabel = "Custom"

// EmergencyContact is stored inline with the application row.
type EmergencyContact struct {
	Person        string `gorm:"type:varchar(150);not null" json:"person"`
	ContactNumber string `gorm:"type:varchar(50);not null" json:"contact_number"`
	Address       string `gorm:"type:varchar(255);not null" json:"address"`
}

// PaymentApplication is a membership payment submitted through the intake wizard.
// Apart from Status the record is immutable after creation.
type PaymentApplication struct {
	ID               string           `gorm:"primaryKey;type:char(36)" json:"id"`
	FullName         string           `gorm:"type:varchar(150);not null" json:"full_name"`
	ContactNumber    string           `gorm:"type:varchar(50);not null" json:"contact_number"`
	Email            string           `gorm:"type:varchar(200);not null;index" json:"email"`
	ReferenceNumber  string           `gorm:"type:varchar(100);not null;index" json:"reference_number"`
	Amount           decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod    string           `gorm:"type:varchar(20);not null" json:"payment_method"`
	Plan             string           `gorm:"type:varchar(100);not null" json:"plan"`
	Status           string           `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	EmergencyContact EmergencyContact `gorm:"embedded;embeddedPrefix:emergency_" json:"emergency_contact"`
	CreatedAt        time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}

func (PaymentApplication) TableName() string {
	return "payment_applications"
}

// BeforeCreate assigns the id and the initial status
func (p *PaymentApplication) BeforeCreate(tx *gorm.DB) error {
	p.PrepareForInsert()
	return nil
}

// PrepareForInsert fills id, status and timestamp for stores that have no hooks.
func (p *PaymentApplication) PrepareForInsert() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PaymentStatusPending
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}

func (p *PaymentApplication) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// IsTerminal reports whether the application was already approved or rejected
func (p *PaymentApplication) IsTerminal() bool {
	return p.Status == PaymentStatusApproved || p.Status == PaymentStatusRejected
}

// PlanLabel returns the plan snapshot or the custom fallback label
func (p *PaymentApplication) PlanLabel() string {
	if p.Plan == "" {
		return CustomPlanLabel
	}
	return p.Plan
}

// IsValidPaymentStatus reports whether s is one of the known application states.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// IsValidPaymentMethod reports whether m is one of the supported wallet providers.
func IsValidPaymentMethod(m string) bool {
	return m == PaymentMethodGCash || m == PaymentMethodMaya
}
