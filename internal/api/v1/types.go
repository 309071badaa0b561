package apiv1

import "time"

// Pong defines model for Pong.
type Pong struct {
	Ping string `json:"ping"`
}

// Error defines model for Error.
type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Plan defines model for Plan.
type Plan struct {
	Name          string   `json:"name"`
	Price         int64    `json:"price"`
	PriceLabel    string   `json:"price_label"`
	Period        string   `json:"period"`
	OriginalPrice *int64   `json:"original_price,omitempty"`
	SavingsLabel  string   `json:"savings_label,omitempty"`
	Features      []string `json:"features"`
	Highlighted   bool     `json:"highlighted"`
	Badge         string   `json:"badge,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// PlanList defines model for PlanList.
type PlanList struct {
	Plans []Plan `json:"plans"`
}

// EmergencyContact defines model for EmergencyContact.
type EmergencyContact struct {
	Person        string `json:"person"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

// Payment defines model for Payment.
type Payment struct {
	ID               string           `json:"id"`
	FullName         string           `json:"full_name"`
	ContactNumber    string           `json:"contact_number"`
	Email            string           `json:"email"`
	ReferenceNumber  string           `json:"reference_number"`
	Amount           string           `json:"amount"`
	PaymentMethod    string           `json:"payment_method"`
	Plan             string           `json:"plan"`
	Status           string           `json:"status"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	CreatedAt        time.Time        `json:"created_at"`
}

// PaymentStats defines model for PaymentStats.
type PaymentStats struct {
	Total    int    `json:"total"`
	Pending  int    `json:"pending"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
	Revenue  string `json:"revenue"`
}

// PaymentList defines model for PaymentList.
type PaymentList struct {
	Payments []Payment    `json:"payments"`
	Stats    PaymentStats `json:"stats"`
}

// ListPaymentsParams defines parameters for ListPayments.
type ListPaymentsParams struct {
	Status *string `query:"status"`
	Q      *string `query:"q"`
}
