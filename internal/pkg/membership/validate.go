package membership

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// IntakeForm is everything the visitor entered across the wizard steps.
// Field order is the order in which rules are checked.
type IntakeForm struct {
	FullName               string          `validate:"required,max=150"`
	ContactNumber          string          `validate:"required,max=50"`
	Email                  string          `validate:"required,contains=@,max=200"`
	ReferenceNumber        string          `validate:"required,max=100"`
	Amount                 decimal.Decimal `validate:"gt=0"`
	PaymentMethod          string          `validate:"required,oneof=gcash maya"`
	EmergencyPerson        string          `validate:"required,max=150"`
	EmergencyContactNumber string          `validate:"required,max=50"`
	EmergencyAddress       string          `validate:"required,max=255"`
}

// max lengths follow the payment_applications columns
var fieldMessages = map[string]string{
	"FullName.required":               "Full name is required",
	"FullName.max":                    "Full name must be at most 150 characters",
	"ContactNumber.required":          "Contact number is required",
	"ContactNumber.max":               "Contact number must be at most 50 characters",
	"Email.required":                  "Email is required",
	"Email.contains":                  "Valid email is required",
	"Email.max":                       "Email must be at most 200 characters",
	"ReferenceNumber.required":        "Reference number is required",
	"ReferenceNumber.max":             "Reference number must be at most 100 characters",
	"Amount.gt":                       "Valid amount is required",
	"PaymentMethod.required":          "Payment method is required",
	"PaymentMethod.oneof":             "Payment method is required",
	"EmergencyPerson.required":        "Emergency contact person is required",
	"EmergencyPerson.max":             "Emergency contact person must be at most 150 characters",
	"EmergencyContactNumber.required": "Emergency contact number is required",
	"EmergencyContactNumber.max":      "Emergency contact number must be at most 50 characters",
	"EmergencyAddress.required":       "Emergency address is required",
	"EmergencyAddress.max":            "Emergency address must be at most 255 characters",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidationError names the first field that failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseAmount reads a user supplied amount; anything unparsable counts as zero.
func ParseAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Normalize trims every text field
func (f IntakeForm) Normalize() IntakeForm {
	f.FullName = strings.TrimSpace(f.FullName)
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	f.Email = strings.TrimSpace(f.Email)
	f.ReferenceNumber = strings.TrimSpace(f.ReferenceNumber)
	f.PaymentMethod = strings.TrimSpace(f.PaymentMethod)
	f.EmergencyPerson = strings.TrimSpace(f.EmergencyPerson)
	f.EmergencyContactNumber = strings.TrimSpace(f.EmergencyContactNumber)
	f.EmergencyAddress = strings.TrimSpace(f.EmergencyAddress)
	return f
}

// Validate checks the normalized form and stops at the first failing rule.
func (f IntakeForm) Validate() error {
	err := validate.Struct(f.Normalize())
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	first := fieldErrs[0]
	msg, ok := fieldMessages[first.Field()+"."+first.Tag()]
	if !ok {
		msg = first.Field() + " is invalid"
	}
	return &ValidationError{Field: first.Field(), Message: msg}
}
