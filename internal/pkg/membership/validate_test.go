package membership

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() IntakeForm {
	return IntakeForm{
		FullName:               "Juan Dela Cruz",
		ContactNumber:          "09170000000",
		Email:                  "juan@example.com",
		ReferenceNumber:        "GC123456",
		Amount:                 decimal.NewFromInt(4500),
		PaymentMethod:          "gcash",
		EmergencyPerson:        "Maria Dela Cruz",
		EmergencyContactNumber: "09171111111",
		EmergencyAddress:       "Quezon City",
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	assert.NoError(t, validForm().Validate())
}

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *IntakeForm)
		want   string
	}{
		{"blank name", func(f *IntakeForm) { f.FullName = "   " }, "Full name is required"},
		{"blank contact", func(f *IntakeForm) { f.ContactNumber = "" }, "Contact number is required"},
		{"blank email", func(f *IntakeForm) { f.Email = "" }, "Email is required"},
		{"email without at", func(f *IntakeForm) { f.Email = "juan.example.com" }, "Valid email is required"},
		{"blank reference", func(f *IntakeForm) { f.ReferenceNumber = "\t" }, "Reference number is required"},
		{"zero amount", func(f *IntakeForm) { f.Amount = decimal.Zero }, "Valid amount is required"},
		{"negative amount", func(f *IntakeForm) { f.Amount = decimal.NewFromInt(-5) }, "Valid amount is required"},
		{"no method", func(f *IntakeForm) { f.PaymentMethod = "" }, "Payment method is required"},
		{"unknown method", func(f *IntakeForm) { f.PaymentMethod = "paypal" }, "Payment method is required"},
		{"no emergency person", func(f *IntakeForm) { f.EmergencyPerson = "" }, "Emergency contact person is required"},
		{"no emergency number", func(f *IntakeForm) { f.EmergencyContactNumber = " " }, "Emergency contact number is required"},
		{"no emergency address", func(f *IntakeForm) { f.EmergencyAddress = "" }, "Emergency address is required"},
		{"long name", func(f *IntakeForm) { f.FullName = strings.Repeat("a", 151) }, "Full name must be at most 150 characters"},
		{"long contact", func(f *IntakeForm) { f.ContactNumber = strings.Repeat("9", 51) }, "Contact number must be at most 50 characters"},
		{"long email", func(f *IntakeForm) { f.Email = strings.Repeat("j", 190) + "@example.com" }, "Email must be at most 200 characters"},
		{"long reference", func(f *IntakeForm) { f.ReferenceNumber = strings.Repeat("G", 101) }, "Reference number must be at most 100 characters"},
		{"long emergency person", func(f *IntakeForm) { f.EmergencyPerson = strings.Repeat("m", 151) }, "Emergency contact person must be at most 150 characters"},
		{"long emergency number", func(f *IntakeForm) { f.EmergencyContactNumber = strings.Repeat("9", 51) }, "Emergency contact number must be at most 50 characters"},
		{"long emergency address", func(f *IntakeForm) { f.EmergencyAddress = strings.Repeat("q", 256) }, "Emergency address must be at most 255 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidateReportsOnlyFirstFailure(t *testing.T) {
	f := validForm()
	f.Email = ""
	f.EmergencyAddress = ""
	f.FullName = ""

	err := f.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "FullName", vErr.Field)
	assert.Equal(t, "Full name is required", vErr.Message)
}

func TestValidateLengthCountsCharacters(t *testing.T) {
	f := validForm()
	f.FullName = strings.Repeat("ñ", 150)
	f.EmergencyAddress = "  " + strings.Repeat("q", 255) + "  "
	assert.NoError(t, f.Validate())
}

func TestNormalizeTrims(t *testing.T) {
	f := validForm()
	f.FullName = "  Juan  "
	f.EmergencyAddress = "\nQuezon City "
	n := f.Normalize()
	assert.Equal(t, "Juan", n.FullName)
	assert.Equal(t, "Quezon City", n.EmergencyAddress)
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount(" 4500 ").Equal(decimal.NewFromInt(4500)))
	assert.True(t, ParseAmount("abc").IsZero())
	assert.True(t, ParseAmount("").IsZero())
}
