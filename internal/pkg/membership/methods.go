package membership

import "github.com/ManuelReschke/GritGym/app/models"

// PaymentMethodInfo tells the visitor where to send the money.
type PaymentMethodInfo struct {
	ID            string
	Label         string
	AccountName   string
	AccountNumber string
	QRImageURL    string
}

// LoadPaymentMethods builds the wallet instructions, reading overrides through getenv.
func LoadPaymentMethods(getenv func(key, def string) string) []PaymentMethodInfo {
	return []PaymentMethodInfo{
		{
			ID:            models.PaymentMethodGCash,
			Label:         "GCash",
			AccountName:   getenv("GCASH_ACCOUNT_NAME", "GRIT GYM"),
			AccountNumber: getenv("GCASH_ACCOUNT_NUMBER", "09171234567"),
			QRImageURL:    getenv("GCASH_QR_URL", "https://via.placeholder.com/300x300?text=GCash+QR+Code"),
		},
		{
			ID:            models.PaymentMethodMaya,
			Label:         "Maya",
			AccountName:   getenv("MAYA_ACCOUNT_NAME", "GRIT GYM"),
			AccountNumber: getenv("MAYA_ACCOUNT_NUMBER", "09171234567"),
			QRImageURL:    getenv("MAYA_QR_URL", "https://via.placeholder.com/300x300?text=Maya+QR+Code"),
		},
	}
}

func isKnownMethod(m string) bool {
	return models.IsValidPaymentMethod(m)
}
