package membership

import (
	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/GritGym/app/models"
)

// Stats summarizes a list of applications for the admin dashboard.
type Stats struct {
	Total    int             `json:"total"`
	Pending  int             `json:"pending"`
	Approved int             `json:"approved"`
	Rejected int             `json:"rejected"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ComputeStats counts by status and sums the amounts of approved applications.
func ComputeStats(apps []models.PaymentApplication) Stats {
	s := Stats{Total: len(apps), Revenue: decimal.Zero}
	for _, app := range apps {
		switch app.Status {
		case models.PaymentStatusPending:
			s.Pending++
		case models.PaymentStatusApproved:
			s.Approved++
			s.Revenue = s.Revenue.Add(app.Amount)
		case models.PaymentStatusRejected:
			s.Rejected++
		}
	}
	return s
}

func (s Stats) RevenueLabel() string {
	return FormatPeso(s.Revenue)
}
