package membership

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MembershipPlan is one pricing tier shown on the landing page and in the wizard.
// Prices are whole pesos.
type MembershipPlan struct {
	Name          string
	Price         int64
	Period        string
	OriginalPrice *int64
	SavingsLabel  string
	Features      []string
	Highlighted   bool
	Badge         string
	Description   string
}

// PlanSnapshot is the frozen name and price handed to the wizard.
type PlanSnapshot struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func (p MembershipPlan) Snapshot() PlanSnapshot {
	return PlanSnapshot{Name: p.Name, Price: p.Price}
}

// PriceLabel renders the price with a peso sign and thousands separators
func (p MembershipPlan) PriceLabel() string {
	return FormatPeso(decimal.NewFromInt(p.Price))
}

func (p MembershipPlan) OriginalPriceLabel() string {
	if p.OriginalPrice == nil {
		return ""
	}
	return FormatPeso(decimal.NewFromInt(*p.OriginalPrice))
}

// Catalog is an ordered, read-only list of plans.
type Catalog struct {
	plans []MembershipPlan
}

func NewCatalog(plans ...MembershipPlan) Catalog {
	cp := make([]MembershipPlan, len(plans))
	copy(cp, plans)
	return Catalog{plans: cp}
}

// DefaultCatalog returns the tiers currently offered at the gym.
func DefaultCatalog() Catalog {
	yearlyOriginal := int64(14400)
	return NewCatalog(
		MembershipPlan{
			Name:     "Walk In",
			Price:    200,
			Period:   "/day",
			Features: []string{"24/7 Gym Access", "5 Group Classes/Month", "Basic Equipment Access", "Community Support"},
		},
		MembershipPlan{
			Name:        "Monthly",
			Price:       1200,
			Period:      "/month",
			Features:    []string{"24/7 Gym Access", "Unlimited Group Classes", "Personal Training Session (2x/month)", "Nutrition Consultation", "Locker & Shower Facilities"},
			Highlighted: true,
			Badge:       "Most Popular",
		},
		MembershipPlan{
			Name:        "3 Months",
			Price:       4500,
			Period:      "/3 months",
			Features:    []string{"24/7 Gym Access", "Unlimited Group Classes", "Personal Training Session (3x/month)", "Nutrition Consultation", "Locker & Shower Facilities"},
			Description: "Commit to a full quarter of training.",
		},
		MembershipPlan{
			Name:          "Yearly",
			Price:         7999,
			Period:        "/year",
			OriginalPrice: &yearlyOriginal,
			SavingsLabel:  "Save 44%",
			Features:      []string{"24/7 Gym Access", "Unlimited Group Classes", "Personal Training (4x/month)", "Nutrition & Meal Planning", "Priority Equipment Access", "Exclusive Member Events"},
			Badge:         "Best Value",
		},
	)
}

// Plans returns a copy of the catalog entries in display order
func (c Catalog) Plans() []MembershipPlan {
	cp := make([]MembershipPlan, len(c.plans))
	copy(cp, c.plans)
	return cp
}

// Lookup finds a plan by name, ignoring case and surrounding whitespace.
func (c Catalog) Lookup(name string) (MembershipPlan, error) {
	name = strings.TrimSpace(name)
	for _, p := range c.plans {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return MembershipPlan{}, ErrUnknownPlan
}

var pesoPrinter = message.NewPrinter(language.English)

// FormatPeso renders an amount like ₱7,999 or ₱1,234.50
func FormatPeso(d decimal.Decimal) string {
	if d.IsInteger() {
		return pesoPrinter.Sprintf("₱%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return pesoPrinter.Sprintf("₱%.2f", f)
}
