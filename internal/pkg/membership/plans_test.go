package membership

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogOrderAndPrices(t *testing.T) {
	plans := DefaultCatalog().Plans()
	require.Len(t, plans, 4)

	want := []struct {
		name  string
		price int64
	}{
		{"Walk In", 200},
		{"Monthly", 1200},
		{"3 Months", 4500},
		{"Yearly", 7999},
	}
	for i, w := range want {
		assert.Equal(t, w.name, plans[i].Name)
		assert.Equal(t, w.price, plans[i].Price)
	}
	require.NotNil(t, plans[3].OriginalPrice)
	assert.Equal(t, int64(14400), *plans[3].OriginalPrice)
}

func TestCatalogPlansIsACopy(t *testing.T) {
	c := DefaultCatalog()
	plans := c.Plans()
	plans[0].Price = 1

	again, err := c.Lookup("Walk In")
	require.NoError(t, err)
	assert.Equal(t, int64(200), again.Price)
}

func TestCatalogLookup(t *testing.T) {
	c := DefaultCatalog()

	p, err := c.Lookup("  3 months ")
	require.NoError(t, err)
	assert.Equal(t, PlanSnapshot{Name: "3 Months", Price: 4500}, p.Snapshot())

	_, err = c.Lookup("Lifetime")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestFormatPeso(t *testing.T) {
	assert.Equal(t, "₱7,999", FormatPeso(decimal.NewFromInt(7999)))
	assert.Equal(t, "₱200", FormatPeso(decimal.NewFromInt(200)))
	assert.Equal(t, "₱1,234.50", FormatPeso(decimal.RequireFromString("1234.5")))
}
