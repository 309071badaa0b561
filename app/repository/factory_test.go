package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/GritGym/app/models"
)

type stubPayments struct{ PaymentRepository }

func (stubPayments) CountByStatus(context.Context, string) (int64, error) { return 7, nil }

func TestNewRepositories(t *testing.T) {
	db, _ := newMockDB(t)

	r := NewRepositories(db)
	assert.IsType(t, &paymentRepository{}, r.Payment)

	r = NewRepositories(db, WithPaymentStore(stubPayments{}))
	n, err := r.Payment.CountByStatus(context.Background(), models.PaymentStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	r = NewRepositories(db, WithPaymentStore(nil))
	assert.IsType(t, &paymentRepository{}, r.Payment)
}

func TestGlobalRepositories(t *testing.T) {
	t.Cleanup(func() { global = nil })
	global = nil
	assert.Panics(t, func() { GetGlobalRepositories() })

	db, _ := newMockDB(t)
	r := InitializeFactory(db)
	assert.Same(t, r, GetGlobalRepositories())
}
