package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles the stores the handlers need
type Repositories struct {
	User    UserRepository
	Payment PaymentRepository
}

// Option adjusts the bundle built by NewRepositories
type Option func(*Repositories)

// WithPaymentStore replaces the MySQL payment store, e.g. with the DynamoDB one
func WithPaymentStore(store PaymentRepository) Option {
	return func(r *Repositories) {
		if store != nil {
			r.Payment = store
		}
	}
}

// NewRepositories builds the MySQL stores and applies opts
func NewRepositories(db *gorm.DB, opts ...Option) *Repositories {
	r := &Repositories{
		User:    NewUserRepository(db),
		Payment: NewPaymentRepository(db),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	global   *Repositories
	globalMu sync.RWMutex
)

// InitializeFactory sets the process-wide repositories. Later calls replace them.
func InitializeFactory(db *gorm.DB, opts ...Option) *Repositories {
	r := NewRepositories(db, opts...)
	globalMu.Lock()
	global = r
	globalMu.Unlock()
	return r
}

// GetGlobalRepositories panics when InitializeFactory was never called
func GetGlobalRepositories() *Repositories {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if global == nil {
		panic("repository: InitializeFactory has not been called")
	}
	return global
}
