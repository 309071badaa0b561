// Package membershiptest provides an in-memory application store for tests of
// the packages built on top of membership.
package membershiptest

import (
	"context"
	"sort"
	"sync"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
)

// Store keeps applications in a map and implements repository.PaymentRepository.
type Store struct {
	mu        sync.Mutex
	apps      map[string]models.PaymentApplication
	CreateErr error
	ListErr   error
}

func NewStore() *Store {
	return &Store{apps: map[string]models.PaymentApplication{}}
}

var _ repository.PaymentRepository = (*Store)(nil)

// Seed stores app as is, filling id, status and timestamp when empty
func (s *Store) Seed(app models.PaymentApplication) models.PaymentApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	app.PrepareForInsert()
	s.apps[app.ID] = app
	return app
}

// Len returns the number of stored applications
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

func (s *Store) Create(_ context.Context, app *models.PaymentApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return s.CreateErr
	}
	app.PrepareForInsert()
	s.apps[app.ID] = *app
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*models.PaymentApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &app, nil
}

func (s *Store) List(_ context.Context, status string) ([]models.PaymentApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]models.PaymentApplication, 0, len(s.apps))
	for _, app := range s.apps {
		if status == "" || app.Status == status {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateStatusIfPending(_ context.Context, id string, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok || app.Status != models.PaymentStatusPending {
		return false, nil
	}
	app.Status = status
	s.apps[id] = app
	return true, nil
}

func (s *Store) CountByStatus(_ context.Context, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, app := range s.apps {
		if app.Status == status {
			n++
		}
	}
	return n, nil
}
