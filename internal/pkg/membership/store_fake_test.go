package membership

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
)

type fakeStore struct {
	mu        sync.Mutex
	apps      map[string]models.PaymentApplication
	creates   int
	createErr error
	// beforeUpdate runs inside UpdateStatusIfPending to simulate a concurrent writer
	beforeUpdate func()
	seq          int
}

func newFakeStore() *fakeStore {
	return &fakeStore{apps: map[string]models.PaymentApplication{}}
}

func (s *fakeStore) Create(_ context.Context, app *models.PaymentApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return s.createErr
	}
	app.PrepareForInsert()
	s.apps[app.ID] = *app
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*models.PaymentApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &app, nil
}

func (s *fakeStore) List(_ context.Context, status string) ([]models.PaymentApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PaymentApplication
	for _, app := range s.apps {
		if status == "" || app.Status == status {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) UpdateStatusIfPending(_ context.Context, id string, status string) (bool, error) {
	if s.beforeUpdate != nil {
		s.beforeUpdate()
	}
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

// seed stores an application created offset before now
func (s *fakeStore) seed(app models.PaymentApplication, offset time.Duration) models.PaymentApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if app.ID == "" {
		app.ID = fmt.Sprintf("app-%d", s.seq)
	}
	if app.Status == "" {
		app.Status = models.PaymentStatusPending
	}
	app.CreatedAt = time.Now().Add(-offset)
	s.apps[app.ID] = app
	return app
}

type recordingNotifier struct {
	received []string
	decided  []string
	err      error
}

func (n *recordingNotifier) ApplicationReceived(_ context.Context, app *models.PaymentApplication) error {
	n.received = append(n.received, app.ID)
	return n.err
}

func (n *recordingNotifier) ApplicationDecided(_ context.Context, app *models.PaymentApplication, _ string) error {
	n.decided = append(n.decided, app.ID+":"+app.Status)
	return n.err
}

var errBackendDown = errors.New("backend unavailable")
