package membership

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/app/repository"
	"github.com/ManuelReschke/GritGym/internal/pkg/metrics"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Filter narrows the moderation list.
type Filter struct {
	Status string
	Search string
}

// ModerationQueue lists applications and moves them out of pending.
type ModerationQueue struct {
	store    Store
	notifier Notifier
}

func NewModerationQueue(store Store, notifier Notifier) *ModerationQueue {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ModerationQueue{store: store, notifier: notifier}
}

// List returns applications newest first. Status must be empty, "all" or a
// known status; Search matches name, email, contact number and reference
// number case-insensitively.
func (q *ModerationQueue) List(ctx context.Context, f Filter) ([]models.PaymentApplication, error) {
	status := strings.ToLower(strings.TrimSpace(f.Status))
	if status == StatusAll {
		status = ""
	}
	if status != "" && !models.IsValidPaymentStatus(status) {
		return nil, ErrUnknownStatus
	}

	apps, err := q.store.List(ctx, status)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return apps, nil
	}

	matched := make([]models.PaymentApplication, 0, len(apps))
	for _, app := range apps {
		if matchesSearch(app, term) {
			matched = append(matched, app)
		}
	}
	return matched, nil
}

func matchesSearch(app models.PaymentApplication, term string) bool {
	for _, field := range []string{app.FullName, app.Email, app.ContactNumber, app.ReferenceNumber} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Get loads a single application
func (q *ModerationQueue) Get(ctx context.Context, id string) (*models.PaymentApplication, error) {
	app, err := q.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (q *ModerationQueue) Approve(ctx context.Context, id string, actor string) (*models.PaymentApplication, error) {
	return q.decide(ctx, id, models.PaymentStatusApproved, actor)
}

func (q *ModerationQueue) Reject(ctx context.Context, id string, actor string) (*models.PaymentApplication, error) {
	return q.decide(ctx, id, models.PaymentStatusRejected, actor)
}

// decide moves a pending application to a terminal status. The write is
// conditional on the row still being pending, so of two concurrent
// moderators only the first one wins and the other gets ErrStatusConflict.
func (q *ModerationQueue) decide(ctx context.Context, id string, status string, actor string) (*models.PaymentApplication, error) {
	app, err := q.Get(ctx, id)
	if err != nil {
		metrics.ModerationDecisions.WithLabelValues(status, "error").Inc()
		return nil, err
	}
	if !app.IsPending() {
		metrics.ModerationDecisions.WithLabelValues(status, "not_pending").Inc()
		return app, ErrNotPending
	}

	ok, err := q.store.UpdateStatusIfPending(ctx, id, status)
	if err != nil {
		metrics.ModerationDecisions.WithLabelValues(status, "error").Inc()
		return app, err
	}
	if !ok {
		metrics.ModerationDecisions.WithLabelValues(status, "conflict").Inc()
		log.Warnf("[Moderation] %s lost the race on application %s", actor, id)
		return app, ErrStatusConflict
	}

	app.Status = status
	metrics.ModerationDecisions.WithLabelValues(status, "ok").Inc()
	log.Infof("[Moderation] Application %s %s by %s", id, status, actor)

	if err := q.notifier.ApplicationDecided(ctx, app, actor); err != nil {
		log.Warnf("[Moderation] Notification for application %s failed: %v", id, err)
	}
	return app, nil
}

// Stats lists every application and aggregates it
func (q *ModerationQueue) Stats(ctx context.Context) (Stats, error) {
	apps, err := q.store.List(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(apps), nil
}
