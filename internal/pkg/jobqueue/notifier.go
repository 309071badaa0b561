package jobqueue

import (
	"context"
	"time"

	"github.com/ManuelReschke/GritGym/app/models"
)

// ApplicationNotifier turns intake and moderation events into queued jobs
type ApplicationNotifier struct {
	queue *Queue
	now   func() time.Time
}

func NewApplicationNotifier(q *Queue) *ApplicationNotifier {
	return &ApplicationNotifier{queue: q, now: time.Now}
}

func (n *ApplicationNotifier) ApplicationReceived(ctx context.Context, app *models.PaymentApplication) error {
	_, err := n.queue.EnqueueJob(ctx, JobTypeApplicationReceived, ApplicationEvent{Application: *app, At: n.now()})
	return err
}

func (n *ApplicationNotifier) ApplicationDecided(ctx context.Context, app *models.PaymentApplication, actor string) error {
	_, err := n.queue.EnqueueJob(ctx, JobTypeApplicationDecided, ApplicationEvent{Application: *app, Actor: actor, At: n.now()})
	return err
}
