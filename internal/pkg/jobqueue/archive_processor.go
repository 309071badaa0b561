package jobqueue

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/internal/pkg/archive"
)

// Archiver stores a decision record and returns its object key
type Archiver interface {
	PutDecision(ctx context.Context, rec archive.DecisionRecord) (string, error)
}

// processApplicationDecided archives the decision, then mails the member.
// A retry after a mail failure finds the archived object and skips the upload.
func (q *Queue) processApplicationDecided(ctx context.Context, payload ApplicationEvent) error {
	if q.archiver != nil {
		key, err := q.archiver.PutDecision(ctx, archive.DecisionRecord{
			Application: payload.Application,
			Decision:    payload.Application.Status,
			DecidedBy:   payload.Actor,
			DecidedAt:   payload.At,
		})
		if err != nil {
			return fmt.Errorf("archive decision: %w", err)
		}
		log.Debugf("[JobQueue] Archived decision for %s at %s", payload.Application.ID, key)
	}

	if err := q.notifyDecision(payload.Application); err != nil {
		return fmt.Errorf("decision mail: %w", err)
	}
	return nil
}
