package jobqueue

import (
	"encoding/json"
	"time"

	"github.com/ManuelReschke/GritGym/app/models"
)

type JobType string

const (
	JobTypeApplicationReceived JobType = "application_received"
	JobTypeApplicationDecided  JobType = "application_decided"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job is the record kept in Redis while a notification is outstanding.
// Payload stays raw until the processor for Type decodes it.
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	FinishedAt  *time.Time      `json:"finished_at,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
}

// ApplicationEvent is the payload of both job types. Actor is empty for intake.
type ApplicationEvent struct {
	Application models.PaymentApplication `json:"application"`
	Actor       string                    `json:"actor,omitempty"`
	At          time.Time                 `json:"at"`
}

// Decode unmarshals the payload into v
func (j *Job) Decode(v any) error {
	return json.Unmarshal(j.Payload, v)
}

// CanRetry reports whether a failed job has attempts left
func (j *Job) CanRetry() bool {
	return j.Status == JobStatusFailed && j.Attempts < j.MaxAttempts
}

// StartedSince returns when the current attempt began
func (j *Job) StartedSince() time.Time {
	if j.StartedAt != nil && !j.StartedAt.IsZero() {
		return *j.StartedAt
	}
	return j.UpdatedAt
}

func (j *Job) begin(now time.Time) {
	j.Status = JobStatusProcessing
	j.StartedAt = &now
	j.UpdatedAt = now
}

func (j *Job) succeed(now time.Time) {
	j.Status = JobStatusCompleted
	j.FinishedAt = &now
	j.UpdatedAt = now
	j.LastError = ""
}

func (j *Job) fail(now time.Time, err error) {
	j.Status = JobStatusFailed
	j.LastError = err.Error()
	j.Attempts++
	j.UpdatedAt = now
}

func (j *Job) retry(now time.Time) {
	j.Status = JobStatusRetrying
	j.UpdatedAt = now
}

// requeue puts an abandoned job back to pending
func (j *Job) requeue(now time.Time, reason string) {
	j.Status = JobStatusPending
	j.LastError = reason
	j.UpdatedAt = now
}
