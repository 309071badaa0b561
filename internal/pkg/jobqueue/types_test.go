package jobqueue

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/GritGym/app/models"
)

func TestJob_CanRetry(t *testing.T) {
	tests := []struct {
		name     string
		status   JobStatus
		attempts int
		want     bool
	}{
		{"failed with attempts left", JobStatusFailed, 1, true},
		{"failed and exhausted", JobStatusFailed, 3, false},
		{"completed", JobStatusCompleted, 1, false},
		{"pending", JobStatusPending, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &Job{Status: tt.status, Attempts: tt.attempts, MaxAttempts: 3}
			assert.Equal(t, tt.want, job.CanRetry())
		})
	}
}

func TestJob_Lifecycle(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	job := &Job{Status: JobStatusPending, MaxAttempts: 2, UpdatedAt: t0}
	assert.Equal(t, t0, job.StartedSince())

	job.begin(t0.Add(time.Second))
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.Equal(t, t0.Add(time.Second), job.StartedSince())

	job.fail(t0.Add(2*time.Second), errors.New("smtp timeout"))
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.Equal(t, "smtp timeout", job.LastError)
	assert.True(t, job.CanRetry())

	job.retry(t0.Add(3 * time.Second))
	assert.Equal(t, JobStatusRetrying, job.Status)

	job.succeed(t0.Add(4 * time.Second))
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Empty(t, job.LastError)
	require.NotNil(t, job.FinishedAt)
}

// The event goes through the job JSON stored in Redis before a worker reads it.
func TestApplicationEvent_SurvivesStoredJob(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	event := ApplicationEvent{
		Application: models.PaymentApplication{
			ID:              "app-1",
			FullName:        "Juan Dela Cruz",
			Email:           "juan@example.com",
			ReferenceNumber: "GC123456",
			Amount:          decimal.NewFromInt(4500),
			PaymentMethod:   models.PaymentMethodGCash,
			Plan:            "3 Months",
			Status:          models.PaymentStatusApproved,
			EmergencyContact: models.EmergencyContact{
				Person: "Maria", ContactNumber: "0917", Address: "QC",
			},
		},
		Actor: "admin@gritgym.ph",
		At:    at,
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	raw, err := json.Marshal(&Job{ID: "j1", Type: JobTypeApplicationDecided, Payload: payload})
	require.NoError(t, err)

	var stored Job
	require.NoError(t, json.Unmarshal(raw, &stored))

	var got ApplicationEvent
	require.NoError(t, stored.Decode(&got))
	assert.Equal(t, "app-1", got.Application.ID)
	assert.True(t, got.Application.Amount.Equal(decimal.NewFromInt(4500)))
	assert.Equal(t, "QC", got.Application.EmergencyContact.Address)
	assert.Equal(t, "admin@gritgym.ph", got.Actor)
	assert.True(t, at.Equal(got.At))
}

func TestApplicationEvent_OmitsEmptyActor(t *testing.T) {
	raw, err := json.Marshal(ApplicationEvent{At: time.Now()})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "actor")
}
