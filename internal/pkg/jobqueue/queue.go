package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/GritGym/internal/pkg/cache"
	"github.com/ManuelReschke/GritGym/internal/pkg/metrics"
)

// Redis layout. Job records expire after JobTTL even if a worker never finishes them.
const (
	JobKeyPrefix     = "gritgym:jobs:"
	JobQueueKey      = "gritgym:jobs:pending"
	JobProcessingKey = "gritgym:jobs:processing"
	JobStatsKey      = "gritgym:jobs:stats"
	JobDelayedKey    = "gritgym:jobs:delayed"

	DefaultMaxAttempts = 3
	JobTTL             = 24 * time.Hour

	stuckAfter        = 10 * time.Minute
	sweepInterval     = time.Minute
	retryPollInterval = 5 * time.Second
	popTimeout        = time.Second
)

// Queue runs notification jobs from a Redis list with a fixed number of workers
type Queue struct {
	client       *redis.Client
	workers      int
	retryBackoff time.Duration
	mailer       Mailer
	archiver     Archiver
	now          func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewQueue creates a job queue on the shared cache connection
func NewQueue(workers int) *Queue {
	return NewQueueWithClient(cache.GetClient(), workers)
}

func NewQueueWithClient(client *redis.Client, workers int) *Queue {
	if workers <= 0 {
		workers = defaultWorkerCount
	}
	return &Queue{
		client:       client,
		workers:      workers,
		retryBackoff: time.Minute,
		mailer:       SMTPMailer{},
		now:          time.Now,
	}
}

func (q *Queue) SetMailer(m Mailer) {
	q.mailer = m
}

// SetArchiver enables writing decision records; nil disables it
func (q *Queue) SetArchiver(a Archiver) {
	q.archiver = a
}

// Start launches the workers and the sweeper. It is a no-op when already running.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	q.running = true
	q.stopCh = make(chan struct{})

	log.Infof("[JobQueue] Starting %d workers", q.workers)
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	q.wg.Add(1)
	go q.sweeper()
}

// Stop signals the workers and waits for the running jobs to finish
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.running {
		return
	}
	close(q.stopCh)
	q.wg.Wait()
	q.running = false
	log.Info("[JobQueue] All workers stopped")
}

func (q *Queue) IsRunning() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.running
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	ctx := context.Background()
	for {
		select {
		case <-q.stopCh:
			log.Debugf("[JobQueue] Worker %d stopping", id)
			return
		default:
		}

		job, err := q.dequeueJob(ctx)
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			log.Errorf("[JobQueue] Worker %d: %v", id, err)
			time.Sleep(popTimeout)
			continue
		}
		q.processJob(ctx, job)
	}
}

func (q *Queue) sweeper() {
	defer q.wg.Done()
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	retries := time.NewTicker(retryPollInterval)
	defer retries.Stop()
	for {
		select {
		case <-q.stopCh:
			return
		case <-retries.C:
			if n := q.promoteDueRetries(context.Background(), q.now()); n > 0 {
				log.Debugf("[JobQueue] Requeued %d retries", n)
			}
		case <-ticker.C:
			if n := q.recoverStuckJobs(context.Background(), stuckAfter, q.now()); n > 0 {
				log.Warnf("[JobQueue] Requeued %d stuck jobs", n)
			}
		}
	}
}

// recoverStuckJobs moves jobs that stayed in processing longer than maxAge back to
// the pending list and returns how many were requeued. Ids without a record are dropped.
func (q *Queue) recoverStuckJobs(ctx context.Context, maxAge time.Duration, now time.Time) int {
	ids, err := q.client.LRange(ctx, JobProcessingKey, 0, -1).Result()
	if err != nil {
		log.Errorf("[JobQueue] Listing processing jobs: %v", err)
		return 0
	}

	recovered := 0
	for _, id := range ids {
		job, err := q.GetJob(ctx, id)
		if err != nil || job.Status != JobStatusProcessing {
			if err != nil && !errors.Is(err, redis.Nil) {
				log.Errorf("[JobQueue] Loading job %s: %v", id, err)
			}
			q.removeFromProcessing(ctx, id)
			continue
		}
		if now.Sub(job.StartedSince()) <= maxAge {
			continue
		}

		job.requeue(now, "recovered after worker stopped")
		q.saveJob(ctx, job)
		q.removeFromProcessing(ctx, id)
		if err := q.client.RPush(ctx, JobQueueKey, id).Err(); err != nil {
			log.Errorf("[JobQueue] Requeue %s: %v", id, err)
			continue
		}
		recovered++
	}
	return recovered
}

// promoteDueRetries moves retries whose backoff has passed from the delayed set
// to the pending list and returns how many were moved.
func (q *Queue) promoteDueRetries(ctx context.Context, now time.Time) int {
	ids, err := q.client.ZRangeByScore(ctx, JobDelayedKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		log.Errorf("[JobQueue] Listing delayed jobs: %v", err)
		return 0
	}

	promoted := 0
	for _, id := range ids {
		// only the caller that removed the id pushes it
		removed, err := q.client.ZRem(ctx, JobDelayedKey, id).Result()
		if err != nil {
			log.Errorf("[JobQueue] Remove %s from delayed: %v", id, err)
			continue
		}
		if removed == 0 {
			continue
		}
		if err := q.client.LPush(ctx, JobQueueKey, id).Err(); err != nil {
			log.Errorf("[JobQueue] Retry push %s: %v", id, err)
			continue
		}
		promoted++
	}
	return promoted
}

// EnqueueJob stores a job for payload and pushes it onto the pending list
func (q *Queue) EnqueueJob(ctx context.Context, jobType JobType, payload any) (*Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", jobType, err)
	}

	now := q.now()
	job := &Job{
		ID:          uuid.NewString(),
		Type:        jobType,
		Status:      JobStatusPending,
		Payload:     raw,
		CreatedAt:   now,
		UpdatedAt:   now,
		MaxAttempts: DefaultMaxAttempts,
	}
	data, err := json.Marshal(job)
	if err != nil {
		return nil, err
	}

	pipe := q.client.TxPipeline()
	pipe.Set(ctx, JobKeyPrefix+job.ID, data, JobTTL)
	pipe.LPush(ctx, JobQueueKey, job.ID)
	pipe.HIncrBy(ctx, JobStatsKey, string(JobStatusPending), 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("enqueue %s: %w", jobType, err)
	}

	log.Infof("[JobQueue] Enqueued %s job %s", job.Type, job.ID)
	return job, nil
}

// dequeueJob moves the next id to the processing list and loads its record.
// It returns redis.Nil when nothing arrived within popTimeout.
func (q *Queue) dequeueJob(ctx context.Context) (*Job, error) {
	id, err := q.client.BRPopLPush(ctx, JobQueueKey, JobProcessingKey, popTimeout).Result()
	if err != nil {
		return nil, err
	}
	job, err := q.GetJob(ctx, id)
	if err != nil {
		q.removeFromProcessing(ctx, id)
		return nil, fmt.Errorf("load job %s: %w", id, err)
	}
	return job, nil
}

func (q *Queue) handle(ctx context.Context, job *Job) error {
	var event ApplicationEvent
	switch job.Type {
	case JobTypeApplicationReceived, JobTypeApplicationDecided:
		if err := job.Decode(&event); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	default:
		return fmt.Errorf("unknown job type %q", job.Type)
	}

	if job.Type == JobTypeApplicationReceived {
		return q.processApplicationReceived(ctx, event)
	}
	return q.processApplicationDecided(ctx, event)
}

// processJob runs one attempt and records the outcome. Failed jobs with attempts
// left wait in the delayed set for retryBackoff times the attempt count.
func (q *Queue) processJob(ctx context.Context, job *Job) {
	job.begin(q.now())
	q.saveJob(ctx, job)

	started := time.Now()
	err := q.handle(ctx, job)
	metrics.JobDuration.WithLabelValues(string(job.Type)).Observe(time.Since(started).Seconds())

	defer q.removeFromProcessing(ctx, job.ID)

	if err == nil {
		job.succeed(q.now())
		q.record(ctx, job, JobStatusCompleted)
		if err := q.client.Del(ctx, JobKeyPrefix+job.ID).Err(); err != nil {
			log.Errorf("[JobQueue] Delete completed job %s: %v", job.ID, err)
		}
		return
	}

	job.fail(q.now(), err)
	if !job.CanRetry() {
		log.Errorf("[JobQueue] Job %s failed for good after %d attempts: %v", job.ID, job.Attempts, err)
		q.record(ctx, job, JobStatusFailed)
		q.saveJob(ctx, job)
		return
	}

	log.Warnf("[JobQueue] Job %s failed (attempt %d/%d): %v", job.ID, job.Attempts, job.MaxAttempts, err)
	job.retry(q.now())
	metrics.JobsProcessed.WithLabelValues(string(job.Type), string(JobStatusRetrying)).Inc()
	q.saveJob(ctx, job)
	due := q.now().Add(q.retryBackoff * time.Duration(job.Attempts))
	if err := q.client.ZAdd(ctx, JobDelayedKey, redis.Z{Score: float64(due.UnixMilli()), Member: job.ID}).Err(); err != nil {
		log.Errorf("[JobQueue] Schedule retry %s: %v", job.ID, err)
	}
}

func (q *Queue) record(ctx context.Context, job *Job, status JobStatus) {
	metrics.JobsProcessed.WithLabelValues(string(job.Type), string(status)).Inc()
	if err := q.client.HIncrBy(ctx, JobStatsKey, string(status), 1).Err(); err != nil {
		log.Errorf("[JobQueue] Update stats: %v", err)
	}
}

func (q *Queue) saveJob(ctx context.Context, job *Job) {
	data, err := json.Marshal(job)
	if err != nil {
		log.Errorf("[JobQueue] Encode job %s: %v", job.ID, err)
		return
	}
	if err := q.client.Set(ctx, JobKeyPrefix+job.ID, data, JobTTL).Err(); err != nil {
		log.Errorf("[JobQueue] Save job %s: %v", job.ID, err)
	}
}

func (q *Queue) removeFromProcessing(ctx context.Context, id string) {
	if err := q.client.LRem(ctx, JobProcessingKey, 1, id).Err(); err != nil {
		log.Errorf("[JobQueue] Remove %s from processing: %v", id, err)
	}
}

// GetJob returns redis.Nil for unknown or completed jobs
func (q *Queue) GetJob(ctx context.Context, id string) (*Job, error) {
	data, err := q.client.Get(ctx, JobKeyPrefix+id).Bytes()
	if err != nil {
		return nil, err
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return &job, nil
}

// GetJobStats returns the counters kept per job status
func (q *Queue) GetJobStats(ctx context.Context) (map[JobStatus]int64, error) {
	raw, err := q.client.HGetAll(ctx, JobStatsKey).Result()
	if err != nil {
		return nil, err
	}
	stats := make(map[JobStatus]int64, len(raw))
	for status, count := range raw {
		if n, err := strconv.ParseInt(count, 10, 64); err == nil {
			stats[JobStatus(status)] = n
		}
	}
	return stats, nil
}

func (q *Queue) GetQueueSize(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, JobQueueKey).Result()
}

func (q *Queue) GetDelayedSize(ctx context.Context) (int64, error) {
	return q.client.ZCard(ctx, JobDelayedKey).Result()
}

func (q *Queue) GetProcessingSize(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, JobProcessingKey).Result()
}
