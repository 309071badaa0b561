package jobqueue

import (
	"sync"

	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

const defaultWorkerCount = 3

// Manager owns the process-wide queue. JOBQUEUE_WORKERS sets its worker count.
type Manager struct {
	queue *Queue
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{queue: NewQueue(workerCount())}
	})
	return globalManager
}

func workerCount() int {
	return env.GetEnvInt("JOBQUEUE_WORKERS", defaultWorkerCount)
}

func (m *Manager) GetQueue() *Queue { return m.queue }

// SetArchiver passes the decision archive to the queue
func (m *Manager) SetArchiver(a Archiver) { m.queue.SetArchiver(a) }

func (m *Manager) Start() { m.queue.Start() }

// Stop waits for running jobs
func (m *Manager) Stop() { m.queue.Stop() }

func (m *Manager) IsRunning() bool { return m.queue.IsRunning() }
