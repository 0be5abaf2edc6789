package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderProgressJob *OrderProgressJob
}

// NewJobManager creates a job manager owning the given jobs.
func NewJobManager(orderProgressJob *OrderProgressJob) *JobManager {
	return &JobManager{
		orderProgressJob: orderProgressJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.orderProgressJob == nil {
		return nil
	}

	if err := jm.orderProgressJob.Start(); err != nil {
		return fmt.Errorf("failed to start order progress job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.orderProgressJob != nil {
		jm.orderProgressJob.Stop()
	}
}
