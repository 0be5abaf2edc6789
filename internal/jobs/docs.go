// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// OrderProgressJob periodically advances every undelivered order one step
// along the canonical progression (Received, Preparing, Out for Delivery,
// Delivered), standing in for kitchen and courier signals in demo and
// development environments. In production deployments the job is disabled
// and statuses move only through the status update API.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(progressJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
