// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// PendingOrderExpiryJob cancels orders that stayed Pending longer than the
// configured TTL. It runs once a minute by default and cancels at most one
// batch per run; each order is cancelled in its own transaction.
//
// # Usage
//
//	expiry := jobs.NewPendingOrderExpiryJob(handler, 30*time.Minute, 100, "", logger)
//	jobManager := jobs.NewJobManager(expiry)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged with the number of orders it still managed to
// cancel; the next run picks up whatever is left. A job that fails to start
// stops the jobs started before it.
package jobs
