package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultExpirySchedule runs the expiry once a minute, on second zero.
const DefaultExpirySchedule = "0 * * * * *"

// ExpirePendingOrdersHandler cancels stale Pending orders and reports how many it cancelled.
type ExpirePendingOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) (int, error)
}

// PendingOrderExpiryJob periodically cancels orders that stayed Pending
// longer than ttl.
type PendingOrderExpiryJob struct {
	handler   ExpirePendingOrdersHandler
	ttl       time.Duration
	batchSize int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPendingOrderExpiryJob creates the job. An empty schedule means DefaultExpirySchedule.
func NewPendingOrderExpiryJob(
	handler ExpirePendingOrdersHandler,
	ttl time.Duration,
	batchSize int,
	schedule string,
	logger *slog.Logger,
) *PendingOrderExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	return &PendingOrderExpiryJob{
		handler:   handler,
		ttl:       ttl,
		batchSize: batchSize,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "pending_order_expiry_job"),
	}
}

func (j *PendingOrderExpiryJob) Name() string {
	return "pending order expiry"
}

// Start registers the job on its schedule and starts the scheduler.
func (j *PendingOrderExpiryJob) Start() error {
	cmd, err := commands.NewExpirePendingOrdersCommand(j.ttl, j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(context.Background(), cmd) }); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order expiry job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Stop stops the scheduler and waits for a running expiry to finish.
func (j *PendingOrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending order expiry job stopped")
}

func (j *PendingOrderExpiryJob) run(ctx context.Context, cmd commands.ExpirePendingOrdersCommand) {
	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order expiry failed", "expired", expired, "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired pending orders", "expired", expired)
	}
}
