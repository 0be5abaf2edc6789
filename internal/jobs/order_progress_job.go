package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// runTimeout bounds a single sweep so a stuck database connection fails the
// run instead of hanging it; the next scheduled run picks up where it left off.
const runTimeout = time.Minute

// OrderProgressJob periodically advances undelivered orders one step along
// the canonical progression. It simulates kitchen and courier updates where
// no real ones exist.
type OrderProgressJob struct {
	pendingHandler queries.GetUndeliveredOrderIDsQueryHandler
	advanceHandler commands.AdvanceOrderProgressCommandHandler
	interval       time.Duration
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewOrderProgressJob creates a job advancing order progress at the given interval.
func NewOrderProgressJob(
	pendingHandler queries.GetUndeliveredOrderIDsQueryHandler,
	advanceHandler commands.AdvanceOrderProgressCommandHandler,
	interval time.Duration,
	logger *slog.Logger,
) *OrderProgressJob {
	return &OrderProgressJob{
		pendingHandler: pendingHandler,
		advanceHandler: advanceHandler,
		interval:       interval,
		cron:           cron.New(),
		logger:         logger.With("component", "order_progress_job"),
	}
}

// Start schedules the job. Each run advances every currently undelivered
// order by one step; orders that reach Delivered drop out of later runs.
func (j *OrderProgressJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order progress job started", "interval", j.interval.String())
	return nil
}

// Stop stops the job. A run already in flight finishes.
func (j *OrderProgressJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order progress job stopped")
}

func (j *OrderProgressJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	pending, err := j.pendingHandler.Handle(ctx, queries.NewGetUndeliveredOrderIDsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order progress job failed to list pending orders", "error", err)
		return
	}

	for _, entry := range pending {
		cmd, cmdErr := commands.NewAdvanceOrderProgressCommand(entry.ID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Order progress job built invalid command", "orderID", entry.ID.String(), "error", cmdErr)
			continue
		}

		if _, handleErr := j.advanceHandler.Handle(ctx, cmd); handleErr != nil {
			// An order deleted between the listing and the advance is expected.
			if errors.Is(handleErr, errs.ErrObjectNotFound) {
				continue
			}
			j.logger.ErrorContext(ctx, "Order progress job failed to advance order", "orderID", entry.ID.String(), "error", handleErr)
		}
	}
}
