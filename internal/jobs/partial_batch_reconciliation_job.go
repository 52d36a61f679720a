package jobs

import (
	"context"
	"time"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPartialBatchSchedule runs the reconciliation every five minutes.
const DefaultPartialBatchSchedule = "0 */5 * * * *"

type partialBatchReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcilePartialBatchesCommand) (int, error)
}

// PartialBatchReconciliationJob completes partial batches once every
// mismatched record in them has been adjusted.
type PartialBatchReconciliationJob struct {
	handler  partialBatchReconciler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewPartialBatchReconciliationJob creates the job. An empty schedule falls
// back to DefaultPartialBatchSchedule; schedules use the six-field cron
// format with seconds.
func NewPartialBatchReconciliationJob(
	handler partialBatchReconciler,
	schedule string,
	timeout time.Duration,
	logger *zap.Logger,
) *PartialBatchReconciliationJob {
	if schedule == "" {
		schedule = DefaultPartialBatchSchedule
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartialBatchReconciliationJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", "partial_batch_reconciliation_job")),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *PartialBatchReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("partial batch reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one pass. Failures of individual batches are logged and
// retried on the next tick.
func (j *PartialBatchReconciliationJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	completed, err := j.handler.Handle(ctx, commands.NewReconcilePartialBatchesCommand())
	if err != nil {
		j.logger.Error("partial batch reconciliation failed", zap.Int("completed", completed), zap.Error(err))
		return
	}
	if completed > 0 {
		j.logger.Info("partial batches completed", zap.Int("completed", completed))
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *PartialBatchReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("partial batch reconciliation job stopped")
}
