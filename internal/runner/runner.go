// Package runner owns the job loop: fetch an import job from the jobs topic,
// run it through the importer, publish the result, commit the offset.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jmpettit/location-import-service/internal/domain"
	"github.com/jmpettit/location-import-service/internal/observability"
)

// JobSource fetches the next raw job event from the jobs topic.
type JobSource interface {
	FetchJob(ctx context.Context) (domain.JobEvent, error)
}

// ImportRunner runs one CSV import to completion.
type ImportRunner interface {
	Run(ctx context.Context, csvData string) (domain.Summary, error)
}

// ResultSink publishes a finished job's result.
type ResultSink interface {
	PublishResult(ctx context.Context, result domain.ImportResult) error
}

// Runner orchestrates the fetch-import-publish-commit loop.
type Runner struct {
	source   JobSource
	importer ImportRunner
	sink     ResultSink
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a Runner with the given stages and observability.
func New(source JobSource, importer ImportRunner, sink ResultSink, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		source:   source,
		importer: importer,
		sink:     sink,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once the runner has completed at least one job,
// or an error describing why the service is not yet ready.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("runner has not completed any jobs yet")
	}
	return nil
}

// Run executes the job loop until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("runner started")
	r.metrics.RunnerRunning.Set(1)
	defer r.metrics.RunnerRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during broker outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !r.processNext(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processNext handles one job end to end. Returns false if the runner should stop.
func (r *Runner) processNext(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	evt, err := r.source.FetchJob(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		r.logger.Error("fetch job failed", "error", err)
		return r.backoffOrStop(ctx, backoff, maxBackoff)
	}

	r.metrics.JobsConsumed.Inc()
	*backoff = 200 * time.Millisecond

	job, err := domain.ParseImportJob(evt)
	if err != nil {
		// Malformed job payloads are poison pills: log, commit, move on.
		r.logger.Warn("skipping malformed job message",
			"error", err,
			"topic", evt.Topic,
			"partition", evt.Partition,
			"offset", evt.Offset,
		)
		r.commitOffset(ctx, evt)
		return true
	}

	result := r.runJob(ctx, job)
	if err := r.sink.PublishResult(ctx, result); err != nil {
		// The offset is not committed, so the job is redelivered; the
		// hierarchy upsert is idempotent on replay.
		r.logger.Error("publish result failed", "job_id", job.ID, "error", err)
		return r.backoffOrStop(ctx, backoff, maxBackoff)
	}
	r.metrics.ResultsPublished.Inc()

	r.commitOffset(ctx, evt)
	r.ready.Store(true)
	return true
}

// runJob executes one import and maps the outcome to a result message.
// A failed run is a terminal result for the job, not a runner error: earlier
// rows stay committed and the job is not retried.
func (r *Runner) runJob(ctx context.Context, job domain.ImportJob) domain.ImportResult {
	r.logger.Info("job started", "job_id", job.ID)

	summary, err := r.importer.Run(ctx, job.CSVData)
	if err != nil {
		r.logger.Error("job failed", "job_id", job.ID, "error", err)
		return domain.ImportResult{
			JobID:       job.ID,
			Status:      domain.JobFailed,
			Error:       err.Error(),
			CompletedAt: domain.Now(),
		}
	}

	r.logger.Info("job succeeded", "job_id", job.ID, "processed", summary.Processed())
	return domain.ImportResult{
		JobID:       job.ID,
		Status:      domain.JobSucceeded,
		Processed:   summary.Processed(),
		Message:     summary.Message(),
		CompletedAt: summary.CompletedAt,
	}
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the runner should stop.
func (r *Runner) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the job offset if a commit function is available.
func (r *Runner) commitOffset(ctx context.Context, evt domain.JobEvent) {
	if evt.Commit == nil {
		return
	}
	if err := evt.Commit(ctx); err != nil {
		r.logger.Warn("commit offset failed", "error", err,
			"topic", evt.Topic, "partition", evt.Partition, "offset", evt.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
