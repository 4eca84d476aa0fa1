// Package pipeline orchestrates batch computation of solution suites.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
	"github.com/couchcryptid/swashes-solutions/internal/observability"
)

// ErrNoMoreCases is returned by a CaseSource once every case has been
// handed out. The pipeline treats it as successful completion.
var ErrNoMoreCases = errors.New("case source drained")

// CaseSource yields up to batchSize pending solution cases.
type CaseSource interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.Case, error)
}

// Transformer computes the solution table for a case.
type Transformer interface {
	Transform(ctx context.Context, c domain.Case) (*domain.Table, error)
}

// BatchLoader delivers computed solutions to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, tables []*domain.Table) error
}

// Pipeline runs the extract-solve-load loop over a suite of cases.
type Pipeline struct {
	source      CaseSource
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(s CaseSource, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		source:      s,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has delivered at least one
// batch, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not delivered any solutions yet")
	}
	return nil
}

// Run executes the suite until the source drains or the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("suite pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff for sink failures: start at 200ms, double each
	// retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("suite pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-solve-load cycle. Returns false if the
// pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	batch, err := p.source.ExtractBatch(ctx, p.batchSize)
	if errors.Is(err, ErrNoMoreCases) {
		p.logger.Info("suite complete")
		p.ready.Store(true)
		return false
	}
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(batch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.BatchSize.Observe(float64(len(batch)))
	*backoff = 200 * time.Millisecond

	tables := make([]*domain.Table, 0, len(batch))
	for _, c := range batch {
		if ctx.Err() != nil {
			return false
		}
		table, err := p.transformer.Transform(ctx, c)
		if err != nil {
			p.logger.Warn("solve failed, skipping case", "case", c.Key(), "error", err)
			continue
		}
		tables = append(tables, table)
	}

	if len(tables) == 0 {
		return true
	}

	// Retry the same batch on sink failure: a drained source cannot
	// redeliver, so dropping the batch would lose solutions.
	for {
		err := p.loader.LoadBatch(ctx, tables)
		if err == nil {
			break
		}
		p.logger.Error("load batch failed", "error", err, "batch_size", len(tables))
		if !p.backoffOrStop(ctx, backoff, maxBackoff) {
			return false
		}
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return true
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
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
