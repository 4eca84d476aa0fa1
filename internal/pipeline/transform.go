package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
	"github.com/couchcryptid/swashes-solutions/internal/observability"
)

// SolverTransformer computes solution tables with a domain.Solver and records
// solve metrics. It implements Transformer.
type SolverTransformer struct {
	solver  domain.Solver
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewSolverTransformer wraps a solver as a pipeline transform stage.
func NewSolverTransformer(solver domain.Solver, metrics *observability.Metrics, logger *slog.Logger) *SolverTransformer {
	return &SolverTransformer{solver: solver, metrics: metrics, logger: logger}
}

// Transform solves one case. Malformed solver output and execution failures
// are counted separately.
func (t *SolverTransformer) Transform(ctx context.Context, c domain.Case) (*domain.Table, error) {
	start := time.Now()

	table, err := t.solver.Solve(ctx, c)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedOutput) {
			t.metrics.ParseErrors.Inc()
		} else {
			t.metrics.SolveErrors.Inc()
		}
		return nil, err
	}

	t.metrics.SolutionsComputed.Inc()
	t.metrics.SolveDuration.Observe(time.Since(start).Seconds())
	t.logger.Debug("case solved", "case", c.Key(), "rows", len(table.Rows))
	return table, nil
}
