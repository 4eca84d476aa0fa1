package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
	"github.com/couchcryptid/swashes-solutions/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSolver struct {
	err error
}

func (s *stubSolver) Solve(_ context.Context, c domain.Case) (*domain.Table, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Table{Case: c, ColumnNames: []string{"x", "depth"}, Rows: [][]string{{"100", "0.5"}}}, nil
}

func TestSolverTransformer_CountsSolutions(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	tr := NewSolverTransformer(&stubSolver{}, metrics, slog.New(slog.DiscardHandler))

	table, err := tr.Transform(context.Background(), testCases(1)[0])
	require.NoError(t, err)
	require.NotNil(t, table)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SolutionsComputed))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.SolveErrors))
}

func TestSolverTransformer_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantSolve float64
		wantParse float64
	}{
		{
			name:      "execution failure",
			err:       errors.New("exit status 1"),
			wantSolve: 1,
		},
		{
			name:      "malformed output",
			err:       fmt.Errorf("no header: %w", domain.ErrMalformedOutput),
			wantParse: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := observability.NewMetricsForTesting()
			tr := NewSolverTransformer(&stubSolver{err: tt.err}, metrics, slog.New(slog.DiscardHandler))

			_, err := tr.Transform(context.Background(), testCases(1)[0])
			require.Error(t, err)

			assert.Equal(t, tt.wantSolve, testutil.ToFloat64(metrics.SolveErrors))
			assert.Equal(t, tt.wantParse, testutil.ToFloat64(metrics.ParseErrors))
			assert.Equal(t, float64(0), testutil.ToFloat64(metrics.SolutionsComputed))
		})
	}
}
