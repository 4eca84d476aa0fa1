package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
)

// FileSink writes each solution as a CSV file, plus one ESRI ASCII grid
// raster per configured column when the solution carries it. It implements
// BatchLoader.
type FileSink struct {
	dir         string
	gridColumns []string
	logger      *slog.Logger
}

// NewFileSink creates a sink writing under dir, creating it if needed.
func NewFileSink(dir string, gridColumns []string, logger *slog.Logger) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileSink{dir: dir, gridColumns: gridColumns, logger: logger}, nil
}

func (s *FileSink) LoadBatch(ctx context.Context, tables []*domain.Table) error {
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeTable(table); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileSink) writeTable(table *domain.Table) error {
	slug := table.Case.Slug()

	csvPath := filepath.Join(s.dir, slug+".csv")
	if err := os.WriteFile(csvPath, []byte(table.CSV()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	for _, col := range s.gridColumns {
		if !table.HasColumn(col) {
			continue
		}
		var buf bytes.Buffer
		if err := domain.WriteASCIIGrid(&buf, table, col); err != nil {
			return fmt.Errorf("render grid %s for %s: %w", col, slug, err)
		}
		gridPath := filepath.Join(s.dir, slug+"_"+col+".asc")
		if err := os.WriteFile(gridPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", gridPath, err)
		}
	}

	s.logger.Debug("solution written", "case", table.Case.Key(), "path", csvPath)
	return nil
}

// MultiLoader fans a batch out to several loaders in order, stopping at the
// first failure.
type MultiLoader []BatchLoader

func (m MultiLoader) LoadBatch(ctx context.Context, tables []*domain.Table) error {
	for _, l := range m {
		if err := l.LoadBatch(ctx, tables); err != nil {
			return err
		}
	}
	return nil
}
