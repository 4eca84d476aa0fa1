package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
)

// Manifest is the on-disk description of a solution suite.
type Manifest struct {
	Cases []domain.Case `json:"cases"`
}

// LoadManifest reads and validates a suite manifest file.
func LoadManifest(path string) ([]domain.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Cases) == 0 {
		return nil, fmt.Errorf("manifest %s contains no cases", path)
	}
	for i, c := range m.Cases {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("manifest %s case %d: %w", path, i, err)
		}
	}
	return m.Cases, nil
}

// ManifestSource hands out manifest cases in batches. It implements
// CaseSource and returns ErrNoMoreCases once the suite is drained.
type ManifestSource struct {
	mu     sync.Mutex
	cases  []domain.Case
	offset int
}

// NewManifestSource creates a source over a fixed list of cases.
func NewManifestSource(cases []domain.Case) *ManifestSource {
	return &ManifestSource{cases: cases}
}

func (s *ManifestSource) ExtractBatch(ctx context.Context, batchSize int) ([]domain.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offset >= len(s.cases) {
		return nil, ErrNoMoreCases
	}

	end := s.offset + batchSize
	if end > len(s.cases) {
		end = len(s.cases)
	}
	batch := s.cases[s.offset:end]
	s.offset = end
	return batch, nil
}
