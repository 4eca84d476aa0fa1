package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `{
		"cases": [
			{"dimension": "1", "type": 2, "domain": 1, "choice": 2, "cells_x": 500},
			{"dimension": "2", "type": 1, "domain": 1, "choice": 1, "cells_x": 50, "cells_y": 50}
		]
	}`)

	cases, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, domain.OneDimensional, cases[0].Dimension)
	assert.Equal(t, 500, cases[0].CellsX)
	assert.Equal(t, domain.TwoDimensional, cases[1].Dimension)
	assert.Equal(t, 50, cases[1].CellsY)
}

func TestLoadManifest_InvalidCase(t *testing.T) {
	path := writeManifest(t, `{
		"cases": [{"dimension": "2", "type": 1, "domain": 1, "choice": 1, "cells_x": 50}]
	}`)

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case 0")
}

func TestLoadManifest_Empty(t *testing.T) {
	path := writeManifest(t, `{"cases": []}`)

	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "no cases")
}

func TestLoadManifest_MissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
