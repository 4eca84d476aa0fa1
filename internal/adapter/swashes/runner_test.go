package swashes

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stubOutput = `# Generated by SWASHES version 1.03.00, 2016-01-29
# Dimension: 1
# Type: 2
# Domain: 1
# Choice: 2
# Length of the domain: 1000 meters
# Space step: 500 meters
# Number of cells: 2
#
#(i-0.5)*dx	h[i]	u[i]	q[i]
250	0.770195	2.59675	2
750	0.937035	2.13439	2
`

// writeStub creates an executable shell script standing in for the SWASHES
// binary. It records its argv to args.txt and plays the canned script body.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub binary requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "swashes")
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\n%s", filepath.Join(dir, "args.txt"), body)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testCase() domain.Case {
	return domain.Case{Dimension: domain.OneDimensional, Type: 2, Domain: 1, Choice: 2, CellsX: 2}
}

func TestSolve(t *testing.T) {
	bin := writeStub(t, fmt.Sprintf("cat <<'EOF'\n%sEOF\n", stubOutput))
	r, err := NewRunner(bin, 0, discardLogger())
	require.NoError(t, err)

	table, err := r.Solve(context.Background(), testCase())
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "depth", "u", "q"}, table.Columns())
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Params.CellsX)

	// The argv must be the case parameters in tool order.
	args, err := os.ReadFile(filepath.Join(filepath.Dir(bin), "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1 2 1 2 2", strings.TrimSpace(string(args)))
}

func TestSolve_StderrFailsTheRun(t *testing.T) {
	bin := writeStub(t, "echo 'the solution does not exist' >&2\n")
	r, err := NewRunner(bin, 0, discardLogger())
	require.NoError(t, err)

	_, err = r.Solve(context.Background(), testCase())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the solution does not exist")
}

func TestSolve_NonZeroExit(t *testing.T) {
	bin := writeStub(t, "echo 'bad choice' >&2\nexit 3\n")
	r, err := NewRunner(bin, 0, discardLogger())
	require.NoError(t, err)

	_, err = r.Solve(context.Background(), testCase())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad choice")
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestSolve_MalformedOutput(t *testing.T) {
	bin := writeStub(t, "echo 'no comments here'\n")
	r, err := NewRunner(bin, 0, discardLogger())
	require.NoError(t, err)

	_, err = r.Solve(context.Background(), testCase())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedOutput)
}

func TestSolve_InvalidCase(t *testing.T) {
	bin := writeStub(t, "exit 0\n")
	r, err := NewRunner(bin, 0, discardLogger())
	require.NoError(t, err)

	_, err = r.Solve(context.Background(), domain.Case{Dimension: domain.TwoDimensional, Type: 1, Domain: 1, Choice: 1, CellsX: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cells_y")

	// The stub must not have been invoked for an invalid case.
	_, statErr := os.Stat(filepath.Join(filepath.Dir(bin), "args.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewRunner_BinaryNotFound(t *testing.T) {
	_, err := NewRunner(filepath.Join(t.TempDir(), "definitely-not-swashes"), 0, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBinaryNotFound)
}
