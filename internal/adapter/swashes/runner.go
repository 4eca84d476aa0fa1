// Package swashes invokes the SWASHES binary and parses its output.
package swashes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
)

// ErrBinaryNotFound is returned when the SWASHES executable cannot be
// resolved, either from an explicit path or from PATH.
var ErrBinaryNotFound = errors.New("swashes executable not found")

// Runner implements domain.Solver by shelling out to the SWASHES binary.
// SWASHES is deterministic and stateless, so a Runner is safe for
// concurrent use.
type Runner struct {
	bin     string
	timeout time.Duration
	logger  *slog.Logger
}

// NewRunner resolves the SWASHES executable and returns a Runner. An empty
// bin falls back to the platform default name ("swashes", "swashes.exe" on
// Windows) looked up on PATH. A zero timeout disables the per-run deadline.
func NewRunner(bin string, timeout time.Duration, logger *slog.Logger) (*Runner, error) {
	if bin == "" {
		bin = defaultBinaryName()
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBinaryNotFound, bin, err)
	}
	return &Runner{bin: path, timeout: timeout, logger: logger}, nil
}

func defaultBinaryName() string {
	if runtime.GOOS == "windows" {
		return "swashes.exe"
	}
	return "swashes"
}

// BinaryPath returns the resolved executable path.
func (r *Runner) BinaryPath() string {
	return r.bin
}

// Solve runs the tool for the given case and parses its stdout. Non-zero
// exit status or any stderr output fails the run: the tool reports usage
// errors on stderr without always setting an exit code.
func (r *Runner) Solve(ctx context.Context, c domain.Case) (*domain.Table, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid case: %w", err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := c.Args()
	cmd := exec.CommandContext(ctx, r.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		return nil, fmt.Errorf("swashes %s: %w", strings.Join(args, " "), ctx.Err())
	}
	if err != nil {
		return nil, fmt.Errorf("swashes %s: %w: %s", strings.Join(args, " "), err, trimmedStderr(&stderr))
	}
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("swashes %s: tool reported: %s", strings.Join(args, " "), trimmedStderr(&stderr))
	}

	r.logger.Debug("swashes run complete",
		"case", c.Key(),
		"duration", elapsed,
		"stdout_bytes", stdout.Len(),
	)

	table, err := domain.Parse(c, stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("swashes %s: %w", strings.Join(args, " "), err)
	}
	return table, nil
}

func trimmedStderr(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return "(no stderr)"
	}
	return s
}
