package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Result is the outcome of one code execution. Error is true whenever
// stderr carries anything, including refusals and timeouts.
type Result struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	Error    bool          `json:"error"`
	Duration time.Duration `json:"-"`
}

// Runner executes screened Python code in an isolated subprocess.
type Runner struct {
	python    string
	timeout   time.Duration
	maxOutput int
}

// NewRunner returns a Runner that launches the given interpreter with a
// per-run timeout and a per-stream output cap of maxOutputKB kilobytes.
func NewRunner(python string, timeout time.Duration, maxOutputKB int) *Runner {
	if python == "" {
		python = "python3"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if maxOutputKB <= 0 {
		maxOutputKB = 64
	}
	return &Runner{python: python, timeout: timeout, maxOutput: maxOutputKB * 1024}
}

// Run validates the code and, if it passes, executes it under the
// configured interpreter in isolated mode. The subprocess and anything it
// spawns are killed as a group once the timeout elapses or ctx is
// cancelled.
func (r *Runner) Run(ctx context.Context, code string) Result {
	if msg := Validate(code); msg != "" {
		return Result{Stderr: msg, Error: true}
	}

	path, err := exec.LookPath(r.python)
	if err != nil {
		return Result{
			Stderr: fmt.Sprintf("Error: %s not found in PATH.", r.python),
			Error:  true,
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, "-I", "-c", code)
	setProcGroup(cmd)
	cmd.Cancel = func() error { return killProcGroup(cmd) }
	cmd.WaitDelay = time.Second

	stdout := &cappedBuffer{max: r.maxOutput}
	stderr := &cappedBuffer{max: r.maxOutput}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return Result{
			Stdout:   stdout.String(),
			Stderr:   "Error: Execution timed out.",
			Error:    true,
			Duration: elapsed,
		}
	case errors.Is(runCtx.Err(), context.Canceled):
		return Result{
			Stdout:   stdout.String(),
			Stderr:   "Error: Execution cancelled.",
			Error:    true,
			Duration: elapsed,
		}
	}

	errText := stderr.String()
	if runErr != nil && errText == "" {
		errText = "Error: " + runErr.Error()
	}

	return Result{
		Stdout:   stdout.String(),
		Stderr:   errText,
		Error:    errText != "",
		Duration: elapsed,
	}
}

// cappedBuffer accepts all writes but keeps at most max bytes, marking the
// output as truncated once the cap is hit.
type cappedBuffer struct {
	max       int
	buf       bytes.Buffer
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if remaining := b.max - b.buf.Len(); remaining > 0 {
		if len(p) > remaining {
			b.buf.Write(p[:remaining])
			b.truncated = true
		} else {
			b.buf.Write(p)
		}
	} else if len(p) > 0 {
		b.truncated = true
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	if b.truncated {
		return b.buf.String() + "\n[output truncated]"
	}
	return b.buf.String()
}
