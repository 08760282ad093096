// Package shell provides the reconciliation command executor.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor by running commands through sh.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run executes command with `sh -c` in dir. The child inherits the current
// environment. Output is streamed to stdout and stderr as it is produced;
// a nil writer sends that stream to the logger one line at a time.
func (e *Executor) Run(ctx context.Context, dir, command string, stdout, stderr io.Writer) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command) //nolint:gosec // user provided command
	cmd.Dir = dir

	var flush []func()
	if stdout == nil {
		w := &logWriter{emit: e.logger.Info}
		stdout, flush = w, append(flush, w.Flush)
	}
	if stderr == nil {
		w := &logWriter{emit: e.logger.Warn}
		stderr, flush = w, append(flush, w.Flush)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	for _, f := range flush {
		f()
	}

	if err != nil {
		exitCode := -1 // Unknown or signal
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode), "command", command)
	}
	return nil
}

// logWriter buffers partial writes and emits complete lines.
type logWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line: keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(strings.TrimRight(w.buf.String(), "\r\n"))
		w.buf.Reset()
	}
}
