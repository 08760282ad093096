// Package app implements the application layer for twin.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"go.trai.ch/twin/internal/adapters/agent"
	"go.trai.ch/twin/internal/adapters/detector"
	"go.trai.ch/twin/internal/adapters/linear"
	"go.trai.ch/twin/internal/adapters/telemetry"
	"go.trai.ch/twin/internal/core/ports"
	"go.trai.ch/twin/internal/engine/copier"
	"go.trai.ch/twin/internal/engine/detection"
	"go.trai.ch/twin/internal/engine/selection"
)

// App represents the main application logic.
type App struct {
	vcs      ports.VersionControl
	loader   ports.ConfigLoader
	hasher   ports.Hasher
	verifier ports.CacheVerifier
	logger   ports.Logger
	detector *detection.Detector
	copier   *copier.Copier
	selector *selection.Selector

	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(
	vcs ports.VersionControl,
	loader ports.ConfigLoader,
	hasher ports.Hasher,
	verifier ports.CacheVerifier,
	log ports.Logger,
	det *detection.Detector,
	cop *copier.Copier,
	sel *selection.Selector,
) *App {
	return &App{
		vcs:      vcs,
		loader:   loader,
		hasher:   hasher,
		verifier: verifier,
		logger:   log,
		detector: det,
		copier:   cop,
		selector: sel,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithOutput redirects rendered output. Used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// Options holds the settings shared by every command.
type Options struct {
	// JSON switches to one structured record per command on stdout.
	JSON bool
	// OutputMode is the --output flag: auto, tty or linear.
	OutputMode string
	// Verbose logs the duration of every traced step.
	Verbose bool
}

// session is the per-invocation state: the renderer and telemetry.
type session struct {
	opts     Options
	renderer ports.Renderer
	shutdown func(context.Context) error
}

func (a *App) begin(opts Options) *session {
	a.logger.SetJSON(opts.JSON)

	var renderer ports.Renderer
	if opts.JSON {
		renderer = agent.NewRenderer(a.stdout)
	} else {
		mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)
		renderer = linear.NewRenderer(a.stdout, a.stderr, mode == detector.ModeTTY)
	}

	return &session{
		opts:     opts,
		renderer: renderer,
		shutdown: telemetry.Setup(a.logger, opts.Verbose),
	}
}

// end flushes the renderer. In JSON mode a failed command writes no result
// record; the caller writes the error record instead.
func (s *session) end(ctx context.Context, err error) error {
	_ = s.shutdown(ctx)
	if err != nil && s.opts.JSON {
		return err
	}
	return errors.Join(err, s.renderer.Flush())
}

// streams returns the writers the reconciliation command inherits. Nil
// writers route its output through the logger.
func (s *session) streams(a *App) (io.Writer, io.Writer) {
	if s.opts.JSON {
		return nil, nil
	}
	return a.stderr, a.stderr
}
