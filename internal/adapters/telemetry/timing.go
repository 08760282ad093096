package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/twin/internal/core/ports"
)

// TimingProcessor implements sdktrace.SpanProcessor, logging the duration
// of every finished span.
type TimingProcessor struct {
	logger ports.Logger
}

// NewTimingProcessor returns a new TimingProcessor.
func NewTimingProcessor(logger ports.Logger) *TimingProcessor {
	return &TimingProcessor{logger: logger}
}

// OnStart does nothing.
func (p *TimingProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span's name and duration.
func (p *TimingProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)

	msg := fmt.Sprintf("%s took %s", s.Name(), elapsed)
	if s.Status().Code == codes.Error {
		msg += " (failed)"
	}
	p.logger.Info(msg)
}

// ForceFlush does nothing.
func (p *TimingProcessor) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *TimingProcessor) Shutdown(_ context.Context) error {
	return nil
}

// Setup installs a global tracer provider for one invocation. In verbose
// mode finished spans are logged with their durations. The returned
// function shuts the provider down.
func Setup(logger ports.Logger, verbose bool) func(context.Context) error {
	var opts []sdktrace.TracerProviderOption
	if verbose {
		opts = append(opts, sdktrace.WithSpanProcessor(NewTimingProcessor(logger)))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
