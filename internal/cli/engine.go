package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/stepwise"
	"github.com/aretw0/stepwise/internal/metrics"
	"github.com/aretw0/stepwise/pkg/adapters/sink"
	"github.com/aretw0/stepwise/pkg/domain"
)

// EngineOptions configures createEngine.
type EngineOptions struct {
	FormPath string
	// Output receives submissions as JSON lines. Empty disables it.
	Output  string
	Metrics *metrics.Metrics
	Debug   bool
	// Redact lists patterns of field keys masked in logged submissions.
	Redact []string
}

// createEngine loads the form and wires sinks, logging and metrics.
// The returned cleanup closes the output file.
func createEngine(ctx context.Context, opts EngineOptions, logger *slog.Logger) (*stepwise.Engine, func(), error) {
	logSink, err := sink.NewRedactSink(sink.NewLogSink(logger), opts.Redact)
	if err != nil {
		return nil, nil, err
	}
	sinks := sink.MultiSink{logSink}
	cleanup := func() {}

	if opts.Output != "" {
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open output: %w", err)
		}
		sinks = append(sinks, sink.NewWriterSink(f))
		cleanup = func() { _ = f.Close() }
	}

	engineOpts := []stepwise.Option{
		stepwise.WithLogger(logger),
		stepwise.WithSink(sinks),
	}
	switch {
	case opts.Metrics != nil:
		engineOpts = append(engineOpts, stepwise.WithLifecycleHooks(opts.Metrics.Hooks(logger)))
	case opts.Debug:
		engineOpts = append(engineOpts, stepwise.WithLifecycleHooks(createDebugHooks(logger)))
	}

	engine, err := stepwise.New(ctx, opts.FormPath, engineOpts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, cleanup, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("enter step", "step", e.Step, "step_id", e.StepID)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("leave step", "step_id", e.StepID)
		},
		OnFieldUpdate: func(ctx context.Context, e *domain.FieldEvent) {
			logger.Debug("field update", "field", e.Key, "rejected", e.Rejected)
		},
		OnSubmit: func(ctx context.Context, e *domain.SubmitEvent) {
			logger.Debug("submit", "fields", e.Fields, "is_error", e.IsError)
		},
	}
}
