package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

var _ ports.WizardEngine = (*Engine)(nil)

// Engine is the core wizard state machine. It holds no session state: every
// operation receives a State and returns a new one.
type Engine struct {
	form   *domain.Form
	sink   ports.SubmissionSink
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithSink sets the submission sink.
func WithSink(sink ports.SubmissionSink) EngineOption {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the time source used for submissions and events.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a new engine for the given form.
// The form is expected to be validated by the caller.
func NewEngine(form *domain.Form, opts ...EngineOption) *Engine {
	e := &Engine{
		form:   form,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Inspect returns the form definition.
func (e *Engine) Inspect() *domain.Form {
	return e.form
}

// Start creates the initial state for a session and enters the first step.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	if e.form.Len() == 0 {
		return nil, domain.ErrInvalidStep
	}
	state := domain.NewState(sessionID)
	e.logger.Debug("session started", "session_id", sessionID)
	e.emitStepEnter(ctx, state)
	return state, nil
}

// currentStep resolves the step a state points at.
func (e *Engine) currentStep(state *domain.State) (*domain.Step, error) {
	step, ok := e.form.Step(state.CurrentStep)
	if !ok {
		return nil, domain.ErrInvalidStep
	}
	return step, nil
}
