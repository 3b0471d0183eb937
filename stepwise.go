package stepwise

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/stepwise/internal/runtime"
	"github.com/aretw0/stepwise/internal/validator"
	"github.com/aretw0/stepwise/pkg/adapters/config"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// Engine is the high-level entry point for the stepwise library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.FormLoader
	form    *domain.Form
	sink    ports.SubmissionSink
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	Name    string
}

var _ ports.WizardEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom FormLoader, bypassing the file loader.
func WithLoader(l ports.FormLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithForm uses a form built in code.
func WithForm(form *domain.Form) Option {
	return func(e *Engine) {
		e.form = form
	}
}

// WithSink sets where submissions are sent. Without a sink, submit only
// updates the session status.
func WithSink(sink ports.SubmissionSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New loads and validates a form definition and builds an engine for it.
// By default the form is read from the YAML or JSON file at formPath; with
// WithLoader or WithForm, formPath may be empty and is only used as a label.
func New(ctx context.Context, formPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.form == nil {
		if eng.loader == nil {
			if formPath == "" {
				return nil, fmt.Errorf("formPath is required when no custom loader or form is provided")
			}
			eng.loader = config.NewFileLoader(formPath)
		}
		form, err := eng.loader.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load form: %w", err)
		}
		eng.form = form
	}

	if err := validator.Validate(eng.form); err != nil {
		return nil, err
	}

	if formPath != "" {
		eng.Name = strings.TrimSuffix(filepath.Base(formPath), filepath.Ext(formPath))
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("form", eng.Name)
	}

	eng.runtime = runtime.NewEngine(eng.form,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithSink(eng.sink),
	)
	return eng, nil
}

// Start creates the initial state for a session and triggers lifecycle hooks.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.State, error) {
	return e.runtime.Start(ctx, sessionID)
}

// Render computes the view of the current state without changing it.
func (e *Engine) Render(ctx context.Context, state *domain.State) (*domain.View, error) {
	return e.runtime.Render(ctx, state)
}

// Update sets the value of a field.
func (e *Engine) Update(ctx context.Context, state *domain.State, key string, value domain.Value) (*domain.State, error) {
	return e.runtime.Update(ctx, state, key, value)
}

// Toggle flips a checkbox field.
func (e *Engine) Toggle(ctx context.Context, state *domain.State, key string) (*domain.State, error) {
	return e.runtime.Toggle(ctx, state, key)
}

// Advance moves forward when the current step is complete.
func (e *Engine) Advance(ctx context.Context, state *domain.State) (*domain.State, error) {
	return e.runtime.Advance(ctx, state)
}

// Retreat moves back one step.
func (e *Engine) Retreat(ctx context.Context, state *domain.State) (*domain.State, error) {
	return e.runtime.Retreat(ctx, state)
}

// JumpTo moves back to an already visited step.
func (e *Engine) JumpTo(ctx context.Context, state *domain.State, step int) (*domain.State, error) {
	return e.runtime.JumpTo(ctx, state, step)
}

// Edit follows an edit link of the summary.
func (e *Engine) Edit(ctx context.Context, state *domain.State, step int) (*domain.State, error) {
	return e.runtime.Edit(ctx, state, step)
}

// Reset clears all values and returns to the first step.
func (e *Engine) Reset(ctx context.Context, state *domain.State) (*domain.State, error) {
	return e.runtime.Reset(ctx, state)
}

// Submit emits the values to the sink. Only valid on the summary step.
func (e *Engine) Submit(ctx context.Context, state *domain.State) (*domain.State, *domain.Receipt, error) {
	return e.runtime.Submit(ctx, state)
}

// Inspect returns the form definition, e.g. for rendering an outline.
func (e *Engine) Inspect() *domain.Form {
	return e.runtime.Inspect()
}

// SummaryMarkdown renders the recap of a state as markdown.
func (e *Engine) SummaryMarkdown(state *domain.State) string {
	return runtime.BuildSummary(e.form, state.Values).Markdown(e.form.Title)
}
