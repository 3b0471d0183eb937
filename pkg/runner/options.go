package runner

import (
	"log/slog"

	"github.com/aretw0/stepwise/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithPrompter configures how the user is asked.
func WithPrompter(p Prompter) Option {
	return func(r *Runner) {
		r.Prompter = p
	}
}

// WithStore configures the StateStore for persistence.
func WithStore(store ports.StateStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithSessionID sets the session ID used to start and persist the session.
// Persistence is skipped without one.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithRenderer configures the markdown renderer used for the recap.
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithHeaderStyle decorates the step headers.
func WithHeaderStyle(style func(string) string) Option {
	return func(r *Runner) {
		r.HeaderStyle = style
	}
}
