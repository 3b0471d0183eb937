package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

// ContentRenderer transforms markdown before it is shown, e.g. to ANSI.
type ContentRenderer func(string) (string, error)

// Runner drives one session through a Prompter.
type Runner struct {
	Prompter Prompter

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// Store persists the state after every change. If nil, sessions are
	// ephemeral.
	Store     ports.StateStore
	SessionID string

	// Renderer formats the recap markdown. If nil, markdown is shown as is.
	Renderer ContentRenderer

	// HeaderStyle decorates step headers, e.g. with terminal colors.
	HeaderStyle func(string) string
}

// New creates a Runner with a line prompter on Stdin/Stdout.
func New(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Prompter == nil {
		r.Prompter = NewTextPrompter(nil, nil)
	}
	return r
}

// Run executes the wizard loop until the form is submitted or the user
// quits. If initial is nil, engine.Start is called with the runner session
// ID. The last state is always returned, also on error.
func (r *Runner) Run(ctx context.Context, engine ports.WizardEngine, initial *domain.State) (*domain.State, error) {
	state := initial
	if state == nil {
		var err error
		state, err = engine.Start(ctx, r.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to create initial state: %w", err)
		}
		if err := r.save(ctx, state); err != nil {
			return state, err
		}
	}

	filled := make(map[int]bool)
	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		view, err := engine.Render(ctx, state)
		if err != nil {
			return state, fmt.Errorf("render error: %w", err)
		}
		if err := r.Prompter.Show(ctx, r.header(view)); err != nil {
			return state, err
		}

		if view.IsSummary {
			if err := r.Prompter.Show(ctx, r.render(view.Summary.Markdown(""))); err != nil {
				return state, err
			}
		} else if !filled[view.Step] {
			filled[view.Step] = true
			if state, err = r.fill(ctx, engine, state); err != nil {
				return state, err
			}
			if view, err = engine.Render(ctx, state); err != nil {
				return state, fmt.Errorf("render error: %w", err)
			}
		}

		if view.Hint != "" {
			if err := r.Prompter.Show(ctx, view.Hint); err != nil {
				return state, err
			}
		}

		action, err := r.Prompter.Choose(ctx, Actions(view))
		if err != nil {
			return state, err
		}
		r.Logger.Debug("action chosen", "session_id", state.SessionID, "action", action.Kind, "step", action.Step)

		switch action.Kind {
		case ActionFill:
			state, err = r.fill(ctx, engine, state)
		case ActionNext:
			state, err = engine.Advance(ctx, state)
		case ActionBack:
			state, err = engine.Retreat(ctx, state)
		case ActionJump:
			state, err = engine.JumpTo(ctx, state, action.Step)
		case ActionEdit:
			delete(filled, action.Step)
			state, err = engine.Edit(ctx, state, action.Step)
		case ActionReset:
			clear(filled)
			state, err = engine.Reset(ctx, state)
		case ActionSubmit:
			next, receipt, subErr := engine.Submit(ctx, state)
			if subErr != nil {
				return state, fmt.Errorf("submit failed: %w", subErr)
			}
			state = next
			if err := r.save(ctx, state); err != nil {
				return state, err
			}
			return state, r.Prompter.Show(ctx, receipt.Message)
		case ActionQuit:
			return state, nil
		default:
			return state, fmt.Errorf("unknown action %q", action.Kind)
		}
		if err != nil {
			return state, err
		}
		if err := r.save(ctx, state); err != nil {
			return state, err
		}
	}
}

// fill prompts every visible field of the current step once. Fields revealed
// by an answer are prompted in the same pass.
func (r *Runner) fill(ctx context.Context, engine ports.WizardEngine, state *domain.State) (*domain.State, error) {
	asked := make(map[string]bool)
	for {
		view, err := engine.Render(ctx, state)
		if err != nil {
			return state, fmt.Errorf("render error: %w", err)
		}

		var field *domain.FieldView
		for i := range view.Fields {
			if !asked[view.Fields[i].Key] {
				field = &view.Fields[i]
				break
			}
		}
		if field == nil {
			return state, nil
		}
		asked[field.Key] = true

		value, err := r.Prompter.Field(ctx, *field)
		if errors.Is(err, ErrSkip) {
			continue
		}
		if err != nil {
			return state, err
		}

		next, err := engine.Update(ctx, state, field.Key, value)
		if errors.Is(err, domain.ErrInvalidOption) || errors.Is(err, domain.ErrValueShape) {
			if err := r.Prompter.Show(ctx, fmt.Sprintf("Error: %v. Please try again.", err)); err != nil {
				return state, err
			}
			asked[field.Key] = false
			continue
		}
		if err != nil {
			return state, err
		}
		state = next
		if err := r.save(ctx, state); err != nil {
			return state, err
		}
	}
}

func (r *Runner) save(ctx context.Context, state *domain.State) error {
	if r.Store == nil || r.SessionID == "" {
		return nil
	}
	if err := r.Store.Save(ctx, r.SessionID, state); err != nil {
		return fmt.Errorf("critical persistence error: %w", err)
	}
	r.Logger.Debug("state saved", "session_id", r.SessionID, "step", state.CurrentStep)
	return nil
}

func (r *Runner) render(md string) string {
	if r.Renderer == nil {
		return md
	}
	out, err := r.Renderer(md)
	if err != nil {
		r.Logger.Warn("render failed, showing raw markdown", "err", err)
		return md
	}
	return out
}

func (r *Runner) header(view *domain.View) string {
	h := fmt.Sprintf("[%d/%d] %s", view.Step, len(view.Tabs), view.Title)
	if r.HeaderStyle != nil {
		return r.HeaderStyle(h)
	}
	return h
}
