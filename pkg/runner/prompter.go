package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
)

var (
	// ErrSkip is returned by a Prompter to keep the current value of a field.
	ErrSkip = errors.New("keep current value")
	// ErrAborted signals the user aborted input (e.g. Ctrl+C or "quit").
	ErrAborted = errors.New("aborted")
)

// ActionKind names a navigation choice.
type ActionKind string

const (
	ActionFill   ActionKind = "fill"
	ActionNext   ActionKind = "next"
	ActionBack   ActionKind = "back"
	ActionJump   ActionKind = "jump"
	ActionEdit   ActionKind = "edit"
	ActionSubmit ActionKind = "submit"
	ActionReset  ActionKind = "reset"
	ActionQuit   ActionKind = "quit"
)

// Action is one entry of the navigation menu. Step is the target of jump
// and edit actions.
type Action struct {
	Kind  ActionKind
	Step  int
	Label string
}

func (a Action) String() string {
	if a.Label != "" {
		return a.Label
	}
	return string(a.Kind)
}

// Prompter abstracts how the runner talks to the user so the loop can be
// tested without a terminal.
type Prompter interface {
	// Show presents informational text (step headers, hints, the recap).
	Show(ctx context.Context, text string) error

	// Field asks for the value of a field. Returning ErrSkip keeps the
	// current value.
	Field(ctx context.Context, field domain.FieldView) (domain.Value, error)

	// Choose asks which of the enabled actions to take.
	Choose(ctx context.Context, actions []Action) (Action, error)
}

// Actions lists the navigation choices a view enables, in menu order.
func Actions(view *domain.View) []Action {
	var out []Action
	if view.IsSummary {
		if view.CanSubmit {
			out = append(out, Action{Kind: ActionSubmit, Label: "Submit"})
		}
		if view.Summary != nil {
			for _, s := range view.Summary.Sections {
				out = append(out, Action{Kind: ActionEdit, Step: s.EditStep, Label: fmt.Sprintf("Edit %s", s.Title)})
			}
		}
	} else {
		if view.CanAdvance {
			out = append(out, Action{Kind: ActionNext, Label: "Next"})
		}
		out = append(out, Action{Kind: ActionFill, Label: "Edit fields"})
	}
	if view.CanRetreat {
		out = append(out, Action{Kind: ActionBack, Label: "Back"})
	}
	for _, tab := range view.Tabs {
		if tab.Reachable && !tab.Current && !view.IsSummary {
			out = append(out, Action{Kind: ActionJump, Step: tab.Index, Label: fmt.Sprintf("Go to %d. %s", tab.Index, tab.Title)})
		}
	}
	out = append(out,
		Action{Kind: ActionReset, Label: "Start over"},
		Action{Kind: ActionQuit, Label: "Quit"},
	)
	return out
}
