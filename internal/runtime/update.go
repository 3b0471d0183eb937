package runtime

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/stepwise/pkg/domain"
)

var digitsOnly = regexp.MustCompile(`^\d*$`)

// Update sets the value of a field. It is the only way values change.
//
// Numeric-only fields silently ignore text containing a non-digit: the state
// is returned unchanged and no error is reported.
func (e *Engine) Update(ctx context.Context, state *domain.State, key string, value domain.Value) (*domain.State, error) {
	field, ok := e.form.Field(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, key)
	}
	if err := checkShape(field, value); err != nil {
		return nil, err
	}
	if field.NumericOnly() && !digitsOnly.MatchString(value.Text) {
		e.emitFieldUpdate(ctx, state, field, true)
		return state, nil
	}

	next := state.Snapshot()
	next.Values[key] = value.Clone()
	e.emitFieldUpdate(ctx, next, field, false)
	return next, nil
}

// Toggle flips a checkbox. An absent value counts as unchecked.
func (e *Engine) Toggle(ctx context.Context, state *domain.State, key string) (*domain.State, error) {
	field, ok := e.form.Field(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, key)
	}
	if field.Kind != domain.FieldCheckbox {
		return nil, fmt.Errorf("%w: %q is %s, not checkbox", domain.ErrValueShape, key, field.Kind)
	}
	current, _ := state.Get(key)
	return e.Update(ctx, state, key, domain.BoolValue(!current.Bool))
}

// Reset clears every value and returns to the first step.
func (e *Engine) Reset(ctx context.Context, state *domain.State) (*domain.State, error) {
	next := domain.NewState(state.SessionID)
	e.logger.Debug("session reset", "session_id", state.SessionID)
	if state.CurrentStep != 1 {
		e.emitStepLeave(ctx, state)
		e.emitStepEnter(ctx, next)
	}
	return next, nil
}

func checkShape(field *domain.Field, value domain.Value) error {
	if value.Kind != expectedKind(field) {
		return fmt.Errorf("%w: %q expects %s, got %q", domain.ErrValueShape, field.Key, field.Kind, value.Kind)
	}
	if field.Kind == domain.FieldSelect && value.Text != "" && !field.HasOption(value.Text) {
		return fmt.Errorf("%w: %q for %q", domain.ErrInvalidOption, value.Text, field.Key)
	}
	return nil
}

// expectedKind maps a field kind to the value shape it stores.
func expectedKind(field *domain.Field) domain.ValueKind {
	switch {
	case field.Kind == domain.FieldCheckbox:
		return domain.ValueBool
	case field.Kind == domain.FieldFile && field.Multiple:
		return domain.ValueFiles
	case field.Kind == domain.FieldFile:
		return domain.ValueFile
	default:
		return domain.ValueText
	}
}
