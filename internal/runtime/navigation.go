package runtime

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Advance moves to the next step when the current one is complete.
// An incomplete step, or the last step, leaves the state unchanged.
func (e *Engine) Advance(ctx context.Context, state *domain.State) (*domain.State, error) {
	step, err := e.currentStep(state)
	if err != nil {
		return nil, err
	}
	if !StepValid(step, state.Values) {
		e.logger.Debug("advance blocked", "session_id", state.SessionID, "step", step.ID)
		return state, nil
	}
	return e.moveTo(ctx, state, min(state.CurrentStep+1, e.form.Len())), nil
}

// Retreat moves to the previous step, clamped to the first one.
func (e *Engine) Retreat(ctx context.Context, state *domain.State) (*domain.State, error) {
	if _, err := e.currentStep(state); err != nil {
		return nil, err
	}
	return e.moveTo(ctx, state, max(state.CurrentStep-1, 1)), nil
}

// JumpTo moves back to an already visited step. Targets ahead of the current
// step are ignored.
func (e *Engine) JumpTo(ctx context.Context, state *domain.State, target int) (*domain.State, error) {
	if _, err := e.currentStep(state); err != nil {
		return nil, err
	}
	if target < 1 || target > state.CurrentStep {
		return state, nil
	}
	return e.moveTo(ctx, state, target), nil
}

// Edit follows the edit link of a summary section. It only applies while the
// summary step is active and the target is a regular step.
func (e *Engine) Edit(ctx context.Context, state *domain.State, target int) (*domain.State, error) {
	step, err := e.currentStep(state)
	if err != nil {
		return nil, err
	}
	if !step.Summary {
		return state, nil
	}
	dest, ok := e.form.Step(target)
	if !ok || dest.Summary {
		return state, nil
	}
	return e.moveTo(ctx, state, target), nil
}

// moveTo returns a copy of state positioned at target, firing leave/enter
// hooks. Moving to the current step is a no-op.
func (e *Engine) moveTo(ctx context.Context, state *domain.State, target int) *domain.State {
	if target == state.CurrentStep {
		return state
	}
	e.emitStepLeave(ctx, state)

	next := state.Snapshot()
	next.CurrentStep = target
	next.History = append(next.History, target)

	e.logger.Debug("step changed", "session_id", next.SessionID, "from", state.CurrentStep, "to", target)
	e.emitStepEnter(ctx, next)
	return next
}
