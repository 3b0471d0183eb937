package runtime

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

func (e *Engine) base(t domain.EventType, state *domain.State) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now(),
		Type:      t,
		SessionID: state.SessionID,
	}
}

func (e *Engine) stepEvent(t domain.EventType, state *domain.State) *domain.StepEvent {
	ev := &domain.StepEvent{
		EventBase: e.base(t, state),
		Step:      state.CurrentStep,
	}
	if step, ok := e.form.Step(state.CurrentStep); ok {
		ev.StepID = step.ID
	}
	return ev
}

func (e *Engine) emitStepEnter(ctx context.Context, state *domain.State) {
	if e.hooks.OnStepEnter != nil {
		e.hooks.OnStepEnter(ctx, e.stepEvent(domain.EventStepEnter, state))
	}
}

func (e *Engine) emitStepLeave(ctx context.Context, state *domain.State) {
	if e.hooks.OnStepLeave != nil {
		e.hooks.OnStepLeave(ctx, e.stepEvent(domain.EventStepLeave, state))
	}
}

func (e *Engine) emitFieldUpdate(ctx context.Context, state *domain.State, field *domain.Field, rejected bool) {
	if e.hooks.OnFieldUpdate == nil {
		return
	}
	e.hooks.OnFieldUpdate(ctx, &domain.FieldEvent{
		EventBase: e.base(domain.EventFieldUpdate, state),
		Key:       field.Key,
		Kind:      field.Kind,
		Rejected:  rejected,
	})
}

func (e *Engine) emitSubmit(ctx context.Context, state *domain.State, isError bool) {
	if e.hooks.OnSubmit == nil {
		return
	}
	e.hooks.OnSubmit(ctx, &domain.SubmitEvent{
		EventBase: e.base(domain.EventSubmit, state),
		Fields:    len(state.Values),
		IsError:   isError,
	})
}
