package runtime

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Render computes what the host should present for the state: the step
// indicator, the visible fields or the recap, and which actions are enabled.
// Nothing is cached; the gate is recomputed on every call.
func (e *Engine) Render(ctx context.Context, state *domain.State) (*domain.View, error) {
	step, err := e.currentStep(state)
	if err != nil {
		return nil, err
	}

	view := &domain.View{
		FormTitle:  e.form.Title,
		Step:       state.CurrentStep,
		StepID:     step.ID,
		Title:      step.Title,
		IsSummary:  step.Summary,
		Tabs:       e.renderTabs(state),
		CanRetreat: state.CurrentStep > 1,
		Status:     state.Status,
	}

	if step.Summary {
		view.Summary = BuildSummary(e.form, state.Values)
		view.CanSubmit = true
		return view, nil
	}

	for _, f := range VisibleFields(step, state.Values) {
		view.Fields = append(view.Fields, renderField(f, state.Values))
	}
	view.Missing = MissingFields(step, state.Values)
	view.CanAdvance = len(view.Missing) == 0 && state.CurrentStep < e.form.Len()
	if len(view.Missing) > 0 {
		view.Hint = domain.IncompleteHint
	}
	return view, nil
}

func (e *Engine) renderTabs(state *domain.State) []domain.TabView {
	tabs := make([]domain.TabView, 0, e.form.Len())
	for i, s := range e.form.Steps {
		idx := i + 1
		tabs = append(tabs, domain.TabView{
			Index:     idx,
			ID:        s.ID,
			Title:     s.Title,
			Current:   idx == state.CurrentStep,
			Reachable: idx <= state.CurrentStep,
		})
	}
	return tabs
}

func renderField(f *domain.Field, values map[string]domain.Value) domain.FieldView {
	fv := domain.FieldView{
		Key:         f.Key,
		Label:       f.Label,
		Kind:        f.Kind,
		Required:    f.Required,
		Options:     f.Options,
		Multiple:    f.Multiple,
		Numeric:     f.NumericOnly(),
		Placeholder: f.Placeholder,
	}
	if v, ok := values[f.Key]; ok {
		v = v.Clone()
		fv.Value = &v
	}
	return fv
}
