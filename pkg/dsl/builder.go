package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/stepwise/internal/validator"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/domain"
)

// Builder manages the form construction. Steps keep the order they are added in.
type Builder struct {
	title string
	steps []*StepBuilder
	errs  []error
}

// New creates a new form builder.
func New(title string) *Builder {
	return &Builder{title: title}
}

// Step appends an input step. If a step with the same id exists, its builder
// is returned.
func (b *Builder) Step(id, title string) *StepBuilder {
	for _, sb := range b.steps {
		if sb.step.ID == id {
			return sb
		}
	}
	sb := &StepBuilder{step: domain.Step{ID: id, Title: title}, builder: b}
	b.steps = append(b.steps, sb)
	return sb
}

// Summary appends the review step. It must be added last.
func (b *Builder) Summary(id, title string) {
	sb := b.Step(id, title)
	sb.step.Summary = true
}

// Form assembles and validates the form.
func (b *Builder) Form() (*domain.Form, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	form := &domain.Form{Title: b.title}
	for _, sb := range b.steps {
		step := sb.step
		for _, fb := range sb.fields {
			step.Fields = append(step.Fields, fb.field)
		}
		form.Steps = append(form.Steps, step)
	}
	if err := validator.Validate(form); err != nil {
		return nil, err
	}
	return form, nil
}

// Build compiles the form into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	form, err := b.Form()
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	return memory.NewLoader(form), nil
}
