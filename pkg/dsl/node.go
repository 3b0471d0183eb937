package dsl

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/adapters/codec"
	"github.com/aretw0/stepwise/pkg/domain"
)

// StepBuilder adds fields to a step.
type StepBuilder struct {
	step    domain.Step
	fields  []*FieldBuilder
	builder *Builder
}

func (s *StepBuilder) add(key, label string, kind domain.FieldKind) *FieldBuilder {
	fb := &FieldBuilder{field: domain.Field{Key: key, Label: label, Kind: kind}, step: s}
	s.fields = append(s.fields, fb)
	return fb
}

// Text adds a single line text field.
func (s *StepBuilder) Text(key, label string) *FieldBuilder {
	return s.add(key, label, domain.FieldText)
}

// Email adds an email field.
func (s *StepBuilder) Email(key, label string) *FieldBuilder {
	return s.add(key, label, domain.FieldEmail)
}

// Textarea adds a multi-line text field.
func (s *StepBuilder) Textarea(key, label string) *FieldBuilder {
	return s.add(key, label, domain.FieldTextarea)
}

// Select adds a single choice field.
func (s *StepBuilder) Select(key, label string, options ...string) *FieldBuilder {
	fb := s.add(key, label, domain.FieldSelect)
	fb.field.Options = options
	return fb
}

// Checkbox adds a boolean field.
func (s *StepBuilder) Checkbox(key, label string) *FieldBuilder {
	return s.add(key, label, domain.FieldCheckbox)
}

// File adds a file reference field.
func (s *StepBuilder) File(key, label string) *FieldBuilder {
	return s.add(key, label, domain.FieldFile)
}

// FieldBuilder provides a fluent API for configuring a field.
type FieldBuilder struct {
	field domain.Field
	step  *StepBuilder
}

// Required blocks advancing while the field is visible and empty.
func (f *FieldBuilder) Required() *FieldBuilder {
	f.field.Required = true
	return f
}

// Multiple lets a file field hold several files.
func (f *FieldBuilder) Multiple() *FieldBuilder {
	f.field.Multiple = true
	return f
}

// Numbers restricts a text field to digits.
func (f *FieldBuilder) Numbers() *FieldBuilder {
	f.field.Validation = domain.ValidationNumbers
	return f
}

// Placeholder sets the hint shown in an empty input.
func (f *FieldBuilder) Placeholder(text string) *FieldBuilder {
	f.field.Placeholder = text
	return f
}

// When shows the field only while key holds equals. Equals is a bool for
// checkboxes and a string otherwise.
func (f *FieldBuilder) When(key string, equals any) *FieldBuilder {
	v, err := codec.ScalarValue(equals)
	if err != nil {
		f.step.builder.errs = append(f.step.builder.errs, fmt.Errorf("field %q: condition on %q: %w", f.field.Key, key, err))
		return f
	}
	f.field.When = append(f.field.When, domain.Condition{Key: key, Equals: v})
	return f
}

// Build returns the underlying domain.Field.
func (f *FieldBuilder) Build() domain.Field {
	return f.field
}
