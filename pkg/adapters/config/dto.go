package config

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/adapters/codec"
	"github.com/aretw0/stepwise/pkg/domain"
)

type formDTO struct {
	Title string    `mapstructure:"title"`
	Steps []stepDTO `mapstructure:"steps"`
}

type stepDTO struct {
	ID      string     `mapstructure:"id"`
	Title   string     `mapstructure:"title"`
	Summary bool       `mapstructure:"summary"`
	Fields  []fieldDTO `mapstructure:"fields"`
}

type conditionDTO struct {
	Key    string `mapstructure:"key"`
	Equals any    `mapstructure:"equals"`
}

type fieldDTO struct {
	Key         string         `mapstructure:"key"`
	Label       string         `mapstructure:"label"`
	Type        string         `mapstructure:"type"`
	Required    bool           `mapstructure:"required"`
	Options     []string       `mapstructure:"options"`
	Multiple    bool           `mapstructure:"multiple"`
	Validation  string         `mapstructure:"validation"`
	Placeholder string         `mapstructure:"placeholder"`
	When        []conditionDTO `mapstructure:"when"`

	// Flat condition aliases.
	ConditionalKey    string `mapstructure:"conditionalKey"`
	ConditionalValue  any    `mapstructure:"conditionalValue"`
	ConditionalKey2   string `mapstructure:"conditionalKey2"`
	ConditionalValue2 any    `mapstructure:"conditionalValue2"`
}

func (d formDTO) toDomain() (*domain.Form, error) {
	form := &domain.Form{Title: d.Title}
	for i, s := range d.Steps {
		step := domain.Step{ID: s.ID, Title: s.Title, Summary: s.Summary}
		for j, f := range s.Fields {
			field, err := f.toDomain()
			if err != nil {
				return nil, fmt.Errorf("steps[%d].fields[%d]: %w", i, j, err)
			}
			step.Fields = append(step.Fields, field)
		}
		form.Steps = append(form.Steps, step)
	}
	return form, nil
}

func (d fieldDTO) toDomain() (domain.Field, error) {
	field := domain.Field{
		Key:         d.Key,
		Label:       d.Label,
		Kind:        domain.FieldKind(d.Type),
		Required:    d.Required,
		Options:     d.Options,
		Multiple:    d.Multiple,
		Validation:  d.Validation,
		Placeholder: d.Placeholder,
	}

	conds := append([]conditionDTO(nil), d.When...)
	if d.ConditionalKey != "" {
		conds = append(conds, conditionDTO{Key: d.ConditionalKey, Equals: d.ConditionalValue})
	}
	if d.ConditionalKey2 != "" {
		conds = append(conds, conditionDTO{Key: d.ConditionalKey2, Equals: d.ConditionalValue2})
	}

	for _, c := range conds {
		v, err := codec.ScalarValue(c.Equals)
		if err != nil {
			return field, fmt.Errorf("condition on %q: %w", c.Key, err)
		}
		field.When = append(field.When, domain.Condition{Key: c.Key, Equals: v})
	}
	return field, nil
}
