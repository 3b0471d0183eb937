package runtime

import (
	"strings"

	"github.com/aretw0/stepwise/pkg/domain"
)

// IsProvided reports whether a value counts as filled for the field kind:
// files need a non-empty selection, checkboxes need true, everything else a
// non-blank string.
func IsProvided(field *domain.Field, value domain.Value, ok bool) bool {
	if !ok {
		return false
	}
	switch field.Kind {
	case domain.FieldFile:
		if value.Kind == domain.ValueFile {
			f, _ := value.File()
			return f.Name != ""
		}
		return value.Kind == domain.ValueFiles && len(value.Files) > 0
	case domain.FieldCheckbox:
		return value.Kind == domain.ValueBool && value.Bool
	default:
		return value.Kind == domain.ValueText && strings.TrimSpace(value.Text) != ""
	}
}

// MissingFields lists the keys of required, visible fields of the step that
// have no provided value. The summary step never has missing fields.
func MissingFields(step *domain.Step, values map[string]domain.Value) []string {
	if step.Summary {
		return nil
	}
	var missing []string
	for i := range step.Fields {
		f := &step.Fields[i]
		if !f.Required || !IsVisible(f, values) {
			continue
		}
		v, ok := values[f.Key]
		if !IsProvided(f, v, ok) {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// StepValid is the gate for forward navigation.
func StepValid(step *domain.Step, values map[string]domain.Value) bool {
	return len(MissingFields(step, values)) == 0
}
