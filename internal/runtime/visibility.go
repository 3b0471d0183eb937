package runtime

import "github.com/aretw0/stepwise/pkg/domain"

// IsVisible reports whether every visibility condition of the field holds
// against the current values. A field without conditions is always visible.
// An unset checkbox counts as unchecked, so a condition on false holds
// until the box is ticked.
func IsVisible(field *domain.Field, values map[string]domain.Value) bool {
	for _, c := range field.When {
		current, ok := values[c.Key]
		if !ok && c.Equals.Kind == domain.ValueBool {
			current, ok = domain.BoolValue(false), true
		}
		if !ok || !current.Equal(c.Equals) {
			return false
		}
	}
	return true
}

// VisibleFields filters a step's fields to the currently visible ones,
// preserving declaration order.
func VisibleFields(step *domain.Step, values map[string]domain.Value) []*domain.Field {
	var out []*domain.Field
	for i := range step.Fields {
		if IsVisible(&step.Fields[i], values) {
			out = append(out, &step.Fields[i])
		}
	}
	return out
}
