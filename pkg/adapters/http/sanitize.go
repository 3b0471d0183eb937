package http

import (
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/runner"
)

// textSanitizer strips markup from free text. Values are stored as plain
// text, so the entity escaping bluemonday applies is undone afterwards.
type textSanitizer struct {
	policy *bluemonday.Policy
}

func newTextSanitizer() *textSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

// Value cleans text values and passes every other shape through. Answers to
// digits-only fields reach the engine as sent.
func (t *textSanitizer) Value(field *domain.Field, v domain.Value) (domain.Value, error) {
	if v.Kind != domain.ValueText {
		return v, nil
	}
	numeric := field.NumericOnly()
	clean, err := runner.SanitizeAnswer(numeric, v.Text)
	if err != nil {
		return domain.Value{}, err
	}
	if numeric {
		return domain.TextValue(clean), nil
	}
	return domain.TextValue(html.UnescapeString(t.policy.Sanitize(clean))), nil
}
