package memory

import (
	"context"
	"errors"

	"github.com/aretw0/stepwise/pkg/domain"
)

// Loader implements ports.FormLoader for a form built in code.
type Loader struct {
	form *domain.Form
}

// NewLoader wraps an already built form.
func NewLoader(form *domain.Form) *Loader {
	return &Loader{form: form}
}

// Load returns the wrapped form.
func (l *Loader) Load(ctx context.Context) (*domain.Form, error) {
	if l.form == nil {
		return nil, errors.New("memory loader has no form")
	}
	return l.form, nil
}
