package ports

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// FormLoader defines how the engine retrieves the wizard definition.
type FormLoader interface {
	// Load returns the parsed form. Structural validation happens in the caller.
	Load(ctx context.Context) (*domain.Form, error)
}
