package ports

import (
	"context"

	"github.com/aretw0/stepwise/pkg/domain"
)

// WizardEngine defines the stateless wizard core used by adapters (HTTP, MCP,
// terminal runner). Every operation takes a state and returns a new one.
type WizardEngine interface {
	Start(ctx context.Context, sessionID string) (*domain.State, error)
	Render(ctx context.Context, state *domain.State) (*domain.View, error)
	Update(ctx context.Context, state *domain.State, key string, value domain.Value) (*domain.State, error)
	Toggle(ctx context.Context, state *domain.State, key string) (*domain.State, error)
	Advance(ctx context.Context, state *domain.State) (*domain.State, error)
	Retreat(ctx context.Context, state *domain.State) (*domain.State, error)
	JumpTo(ctx context.Context, state *domain.State, step int) (*domain.State, error)
	Edit(ctx context.Context, state *domain.State, step int) (*domain.State, error)
	Reset(ctx context.Context, state *domain.State) (*domain.State, error)
	Submit(ctx context.Context, state *domain.State) (*domain.State, *domain.Receipt, error)
	Inspect() *domain.Form
}
