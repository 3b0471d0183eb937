package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	store, err := memory.NewStoreWithCapacity(2)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "a", domain.NewState("a")))
	require.NoError(t, store.Save(ctx, "b", domain.NewState("b")))
	_, err = store.Load(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "c", domain.NewState("c")))

	_, err = store.Load(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, ids)
}

func TestMemoryStore_InvalidCapacity(t *testing.T) {
	_, err := memory.NewStoreWithCapacity(0)
	assert.Error(t, err)
}

func TestLoader(t *testing.T) {
	form := &domain.Form{Title: "T", Steps: []domain.Step{{ID: "end", Summary: true}}}
	got, err := memory.NewLoader(form).Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, form, got)

	_, err = memory.NewLoader(nil).Load(context.Background())
	assert.Error(t, err)
}
