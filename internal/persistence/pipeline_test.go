package persistence_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/persistence"
)

func TestPipeline_SaveThenLoad_RoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pipeline := persistence.NewPipeline(store, nil, 256, slog.Default())
	pipeline.Start(ctx)
	t.Cleanup(func() {
		cancel()
		_ = pipeline.Shutdown(context.Background())
	})

	hash, err := persistence.HashPassword("pw")
	require.NoError(t, err)
	acc, err := store.CreateAccount(ctx, fmt.Sprintf("pipe-%s", t.Name()), hash)
	require.NoError(t, err)

	state := model.NewPersistedState(model.ClassSura, model.EmpireBlue)
	bundle, err := store.CreateCharacter(ctx, acc.AccountID, fmt.Sprintf("sura-%s", t.Name()), model.ClassSura, model.GenderFemale, model.EmpireBlue, state, model.Inventory{}, model.Equipment{})
	require.NoError(t, err)

	bundle.State.Gold = 777
	pipeline.SaveCharacter(bundle)

	require.Eventually(t, func() bool {
		loaded, found, err := pipeline.LoadCharacter(ctx, bundle.Character.CharacterID)
		return err == nil && found && loaded.State.Gold == 777
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPipeline_LoadCharacter_UnknownReturnsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pipeline := persistence.NewPipeline(store, nil, 256, slog.Default())
	pipeline.Start(ctx)
	t.Cleanup(func() {
		cancel()
		_ = pipeline.Shutdown(context.Background())
	})

	_, found, err := pipeline.LoadCharacter(ctx, 999999999)
	require.NoError(t, err)
	assert.False(t, found)
}
