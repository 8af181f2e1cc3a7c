package persistence_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/persistence"
)

var testDSN string

// TestMain boots a disposable PostgreSQL 16 container and runs every
// migration once before any Store test runs.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("coreserver_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
	)
	if err != nil {
		log.Fatalf("starting postgres container: %v", err)
	}
	defer func() { _ = container.Terminate(ctx) }()

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("getting connection string: %v", err)
	}
	testDSN = dsn

	if err := persistence.Migrate(ctx, testDSN); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *persistence.Store {
	t.Helper()
	store, err := persistence.New(context.Background(), testDSN)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestCreateAndGetAccount_RoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	hash, err := persistence.HashPassword("hunter2")
	require.NoError(t, err)

	acc, err := store.CreateAccount(ctx, fmt.Sprintf("player-%s", t.Name()), hash)
	require.NoError(t, err)
	assert.NotZero(t, acc.AccountID)

	fetched, err := store.GetAccountByUsername(ctx, acc.Username)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, acc.AccountID, fetched.AccountID)
	assert.True(t, persistence.VerifyPassword(fetched.PasswordHash, "hunter2"))
}

func TestGetAccountByUsername_MissingReturnsNilNil(t *testing.T) {
	store := newTestStore(t)
	acc, err := store.GetAccountByUsername(context.Background(), "nobody-such-user")
	require.NoError(t, err)
	assert.Nil(t, acc)
}

func TestCreateAndLoadCharacter_RoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	hash, err := persistence.HashPassword("pw")
	require.NoError(t, err)
	acc, err := store.CreateAccount(ctx, fmt.Sprintf("acct-%s", t.Name()), hash)
	require.NoError(t, err)

	state := model.NewPersistedState(model.ClassWarrior, model.EmpireRed)
	var inv model.Inventory
	inv.Add(stubLimiter{}, model.HealthPotionItemID, 5)
	equip := model.Equipment{WeaponID: 12}

	bundle, err := store.CreateCharacter(ctx, acc.AccountID, fmt.Sprintf("hero-%s", t.Name()), model.ClassWarrior, model.GenderMale, model.EmpireRed, state, inv, equip)
	require.NoError(t, err)
	require.NotZero(t, bundle.Character.CharacterID)

	loaded, found, err := store.LoadCharacter(ctx, bundle.Character.CharacterID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, bundle.Character.Name, loaded.Character.Name)
	assert.Equal(t, state.Health, loaded.State.Health)
	assert.Equal(t, uint32(12), loaded.Equipment.WeaponID)
	assert.Equal(t, int32(5), loaded.Inventory.Slots[0].Quantity)
}

func TestSaveCharacter_OverwritesState(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	hash, _ := persistence.HashPassword("pw")
	acc, err := store.CreateAccount(ctx, fmt.Sprintf("acct2-%s", t.Name()), hash)
	require.NoError(t, err)

	state := model.NewPersistedState(model.ClassNinja, model.EmpireYellow)
	bundle, err := store.CreateCharacter(ctx, acc.AccountID, fmt.Sprintf("ninja-%s", t.Name()), model.ClassNinja, model.GenderFemale, model.EmpireYellow, state, model.Inventory{}, model.Equipment{})
	require.NoError(t, err)

	bundle.State.Gold = 500
	bundle.State.Level = 2
	require.NoError(t, store.SaveCharacter(ctx, bundle))

	reloaded, found, err := store.LoadCharacter(ctx, bundle.Character.CharacterID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(500), reloaded.State.Gold)
	assert.Equal(t, int32(2), reloaded.State.Level)
}

type stubLimiter struct{}

func (stubLimiter) MaxStack(uint32) int32 { return 99 }
