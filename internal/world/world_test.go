package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/coreserver/internal/ability"
	"github.com/embervale/coreserver/internal/data"
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/world"
	"github.com/embervale/coreserver/internal/zonedata"
)

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	reg := zonedata.NewRegistry(zonedata.DefaultZones())
	return world.New(reg, data.NewCatalog(), ability.NewCatalog())
}

func spawnTestPlayer(w *world.World, class model.Class, zoneID int32, pos model.Vec3) *model.Player {
	state := model.NewPersistedState(class, model.EmpireRed)
	state.ZoneID = zoneID
	state.Position = pos
	ch := model.Character{CharacterID: 1, Name: "Tester", Class: class, Empire: model.EmpireRed}
	return w.SpawnPlayer(ch, state, model.Inventory{}, model.Equipment{})
}

func TestSpawnPlayer_AssignsFreshRuntimeID(t *testing.T) {
	w := newTestWorld(t)
	p1 := spawnTestPlayer(w, model.ClassWarrior, 300, model.Vec3{})
	p2 := spawnTestPlayer(w, model.ClassWarrior, 300, model.Vec3{})
	assert.NotEqual(t, p1.RuntimeID, p2.RuntimeID)
}

func TestGetEnemiesInZone_FiltersByZone(t *testing.T) {
	w := newTestWorld(t)
	inZone := w.GetEnemiesInZone(300)
	assert.NotEmpty(t, inZone)
	for _, e := range inZone {
		assert.Equal(t, int32(300), e.ZoneID)
	}
	assert.Empty(t, w.GetEnemiesInZone(1))
}

func TestAttack_OutOfRangeFails(t *testing.T) {
	w := newTestWorld(t)
	p := spawnTestPlayer(w, model.ClassWarrior, 300, model.Vec3{X: 1000, Y: 0, Z: 1000})
	enemies := w.GetEnemiesInZone(300)
	require.NotEmpty(t, enemies)

	_, err := w.Attack(p.RuntimeID, enemies[0].ID)
	assert.Error(t, err)
}

func TestAttack_InRangeDamagesEnemy(t *testing.T) {
	w := newTestWorld(t)
	enemies := w.GetEnemiesInZone(300)
	require.NotEmpty(t, enemies)
	target := enemies[0]
	p := spawnTestPlayer(w, model.ClassWarrior, 300, target.Position)
	p.State.Attack = 20

	res, err := w.Attack(p.RuntimeID, target.ID)
	require.NoError(t, err)
	assert.Greater(t, res.Damage, int32(0))
	assert.Equal(t, target.Health, res.NewHealth)
	assert.Equal(t, p.RuntimeID, target.TargetID)
}

func TestUseAbility_UnknownCasterErrors(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.UseAbility(999, 10, 0, false)
	assert.Error(t, err)
}

func TestUseAbility_ResolvesAgainstLiveEnemy(t *testing.T) {
	w := newTestWorld(t)
	enemies := w.GetEnemiesInZone(300)
	require.NotEmpty(t, enemies)
	target := enemies[0]
	p := spawnTestPlayer(w, model.ClassWarrior, 300, target.Position)
	p.State.Level = 1
	p.State.Mana = 50
	p.State.Attack = 20

	res, err := w.UseAbility(p.RuntimeID, 10, target.ID, true) // Power Strike
	require.NoError(t, err)
	assert.Empty(t, res.Outcome.Reason)
	require.Len(t, res.Outcome.Damage, 1)
	assert.Equal(t, target.ID, res.Outcome.Damage[0].EnemyID)
}

func TestDropItem_EmptySlotFails(t *testing.T) {
	w := newTestWorld(t)
	p := spawnTestPlayer(w, model.ClassWarrior, 1, model.Vec3{})
	wi, err := w.DropItem(p.RuntimeID, 0)
	assert.Error(t, err)
	assert.Nil(t, wi)
}

func TestDropThenPickupItem_RoundTrips(t *testing.T) {
	w := newTestWorld(t)
	p := spawnTestPlayer(w, model.ClassWarrior, 1, model.Vec3{})
	p.Inventory.Add(w.Items(), model.HealthPotionItemID, 3)

	dropped, err := w.DropItem(p.RuntimeID, 0)
	require.NoError(t, err)
	require.NotNil(t, dropped)

	err = w.PickupItem(p.RuntimeID, dropped.InstanceID)
	require.NoError(t, err)
	_, stillThere := w.WorldItemsInZone(1), false
	_ = stillThere
	items := w.WorldItemsInZone(1)
	assert.Empty(t, items)
}

func TestTeleport_MovesPlayerToZoneDefaultSpawn(t *testing.T) {
	w := newTestWorld(t)
	p := spawnTestPlayer(w, model.ClassWarrior, 1, model.Vec3{})

	pos, ok := w.Teleport(p.RuntimeID, 100)
	require.True(t, ok)
	assert.Equal(t, int32(100), p.State.ZoneID)
	assert.Equal(t, pos, p.State.Position)
}

func TestRespawn_EmpireSpawnFullyHealsAndClearsDeathFlag(t *testing.T) {
	w := newTestWorld(t)
	p := spawnTestPlayer(w, model.ClassWarrior, 300, model.Vec3{})
	p.State.Health = 0
	p.DeathAnnounced = true

	_, zoneID, ok := w.Respawn(p.RuntimeID, model.RespawnEmpireSpawn)
	require.True(t, ok)
	assert.Equal(t, p.State.ZoneID, zoneID)
	assert.Equal(t, p.State.MaxHealth, p.State.Health)
	assert.False(t, p.DeathAnnounced)
}

func TestTick_EnemyDeathAwardsKillerAndRespawns(t *testing.T) {
	w := newTestWorld(t)
	enemies := w.GetEnemiesInZone(300)
	require.NotEmpty(t, enemies)
	target := enemies[0]
	p := spawnTestPlayer(w, model.ClassWarrior, 300, target.Position)
	p.State.Attack = 999

	for !target.IsDead() {
		_, err := w.Attack(p.RuntimeID, target.ID)
		require.NoError(t, err)
	}

	before := w.GetEnemiesInZone(300)
	result := w.Tick(0.05)
	require.Len(t, result.EnemyKills, 1)
	kill := result.EnemyKills[0]
	assert.Equal(t, p.RuntimeID, kill.KillerRuntimeID)
	assert.Greater(t, kill.ExperienceGain, int64(0))
	assert.Greater(t, kill.GoldGain, int64(0))
	assert.NotZero(t, kill.RespawnEnemyID)

	after := w.GetEnemiesInZone(300)
	assert.Equal(t, len(before), len(after))
}

func TestTick_PlayerDeathReportedOnce(t *testing.T) {
	w := newTestWorld(t)
	p := spawnTestPlayer(w, model.ClassWarrior, 1, model.Vec3{})
	p.State.Health = 0

	result := w.Tick(0.05)
	require.Len(t, result.Deaths, 1)
	assert.Equal(t, p.RuntimeID, result.Deaths[0].EntityID)

	result2 := w.Tick(0.05)
	assert.Empty(t, result2.Deaths)
}
