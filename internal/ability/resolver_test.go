package ability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/coreserver/internal/ability"
	"github.com/embervale/coreserver/internal/model"
)

func newCaster(class model.Class, level int32, mana int32) *model.Player {
	state := model.NewPersistedState(class, model.EmpireRed)
	state.Level = level
	state.Mana = mana
	state.MaxMana = mana + 50
	ch := model.Character{Class: class}
	p := model.NewPlayer(1, ch, state, model.Inventory{}, model.Equipment{})
	return p
}

func TestResolve_UnknownAbilityNeverReachesResolve(t *testing.T) {
	cat := ability.NewCatalog()
	_, ok := cat.Get(9999)
	assert.False(t, ok)
}

func TestResolve_DeadCasterFails(t *testing.T) {
	caster := newCaster(model.ClassWarrior, 1, 50)
	caster.State.Health = 0
	def, ok := ability.NewCatalog().Get(10)
	require.True(t, ok)

	res := ability.Resolve(def, ability.Input{Caster: caster})
	assert.Equal(t, "You are dead", res.Reason)
}

func TestResolve_WrongClassFails(t *testing.T) {
	caster := newCaster(model.ClassNinja, 1, 50)
	def, ok := ability.NewCatalog().Get(10) // Power Strike, Warrior-only
	require.True(t, ok)

	res := ability.Resolve(def, ability.Input{Caster: caster})
	assert.Contains(t, res.Reason, "Warrior")
}

func TestResolve_InsufficientLevelFails(t *testing.T) {
	caster := newCaster(model.ClassWarrior, 1, 50)
	def, ok := ability.NewCatalog().Get(11) // Battle Cry, requires level 5
	require.True(t, ok)

	res := ability.Resolve(def, ability.Input{Caster: caster})
	assert.Contains(t, res.Reason, "level")
}

func TestResolve_NotEnoughManaFails(t *testing.T) {
	caster := newCaster(model.ClassWarrior, 1, 0)
	def, ok := ability.NewCatalog().Get(10)
	require.True(t, ok)
	enemy := &model.Enemy{ID: 5, Health: 50, MaxHealth: 50}

	res := ability.Resolve(def, ability.Input{Caster: caster, HasTarget: true, TargetEnemy: enemy, Distance: 1})
	assert.Equal(t, "Not enough mana", res.Reason)
}

func TestResolve_OnCooldownFails(t *testing.T) {
	caster := newCaster(model.ClassWarrior, 1, 50)
	caster.StartCooldown(10, 2.5)
	def, ok := ability.NewCatalog().Get(10)
	require.True(t, ok)
	enemy := &model.Enemy{ID: 5, Health: 50, MaxHealth: 50}

	res := ability.Resolve(def, ability.Input{Caster: caster, HasTarget: true, TargetEnemy: enemy, Distance: 1})
	assert.Equal(t, "On cooldown", res.Reason)
}

func TestResolve_OutOfRangeFails(t *testing.T) {
	caster := newCaster(model.ClassWarrior, 1, 50)
	def, ok := ability.NewCatalog().Get(10) // range 3
	require.True(t, ok)
	enemy := &model.Enemy{ID: 5, Health: 50, MaxHealth: 50}

	res := ability.Resolve(def, ability.Input{Caster: caster, HasTarget: true, TargetEnemy: enemy, Distance: 99})
	assert.Equal(t, "Out of range", res.Reason)
}

func TestResolve_SuccessfulDamageDeductsManaAndStartsCooldown(t *testing.T) {
	caster := newCaster(model.ClassWarrior, 1, 50)
	caster.State.Attack = 20
	def, ok := ability.NewCatalog().Get(10) // Power Strike: base 12, scaling 0.8
	require.True(t, ok)
	enemy := &model.Enemy{ID: 5, Health: 50, MaxHealth: 50}

	res := ability.Resolve(def, ability.Input{Caster: caster, HasTarget: true, TargetEnemy: enemy, Distance: 1})
	require.Empty(t, res.Reason)

	assert.Equal(t, int32(50-def.ManaCost), caster.State.Mana)
	assert.Equal(t, def.Cooldown, caster.CooldownRemaining(def.ID))
	require.Len(t, res.Damage, 1)
	assert.Equal(t, int32(12+int32(20*0.8)), res.Damage[0].Amount)
	assert.Equal(t, int32(50)-res.Damage[0].Amount, enemy.Health)
}

func TestResolve_AllyHealDefaultsToSelf(t *testing.T) {
	caster := newCaster(model.ClassShaman, 1, 50)
	caster.State.Health = 10
	def, ok := ability.NewCatalog().Get(30) // Healing Wave
	require.True(t, ok)

	res := ability.Resolve(def, ability.Input{Caster: caster})
	require.Empty(t, res.Reason)
	require.Len(t, res.Heals, 1)
	assert.Equal(t, caster.RuntimeID, res.Heals[0].PlayerRuntimeID)
	assert.Greater(t, res.Heals[0].Amount, int32(0))
}

func TestResolve_MultiEffectAbilityProducesDistinctBuffIDs(t *testing.T) {
	caster := newCaster(model.ClassSura, 10, 50)
	def, ok := ability.NewCatalog().Get(21) // Crippling Curse: DebuffAttack + Slow
	require.True(t, ok)
	enemy := &model.Enemy{ID: 5, Health: 50, MaxHealth: 50}

	res := ability.Resolve(def, ability.Input{Caster: caster, HasTarget: true, TargetEnemy: enemy, Distance: 1})
	require.Empty(t, res.Reason)
	require.Len(t, res.Buffs, 2)
	assert.NotEqual(t, res.Buffs[0].BuffID, res.Buffs[1].BuffID)
	require.Len(t, enemy.ActiveBuffs, 2)
}

func TestResolve_StunAppliesControlBuffToEnemy(t *testing.T) {
	caster := newCaster(model.ClassWarrior, 10, 50)
	def, ok := ability.NewCatalog().Get(12) // Concussive Blow: Stun
	require.True(t, ok)
	enemy := &model.Enemy{ID: 5, Health: 50, MaxHealth: 50}

	res := ability.Resolve(def, ability.Input{Caster: caster, HasTarget: true, TargetEnemy: enemy, Distance: 1})
	require.Empty(t, res.Reason)
	assert.True(t, enemy.IsStunned())
}
