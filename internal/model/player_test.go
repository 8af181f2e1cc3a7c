package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPlayer() *Player {
	ch := Character{CharacterID: 1, AccountID: 1, Name: "Ari", Class: ClassWarrior, Empire: EmpireRed}
	state := NewPersistedState(ClassWarrior, EmpireRed)
	return NewPlayer(1, ch, state, Inventory{}, Equipment{})
}

func TestPlayer_TakeDamage_ClampsAtZero(t *testing.T) {
	p := newTestPlayer()
	p.State.Health = 10

	applied := p.TakeDamage(999)
	assert.Equal(t, int32(10), applied)
	assert.Equal(t, int32(0), p.State.Health)
	assert.True(t, p.IsDead())
}

func TestPlayer_TakeDamage_NegativeDamageIsNoop(t *testing.T) {
	p := newTestPlayer()
	before := p.State.Health

	applied := p.TakeDamage(-50)
	assert.Equal(t, int32(0), applied)
	assert.Equal(t, before, p.State.Health)
}

func TestPlayer_Heal_ClampsAtMaxHealth(t *testing.T) {
	p := newTestPlayer()
	p.State.Health = p.State.MaxHealth - 5

	healed := p.Heal(100)
	assert.Equal(t, int32(5), healed)
	assert.Equal(t, p.State.MaxHealth, p.State.Health)
}

func TestPlayer_ApplyBuff_LatestWinsByBuffID(t *testing.T) {
	p := newTestPlayer()
	p.ApplyBuff(ActiveBuff{BuffID: 1, Kind: BuffAttackUp, Amount: 5, RemainingSeconds: 10})
	p.ApplyBuff(ActiveBuff{BuffID: 1, Kind: BuffAttackUp, Amount: 20, RemainingSeconds: 5})

	assert.Len(t, p.ActiveBuffs, 1)
	assert.Equal(t, float32(20), p.ActiveBuffs[0].Amount)
}

func TestPlayer_EffectiveAttack_AppliesBuffsAndFloorsAtZero(t *testing.T) {
	p := newTestPlayer()
	p.State.Attack = 10
	p.ApplyBuff(ActiveBuff{BuffID: 1, Kind: BuffAttackUp, Amount: 5})
	assert.Equal(t, int32(15), p.EffectiveAttack())

	p.ApplyBuff(ActiveBuff{BuffID: 2, Kind: BuffAttackDown, Amount: 999})
	assert.Equal(t, int32(0), p.EffectiveAttack())
}

func TestPlayer_StartAndTickCooldowns(t *testing.T) {
	p := newTestPlayer()
	p.StartCooldown(7, 2.0)
	assert.Equal(t, float32(2.0), p.CooldownRemaining(7))

	p.TickCooldowns(1.5)
	assert.InDelta(t, 0.5, p.CooldownRemaining(7), 1e-5)

	p.TickCooldowns(1.0)
	assert.Equal(t, float32(0), p.CooldownRemaining(7))
}
