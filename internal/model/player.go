package model

// ActionBarSize is the number of hotkey slots delivered to the client
// once on character select.
const ActionBarSize = 9

// Player is the live runtime aggregate for a connected, in-game
// character. RuntimeID is reassigned every login and is the identity
// used in all broadcast messages; CharacterID is the stable persisted
// identity.
type Player struct {
	RuntimeID   uint32
	CharacterID int64
	AccountID   int64
	Name        string
	Class       Class
	Gender      Gender
	Empire      Empire

	State PersistedState

	Inventory Inventory
	Equipment Equipment

	Velocity       Vec3
	AnimationState AnimationState
	ActiveBuffs    []ActiveBuff
	Cooldowns      map[uint32]float32 // ability_id -> remaining_seconds
	ActionBar      [ActionBarSize]uint32

	DeathAnnounced bool
	LastAttackerID uint32 // enemy id of the most recent hit, reported as the killer on death
}

// NewPlayer builds a runtime Player from persisted identity/state.
func NewPlayer(runtimeID uint32, ch Character, state PersistedState, inv Inventory, equip Equipment) *Player {
	return &Player{
		RuntimeID:   runtimeID,
		CharacterID: ch.CharacterID,
		AccountID:   ch.AccountID,
		Name:        ch.Name,
		Class:       ch.Class,
		Gender:      ch.Gender,
		Empire:      ch.Empire,
		State:       state,
		Inventory:   inv,
		Equipment:   equip,
		Cooldowns:   make(map[uint32]float32),
	}
}

// IsDead reports whether the player's health has reached zero.
func (p *Player) IsDead() bool {
	return p.State.Health <= 0
}

// IsStunned reports whether any active buff currently disables acting.
func (p *Player) IsStunned() bool {
	for _, b := range p.ActiveBuffs {
		if b.IsControl() {
			return true
		}
	}
	return false
}

// TakeDamage reduces health by damage and returns the actual amount
// applied (damage is assumed already mitigated by the caller).
func (p *Player) TakeDamage(damage int32) int32 {
	if damage < 0 {
		damage = 0
	}
	before := p.State.Health
	p.State.Health -= damage
	if p.State.Health < 0 {
		p.State.Health = 0
	}
	return before - p.State.Health
}

// Heal restores health up to MaxHealth and returns the actual amount
// restored (0 if already at full health).
func (p *Player) Heal(amount int32) int32 {
	if amount < 0 {
		amount = 0
	}
	before := p.State.Health
	p.State.Health += amount
	if p.State.Health > p.State.MaxHealth {
		p.State.Health = p.State.MaxHealth
	}
	return p.State.Health - before
}

// RestoreMana restores mana up to MaxMana and returns the actual amount
// restored.
func (p *Player) RestoreMana(amount int32) int32 {
	if amount < 0 {
		amount = 0
	}
	before := p.State.Mana
	p.State.Mana += amount
	if p.State.Mana > p.State.MaxMana {
		p.State.Mana = p.State.MaxMana
	}
	return p.State.Mana - before
}

// CooldownRemaining returns the remaining seconds on abilityID's
// cooldown, or 0 if ready.
func (p *Player) CooldownRemaining(abilityID uint32) float32 {
	return p.Cooldowns[abilityID]
}

// StartCooldown begins a cooldown of `seconds` on abilityID.
func (p *Player) StartCooldown(abilityID uint32, seconds float32) {
	if seconds <= 0 {
		delete(p.Cooldowns, abilityID)
		return
	}
	p.Cooldowns[abilityID] = seconds
}

// TickCooldowns decrements every active cooldown by delta seconds,
// clamping at zero and removing expired entries.
func (p *Player) TickCooldowns(delta float32) {
	for id, remaining := range p.Cooldowns {
		remaining -= delta
		if remaining <= 0 {
			delete(p.Cooldowns, id)
		} else {
			p.Cooldowns[id] = remaining
		}
	}
}

// EffectiveAttack returns base attack adjusted by active BuffAttackUp/
// BuffAttackDown instances, floored at 0.
func (p *Player) EffectiveAttack() int32 {
	v := p.State.Attack
	for _, b := range p.ActiveBuffs {
		switch b.Kind {
		case BuffAttackUp:
			v += int32(b.Amount)
		case BuffAttackDown:
			v -= int32(b.Amount)
		}
	}
	if v < 0 {
		v = 0
	}
	return v
}

// EffectiveDefense returns base defense adjusted by active BuffDefenseUp/
// BuffDefenseDown instances, floored at 0.
func (p *Player) EffectiveDefense() int32 {
	v := p.State.Defense
	for _, b := range p.ActiveBuffs {
		switch b.Kind {
		case BuffDefenseUp:
			v += int32(b.Amount)
		case BuffDefenseDown:
			v -= int32(b.Amount)
		}
	}
	if v < 0 {
		v = 0
	}
	return v
}

// AttackSpeedMultiplier returns the product of every active
// BuffAttackSpeedUp multiplier, or 1.0 with none active.
func (p *Player) AttackSpeedMultiplier() float32 {
	mult := float32(1.0)
	for _, b := range p.ActiveBuffs {
		if b.Kind == BuffAttackSpeedUp {
			mult *= b.Amount
		}
	}
	return mult
}

// ApplyBuff adds or overwrites (latest wins, by BuffID) an active buff.
func (p *Player) ApplyBuff(b ActiveBuff) {
	for i := range p.ActiveBuffs {
		if p.ActiveBuffs[i].BuffID == b.BuffID {
			p.ActiveBuffs[i] = b
			return
		}
	}
	p.ActiveBuffs = append(p.ActiveBuffs, b)
}

// UseItem applies an item's effects and consumes one unit from the
// slot. Returns false if the slot is empty or the item is unknown.
func (p *Player) UseItem(slot int, lookup ItemLookup) bool {
	if slot < 0 || slot >= InventorySize {
		return false
	}
	s := &p.Inventory.Slots[slot]
	if s.Empty() {
		return false
	}
	def, ok := lookup.Get(s.ItemID)
	if !ok {
		return false
	}
	for _, eff := range def.Effects {
		switch eff.Kind {
		case EffectRestoreHealth:
			p.Heal(eff.Amount)
		case EffectRestoreMana:
			p.RestoreMana(eff.Amount)
		case EffectIncreaseAttack:
			p.State.Attack += eff.Amount
		case EffectIncreaseDefense:
			p.State.Defense += eff.Amount
		case EffectIncreaseSpeed:
			// Movement speed is client-authoritative in this core; no
			// server-side speed stat exists to adjust.
		}
	}
	s.Quantity--
	if s.Quantity <= 0 {
		*s = InventorySlot{}
	}
	return true
}
