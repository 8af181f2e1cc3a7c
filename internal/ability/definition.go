// Package ability resolves ability-use requests against caster state and
// applies their effects. Grounded on the original server's
// process_ability pipeline (world/mod.rs), reshaped into Go's idiomatic
// explicit-error-return style instead of early-return message-pushing.
package ability

import "github.com/embervale/coreserver/internal/model"

// EffectKind is the tagged union of things an ability can do to a target.
type EffectKind uint8

const (
	EffectDamage EffectKind = iota
	EffectHeal
	EffectDamageOverTime
	EffectHealOverTime
	EffectBuffAttack
	EffectBuffDefense
	EffectBuffAttackSpeed
	EffectDebuffAttack
	EffectDebuffDefense
	EffectSlow
	EffectStun
)

// Effect is one entry in an ability's effect list. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type Effect struct {
	Kind EffectKind

	// Damage / DamageOverTime
	Base          int32
	AttackScaling float32

	// Heal / HealOverTime
	HealBase      int32
	HealthScaling float32

	// DamageOverTime / HealOverTime
	PerTick  int32 // 0 for HealOverTime means 2% of target max_health per tick
	Interval float32

	// BuffAttack / BuffDefense / DebuffAttack / DebuffDefense
	Amount float32

	// BuffAttackSpeed / Slow
	Multiplier float32

	// Duration applies to every effect except instant Damage/Heal.
	Duration float32
}

// BuffKind maps an Effect to the ActiveBuff kind it produces, for the
// effects that persist over time.
func (e Effect) BuffKind() model.BuffKind {
	switch e.Kind {
	case EffectDamageOverTime:
		return model.BuffDamageOverTime
	case EffectHealOverTime:
		return model.BuffHealOverTime
	case EffectBuffAttack:
		return model.BuffAttackUp
	case EffectBuffDefense:
		return model.BuffDefenseUp
	case EffectBuffAttackSpeed:
		return model.BuffAttackSpeedUp
	case EffectDebuffAttack:
		return model.BuffAttackDown
	case EffectDebuffDefense:
		return model.BuffDefenseDown
	case EffectSlow:
		return model.BuffSlow
	case EffectStun:
		return model.BuffStun
	default:
		return model.BuffAttackUp
	}
}

// Definition describes one ability's requirements and effects, loaded
// once at boot.
type Definition struct {
	ID               uint32
	Name             string
	ClassRestriction *model.Class
	LevelRequirement int32
	ManaCost         int32
	Cooldown         float32
	Range            float32
	TargetType       model.TargetType
	Effects          []Effect
}

// IsInstant reports whether Kind applies immediately rather than
// registering a timed buff.
func (k EffectKind) IsInstant() bool {
	return k == EffectDamage || k == EffectHeal
}

// TargetsEnemy reports whether Kind is meant to land on a hostile
// entity rather than the caster or an ally.
func (k EffectKind) TargetsEnemy() bool {
	switch k {
	case EffectDamage, EffectDamageOverTime, EffectDebuffAttack, EffectDebuffDefense, EffectSlow, EffectStun:
		return true
	default:
		return false
	}
}
