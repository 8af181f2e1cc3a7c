package ability

import "github.com/embervale/coreserver/internal/model"

// DamageOutcome reports damage dealt to an enemy by an effect.
type DamageOutcome struct {
	EnemyID   uint32
	Amount    int32
	NewHealth int32
}

// HealOutcome reports healing applied to a player by an effect.
type HealOutcome struct {
	PlayerRuntimeID uint32
	Amount          int32
	NewHealth       int32
}

// BuffOutcome reports a timed effect registered on a player or enemy.
type BuffOutcome struct {
	TargetID uint32
	IsEnemy  bool
	BuffID   uint32
	Kind     model.BuffKind
	Duration float32
}

// Result is the outcome of a successful ability resolution. Reason is
// empty on success; a non-empty Reason means every other field is zero
// and the caller should emit AbilityFailed(Reason) without mutating
// anything.
type Result struct {
	Reason string

	ManaSpent int32
	Cooldown  float32

	Damage []DamageOutcome
	Heals  []HealOutcome
	Buffs  []BuffOutcome
}

func failed(reason string) Result { return Result{Reason: reason} }

// Input bundles everything Resolve needs about the caster, the
// already-located target(s), and distance. All resolution against
// world state (position, zone membership, entity lookup) happens in
// the caller; Resolve only judges caster/ability/target eligibility and
// computes effect outcomes.
type Input struct {
	Caster *model.Player

	HasTarget    bool
	TargetPlayer *model.Player // set when Ability.TargetType == TargetAlly and a target was named
	TargetEnemy  *model.Enemy  // set when Ability.TargetType == TargetEnemy
	Distance     float32       // caster-to-target distance; ignored when no single target applies

	// AreaEnemies/AreaPlayers are pre-filtered by the caller (radius
	// around self or around TargetEnemy/TargetPlayer) for
	// AreaAroundSelf/AreaAroundTarget abilities.
	AreaEnemies []*model.Enemy
	AreaPlayers []*model.Player
}

// Resolve runs the ability pipeline for an already looked-up
// definition (the caller rejects unknown ability ids): dead/stunned
// caster, class/level requirement, cooldown, mana, target
// validation. Each step short-circuits with a specific failure reason
// before any state is mutated. On success it deducts mana, starts the
// cooldown, and applies every effect, returning the outcomes for the
// session layer to broadcast.
func Resolve(def Definition, in Input) Result {
	caster := in.Caster

	if caster.IsDead() {
		return failed("You are dead")
	}
	if caster.IsStunned() {
		return failed("You are stunned")
	}
	if def.ClassRestriction != nil && *def.ClassRestriction != caster.Class {
		return failed("Requires " + def.ClassRestriction.String() + " class")
	}
	if caster.State.Level < def.LevelRequirement {
		return failed("Requires higher level")
	}
	if remaining := caster.CooldownRemaining(def.ID); remaining > 0 {
		return failed("On cooldown")
	}
	if caster.State.Mana < def.ManaCost {
		return failed("Not enough mana")
	}

	switch def.TargetType {
	case model.TargetEnemy:
		if !in.HasTarget || in.TargetEnemy == nil {
			return failed("No target")
		}
		if in.Distance > def.Range {
			return failed("Out of range")
		}
	case model.TargetAlly:
		// Ally abilities land on self when no target was named; allies
		// other than self are not yet selectable from the client.
		if in.HasTarget && in.TargetPlayer != nil && in.Distance > def.Range {
			return failed("Out of range")
		}
	case model.TargetAreaAroundTarget:
		if !in.HasTarget {
			return failed("No target")
		}
	}

	caster.State.Mana -= def.ManaCost
	caster.StartCooldown(def.ID, def.Cooldown)

	result := Result{ManaSpent: def.ManaCost, Cooldown: def.Cooldown}

	allyTarget := in.TargetPlayer
	if allyTarget == nil {
		allyTarget = caster
	}

	for idx, eff := range def.Effects {
		buffID := effectBuffID(def.ID, idx)
		switch {
		case eff.Kind == EffectDamage || eff.Kind == EffectDamageOverTime:
			applyDamageEffect(def, eff, buffID, caster, &in, &result)
		case eff.Kind == EffectDebuffAttack || eff.Kind == EffectDebuffDefense ||
			eff.Kind == EffectSlow || eff.Kind == EffectStun:
			applyEnemyBuffEffect(eff, buffID, &in, &result)
		case eff.Kind == EffectHeal:
			applyHeal(eff, caster, allyTarget, &result)
		case eff.Kind == EffectHealOverTime || eff.Kind == EffectBuffAttack ||
			eff.Kind == EffectBuffDefense || eff.Kind == EffectBuffAttackSpeed:
			applyPlayerBuffEffect(eff, buffID, allyTarget, &result)
		}
	}

	return result
}

func damageTargets(def Definition, in *Input) []*model.Enemy {
	if def.TargetType == model.TargetAreaAroundSelf || def.TargetType == model.TargetAreaAroundTarget {
		return in.AreaEnemies
	}
	if in.TargetEnemy != nil {
		return []*model.Enemy{in.TargetEnemy}
	}
	return nil
}

// effectBuffID derives a stable buff id from an ability id and the
// index of the effect within its effect list, so an ability with
// several timed effects (e.g. a debuff plus a slow) registers one
// ActiveBuff per effect instead of the effects overwriting each other
// under the "latest wins, by BuffID" policy. Re-casting the same
// ability still overwrites each of its own effect slots.
func effectBuffID(abilityID uint32, effectIndex int) uint32 {
	return abilityID*16 + uint32(effectIndex)
}

func applyDamageEffect(def Definition, eff Effect, buffID uint32, caster *model.Player, in *Input, result *Result) {
	for _, enemy := range damageTargets(def, in) {
		if enemy == nil || enemy.IsDead() {
			continue
		}
		var damage int32
		if eff.Kind == EffectDamage {
			damage = int32(float32(eff.Base) + float32(caster.EffectiveAttack())*eff.AttackScaling)
		} else {
			damage = eff.PerTick
		}
		actual := enemy.TakeDamage(damage)
		enemy.TargetID = caster.RuntimeID
		result.Damage = append(result.Damage, DamageOutcome{EnemyID: enemy.ID, Amount: actual, NewHealth: enemy.Health})

		if eff.Kind == EffectDamageOverTime && eff.Duration > 0 {
			buff := model.ActiveBuff{
				BuffID: buffID, Kind: eff.BuffKind(), Amount: float32(eff.PerTick),
				TickInterval: eff.Interval, RemainingSeconds: eff.Duration,
			}
			enemy.ApplyBuff(buff)
			result.Buffs = append(result.Buffs, BuffOutcome{TargetID: enemy.ID, IsEnemy: true, BuffID: buffID, Kind: eff.BuffKind(), Duration: eff.Duration})
		}
	}
}

func applyEnemyBuffEffect(eff Effect, buffID uint32, in *Input, result *Result) {
	targets := []*model.Enemy{in.TargetEnemy}
	if len(in.AreaEnemies) > 0 {
		targets = in.AreaEnemies
	}
	for _, enemy := range targets {
		if enemy == nil || enemy.IsDead() {
			continue
		}
		amount := eff.Amount
		if eff.Kind == EffectSlow {
			amount = eff.Multiplier
		}
		buff := model.ActiveBuff{BuffID: buffID, Kind: eff.BuffKind(), Amount: amount, RemainingSeconds: eff.Duration}
		enemy.ApplyBuff(buff)
		result.Buffs = append(result.Buffs, BuffOutcome{TargetID: enemy.ID, IsEnemy: true, BuffID: buffID, Kind: buff.Kind, Duration: eff.Duration})
	}
}

func applyHeal(eff Effect, caster, target *model.Player, result *Result) {
	heal := int32(float32(eff.HealBase) + float32(target.State.MaxHealth)*eff.HealthScaling)
	actual := target.Heal(heal)
	if actual > 0 {
		result.Heals = append(result.Heals, HealOutcome{PlayerRuntimeID: target.RuntimeID, Amount: actual, NewHealth: target.State.Health})
	}
}

func applyPlayerBuffEffect(eff Effect, buffID uint32, target *model.Player, result *Result) {
	amount := eff.Amount
	tick := eff.PerTick
	if eff.Kind == EffectHealOverTime && tick == 0 {
		tick = int32(float32(target.State.MaxHealth) * 0.02)
	}
	if eff.Kind == EffectBuffAttackSpeed {
		amount = eff.Multiplier
	}
	buff := model.ActiveBuff{
		BuffID: buffID, Kind: eff.BuffKind(), Amount: amount,
		TickInterval: eff.Interval, RemainingSeconds: eff.Duration,
	}
	if eff.Kind == EffectHealOverTime {
		buff.Amount = float32(tick)
	}
	target.ApplyBuff(buff)
	result.Buffs = append(result.Buffs, BuffOutcome{TargetID: target.RuntimeID, IsEnemy: false, BuffID: buffID, Kind: buff.Kind, Duration: eff.Duration})
}
