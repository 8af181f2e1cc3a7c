package world

import (
	"fmt"
	"math/rand"

	"github.com/embervale/coreserver/internal/ability"
	"github.com/embervale/coreserver/internal/model"
)

// PlayerAttackRange is the maximum distance (meters, XZ-plane) a melee
// Attack request may cover.
const PlayerAttackRange = 5.0

// MeleeCritChance is the player->enemy melee critical-hit probability.
const MeleeCritChance = 0.10

// AttackResult is the outcome of a successful melee Attack.
type AttackResult struct {
	TargetID  uint32
	Damage    int32
	NewHealth int32
	WasCrit   bool
}

// Attack resolves a melee strike from runtimeID against an enemy.
// Damage = weapon.damage + attack_power/2 (unarmed = attack_power/2),
// doubled on a 10% critical roll. Returns an error for an unknown
// attacker/target, a dead attacker, or an out-of-range target.
func (w *World) Attack(runtimeID uint32, targetEnemyID uint32) (AttackResult, error) {
	attacker, ok := w.players[runtimeID]
	if !ok {
		return AttackResult{}, fmt.Errorf("unknown attacker")
	}
	if attacker.IsDead() {
		return AttackResult{}, fmt.Errorf("you are dead")
	}
	enemy, ok := w.enemies[targetEnemyID]
	if !ok || enemy.IsDead() {
		return AttackResult{}, fmt.Errorf("invalid target")
	}
	if attacker.State.Position.DistanceXZ(enemy.Position) > PlayerAttackRange {
		return AttackResult{}, fmt.Errorf("out of range")
	}

	base := w.meleeDamage(attacker)
	crit := rand.Float64() < MeleeCritChance
	damage := base
	if crit {
		damage *= 2
	}
	actual := enemy.TakeDamage(damage)
	enemy.TargetID = runtimeID

	return AttackResult{TargetID: enemy.ID, Damage: actual, NewHealth: enemy.Health, WasCrit: crit}, nil
}

// meleeDamage computes weapon.damage + attack_power/2, or attack_power/2
// unarmed.
func (w *World) meleeDamage(p *model.Player) int32 {
	attack := p.EffectiveAttack()
	if p.Equipment.WeaponID != 0 {
		if def, ok := w.items.Get(p.Equipment.WeaponID); ok && def.WeaponStats != nil {
			return def.WeaponStats.Damage + attack/2
		}
	}
	return attack / 2
}

// UseAbilityResult bundles the caster-facing and broadcast-facing
// outcome of a UseAbility request, mirroring ability.Result but
// resolved against live world entities.
type UseAbilityResult struct {
	Definition ability.Definition
	Outcome    ability.Result
}

// UseAbility resolves a caster's UseAbility request against the ability
// catalog and live world state: target lookup/range happens here, the
// eligibility and effect pipeline happens in the ability package.
func (w *World) UseAbility(runtimeID uint32, abilityID uint32, targetID uint32, hasTarget bool) (UseAbilityResult, error) {
	caster, ok := w.players[runtimeID]
	if !ok {
		return UseAbilityResult{}, fmt.Errorf("unknown caster")
	}
	def, ok := w.abilities.Get(abilityID)
	if !ok {
		return UseAbilityResult{Outcome: ability.Result{Reason: "Unknown ability"}}, nil
	}

	in := ability.Input{Caster: caster, HasTarget: hasTarget}

	switch def.TargetType {
	case model.TargetEnemy:
		if hasTarget {
			if enemy, ok := w.enemies[targetID]; ok {
				in.TargetEnemy = enemy
				in.Distance = caster.State.Position.DistanceXZ(enemy.Position)
			}
		}
	case model.TargetAlly:
		if hasTarget && targetID != runtimeID {
			if target, ok := w.players[targetID]; ok {
				in.TargetPlayer = target
				in.Distance = caster.State.Position.DistanceXZ(target.State.Position)
			}
		}
	case model.TargetAreaAroundSelf:
		in.AreaEnemies = w.enemiesWithinRadius(caster.State.Position, caster.State.ZoneID, def.Range)
	case model.TargetAreaAroundTarget:
		if hasTarget {
			if enemy, ok := w.enemies[targetID]; ok {
				in.TargetEnemy = enemy
				in.AreaEnemies = w.enemiesWithinRadius(enemy.Position, enemy.ZoneID, def.Range)
			}
		}
	}

	result := ability.Resolve(def, in)
	return UseAbilityResult{Definition: def, Outcome: result}, nil
}

func (w *World) enemiesWithinRadius(center model.Vec3, zoneID int32, radius float32) []*model.Enemy {
	var out []*model.Enemy
	for _, e := range w.enemies {
		if e.ZoneID != zoneID || e.IsDead() {
			continue
		}
		if e.Position.DistanceXZ(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}
