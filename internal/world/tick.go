package world

import (
	"math/rand"

	"github.com/embervale/coreserver/internal/data"
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/navigation"
)

const (
	aggroRange        = 10.0
	attackRange       = 2.0
	attackCooldown    = float32(2.0)
	leashRange        = 15.0
	returnIdleRange   = 5.0
	enemyDropPosition = 1.0 // +/- jitter meters applied to loot drops
	respawnJitter     = 5.0 // +/- meters applied to same-type respawn position
)

// DamageEvent reports damage dealt to a player by an enemy during a
// tick's AI step.
type DamageEvent struct {
	EnemyID   uint32
	PlayerID  uint32
	Amount    int32
	NewHealth int32
}

// DeathEvent reports an entity (player or enemy) reaching zero health
// for the first time this death. KillerID is the enemy id that landed
// the killing blow on a player, or the killer player's runtime id for
// an enemy death; 0 if no attacker is on record.
type DeathEvent struct {
	EntityID uint32
	IsEnemy  bool
	KillerID uint32
}

// EnemyKillOutcome bundles the reward and loot pipeline triggered when
// an enemy's health reaches zero with an aggroing killer.
type EnemyKillOutcome struct {
	EnemyID         uint32
	KillerRuntimeID uint32
	ExperienceGain  int64
	GoldGain        int64
	Drops           []*WorldItem
	RespawnEnemyID  uint32
	RespawnPosition model.Vec3
}

// LevelUpEvent reports a player crossing a level threshold.
type LevelUpEvent struct {
	RuntimeID int64 // player RuntimeID, stored widened; broadcastTickResult narrows it back to uint32
	NewLevel  int32
	MaxHealth int32
	MaxMana   int32
	Attack    int32
	Defense   int32
}

// BuffTickEvent reports a DoT/HoT periodic application.
type BuffTickEvent struct {
	EntityID  uint32
	IsEnemy   bool
	Amount    int32
	IsHeal    bool
	NewHealth int32
}

// BuffExpiredEvent reports a timed effect running out.
type BuffExpiredEvent struct {
	EntityID uint32
	IsEnemy  bool
	BuffID   uint32
}

// TickResult aggregates everything that happened during one Tick call,
// for the session layer to translate into protocol broadcasts.
type TickResult struct {
	Tick uint64

	EnemyAttacks []DamageEvent
	Deaths       []DeathEvent
	EnemyKills   []EnemyKillOutcome
	LevelUps     []LevelUpEvent
	BuffTicks    []BuffTickEvent
	BuffExpired  []BuffExpiredEvent
}

// Tick advances the simulation by delta seconds, in five steps: enemy
// AI (which applies enemy attacks as they land), terrain clamping,
// reporting player deaths, processing enemy deaths, and advancing
// ability/buff timers.
func (w *World) Tick(delta float32) TickResult {
	w.tick++
	result := TickResult{Tick: w.tick}

	w.stepEnemyAI(delta, &result)
	w.clampToTerrain()
	w.stepPlayerDeaths(&result)
	w.stepEnemyDeaths(&result)
	w.stepAbilityTimers(delta, &result)

	return result
}

// stepEnemyAI advances every living, non-stunned enemy: leash check,
// nearest-target acquisition, context-steering movement, and in-range
// attacks, following the order in §4.3 step 1.
func (w *World) stepEnemyAI(delta float32, result *TickResult) {
	for _, e := range w.enemies {
		if e.AttackCooldown > 0 {
			e.AttackCooldown -= delta
			if e.AttackCooldown < 0 {
				e.AttackCooldown = 0
			}
		}
		if e.IsDead() || e.IsStunned() {
			continue
		}

		if e.Position.DistanceXZ(e.SpawnPosition) > e.LeashRange {
			w.moveEnemyToward(e, e.SpawnPosition, delta)
			continue
		}

		target := w.nearestPlayerInRange(e, aggroRange)
		if target == nil {
			w.returnToSpawnOrIdle(e, delta)
			continue
		}
		e.TargetID = target.RuntimeID

		dist := e.Position.DistanceXZ(target.State.Position)
		if dist <= attackRange {
			e.AnimationState = model.AnimationAttacking
			if e.AttackCooldown <= 0 {
				w.enemyAttack(e, target, result)
			}
			continue
		}
		w.moveEnemyToward(e, target.State.Position, delta)
	}
}

// nearestPlayerInRange returns the closest live in-zone player within
// radius meters, or nil.
func (w *World) nearestPlayerInRange(e *model.Enemy, radius float32) *model.Player {
	var nearest *model.Player
	nearestDist := radius
	for _, p := range w.players {
		if p.IsDead() || p.State.ZoneID != e.ZoneID {
			continue
		}
		d := e.Position.DistanceXZ(p.State.Position)
		if d <= nearestDist {
			nearest = p
			nearestDist = d
		}
	}
	return nearest
}

func (w *World) returnToSpawnOrIdle(e *model.Enemy, delta float32) {
	if e.Position.DistanceXZ(e.SpawnPosition) > returnIdleRange {
		w.moveEnemyToward(e, e.SpawnPosition, delta)
		return
	}
	e.AnimationState = model.AnimationIdle
}

func (w *World) moveEnemyToward(e *model.Enemy, dest model.Vec3, delta float32) {
	obstacles := w.zoneObstacles(e.ZoneID)
	dir, ok := navigation.Steer(e.Position, dest, obstacles)
	if !ok {
		e.AnimationState = model.AnimationIdle
		return
	}
	speed := navigation.EnemySpeed * e.SpeedMultiplier()
	e.Position.X += dir.X * speed * delta
	e.Position.Z += dir.Z * speed * delta
	e.Rotation = navigation.Heading(dir)
	e.AnimationState = model.AnimationRunning
}

func (w *World) zoneObstacles(zoneID int32) []navigation.Obstacle {
	if z, ok := w.zones.Get(zoneID); ok {
		return z.Obstacles
	}
	return nil
}

// enemyAttack applies one melee strike from an enemy to its target,
// mitigated by floor(defense/2); ability damage bypasses this
// mitigation entirely (handled in the ability package).
func (w *World) enemyAttack(e *model.Enemy, target *model.Player, result *TickResult) {
	e.AttackCooldown = attackCooldown
	mitigation := target.EffectiveDefense() / 2
	damage := e.EffectiveAttack() - mitigation
	if damage < 0 {
		damage = 0
	}
	actual := target.TakeDamage(damage)
	target.LastAttackerID = e.ID
	result.EnemyAttacks = append(result.EnemyAttacks, DamageEvent{
		EnemyID: e.ID, PlayerID: target.RuntimeID, Amount: actual, NewHealth: target.State.Health,
	})
}

// groundOffset lifts an enemy's clamped Y slightly above the sampled
// terrain height.
const groundOffset = 0.1

// clampToTerrain snaps every live enemy's Y coordinate to its zone's
// heightmap sample plus groundOffset. Player position is client-
// reported and not terrain-clamped here (no anti-cheat validation is a
// declared non-goal).
func (w *World) clampToTerrain() {
	for _, e := range w.enemies {
		if e.IsDead() {
			continue
		}
		if z, ok := w.zones.Get(e.ZoneID); ok {
			e.Position.Y = z.TerrainHeight(e.Position.X, e.Position.Z) + groundOffset
		}
	}
}

// stepPlayerDeaths reports newly-dead players. A dead player stays dead
// until a RespawnRequest; no auto-respawn happens in the tick loop.
func (w *World) stepPlayerDeaths(result *TickResult) {
	for _, p := range w.players {
		if p.IsDead() && !p.DeathAnnounced {
			p.DeathAnnounced = true
			p.AnimationState = model.AnimationDead
			result.Deaths = append(result.Deaths, DeathEvent{EntityID: p.RuntimeID, IsEnemy: false, KillerID: p.LastAttackerID})
		}
	}
}

// stepEnemyDeaths awards the killer, rolls loot, and immediately
// respawns a fresh instance of the same enemy type.
func (w *World) stepEnemyDeaths(result *TickResult) {
	for id, e := range w.enemies {
		if !e.IsDead() || e.DeathAnnounced() {
			continue
		}
		e.MarkDeathAnnounced()
		result.Deaths = append(result.Deaths, DeathEvent{EntityID: id, IsEnemy: true, KillerID: e.TargetID})

		outcome := EnemyKillOutcome{EnemyID: id, KillerRuntimeID: e.TargetID}
		if killer, ok := w.players[e.TargetID]; ok {
			outcome.ExperienceGain = xpForKill(e.Level)
			outcome.GoldGain = goldForKill(e.Level)
			killer.State.Experience += outcome.ExperienceGain
			killer.State.Gold += outcome.GoldGain
			if lvl, leveled := awardLevelUps(killer); leveled {
				result.LevelUps = append(result.LevelUps, lvl)
			}
		}
		outcome.Drops = w.rollLoot(e)

		respawn := w.spawnEnemy(e.ZoneID, e.Type, jitterPosition(e.SpawnPosition, respawnJitter), e.Level)
		outcome.RespawnEnemyID = respawn.ID
		outcome.RespawnPosition = respawn.Position
		result.EnemyKills = append(result.EnemyKills, outcome)

		delete(w.enemies, id)
	}
}

// xpForKill awards experience scaled to the enemy's level. The
// original server's calculate_xp_for_enemy formula was not retained in
// its distilled source; this flat per-level award is this server's own
// choice, tuned to roughly match ThresholdForLevel's growth curve.
func xpForKill(enemyLevel int32) int64 {
	return int64(enemyLevel)*15 + 10
}

// goldForKill awards gold scaled to the enemy's level, alongside xpForKill.
func goldForKill(enemyLevel int32) int64 {
	return int64(enemyLevel)*5 + 5
}

// awardLevelUps applies PersistedState.Experience against
// data.ThresholdForLevel repeatedly (a single kill's XP can cross
// several thresholds at low levels) and recomputes stats on every
// level gained.
func awardLevelUps(p *model.Player) (LevelUpEvent, bool) {
	leveled := false
	var last LevelUpEvent
	for {
		threshold := data.ThresholdForLevel(p.State.Level)
		if threshold == 0 || p.State.Experience < threshold {
			break
		}
		p.State.Experience -= threshold
		p.State.Level++
		p.State.RecomputeForLevel(p.Class)
		leveled = true
		last = LevelUpEvent{
			RuntimeID: int64(p.RuntimeID), NewLevel: p.State.Level,
			MaxHealth: p.State.MaxHealth, MaxMana: p.State.MaxMana,
			Attack: p.State.Attack, Defense: p.State.Defense,
		}
	}
	return last, leveled
}

// rollLoot applies the enemy death drop table: 50% Goblin Ear, 20%
// Health Potion, each placed with +/-1m position jitter.
func (w *World) rollLoot(e *model.Enemy) []*WorldItem {
	var drops []*WorldItem
	if rand.Float64() < 0.50 {
		drops = append(drops, w.spawnWorldItem(e.ZoneID, model.GoblinEarItemID, 1, jitterPosition(e.Position, enemyDropPosition)))
	}
	if rand.Float64() < 0.20 {
		drops = append(drops, w.spawnWorldItem(e.ZoneID, model.HealthPotionItemID, 1, jitterPosition(e.Position, enemyDropPosition)))
	}
	return drops
}

func (w *World) spawnWorldItem(zoneID int32, itemID uint32, qty int32, pos model.Vec3) *WorldItem {
	w.nextItemID++
	wi := &WorldItem{InstanceID: w.nextItemID, ZoneID: zoneID, ItemID: itemID, Quantity: qty, Position: pos}
	w.worldItems[wi.InstanceID] = wi
	return wi
}

func jitterPosition(pos model.Vec3, radius float32) model.Vec3 {
	pos.X += (rand.Float32()*2 - 1) * radius
	pos.Z += (rand.Float32()*2 - 1) * radius
	return pos
}

// stepAbilityTimers decrements every cooldown and buff duration,
// applies due DoT/HoT ticks, and drops expired buffs.
func (w *World) stepAbilityTimers(delta float32, result *TickResult) {
	for _, p := range w.players {
		p.TickCooldowns(delta)
		p.ActiveBuffs = tickBuffs(p.ActiveBuffs, delta, p.RuntimeID, false, p, nil, result)
	}
	for id, e := range w.enemies {
		if e.IsDead() {
			continue
		}
		e.ActiveBuffs = tickBuffs(e.ActiveBuffs, delta, id, true, nil, e, result)
	}
}

// tickBuffs advances one entity's buff list, applying periodic
// DoT/HoT amounts and dropping expired entries. Exactly one of player/
// enemy is non-nil, matching isEnemy.
func tickBuffs(buffs []model.ActiveBuff, delta float32, entityID uint32, isEnemy bool, player *model.Player, enemy *model.Enemy, result *TickResult) []model.ActiveBuff {
	kept := buffs[:0]
	for _, b := range buffs {
		b.RemainingSeconds -= delta
		if b.RemainingSeconds <= 0 {
			result.BuffExpired = append(result.BuffExpired, BuffExpiredEvent{EntityID: entityID, IsEnemy: isEnemy, BuffID: b.BuffID})
			continue
		}
		if b.TickInterval > 0 {
			b.TimeSinceLastTick += delta
			if b.TimeSinceLastTick >= b.TickInterval {
				b.TimeSinceLastTick -= b.TickInterval
				applyPeriodicTick(b, entityID, isEnemy, player, enemy, result)
			}
		}
		kept = append(kept, b)
	}
	return kept
}

func applyPeriodicTick(b model.ActiveBuff, entityID uint32, isEnemy bool, player *model.Player, enemy *model.Enemy, result *TickResult) {
	amount := int32(b.Amount)
	switch {
	case b.Kind == model.BuffDamageOverTime && isEnemy:
		actual := enemy.TakeDamage(amount)
		result.BuffTicks = append(result.BuffTicks, BuffTickEvent{EntityID: entityID, IsEnemy: true, Amount: actual, NewHealth: enemy.Health})
	case b.Kind == model.BuffHealOverTime && !isEnemy:
		actual := player.Heal(amount)
		if actual > 0 {
			result.BuffTicks = append(result.BuffTicks, BuffTickEvent{EntityID: entityID, IsEnemy: false, Amount: actual, IsHeal: true, NewHealth: player.State.Health})
		}
	}
}
