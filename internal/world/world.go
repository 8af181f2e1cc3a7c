// Package world owns every live entity (players, enemies, NPCs, and
// dropped items) plus the zone registry, and exposes the mutation
// operations the session layer drives and the one Tick(delta) operation
// that advances the simulation. Entities live in plain maps keyed by
// entity id: exactly one goroutine, the tick loop, ever touches this
// state, so no synchronization is needed here at all.
package world

import (
	"log/slog"

	"github.com/embervale/coreserver/internal/ability"
	"github.com/embervale/coreserver/internal/data"
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/zonedata"
)

// World aggregates all live entities and exposes the operations the
// session layer calls once per decoded client message, plus Tick for
// the fixed-rate simulation step. Not safe for concurrent use: the
// caller (internal/session) owns this from a single goroutine.
type World struct {
	zones     *zonedata.Registry
	items     *data.Catalog
	abilities *ability.Catalog

	players    map[uint32]*model.Player // keyed by RuntimeID
	enemies    map[uint32]*model.Enemy
	npcs       map[uint32]*model.Npc
	worldItems map[uint32]*WorldItem

	nextRuntimeID uint32
	nextEnemyID   uint32
	nextItemID    uint32

	tick uint64
}

// New builds a World from the boot-loaded zone registry, item catalog
// and ability catalog, and seeds every zone's enemy and NPC spawn
// tables.
func New(zones *zonedata.Registry, items *data.Catalog, abilities *ability.Catalog) *World {
	w := &World{
		zones:      zones,
		items:      items,
		abilities:  abilities,
		players:    make(map[uint32]*model.Player),
		enemies:    make(map[uint32]*model.Enemy),
		npcs:       make(map[uint32]*model.Npc),
		worldItems: make(map[uint32]*WorldItem),
	}
	w.seedZones()
	return w
}

func (w *World) seedZones() {
	for _, z := range w.zones.All() {
		for _, npcSpawn := range z.NpcSpawns {
			id := w.nextEnemyID // NPCs draw from the enemy id counter, so NPC and enemy ids never collide
			w.nextEnemyID++
			w.npcs[id] = &model.Npc{ID: id, ZoneID: z.ID, Type: npcSpawn.Type, Position: npcSpawn.Position, Rotation: npcSpawn.Rotation}
		}
		for _, enemySpawn := range z.EnemySpawns {
			w.spawnEnemy(z.ID, enemySpawn.Type, enemySpawn.Position, enemySpawn.Level)
		}
	}
}

func (w *World) spawnEnemy(zoneID int32, enemyType model.EnemyType, pos model.Vec3, level int32) *model.Enemy {
	base := enemyBaseStats(enemyType)
	health, attack := model.ScaleForLevel(base.health, base.attack, level)
	id := w.nextEnemyID
	w.nextEnemyID++
	e := &model.Enemy{
		ID: id, ZoneID: zoneID, Type: enemyType,
		Position: pos, SpawnPosition: pos,
		Health: health, MaxHealth: health, Level: level,
		AttackPower: attack, LeashRange: leashRange,
	}
	w.enemies[id] = e
	return e
}

type enemyStats struct{ health, attack int32 }

// enemyBaseStats holds level-1 (health, attack) per template, scaled at
// spawn/respawn time by model.ScaleForLevel.
func enemyBaseStats(t model.EnemyType) enemyStats {
	switch t {
	case model.EnemyGoblin:
		return enemyStats{health: 50, attack: 8}
	case model.EnemyWolf:
		return enemyStats{health: 40, attack: 10}
	case model.EnemyOrc:
		return enemyStats{health: 90, attack: 14}
	case model.EnemyBandit:
		return enemyStats{health: 65, attack: 12}
	default:
		return enemyStats{health: 50, attack: 8}
	}
}

// SpawnPlayer creates the runtime Player for a freshly selected
// character and registers it in the world. The returned RuntimeID is
// assigned fresh on every call; it is not the stable persisted
// CharacterID and has no meaning across logins.
//
// Persisted state that fails basic sanity is repaired before the
// player enters the world: a character saved at or below 0 health is
// revived at max(1, 20% of max health) at its zone's default spawn
// point, and a character whose saved Y coordinate has fallen below -50
// is snapped back to that same spawn point.
func (w *World) SpawnPlayer(ch model.Character, state model.PersistedState, inv model.Inventory, equip model.Equipment) *model.Player {
	w.nextRuntimeID++

	if state.Health <= 0 {
		state.Health = reviveHealth(state.MaxHealth)
		if z, ok := w.zones.Get(state.ZoneID); ok {
			state.Position = z.DefaultSpawnPoint()
		}
	} else if state.Position.Y < -50 {
		if z, ok := w.zones.Get(state.ZoneID); ok {
			state.Position = z.DefaultSpawnPoint()
		}
	}

	p := model.NewPlayer(w.nextRuntimeID, ch, state, inv, equip)
	w.players[p.RuntimeID] = p
	return p
}

// reviveHealth returns 20% of maxHealth, floored at 1.
func reviveHealth(maxHealth int32) int32 {
	h := int32(float32(maxHealth) * 0.2)
	if h < 1 {
		h = 1
	}
	return h
}

// DespawnPlayer removes a player from the world (disconnect or
// graceful logout). The caller is responsible for persisting state
// first.
func (w *World) DespawnPlayer(runtimeID uint32) {
	delete(w.players, runtimeID)
}

// Player looks up a live player by runtime id.
func (w *World) Player(runtimeID uint32) (*model.Player, bool) {
	p, ok := w.players[runtimeID]
	return p, ok
}

// Enemy looks up a live enemy by id.
func (w *World) Enemy(id uint32) (*model.Enemy, bool) {
	e, ok := w.enemies[id]
	return e, ok
}

// Zones exposes the read-only zone registry for session-layer zone
// lookups (scene identifiers, default spawn points).
func (w *World) Zones() *zonedata.Registry { return w.zones }

// Items exposes the read-only item catalog.
func (w *World) Items() *data.Catalog { return w.items }

// Abilities exposes the read-only ability catalog.
func (w *World) Abilities() *ability.Catalog { return w.abilities }

// UpdatePlayerTransform applies a client-reported position/rotation/
// animation update. No anti-cheat position validation is performed;
// this is the hook point a future movement-validation policy would
// attach to.
func (w *World) UpdatePlayerTransform(runtimeID uint32, pos model.Vec3, rotation float32, state model.AnimationState) {
	p, ok := w.players[runtimeID]
	if !ok {
		return
	}
	p.State.Position = pos
	p.State.Rotation = rotation
	p.AnimationState = state
}

// GetPlayersInZone returns every live player whose zone matches zoneID.
func (w *World) GetPlayersInZone(zoneID int32) []*model.Player {
	out := make([]*model.Player, 0, len(w.players))
	for _, p := range w.players {
		if p.State.ZoneID == zoneID {
			out = append(out, p)
		}
	}
	return out
}

// GetEnemiesInZone returns every live enemy whose zone matches zoneID.
func (w *World) GetEnemiesInZone(zoneID int32) []*model.Enemy {
	out := make([]*model.Enemy, 0, len(w.enemies))
	for _, e := range w.enemies {
		if e.ZoneID == zoneID {
			out = append(out, e)
		}
	}
	return out
}

// GetNpcsInZone returns every NPC whose zone matches zoneID.
func (w *World) GetNpcsInZone(zoneID int32) []*model.Npc {
	out := make([]*model.Npc, 0, len(w.npcs))
	for _, n := range w.npcs {
		if n.ZoneID == zoneID {
			out = append(out, n)
		}
	}
	return out
}

// WorldItemsInZone returns every dropped item lying in zoneID.
func (w *World) WorldItemsInZone(zoneID int32) []*WorldItem {
	out := make([]*WorldItem, 0)
	for _, it := range w.worldItems {
		if it.ZoneID == zoneID {
			out = append(out, it)
		}
	}
	return out
}

// Teleport moves a player to a new zone at its default spawn point,
// used by TeleportRequest (and the /tp admin command). Returns false if
// the zone id is not registered.
func (w *World) Teleport(runtimeID uint32, zoneID int32) (model.Vec3, bool) {
	p, ok := w.players[runtimeID]
	if !ok {
		return model.Vec3{}, false
	}
	z, ok := w.zones.Get(zoneID)
	if !ok {
		return model.Vec3{}, false
	}
	pos := z.DefaultSpawnPoint()
	p.State.ZoneID = zoneID
	p.State.Position = pos
	return pos, true
}

// Respawn revives a dead player at the empire default spawn or at its
// last-known death position, restoring full health/mana.
func (w *World) Respawn(runtimeID uint32, kind model.RespawnKind) (model.Vec3, int32, bool) {
	p, ok := w.players[runtimeID]
	if !ok {
		return model.Vec3{}, 0, false
	}
	var pos model.Vec3
	switch kind {
	case model.RespawnEmpireSpawn:
		z := w.zones.DefaultZoneForEmpire(int(p.Empire), p.Empire.DefaultZone())
		if z == nil {
			slog.Warn("no default zone for empire on respawn", "empire", p.Empire)
			pos = p.State.Position
		} else {
			p.State.ZoneID = z.ID
			pos = z.DefaultSpawnPoint()
		}
	case model.RespawnDeathSite:
		pos = p.State.Position
	}
	p.State.Position = pos
	p.State.Health = p.State.MaxHealth
	p.State.Mana = p.State.MaxMana
	p.DeathAnnounced = false
	p.LastAttackerID = 0
	return pos, p.State.ZoneID, true
}
