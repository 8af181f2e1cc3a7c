package session

import (
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/protocol"
	"github.com/embervale/coreserver/internal/world"
)

func playerSpawnOf(p *model.Player) *protocol.PlayerSpawn {
	return &protocol.PlayerSpawn{
		RuntimeID: p.RuntimeID, Name: p.Name, Class: p.Class, Gender: p.Gender, Empire: p.Empire,
		Level: p.State.Level, Position: p.State.Position, Rotation: p.State.Rotation,
	}
}

func enemySpawnOf(e *model.Enemy) *protocol.EnemySpawn {
	return &protocol.EnemySpawn{
		EnemyID: e.ID, Type: e.Type, Level: e.Level, Position: e.Position, Rotation: e.Rotation,
		Health: e.Health, MaxHealth: e.MaxHealth,
	}
}

func inventoryUpdateOf(inv model.Inventory) *protocol.InventoryUpdate {
	slots := make([]protocol.InventorySlotWire, model.InventorySize)
	for i, s := range inv.Slots {
		slots[i] = protocol.InventorySlotWire{ItemID: s.ItemID, Quantity: s.Quantity}
	}
	return &protocol.InventoryUpdate{Slots: slots}
}

// zoneOf resolves the zone a live player or enemy currently occupies.
func (s *Server) zoneOf(entityID uint32, isEnemy bool) (int32, bool) {
	if isEnemy {
		if e, ok := s.world.Enemy(entityID); ok {
			return e.ZoneID, true
		}
		return 0, false
	}
	if p, ok := s.world.Player(entityID); ok {
		return p.State.ZoneID, true
	}
	return 0, false
}

// broadcastTickResult translates one Tick's TickResult into protocol
// datagrams, queued on every affected connection's sim queue.
func (s *Server) broadcastTickResult(result world.TickResult) {
	for _, dmg := range result.EnemyAttacks {
		if zoneID, ok := s.zoneOf(dmg.PlayerID, false); ok {
			s.simZone(zoneID, 0, &protocol.DamageEvent{
				SourceID: dmg.EnemyID, TargetID: dmg.PlayerID, TargetIsEnemy: false,
				Amount: dmg.Amount,
			})
		}
	}

	for _, death := range result.Deaths {
		if death.IsEnemy {
			// Enemy deaths broadcast EnemyDespawn instead, alongside the
			// reward/loot pipeline in the matching EnemyKills entry below.
			continue
		}
		zoneID, ok := s.zoneOf(death.EntityID, false)
		if !ok {
			continue
		}
		s.simZone(zoneID, 0, &protocol.EntityDeath{EntityID: death.EntityID, KillerID: death.KillerID})
	}

	for _, kill := range result.EnemyKills {
		// The killed enemy id is already gone from the world by the time
		// Tick returns; its replacement (RespawnEnemyID) occupies the same
		// zone, so it stands in for the zone lookup.
		zoneID, ok := s.zoneOf(kill.RespawnEnemyID, true)
		if !ok {
			continue
		}
		s.simZone(zoneID, 0, &protocol.EnemyDespawn{EnemyID: kill.EnemyID})

		if killer, ok := s.world.Player(kill.KillerRuntimeID); ok {
			if conn, ok := s.byRuntime[killer.RuntimeID]; ok {
				s.enqueueSimMsg(conn, &protocol.ExperienceGained{Amount: kill.ExperienceGain, NewTotal: killer.State.Experience})
				s.enqueueSimMsg(conn, &protocol.GoldUpdate{Gold: killer.State.Gold})
			}
		}
		for _, drop := range kill.Drops {
			s.simZone(zoneID, 0, &protocol.ItemSpawn{ItemInstanceID: drop.InstanceID, ItemID: drop.ItemID, Quantity: drop.Quantity, Position: drop.Position})
		}
		if enemy, ok := s.world.Enemy(kill.RespawnEnemyID); ok {
			s.simZone(zoneID, 0, enemySpawnOf(enemy))
		}
	}

	for _, lvl := range result.LevelUps {
		if conn, ok := s.byRuntime[uint32(lvl.RuntimeID)]; ok {
			s.enqueueSimMsg(conn, &protocol.LevelUp{
				NewLevel: lvl.NewLevel, MaxHealth: lvl.MaxHealth, MaxMana: lvl.MaxMana,
				Attack: lvl.Attack, Defense: lvl.Defense,
			})
		}
	}

	for _, bt := range result.BuffTicks {
		if zoneID, ok := s.zoneOf(bt.EntityID, bt.IsEnemy); ok {
			if bt.IsHeal {
				s.simZone(zoneID, 0, &protocol.HealEvent{SourceID: bt.EntityID, TargetID: bt.EntityID, Amount: bt.Amount})
			} else {
				s.simZone(zoneID, 0, &protocol.DamageEvent{SourceID: bt.EntityID, TargetID: bt.EntityID, TargetIsEnemy: bt.IsEnemy, Amount: bt.Amount})
			}
		}
	}

	for _, be := range result.BuffExpired {
		if zoneID, ok := s.zoneOf(be.EntityID, be.IsEnemy); ok {
			s.simZone(zoneID, 0, &protocol.BuffRemoved{EntityID: be.EntityID, IsEnemy: be.IsEnemy, BuffID: be.BuffID})
		}
	}
}

// sendSnapshots builds and queues one WorldState per occupied zone,
// appended last in the sim queue so per-event messages arrive before the
// bulk snapshot, and delivers any NpcSpawn a connection hasn't yet been
// told about.
func (s *Server) sendSnapshots() {
	byZone := make(map[int32][]protocol.EntityTransform)

	zoneIDs := make(map[int32]struct{})
	for _, conn := range s.byRuntime {
		if conn.State == StateInGame {
			zoneIDs[conn.LastZoneSeen] = struct{}{}
		}
	}

	for zoneID := range zoneIDs {
		for _, p := range s.world.GetPlayersInZone(zoneID) {
			byZone[zoneID] = append(byZone[zoneID], protocol.EntityTransform{
				RuntimeID: p.RuntimeID, IsEnemy: false, Position: p.State.Position, Rotation: p.State.Rotation, State: p.AnimationState,
			})
		}
		for _, e := range s.world.GetEnemiesInZone(zoneID) {
			byZone[zoneID] = append(byZone[zoneID], protocol.EntityTransform{
				RuntimeID: e.ID, IsEnemy: true, Position: e.Position, Rotation: e.Rotation, State: e.AnimationState,
			})
		}
	}

	for _, conn := range s.byRuntime {
		if conn.State != StateInGame {
			continue
		}
		s.syncKnownNpcs(conn)
		if transforms, ok := byZone[conn.LastZoneSeen]; ok {
			s.enqueueSimMsg(conn, &protocol.WorldState{Transforms: transforms})
		}
	}
}

func (s *Server) syncKnownNpcs(conn *Connection) {
	for _, npc := range s.world.GetNpcsInZone(conn.LastZoneSeen) {
		if _, known := conn.KnownNPCs[npc.ID]; known {
			continue
		}
		conn.KnownNPCs[npc.ID] = struct{}{}
		s.enqueueSimMsg(conn, &protocol.NpcSpawn{NpcID: npc.ID, Type: npc.Type, Position: npc.Position, Rotation: npc.Rotation})
	}
}
