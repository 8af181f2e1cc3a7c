package session

import (
	"strings"

	"github.com/embervale/coreserver/internal/protocol"
)

func (s *Server) handlePlayerUpdate(conn *Connection, m *protocol.PlayerUpdate) {
	s.world.UpdatePlayerTransform(conn.RuntimeID, m.Position, m.Rotation, m.State)
}

func (s *Server) handleChatMessage(conn *Connection, m *protocol.ChatMessage) {
	if strings.HasPrefix(m.Text, "/") {
		s.runAdminCommand(conn, m.Text)
		return
	}
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	s.fanoutGlobal(s.encodeForFanout(&protocol.ChatBroadcast{SenderRuntimeID: conn.RuntimeID, SenderName: p.Name, Text: m.Text}), true)
}

func (s *Server) handleAttack(conn *Connection, m *protocol.Attack) {
	result, err := s.world.Attack(conn.RuntimeID, m.TargetID)
	if err != nil {
		return
	}
	if zoneID, ok := s.zoneOf(conn.RuntimeID, false); ok {
		s.simZone(zoneID, 0, &protocol.DamageEvent{
			SourceID: conn.RuntimeID, TargetID: result.TargetID, TargetIsEnemy: true,
			Amount: result.Damage, WasCrit: result.WasCrit,
		})
	}
}

func (s *Server) handlePickupItem(conn *Connection, m *protocol.PickupItem) {
	if err := s.world.PickupItem(conn.RuntimeID, m.ItemInstanceID); err != nil {
		return
	}
	if p, ok := s.world.Player(conn.RuntimeID); ok {
		s.replyTo(conn, inventoryUpdateOf(p.Inventory))
		s.simZone(p.State.ZoneID, 0, &protocol.ItemDespawn{ItemInstanceID: m.ItemInstanceID})
	}
}

func (s *Server) handleUseItem(conn *Connection, m *protocol.UseItem) {
	if err := s.world.UseItem(conn.RuntimeID, int(m.Slot)); err != nil {
		return
	}
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	s.replyTo(conn, inventoryUpdateOf(p.Inventory))
	s.replyTo(conn, &protocol.StatsUpdate{
		Health: p.State.Health, MaxHealth: p.State.MaxHealth,
		Mana: p.State.Mana, MaxMana: p.State.MaxMana,
		Attack: p.State.Attack, Defense: p.State.Defense,
	})
}

func (s *Server) handleDropItem(conn *Connection, m *protocol.DropItem) {
	wi, err := s.world.DropItem(conn.RuntimeID, int(m.Slot))
	if err != nil {
		return
	}
	if p, ok := s.world.Player(conn.RuntimeID); ok {
		s.replyTo(conn, inventoryUpdateOf(p.Inventory))
	}
	s.simZone(wi.ZoneID, 0, &protocol.ItemSpawn{ItemInstanceID: wi.InstanceID, ItemID: wi.ItemID, Quantity: wi.Quantity, Position: wi.Position})
}

func (s *Server) handleEquipItem(conn *Connection, m *protocol.EquipItem) {
	_, err := s.world.EquipItem(conn.RuntimeID, int(m.Slot))
	if err != nil {
		s.replyTo(conn, &protocol.CommandResponse{Text: err.Error()})
		return
	}
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	s.replyTo(conn, inventoryUpdateOf(p.Inventory))
	s.replyTo(conn, &protocol.EquipmentUpdate{WeaponID: p.Equipment.WeaponID, ArmorID: p.Equipment.ArmorID})
}

func (s *Server) handleUnequipItem(conn *Connection, m *protocol.UnequipItem) {
	if _, err := s.world.UnequipItem(conn.RuntimeID, m.Kind); err != nil {
		s.replyTo(conn, &protocol.CommandResponse{Text: err.Error()})
		return
	}
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	s.replyTo(conn, inventoryUpdateOf(p.Inventory))
	s.replyTo(conn, &protocol.EquipmentUpdate{WeaponID: p.Equipment.WeaponID, ArmorID: p.Equipment.ArmorID})
}

func (s *Server) handleSwapInventorySlots(conn *Connection, m *protocol.SwapInventorySlots) {
	if err := s.world.SwapInventorySlots(conn.RuntimeID, int(m.From), int(m.To)); err != nil {
		return
	}
	if p, ok := s.world.Player(conn.RuntimeID); ok {
		s.replyTo(conn, inventoryUpdateOf(p.Inventory))
	}
}

func (s *Server) handleUseAbility(conn *Connection, m *protocol.UseAbility) {
	result, err := s.world.UseAbility(conn.RuntimeID, m.AbilityID, m.TargetID, m.HasTarget)
	if err != nil {
		return
	}
	outcome := result.Outcome
	if outcome.Reason != "" {
		s.replyTo(conn, &protocol.AbilityFailed{AbilityID: m.AbilityID, Reason: outcome.Reason})
		return
	}

	zoneID, _ := s.zoneOf(conn.RuntimeID, false)
	s.simZone(zoneID, 0, &protocol.AbilityUsed{SourceID: conn.RuntimeID, AbilityID: m.AbilityID, TargetID: m.TargetID, HasTarget: m.HasTarget})

	for _, dmg := range outcome.Damage {
		s.simZone(zoneID, 0, &protocol.DamageEvent{SourceID: conn.RuntimeID, TargetID: dmg.EnemyID, TargetIsEnemy: true, Amount: dmg.Amount})
	}
	for _, heal := range outcome.Heals {
		s.simZone(zoneID, 0, &protocol.HealEvent{SourceID: conn.RuntimeID, TargetID: heal.PlayerRuntimeID, Amount: heal.Amount})
	}
	for _, buff := range outcome.Buffs {
		s.simZone(zoneID, 0, &protocol.BuffApplied{EntityID: buff.TargetID, IsEnemy: buff.IsEnemy, BuffID: buff.BuffID, Kind: buff.Kind, Duration: buff.Duration})
	}

	if p, ok := s.world.Player(conn.RuntimeID); ok {
		s.replyTo(conn, &protocol.StatsUpdate{
			Health: p.State.Health, MaxHealth: p.State.MaxHealth,
			Mana: p.State.Mana, MaxMana: p.State.MaxMana,
			Attack: p.State.Attack, Defense: p.State.Defense,
		})
		s.replyTo(conn, &protocol.AbilityCooldown{AbilityID: m.AbilityID, RemainingSeconds: p.CooldownRemaining(m.AbilityID)})
	}
}

func (s *Server) handleRespawnRequest(conn *Connection, m *protocol.RespawnRequest) {
	pos, zoneID, ok := s.world.Respawn(conn.RuntimeID, m.Kind)
	if !ok {
		return
	}
	conn.LastZoneSeen = zoneID
	conn.KnownNPCs = make(map[uint32]struct{})

	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	s.replyTo(conn, &protocol.PlayerRespawned{ZoneID: zoneID, Position: pos, Health: p.State.Health, Mana: p.State.Mana})
	s.simZone(zoneID, conn.RuntimeID, &protocol.EntityRespawn{EntityID: conn.RuntimeID, Position: pos, Health: p.State.Health})
}

func (s *Server) handleTeleportRequest(conn *Connection, m *protocol.TeleportRequest) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	oldZoneID := p.State.ZoneID

	pos, ok := s.world.Teleport(conn.RuntimeID, m.ZoneID)
	if !ok {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Unknown destination"})
		return
	}
	zone := s.zones.MustGet(m.ZoneID)

	// The departing connection is still addressed as oldZoneID until
	// LastZoneSeen is updated below, so this reaches every client that
	// had the teleporting player visible, including the player's own
	// connection.
	s.simZone(oldZoneID, 0, &protocol.PlayerDespawn{RuntimeID: conn.RuntimeID})

	conn.LastZoneSeen = m.ZoneID
	conn.KnownNPCs = make(map[uint32]struct{})

	s.replyTo(conn, &protocol.ZoneChange{ZoneID: m.ZoneID, SceneIdentifier: zone.SceneIdentifier, Position: pos})
	if p, ok := s.world.Player(conn.RuntimeID); ok {
		s.replyZoneMsg(m.ZoneID, conn.RuntimeID, playerSpawnOf(p))
	}
	for _, other := range s.world.GetPlayersInZone(m.ZoneID) {
		if other.RuntimeID == conn.RuntimeID {
			continue
		}
		s.replyTo(conn, playerSpawnOf(other))
	}
	for _, enemy := range s.world.GetEnemiesInZone(m.ZoneID) {
		s.replyTo(conn, enemySpawnOf(enemy))
	}
}

func (s *Server) handleDevAddItem(conn *Connection, m *protocol.DevAddItem) {
	if !conn.IsAdmin {
		return
	}
	if err := s.world.DevAddItem(conn.RuntimeID, m.ItemID, m.Quantity); err != nil {
		s.replyTo(conn, &protocol.CommandResponse{Text: err.Error()})
		return
	}
	if p, ok := s.world.Player(conn.RuntimeID); ok {
		s.replyTo(conn, inventoryUpdateOf(p.Inventory))
	}
}

func (s *Server) handleAdminCommand(conn *Connection, m *protocol.AdminCommand) {
	s.runAdminCommand(conn, m.Line)
}

func (s *Server) handleDisconnectInGame(conn *Connection, m *protocol.Disconnect) {
	s.evict(conn)
}
