package session

import (
	"context"
	"time"

	"github.com/embervale/coreserver/internal/ability"
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/persistence"
	"github.com/embervale/coreserver/internal/protocol"
)

func (s *Server) handleGetCharacterList(conn *Connection, m *protocol.GetCharacterList) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	chars, err := s.store.ListCharacters(ctx, conn.AccountID)
	if err != nil {
		s.logger.Error("listing characters failed", "account_id", conn.AccountID, "error", err)
		s.replyTo(conn, &protocol.CharacterList{})
		return
	}

	summaries := make([]protocol.CharacterSummary, 0, len(chars))
	for _, c := range chars {
		summaries = append(summaries, protocol.CharacterSummary{
			CharacterID: uint32(c.CharacterID),
			Name:        c.Name,
			Class:       c.Class,
			Gender:      c.Gender,
			Empire:      c.Empire,
			Level:       c.Level,
		})
	}
	s.replyTo(conn, &protocol.CharacterList{Characters: summaries})
}

func (s *Server) handleCreateCharacter(conn *Connection, m *protocol.CreateCharacter) {
	if len(m.Name) < 2 || len(m.Name) > 16 {
		s.replyTo(conn, &protocol.CreateCharacterFailed{Reason: "Name must be 2-16 characters"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	existing, err := s.store.ListCharacters(ctx, conn.AccountID)
	if err != nil {
		s.logger.Error("create character: listing failed", "error", err)
		s.replyTo(conn, &protocol.CreateCharacterFailed{Reason: "Internal error"})
		return
	}
	if len(existing) >= model.MaxCharactersPerAccount {
		s.replyTo(conn, &protocol.CreateCharacterFailed{Reason: "Maximum characters reached"})
		return
	}

	state := model.NewPersistedState(m.Class, m.Empire)
	weaponID, stacks := persistence.StarterLoadout(m.Class)
	var inv model.Inventory
	for i, stack := range stacks {
		if i >= model.InventorySize {
			break
		}
		inv.Slots[i] = stack
	}
	equip := model.Equipment{WeaponID: weaponID}

	bundle, err := s.store.CreateCharacter(ctx, conn.AccountID, m.Name, m.Class, m.Gender, m.Empire, state, inv, equip)
	if err != nil {
		s.logger.Error("create character: store failed", "error", err)
		s.replyTo(conn, &protocol.CreateCharacterFailed{Reason: "Internal error"})
		return
	}

	s.replyTo(conn, &protocol.CharacterCreated{Character: protocol.CharacterSummary{
		CharacterID: uint32(bundle.Character.CharacterID),
		Name:        bundle.Character.Name,
		Class:       bundle.Character.Class,
		Gender:      bundle.Character.Gender,
		Empire:      bundle.Character.Empire,
		Level:       bundle.Character.Level,
	}})
}

func (s *Server) handleSelectCharacter(conn *Connection, m *protocol.SelectCharacter) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	characterID := int64(m.CharacterID)
	bundle, found, err := s.pipe.LoadCharacter(ctx, characterID)
	if err != nil {
		s.logger.Error("select character: load failed", "character_id", characterID, "error", err)
		s.replyTo(conn, &protocol.CharacterSelectFailed{Reason: "Internal error"})
		return
	}
	if !found || bundle.Character.AccountID != conn.AccountID {
		s.replyTo(conn, &protocol.CharacterSelectFailed{Reason: "Character not found"})
		return
	}

	zoneID := bundle.State.ZoneID
	if !s.zones.Valid(zoneID) {
		zoneID = bundle.Character.Empire.DefaultZone()
		bundle.State.ZoneID = zoneID
	}

	player := s.world.SpawnPlayer(bundle.Character, bundle.State, bundle.Inventory, bundle.Equipment)
	player.ActionBar = defaultActionBar(bundle.Character.Class, s.world.Abilities())

	conn.RuntimeID = player.RuntimeID
	conn.CharacterID = characterID
	conn.Class = bundle.Character.Class
	conn.Empire = bundle.Character.Empire
	conn.LastZoneSeen = zoneID
	conn.State = StateInGame

	zone := s.zones.MustGet(zoneID)

	s.replyTo(conn, &protocol.CharacterSelected{RuntimeID: player.RuntimeID, ZoneID: zoneID, Position: player.State.Position})
	s.replyTo(conn, &protocol.StatsUpdate{
		Health: player.State.Health, MaxHealth: player.State.MaxHealth,
		Mana: player.State.Mana, MaxMana: player.State.MaxMana,
		Attack: player.State.Attack, Defense: player.State.Defense,
	})
	s.replyTo(conn, inventoryUpdateOf(player.Inventory))
	s.replyTo(conn, &protocol.EquipmentUpdate{WeaponID: player.Equipment.WeaponID, ArmorID: player.Equipment.ArmorID})
	s.replyTo(conn, &protocol.ZoneChange{ZoneID: zoneID, SceneIdentifier: zone.SceneIdentifier, Position: player.State.Position})
	s.replyTo(conn, &protocol.ActionBarUpdate{AbilityIDs: player.ActionBar})
	s.replyTo(conn, &protocol.TimeSync{ServerTick: 0})

	for _, other := range s.world.GetPlayersInZone(zoneID) {
		if other.RuntimeID == player.RuntimeID {
			continue
		}
		s.replyTo(conn, playerSpawnOf(other))
	}
	for _, enemy := range s.world.GetEnemiesInZone(zoneID) {
		s.replyTo(conn, enemySpawnOf(enemy))
	}
	for _, npc := range s.world.GetNpcsInZone(zoneID) {
		s.replyTo(conn, &protocol.NpcSpawn{NpcID: npc.ID, Type: npc.Type, Position: npc.Position, Rotation: npc.Rotation})
		conn.KnownNPCs[npc.ID] = struct{}{}
	}

	s.replyZoneMsg(zoneID, player.RuntimeID, playerSpawnOf(player))
}

func (s *Server) handleDeleteCharacter(conn *Connection, m *protocol.DeleteCharacter) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	characterID := int64(m.CharacterID)
	bundle, found, err := s.store.LoadCharacter(ctx, characterID)
	if err != nil {
		s.logger.Error("delete character: load failed", "error", err)
		s.replyTo(conn, &protocol.DeleteCharacterFailed{Reason: "Internal error"})
		return
	}
	if !found || bundle.Character.AccountID != conn.AccountID {
		s.replyTo(conn, &protocol.DeleteCharacterFailed{Reason: "Character not found"})
		return
	}
	if bundle.Character.Name != m.ConfirmName {
		s.replyTo(conn, &protocol.DeleteCharacterFailed{Reason: "Name confirmation does not match"})
		return
	}

	if err := s.store.DeleteCharacter(ctx, characterID); err != nil {
		s.logger.Error("delete character: store failed", "error", err)
		s.replyTo(conn, &protocol.DeleteCharacterFailed{Reason: "Internal error"})
		return
	}

	s.replyTo(conn, &protocol.CharacterDeleted{CharacterID: m.CharacterID})
}

func (s *Server) handleDisconnectCharacterSelect(conn *Connection, m *protocol.Disconnect) {
	s.evict(conn)
}

// defaultActionBar assigns every ability the class can ever use, in
// ascending id order, into the fixed-size hotbar (zero-padded if the
// class has fewer abilities than slots).
func defaultActionBar(class model.Class, abilities *ability.Catalog) [model.ActionBarSize]uint32 {
	var bar [model.ActionBarSize]uint32
	ids := classAbilityIDs(class)
	for i := 0; i < len(ids) && i < model.ActionBarSize; i++ {
		bar[i] = ids[i]
	}
	return bar
}

func classAbilityIDs(class model.Class) []uint32 {
	switch class {
	case model.ClassNinja:
		return []uint32{1, 2}
	case model.ClassWarrior:
		return []uint32{10, 11, 12, 40}
	case model.ClassSura:
		return []uint32{20, 21, 22}
	case model.ClassShaman:
		return []uint32{30, 31, 32}
	default:
		return nil
	}
}
