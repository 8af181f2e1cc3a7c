package session

import "github.com/embervale/coreserver/internal/protocol"

// dispatch routes a decoded message to the handler set matching conn's
// current state. A message that doesn't belong in the connection's
// current state is silently ignored rather than treated as an error.
func (s *Server) dispatch(conn *Connection, msg protocol.Message) {
	switch conn.State {
	case StateUnknown:
		s.dispatchUnknown(conn, msg)
	case StateCharacterSelect:
		s.dispatchCharacterSelect(conn, msg)
	case StateInGame:
		s.dispatchInGame(conn, msg)
	}
}

func (s *Server) dispatchUnknown(conn *Connection, msg protocol.Message) {
	switch m := msg.(type) {
	case *protocol.Register:
		s.handleRegister(conn, m)
	case *protocol.Login:
		s.handleLogin(conn, m)
	}
}

func (s *Server) dispatchCharacterSelect(conn *Connection, msg protocol.Message) {
	switch m := msg.(type) {
	case *protocol.GetCharacterList:
		s.handleGetCharacterList(conn, m)
	case *protocol.CreateCharacter:
		s.handleCreateCharacter(conn, m)
	case *protocol.SelectCharacter:
		s.handleSelectCharacter(conn, m)
	case *protocol.DeleteCharacter:
		s.handleDeleteCharacter(conn, m)
	case *protocol.Disconnect:
		s.handleDisconnectCharacterSelect(conn, m)
	}
}

func (s *Server) dispatchInGame(conn *Connection, msg protocol.Message) {
	switch m := msg.(type) {
	case *protocol.PlayerUpdate:
		s.handlePlayerUpdate(conn, m)
	case *protocol.ChatMessage:
		s.handleChatMessage(conn, m)
	case *protocol.Attack:
		s.handleAttack(conn, m)
	case *protocol.PickupItem:
		s.handlePickupItem(conn, m)
	case *protocol.UseItem:
		s.handleUseItem(conn, m)
	case *protocol.DropItem:
		s.handleDropItem(conn, m)
	case *protocol.EquipItem:
		s.handleEquipItem(conn, m)
	case *protocol.UnequipItem:
		s.handleUnequipItem(conn, m)
	case *protocol.SwapInventorySlots:
		s.handleSwapInventorySlots(conn, m)
	case *protocol.UseAbility:
		s.handleUseAbility(conn, m)
	case *protocol.RespawnRequest:
		s.handleRespawnRequest(conn, m)
	case *protocol.TeleportRequest:
		s.handleTeleportRequest(conn, m)
	case *protocol.DevAddItem:
		s.handleDevAddItem(conn, m)
	case *protocol.AdminCommand:
		s.handleAdminCommand(conn, m)
	case *protocol.Disconnect:
		s.handleDisconnectInGame(conn, m)
	}
}
