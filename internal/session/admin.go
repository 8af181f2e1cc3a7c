package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/embervale/coreserver/internal/protocol"
)

// runAdminCommand parses and executes a slash-command line, reached
// identically from a ChatMessage starting with "/" and from a standalone
// AdminCommand. Unknown commands and admin-only commands issued by a
// non-admin both produce a CommandResponse rather than silent drop, so
// the client always gets feedback.
func (s *Server) runAdminCommand(conn *Connection, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	args := fields[1:]

	switch name {
	case "help":
		s.replyTo(conn, &protocol.CommandResponse{Text: s.adminHelp(conn)})
	case "items":
		s.cmdItems(conn)
	case "pos":
		s.cmdPos(conn)
	case "lvl":
		s.adminOnly(conn, func() { s.cmdLevel(conn, args) })
	case "hp":
		s.adminOnly(conn, func() { s.cmdHP(conn, args) })
	case "mp":
		s.adminOnly(conn, func() { s.cmdMP(conn, args) })
	case "gold":
		s.adminOnly(conn, func() { s.cmdGold(conn, args) })
	case "god":
		s.adminOnly(conn, func() { s.cmdGod(conn) })
	case "kill":
		s.adminOnly(conn, func() { s.cmdKill(conn, args) })
	case "item":
		s.adminOnly(conn, func() { s.cmdItem(conn, args) })
	case "tp":
		s.adminOnly(conn, func() { s.cmdTeleport(conn, args) })
	case "xp":
		s.adminOnly(conn, func() { s.cmdXP(conn, args) })
	default:
		s.replyTo(conn, &protocol.CommandResponse{Text: "Unknown command: " + name})
	}
}

func (s *Server) adminOnly(conn *Connection, fn func()) {
	if !conn.IsAdmin {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Admin command requires elevated access"})
		return
	}
	fn()
}

func (s *Server) adminHelp(conn *Connection) string {
	public := "Commands: /help /items /pos"
	if conn.IsAdmin {
		return public + " | admin: /lvl /hp /mp /gold /god /kill /item /tp /xp"
	}
	return public
}

func (s *Server) cmdItems(conn *Connection) {
	var b strings.Builder
	b.WriteString("Items: ")
	first := true
	for id := uint32(1); id <= 21; id++ {
		def, ok := s.items.Get(id)
		if !ok {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%d=%s", id, def.Name)
	}
	s.replyTo(conn, &protocol.CommandResponse{Text: b.String()})
}

func (s *Server) cmdPos(conn *Connection) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	s.replyTo(conn, &protocol.CommandResponse{Text: fmt.Sprintf(
		"Zone %d, position (%.1f, %.1f, %.1f)", p.State.ZoneID, p.State.Position.X, p.State.Position.Y, p.State.Position.Z,
	)})
}

func (s *Server) cmdLevel(conn *Connection, args []string) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok || len(args) < 1 {
		return
	}
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Usage: /lvl <level>"})
		return
	}
	p.State.Level = int32(level)
	p.State.RecomputeForLevel(p.Class)
	s.replyTo(conn, &protocol.StatsUpdate{
		Health: p.State.Health, MaxHealth: p.State.MaxHealth,
		Mana: p.State.Mana, MaxMana: p.State.MaxMana,
		Attack: p.State.Attack, Defense: p.State.Defense,
	})
	s.replyTo(conn, &protocol.CommandResponse{Text: fmt.Sprintf("Level set to %d", level)})
}

func (s *Server) cmdHP(conn *Connection, args []string) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok || len(args) < 1 {
		return
	}
	hp, err := strconv.Atoi(args[0])
	if err != nil {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Usage: /hp <amount>"})
		return
	}
	p.State.Health = int32(hp)
	p.State.ClampStats()
	s.replyTo(conn, &protocol.StatsUpdate{
		Health: p.State.Health, MaxHealth: p.State.MaxHealth,
		Mana: p.State.Mana, MaxMana: p.State.MaxMana,
		Attack: p.State.Attack, Defense: p.State.Defense,
	})
}

func (s *Server) cmdMP(conn *Connection, args []string) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok || len(args) < 1 {
		return
	}
	mp, err := strconv.Atoi(args[0])
	if err != nil {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Usage: /mp <amount>"})
		return
	}
	p.State.Mana = int32(mp)
	p.State.ClampStats()
	s.replyTo(conn, &protocol.StatsUpdate{
		Health: p.State.Health, MaxHealth: p.State.MaxHealth,
		Mana: p.State.Mana, MaxMana: p.State.MaxMana,
		Attack: p.State.Attack, Defense: p.State.Defense,
	})
}

func (s *Server) cmdGold(conn *Connection, args []string) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok || len(args) < 1 {
		return
	}
	gold, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Usage: /gold <amount>"})
		return
	}
	p.State.Gold = gold
	s.replyTo(conn, &protocol.GoldUpdate{Gold: p.State.Gold})
}

func (s *Server) cmdGod(conn *Connection) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	p.State.Health = p.State.MaxHealth
	p.State.Mana = p.State.MaxMana
	s.replyTo(conn, &protocol.StatsUpdate{
		Health: p.State.Health, MaxHealth: p.State.MaxHealth,
		Mana: p.State.Mana, MaxMana: p.State.MaxMana,
		Attack: p.State.Attack, Defense: p.State.Defense,
	})
	s.replyTo(conn, &protocol.CommandResponse{Text: "Restored to full health and mana"})
}

func (s *Server) cmdKill(conn *Connection, args []string) {
	if len(args) < 1 {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Usage: /kill <enemy_id>"})
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return
	}
	enemy, ok := s.world.Enemy(uint32(id))
	if !ok {
		s.replyTo(conn, &protocol.CommandResponse{Text: "No such enemy"})
		return
	}
	enemy.Health = 0
}

func (s *Server) cmdItem(conn *Connection, args []string) {
	if len(args) < 1 {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Usage: /item <item_id> [quantity]"})
		return
	}
	itemID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return
	}
	qty := int32(1)
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			qty = int32(n)
		}
	}
	if err := s.world.DevAddItem(conn.RuntimeID, uint32(itemID), qty); err != nil {
		s.replyTo(conn, &protocol.CommandResponse{Text: err.Error()})
		return
	}
	if p, ok := s.world.Player(conn.RuntimeID); ok {
		s.replyTo(conn, inventoryUpdateOf(p.Inventory))
	}
}

func (s *Server) cmdTeleport(conn *Connection, args []string) {
	if len(args) < 1 {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Usage: /tp <zone_id>"})
		return
	}
	zoneID, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}
	s.handleTeleportRequest(conn, &protocol.TeleportRequest{ZoneID: int32(zoneID)})
}

func (s *Server) cmdXP(conn *Connection, args []string) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok || len(args) < 1 {
		return
	}
	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		s.replyTo(conn, &protocol.CommandResponse{Text: "Usage: /xp <amount>"})
		return
	}
	p.State.Experience += amount
	s.replyTo(conn, &protocol.ExperienceGained{Amount: amount, NewTotal: p.State.Experience})
}
