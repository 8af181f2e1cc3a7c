// Package session owns the UDP transport, the per-connection auth ->
// character-select -> in-game state machine, and the translation between
// decoded protocol.Message values and internal/world operations. A
// single UDP socket and a single tick-loop goroutine own every
// connection, so Connection carries no locks of its own.
package session

import (
	"net"
	"time"

	"github.com/embervale/coreserver/internal/model"
)

// State is a connection's position in the auth -> character select ->
// in-game state machine.
type State uint8

const (
	StateUnknown State = iota
	StateCharacterSelect
	StateInGame
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateCharacterSelect:
		return "character_select"
	case StateInGame:
		return "in_game"
	default:
		return "invalid"
	}
}

// Connection is everything the server tracks about one remote UDP
// address across its lifetime: login identity, selected character, and
// the two per-tick outbound queues.
type Connection struct {
	Addr *net.UDPAddr

	State State

	AccountID int64
	Username  string
	IsAdmin   bool

	RuntimeID   uint32
	CharacterID int64
	Class       model.Class
	Empire      model.Empire

	LastSeen     time.Time
	LastZoneSeen int32
	KnownNPCs    map[uint32]struct{}

	// simQueue holds datagrams arising from this tick's simulation step
	// (damage/death/loot/levelup/buff events, the WorldState snapshot).
	// replyQueue holds datagrams generated while handling this
	// connection's own inbound messages (command responses, spawn-on-
	// select, inventory/equipment updates). simQueue is always flushed
	// before replyQueue, so broadcast events precede direct replies.
	simQueue   [][]byte
	replyQueue [][]byte
}

func newConnection(addr *net.UDPAddr) *Connection {
	return &Connection{
		Addr:      addr,
		State:     StateUnknown,
		LastSeen:  time.Now(),
		KnownNPCs: make(map[uint32]struct{}),
	}
}

// touch stamps the connection as having just been heard from, resetting
// the idle-timeout clock.
func (c *Connection) touch() {
	c.LastSeen = time.Now()
}

// enqueueSim appends a simulation-tick-arising datagram.
func (c *Connection) enqueueSim(data []byte) {
	c.simQueue = append(c.simQueue, data)
}

// enqueueReply appends a datagram generated while handling an inbound
// message from this same connection.
func (c *Connection) enqueueReply(data []byte) {
	c.replyQueue = append(c.replyQueue, data)
}

// flush returns every queued datagram in fixed order (sim before reply)
// and clears both queues.
func (c *Connection) flush() [][]byte {
	if len(c.simQueue) == 0 && len(c.replyQueue) == 0 {
		return nil
	}
	out := make([][]byte, 0, len(c.simQueue)+len(c.replyQueue))
	out = append(out, c.simQueue...)
	out = append(out, c.replyQueue...)
	c.simQueue = nil
	c.replyQueue = nil
	return out
}
