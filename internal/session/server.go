package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/embervale/coreserver/internal/config"
	"github.com/embervale/coreserver/internal/data"
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/persistence"
	"github.com/embervale/coreserver/internal/protocol"
	"github.com/embervale/coreserver/internal/world"
	"github.com/embervale/coreserver/internal/zonedata"
)

// Server owns the UDP socket, the world simulation, and every tracked
// Connection. Run from a single goroutine: the fixed-rate tick loop
// drains inbound datagrams, advances the simulation, and flushes
// outbound datagrams once per tick.
type Server struct {
	cfg    config.GameServer
	conn   *net.UDPConn
	world  *world.World
	store  *persistence.Store
	pipe   *persistence.Pipeline
	items  *data.Catalog
	zones  *zonedata.Registry
	logger *slog.Logger

	byAddr    map[string]*Connection
	byAccount map[int64]*Connection
	byRuntime map[uint32]*Connection

	readBuf [protocol.MaxDatagramSize]byte
}

// New binds the UDP socket and constructs a Server ready to Run.
func New(cfg config.GameServer, w *world.World, store *persistence.Store, pipe *persistence.Pipeline, items *data.Catalog, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	addr := &net.UDPAddr{IP: net.ParseIP(cfg.BindAddress), Port: cfg.Port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("binding udp %s:%d: %w", cfg.BindAddress, cfg.Port, err)
	}
	return &Server{
		cfg:       cfg,
		conn:      conn,
		world:     w,
		store:     store,
		pipe:      pipe,
		items:     items,
		zones:     w.Zones(),
		logger:    logger,
		byAddr:    make(map[string]*Connection),
		byAccount: make(map[int64]*Connection),
		byRuntime: make(map[uint32]*Connection),
	}, nil
}

// Run drives the fixed-rate simulation loop until ctx is cancelled, then
// despawns and saves every in-game connection before returning.
func (s *Server) Run(ctx context.Context) error {
	interval := s.cfg.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("session server listening", "addr", s.conn.LocalAddr().String(), "tick_interval", interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return nil
		case now := <-ticker.C:
			delta := float32(now.Sub(last).Seconds())
			last = now

			s.drainDatagrams()
			s.reapTimeouts()
			result := s.world.Tick(delta)
			s.broadcastTickResult(result)
			s.sendSnapshots()
			s.flushAll()
		}
	}
}

// drainDatagrams reads every currently-pending datagram without
// blocking, using a zero read deadline that immediately expires once the
// socket's receive buffer runs dry.
func (s *Server) drainDatagrams() {
	for {
		if err := s.conn.SetReadDeadline(time.Now()); err != nil {
			s.logger.Error("setting read deadline", "error", err)
			return
		}
		n, addr, err := s.conn.ReadFromUDP(s.readBuf[:])
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return
			}
			s.logger.Warn("udp read error", "error", err)
			return
		}
		raw := make([]byte, n)
		copy(raw, s.readBuf[:n])
		s.handleDatagram(addr, raw)
	}
}

func (s *Server) handleDatagram(addr *net.UDPAddr, raw []byte) {
	defer s.recoverDispatch(addr)

	msg, err := protocol.DecodeClientMessage(raw)
	if err != nil {
		s.logger.Warn("dropping undecodable datagram", "addr", addr.String(), "error", err)
		return
	}

	conn, ok := s.byAddr[addr.String()]
	if !ok {
		conn = newConnection(addr)
	}
	conn.touch()

	s.dispatch(conn, msg)

	if conn.State != StateUnknown {
		s.track(conn)
	}
}

// recoverDispatch is the explicit panic boundary for one datagram's
// handling. A single-goroutine tick loop gives every connection no
// implicit failure isolation from its neighbors, so one malformed
// message must never take the whole server down.
func (s *Server) recoverDispatch(addr *net.UDPAddr) {
	if r := recover(); r != nil {
		s.logger.Error("recovered panic handling datagram", "addr", addr.String(), "panic", r)
	}
}

// track registers conn in every lookup index, evicting any previous
// connection already logged into the same account.
func (s *Server) track(conn *Connection) {
	if existing, ok := s.byAccount[conn.AccountID]; ok && existing != conn {
		s.logger.Info("evicting stale connection for re-login", "account_id", conn.AccountID)
		s.evict(existing)
	}
	s.byAddr[conn.Addr.String()] = conn
	s.byAccount[conn.AccountID] = conn
	if conn.RuntimeID != 0 {
		s.byRuntime[conn.RuntimeID] = conn
	}
}

// evict despawns (and saves, if in-game) conn and removes it from every
// index.
func (s *Server) evict(conn *Connection) {
	if conn.State == StateInGame {
		s.despawnAndSave(conn, "evicted")
	}
	delete(s.byAddr, conn.Addr.String())
	delete(s.byAccount, conn.AccountID)
	if conn.RuntimeID != 0 {
		delete(s.byRuntime, conn.RuntimeID)
	}
}

// despawnAndSave persists the live player's state and removes it from
// the world, broadcasting PlayerDespawn to the zone it leaves behind.
func (s *Server) despawnAndSave(conn *Connection, reason string) {
	p, ok := s.world.Player(conn.RuntimeID)
	if !ok {
		return
	}
	bundle := persistence.CharacterBundle{
		Character: model.Character{
			CharacterID: p.CharacterID,
			AccountID:   p.AccountID,
			Name:        p.Name,
			Class:       p.Class,
			Gender:      p.Gender,
			Empire:      p.Empire,
			Level:       p.State.Level,
		},
		State:     p.State,
		Inventory: p.Inventory,
		Equipment: p.Equipment,
	}
	s.pipe.SaveCharacter(bundle)

	zoneID := p.State.ZoneID
	s.world.DespawnPlayer(conn.RuntimeID)
	delete(s.byRuntime, conn.RuntimeID)

	data, err := protocol.Encode(&protocol.PlayerDespawn{RuntimeID: conn.RuntimeID})
	if err == nil {
		s.fanoutZone(zoneID, data, conn.RuntimeID, true)
	}
	s.logger.Info("despawned character", "character_id", conn.CharacterID, "reason", reason)
}

// reapTimeouts evicts any connection that has not been heard from within
// the configured session timeout.
func (s *Server) reapTimeouts() {
	deadline := s.cfg.SessionTimeoutDuration()
	now := time.Now()
	var stale []*Connection
	for _, conn := range s.byAddr {
		if now.Sub(conn.LastSeen) > deadline {
			stale = append(stale, conn)
		}
	}
	for _, conn := range stale {
		s.logger.Info("reaping idle connection", "addr", conn.Addr.String())
		s.evict(conn)
	}
}

// shutdown despawns and saves every in-game connection, flushes any
// pending outbound datagrams, and closes the socket. The persistence
// pipeline's own Shutdown (draining its queue) is the caller's
// responsibility once Run returns.
func (s *Server) shutdown() {
	s.logger.Info("session server shutting down")
	for _, conn := range s.byAddr {
		if conn.State == StateInGame {
			s.despawnAndSave(conn, "server shutdown")
		}
	}
	s.flushAll()
	if err := s.conn.Close(); err != nil {
		s.logger.Warn("closing udp socket", "error", err)
	}
}

func (s *Server) flushAll() {
	for _, conn := range s.byAddr {
		for _, datagram := range conn.flush() {
			if _, err := s.conn.WriteToUDP(datagram, conn.Addr); err != nil {
				s.logger.Warn("udp write failed", "addr", conn.Addr.String(), "error", err)
			}
		}
	}
}

// encodeForFanout encodes m once for broadcast to many connections,
// logging and returning nil on failure so callers can skip the send.
func (s *Server) encodeForFanout(m protocol.Message) []byte {
	data, err := protocol.Encode(m)
	if err != nil {
		s.logger.Error("encoding broadcast message", "opcode", m.Opcode(), "error", err)
		return nil
	}
	return data
}

// fanoutZone appends data to every connection currently in zoneID except
// exceptRuntimeID (0 = exclude none), into the sim queue when toSim is
// true, the reply queue otherwise.
func (s *Server) fanoutZone(zoneID int32, data []byte, exceptRuntimeID uint32, toSim bool) {
	if data == nil {
		return
	}
	for _, conn := range s.byRuntime {
		if conn.State != StateInGame || conn.LastZoneSeen != zoneID {
			continue
		}
		if exceptRuntimeID != 0 && conn.RuntimeID == exceptRuntimeID {
			continue
		}
		if toSim {
			conn.enqueueSim(data)
		} else {
			conn.enqueueReply(data)
		}
	}
}

// fanoutGlobal appends data to every in-game connection regardless of
// zone (used for server-wide chat).
func (s *Server) fanoutGlobal(data []byte, toSim bool) {
	if data == nil {
		return
	}
	for _, conn := range s.byRuntime {
		if conn.State != StateInGame {
			continue
		}
		if toSim {
			conn.enqueueSim(data)
		} else {
			conn.enqueueReply(data)
		}
	}
}

func (s *Server) simZone(zoneID int32, exceptRuntimeID uint32, m protocol.Message) {
	s.fanoutZone(zoneID, s.encodeForFanout(m), exceptRuntimeID, true)
}

func (s *Server) replyZoneMsg(zoneID int32, exceptRuntimeID uint32, m protocol.Message) {
	s.fanoutZone(zoneID, s.encodeForFanout(m), exceptRuntimeID, false)
}

func (s *Server) replyGlobalMsg(m protocol.Message) {
	s.fanoutGlobal(s.encodeForFanout(m), false)
}

// replyTo queues m on conn's reply queue only.
func (s *Server) replyTo(conn *Connection, m protocol.Message) {
	data := s.encodeForFanout(m)
	if data == nil {
		return
	}
	conn.enqueueReply(data)
}

// enqueueSimMsg queues m on conn's sim queue only, for messages generated
// from tick results rather than inbound message handling.
func (s *Server) enqueueSimMsg(conn *Connection, m protocol.Message) {
	data := s.encodeForFanout(m)
	if data == nil {
		return
	}
	conn.enqueueSim(data)
}
