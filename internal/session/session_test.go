package session

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/coreserver/internal/ability"
	"github.com/embervale/coreserver/internal/config"
	"github.com/embervale/coreserver/internal/data"
	"github.com/embervale/coreserver/internal/model"
	"github.com/embervale/coreserver/internal/protocol"
	"github.com/embervale/coreserver/internal/world"
	"github.com/embervale/coreserver/internal/zonedata"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	zones := zonedata.NewRegistry(zonedata.DefaultZones())
	items := data.NewCatalog()
	abilities := ability.NewCatalog()
	w := world.New(zones, items, abilities)

	cfg := config.DefaultGameServer()
	cfg.BindAddress = "127.0.0.1"
	cfg.Port = 0 // ephemeral port, avoids colliding across test runs

	srv, err := New(cfg, w, nil, nil, items, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.conn.Close() })
	return srv
}

func newTestConn(t *testing.T) *Connection {
	t.Helper()
	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:9999")
	require.NoError(t, err)
	return newConnection(addr)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "character_select", StateCharacterSelect.String())
	assert.Equal(t, "in_game", StateInGame.String())
}

func TestConnectionFlush_SimBeforeReply(t *testing.T) {
	conn := newTestConn(t)
	conn.enqueueReply([]byte("reply"))
	conn.enqueueSim([]byte("sim"))

	out := conn.flush()
	require.Len(t, out, 2)
	assert.Equal(t, []byte("sim"), out[0])
	assert.Equal(t, []byte("reply"), out[1])

	assert.Nil(t, conn.flush())
}

func TestDispatch_IgnoresMessageOutsideCurrentState(t *testing.T) {
	srv := newTestServer(t)
	conn := newTestConn(t)
	conn.State = StateUnknown

	// GetCharacterList only belongs to StateCharacterSelect; dispatched
	// while StateUnknown it must be silently dropped, not panic.
	assert.NotPanics(t, func() {
		srv.dispatch(conn, &protocol.GetCharacterList{})
	})
	assert.Equal(t, StateUnknown, conn.State)
}

func TestDispatch_RoutesLoginOnlyFromUnknown(t *testing.T) {
	srv := newTestServer(t)
	conn := newTestConn(t)
	conn.State = StateInGame

	// Login is meaningless once in-game; dispatchInGame has no case for
	// it, so it must be a no-op.
	assert.NotPanics(t, func() {
		srv.dispatch(conn, &protocol.Login{ProtocolVersion: protocol.ProtocolVersion, Username: "a", Password: "b"})
	})
	assert.Equal(t, StateInGame, conn.State)
}

func TestDefaultActionBar_MatchesClassCatalog(t *testing.T) {
	abilities := ability.NewCatalog()
	bar := defaultActionBar(model.ClassWarrior, abilities)
	assert.Equal(t, [model.ActionBarSize]uint32{10, 11, 12, 40, 0, 0, 0, 0, 0}, bar)

	bar = defaultActionBar(model.ClassNinja, abilities)
	assert.Equal(t, uint32(1), bar[0])
	assert.Equal(t, uint32(2), bar[1])
	assert.Equal(t, uint32(0), bar[2])
}

func TestZoneOf_ResolvesLivePlayerAndEnemy(t *testing.T) {
	srv := newTestServer(t)
	ch := model.Character{CharacterID: 1, AccountID: 1, Class: model.ClassWarrior, Empire: model.EmpireRed}
	state := model.NewPersistedState(model.ClassWarrior, model.EmpireRed)
	p := srv.world.SpawnPlayer(ch, state, model.Inventory{}, model.Equipment{})

	zoneID, ok := srv.zoneOf(p.RuntimeID, false)
	require.True(t, ok)
	assert.Equal(t, state.ZoneID, zoneID)

	_, ok = srv.zoneOf(999999, false)
	assert.False(t, ok)
}

func TestRunAdminCommand_PublicCommandsWork(t *testing.T) {
	srv := newTestServer(t)
	conn := newTestConn(t)
	conn.State = StateInGame
	ch := model.Character{CharacterID: 1, AccountID: 1, Class: model.ClassNinja, Empire: model.EmpireRed}
	state := model.NewPersistedState(model.ClassNinja, model.EmpireRed)
	p := srv.world.SpawnPlayer(ch, state, model.Inventory{}, model.Equipment{})
	conn.RuntimeID = p.RuntimeID
	conn.LastZoneSeen = state.ZoneID

	srv.runAdminCommand(conn, "/pos")
	require.Len(t, conn.replyQueue, 1)

	conn.replyQueue = nil
	srv.runAdminCommand(conn, "/help")
	require.Len(t, conn.replyQueue, 1)
}

func TestRunAdminCommand_RejectsNonAdminForPrivilegedCommand(t *testing.T) {
	srv := newTestServer(t)
	conn := newTestConn(t)
	conn.State = StateInGame
	conn.IsAdmin = false
	ch := model.Character{CharacterID: 1, AccountID: 1, Class: model.ClassNinja, Empire: model.EmpireRed}
	state := model.NewPersistedState(model.ClassNinja, model.EmpireRed)
	p := srv.world.SpawnPlayer(ch, state, model.Inventory{}, model.Equipment{})
	conn.RuntimeID = p.RuntimeID

	srv.runAdminCommand(conn, "/lvl 10")

	require.Len(t, conn.replyQueue, 1)
	msg, err := protocol.DecodeServerMessage(conn.replyQueue[0])
	require.NoError(t, err)
	resp, ok := msg.(*protocol.CommandResponse)
	require.True(t, ok)
	assert.Contains(t, resp.Text, "Admin")

	// level must not have changed
	assert.Equal(t, int32(1), p.State.Level)
}

func TestRunAdminCommand_AdminLevelCommandMutatesStats(t *testing.T) {
	srv := newTestServer(t)
	conn := newTestConn(t)
	conn.State = StateInGame
	conn.IsAdmin = true
	ch := model.Character{CharacterID: 1, AccountID: 1, Class: model.ClassWarrior, Empire: model.EmpireRed}
	state := model.NewPersistedState(model.ClassWarrior, model.EmpireRed)
	p := srv.world.SpawnPlayer(ch, state, model.Inventory{}, model.Equipment{})
	conn.RuntimeID = p.RuntimeID

	srv.runAdminCommand(conn, "/lvl 5")

	assert.Equal(t, int32(5), p.State.Level)
	assert.True(t, len(conn.replyQueue) >= 2)
}
