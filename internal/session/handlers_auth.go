package session

import (
	"context"
	"time"

	"github.com/embervale/coreserver/internal/persistence"
	"github.com/embervale/coreserver/internal/protocol"
)

func (s *Server) handleRegister(conn *Connection, m *protocol.Register) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.store == nil {
		s.replyTo(conn, &protocol.RegisterFailed{Reason: "persistence unavailable"})
		return
	}

	if len(m.Username) < 3 || len(m.Password) < 6 {
		s.replyTo(conn, &protocol.RegisterFailed{Reason: "Username must be at least 3 characters and password at least 6"})
		return
	}

	existing, err := s.store.GetAccountByUsername(ctx, m.Username)
	if err != nil {
		s.logger.Error("register: account lookup failed", "error", err)
		s.replyTo(conn, &protocol.RegisterFailed{Reason: "Internal error"})
		return
	}
	if existing != nil {
		s.replyTo(conn, &protocol.RegisterFailed{Reason: "Username already taken"})
		return
	}

	hash, err := persistence.HashPassword(m.Password)
	if err != nil {
		s.logger.Error("register: hashing password failed", "error", err)
		s.replyTo(conn, &protocol.RegisterFailed{Reason: "Internal error"})
		return
	}

	acc, err := s.store.CreateAccount(ctx, m.Username, hash)
	if err != nil {
		s.logger.Error("register: creating account failed", "error", err)
		s.replyTo(conn, &protocol.RegisterFailed{Reason: "Internal error"})
		return
	}

	s.replyTo(conn, &protocol.RegisterSuccess{AccountID: uint32(acc.AccountID)})
}

func (s *Server) handleLogin(conn *Connection, m *protocol.Login) {
	if m.ProtocolVersion != protocol.ProtocolVersion {
		s.replyTo(conn, &protocol.LoginFailed{Reason: "Client protocol version mismatch"})
		return
	}

	if s.store == nil {
		s.replyTo(conn, &protocol.LoginFailed{Reason: "persistence unavailable"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	acc, err := s.store.GetAccountByUsername(ctx, m.Username)
	if err != nil {
		s.logger.Error("login: account lookup failed", "error", err)
		s.replyTo(conn, &protocol.LoginFailed{Reason: "Internal error"})
		return
	}
	if acc == nil || !persistence.VerifyPassword(acc.PasswordHash, m.Password) {
		s.replyTo(conn, &protocol.LoginFailed{Reason: "Invalid username or password"})
		return
	}

	if err := s.store.UpdateLastLogin(ctx, acc.AccountID); err != nil {
		s.logger.Warn("login: updating last login failed", "account_id", acc.AccountID, "error", err)
	}

	conn.AccountID = acc.AccountID
	conn.Username = acc.Username
	conn.IsAdmin = acc.IsAdmin
	conn.State = StateCharacterSelect

	s.replyTo(conn, &protocol.LoginSuccess{AccountID: uint32(acc.AccountID)})
}
