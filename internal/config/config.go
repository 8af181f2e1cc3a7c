// Package config loads the core server's YAML configuration with
// gopkg.in/yaml.v3, using the same default-then-overlay pattern as the
// zone data loaders (which read JSON).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// GameServer holds every externally-tunable setting for the core
// server process.
type GameServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Simulation
	TickRateHz     int `yaml:"tick_rate_hz"`      // test-only override; production is 20
	SessionTimeout int `yaml:"session_timeout_s"` // seconds of inactivity before reaping

	// Content
	ConfigDir string `yaml:"config_dir"` // directory holding spawn_points.json/obstacles.json/heightmaps/

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Cache
	Redis RedisConfig `yaml:"redis"`

	// Persistence
	PersistenceChannelSize int `yaml:"persistence_channel_size"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error (default: info)
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	MaxConns int32 `yaml:"max_conns"` // default: pgxpool's own (max(4, NumCPU))
}

// DSN returns the PostgreSQL connection string pgxpool.New expects.
func (d DatabaseConfig) DSN() string {
	base := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
	if d.MaxConns > 0 {
		base += fmt.Sprintf("&pool_max_conns=%d", d.MaxConns)
	}
	return base
}

// RedisConfig holds cache connection parameters.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// TickInterval returns the configured tick period, falling back to the
// production 20 Hz rate when unset.
func (g GameServer) TickInterval() time.Duration {
	hz := g.TickRateHz
	if hz <= 0 {
		hz = 20
	}
	return time.Second / time.Duration(hz)
}

// SessionTimeoutDuration returns the idle-connection reap threshold,
// falling back to 30 s when unset.
func (g GameServer) SessionTimeoutDuration() time.Duration {
	if g.SessionTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(g.SessionTimeout) * time.Second
}

// DefaultGameServer returns a GameServer config with sensible defaults,
// usable standalone when no config file is present.
func DefaultGameServer() GameServer {
	return GameServer{
		BindAddress:            "0.0.0.0",
		Port:                   7777,
		TickRateHz:             20,
		SessionTimeout:         30,
		ConfigDir:              "config",
		LogLevel:               "info",
		PersistenceChannelSize: 256,
		Database: DatabaseConfig{
			Host:    "127.0.0.1",
			Port:    5432,
			User:    "coreserver",
			Password: "coreserver",
			DBName:  "coreserver",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
	}
}

// Load reads GameServer config from a YAML file, overlaying it onto
// DefaultGameServer. A missing file is not an error; defaults are
// returned as-is, so the server can run without a config file present.
func Load(path string) (GameServer, error) {
	cfg := DefaultGameServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
