// Package config loads the service configuration from config.toml.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration.
type Config struct {
	Server       ServerConfig   `toml:"server"`
	SchedulingDB DatabaseConfig `toml:"scheduling_db"`
	BookingDB    DatabaseConfig `toml:"booking_db"`
	Logs         LogsConfig     `toml:"logs"`
	Metrics      MetricsConfig  `toml:"metrics"`
	Fleet        FleetConfig    `toml:"fleet"`
}

// ServerConfig holds the HTTP server settings. Timeouts are seconds.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig holds one Postgres connection. The scheduling and
// booking domains live in separate databases.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig holds logger settings.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig holds Prometheus exposure settings.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// FleetConfig points at the route/vessel/capacity tables.
type FleetConfig struct {
	File string `toml:"file"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.SchedulingDB.DBName == "" {
		return fmt.Errorf("config: scheduling_db.dbname is required")
	}
	if c.BookingDB.DBName == "" {
		return fmt.Errorf("config: booking_db.dbname is required")
	}
	if c.Fleet.File == "" {
		return fmt.Errorf("config: fleet.file is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics are enabled")
	}
	return nil
}
