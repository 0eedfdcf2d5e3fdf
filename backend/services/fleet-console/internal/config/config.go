package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	libconfig "gestaocombustivel/backend/libs/config"
)

// Session backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

const (
	defaultBaseURL     = "https://localhost:7105"
	defaultGatewayPort = "8787"
)

// APIConfig points at the fleet backend.
type APIConfig struct {
	BaseURL        string `yaml:"baseUrl" env:"FLEET_API_BASE"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" env:"FLEET_API_TIMEOUT"`
}

// GatewayConfig configures the local console gateway.
type GatewayConfig struct {
	Port string `yaml:"port" env:"FLEET_GATEWAY_PORT"`
	// AllowedOrigins lists browser origins allowed to call the gateway besides its own.
	AllowedOrigins []string `yaml:"allowedOrigins" env:"FLEET_GATEWAY_ALLOWED_ORIGINS"`
	// AllowedHosts lists Host names accepted besides loopback.
	AllowedHosts []string `yaml:"allowedHosts" env:"FLEET_GATEWAY_ALLOWED_HOSTS"`
}

// RedisConfig configures the redis session backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"FLEET_SESSION_REDIS_ADDR"`
	Password string `yaml:"password" env:"FLEET_SESSION_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"FLEET_SESSION_REDIS_DB"`
	Prefix   string `yaml:"prefix" env:"FLEET_SESSION_REDIS_PREFIX"`
}

// PostgresConfig configures the postgres session backend.
type PostgresConfig struct {
	DSN string `yaml:"dsn" env:"FLEET_SESSION_POSTGRES_DSN"`
}

// SessionConfig selects where the session survives restarts.
type SessionConfig struct {
	Backend  string         `yaml:"backend" env:"FLEET_SESSION_BACKEND"`
	Dir      string         `yaml:"dir" env:"FLEET_SESSION_DIR"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// Config defines fleet-console configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Gateway GatewayConfig `yaml:"gateway"`
	Session SessionConfig `yaml:"session"`
}

// Load reads configuration via the shared helper.
func Load() (*Config, error) {
	cfg := &Config{
		API:     APIConfig{BaseURL: defaultBaseURL},
		Gateway: GatewayConfig{Port: defaultGatewayPort},
		Session: SessionConfig{Backend: BackendFile},
	}

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields the selected backend depends on.
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.API.BaseURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("config: api baseUrl must be an absolute http(s) URL")
	}

	switch c.SessionBackend() {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.Session.Redis.Addr) == "" {
			return errors.New("config: session redis addr required")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Session.Postgres.DSN) == "" {
			return errors.New("config: session postgres dsn required")
		}
	default:
		return fmt.Errorf("config: unknown session backend %q", c.Session.Backend)
	}
	return nil
}

// SessionBackend returns the normalized backend name, file when unset.
func (c *Config) SessionBackend() string {
	b := strings.ToLower(strings.TrimSpace(c.Session.Backend))
	if b == "" {
		return BackendFile
	}
	return b
}

// HTTPAddress returns the gateway listen address; a bare port binds loopback only.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.Gateway.Port)
	if port == "" {
		port = defaultGatewayPort
	}
	if strings.Contains(port, ":") {
		return port
	}
	return fmt.Sprintf("127.0.0.1:%s", port)
}

// HTTPTimeout returns the outbound request timeout; 0 means none.
func (c *Config) HTTPTimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
