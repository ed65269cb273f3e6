// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), decodes them into structured Go types and validates that the
// required values exist so the rest of the application can trust them.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into the Config struct tree.
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional blocks (observability, cache).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before we read it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the INVOICING_ prefix. The prefix is stripped, the
	rest is lowercased, and "." separates nesting levels:

	  INVOICING_DATABASE.HOST      -> database.host      -> Config.Database.Host
	  INVOICING_AUTH.SESSION_SECRET -> auth.session_secret -> Config.Auth.SessionSecret
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "INVOICING_"

// Config is the root configuration object for the application.
//
// Observability and Cache are optional blocks. LoadConfig starts them from
// their defaults and lets env values override single keys.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Cache         *CacheConfig         `koanf:"cache"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the secrets behind the login session and CSRF tokens.
//
// CSRFKey must be exactly 32 bytes; gorilla/csrf refuses anything else.
type AuthConfig struct {
	SessionSecret string `koanf:"session_secret" validate:"required,min=32"`
	CSRFKey       string `koanf:"csrf_key" validate:"required,len=32"`
	SecureCookie  bool   `koanf:"secure_cookie"`
	SessionMaxAge int    `koanf:"session_max_age"`
}

// IntegrationConfig holds credentials for third-party services.
// Everything in here is optional; empty values switch the feature off.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	NotifyEmail  string `koanf:"notify_email" validate:"omitempty,email"`
}

// NotificationsEnabled reports whether invoice activity emails can be sent.
func (c IntegrationConfig) NotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.NotifyEmail != ""
}

// LoadConfig loads configuration from environment variables on top of the
// defaults, validates it, and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load initial env variables: %w", err)
	}

	// Defaults first so env values only override the keys they name.
	mainConfig := &Config{
		Cache:         DefaultCacheConfig(),
		Observability: DefaultObservabilityConfig(),
	}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// Trims the spaces left around comma-separated origins.
	mainConfig.Server.CORSAllowedOrigins = splitList(mainConfig.Server.CORSAllowedOrigins)

	// Service name is fixed, environment always follows primary.env so
	// logs and traces agree on both.
	mainConfig.Observability.ServiceName = "invoicing"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
