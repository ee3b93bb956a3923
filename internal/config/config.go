package config

import "time"

// Config holds all application configuration.
// The client and the companion server share one file and one environment prefix;
// each binary validates the sections it needs.
type Config struct {
	Client   ClientConfig   `mapstructure:"client" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ClientConfig contains the settings used by the command-line client.
type ClientConfig struct {
	APIURL         string        `mapstructure:"api_url"         validate:"required,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required,gt=0"`
	SessionFile    string        `mapstructure:"session_file"    validate:"required"`
	LogLevel       string        `mapstructure:"log_level"       validate:"required,oneof=debug info warn error"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains database settings for the companion server.
// An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains token signing settings for the companion server.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gte=0"`
}
