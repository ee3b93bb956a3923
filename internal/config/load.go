package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SMARTTASK_CLIENT_API_URL.
const EnvPrefix = "SMARTTASK"

// ErrMissingJWTSecret is returned by LoadServer when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("auth.jwt_secret is required to run the server")

var validate = validator.New()

// Load reads configuration from defaults, an optional smarttask.yaml file and
// environment variables, in increasing order of precedence.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("smarttask")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "smarttask"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadServer loads the configuration and additionally enforces the settings
// that only the companion server needs.
func LoadServer() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config validation failed: %w", ErrMissingJWTSecret)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("client.api_url", "http://127.0.0.1:8000")
	v.SetDefault("client.request_timeout", 10*time.Second)
	v.SetDefault("client.session_file", defaultSessionFile())
	v.SetDefault("client.log_level", "warn")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".smarttask-session.yaml"
	}
	return filepath.Join(dir, "smarttask", "session.yaml")
}
