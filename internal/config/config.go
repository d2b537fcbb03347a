package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Config struct {
	Addr                 string        `mapstructure:"addr"`
	BasePath             string        `mapstructure:"base_path"`
	Development          bool          `mapstructure:"development"`
	SessionSecret        string        `mapstructure:"session_secret"`
	SessionTTL           time.Duration `mapstructure:"session_ttl"`
	SessionSweepInterval time.Duration `mapstructure:"session_sweep_interval"`
	TokenLifetime        time.Duration `mapstructure:"token_lifetime"`
	DefaultGame          string        `mapstructure:"default_game"`
	MaxCells             int           `mapstructure:"max_cells"`
	LogFile              string        `mapstructure:"log_file"`
	CorsOrigins          []string      `mapstructure:"cors_origins"`
}

var envNames = map[string]string{
	"addr":                   "APP_ADDR",
	"base_path":              "APP_BASE_PATH",
	"development":            "DEVELOPMENT",
	"session_secret":         "SESSION_SECRET",
	"session_ttl":            "SESSION_TTL",
	"session_sweep_interval": "SESSION_SWEEP_INTERVAL",
	"token_lifetime":         "TOKEN_LIFETIME",
	"default_game":           "DEFAULT_GAME",
	"max_cells":              "MAX_CELLS",
	"log_file":               "LOG_FILE",
	"cors_origins":           "CORS_ORIGINS",
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("base_path", "")
	v.SetDefault("development", false)
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl", time.Hour)
	v.SetDefault("session_sweep_interval", time.Minute)
	v.SetDefault("token_lifetime", 24*time.Hour)
	v.SetDefault("default_game", "easy")
	v.SetDefault("max_cells", 10000)
	v.SetDefault("log_file", "")
	v.SetDefault("cors_origins", []string{})

	for key, env := range envNames {
		v.BindEnv(key, env)
	}

	return v
}

// Load reads configuration from the environment and, when path is not
// empty, from a config file. Environment variables win over the file.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SessionSecret == "" {
		if !c.Development {
			return fmt.Errorf("SESSION_SECRET env variable is not set")
		}
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("unable to generate session secret: %w", err)
		}
		c.SessionSecret = secret
	}
	if c.SessionSweepInterval <= 0 {
		return fmt.Errorf("session_sweep_interval must be positive")
	}
	if _, err := c.DefaultParams(); err != nil {
		return err
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// DefaultParams resolves default_game, which is a preset name or
// "rows:cols:mines".
func (c Config) DefaultParams() (mines.GameParams, error) {
	p, err := mines.ParseParams(c.DefaultGame)
	if err != nil {
		return mines.GameParams{}, fmt.Errorf("invalid default_game: %w", err)
	}
	if err := p.Validate(); err != nil {
		return mines.GameParams{}, fmt.Errorf("invalid default_game: %w", err)
	}
	return *p, nil
}

// Fields lists the settings that are safe to log.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"addr":                   c.Addr,
		"base_path":              c.BasePath,
		"development":            c.Development,
		"session_ttl":            c.SessionTTL.String(),
		"session_sweep_interval": c.SessionSweepInterval.String(),
		"token_lifetime":         c.TokenLifetime.String(),
		"default_game":           c.DefaultGame,
		"max_cells":              c.MaxCells,
		"log_file":               c.LogFile,
		"cors_origins":           c.CorsOrigins,
	}
}
