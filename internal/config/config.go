package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`            // current application environment (local, dev, production etc)
	TelegramAPIToken string `mapstructure:"-"`              // Telegram API token loaded from environment
	TelegramDebug    bool   `mapstructure:"telegram_debug"` // log raw Bot API traffic
	CatalogPath      string `mapstructure:"catalog_path"`   // optional JSON file overriding the embedded country catalog
	Game             Game   `mapstructure:"game"`           // game session configuration section
	UI               UI     `mapstructure:"ui"`             // rendering options
	HTTP             HTTP   `mapstructure:"http"`           // ops HTTP server section
	DB               DB     `mapstructure:"database"`       // database configuration section
}

// Game contains session lifecycle parameters.
type Game struct {
	SessionTTL      time.Duration `mapstructure:"session_ttl"`       // idle time after which a session is evicted
	JanitorSchedule string        `mapstructure:"janitor_schedule"`  // cron spec of the eviction job
	RedrawEachRound bool          `mapstructure:"redraw_each_round"` // reshuffle the whole catalog between rounds
}

// UI contains rendering options.
type UI struct {
	DescribeFlags bool `mapstructure:"describe_flags"` // list accessibility descriptions under the question
}

// HTTP contains ops server parameters.
type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address of /health and /metrics, empty disables the server
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether the results log is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// IsProduction reports whether the bot runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration using dir as the config file search path.
func LoadFrom(dir string) (*Config, error) {
	// Values from .env never override variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("telegram_debug", false)
	v.SetDefault("catalog_path", "")
	v.SetDefault("game.session_ttl", "24h")
	v.SetDefault("game.janitor_schedule", "@every 10m")
	v.SetDefault("game.redraw_each_round", false)
	v.SetDefault("ui.describe_flags", false)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	// The results log is optional.
	cfg.DB.URL = v.GetString("database_url")

	if cfg.Game.SessionTTL <= 0 {
		return nil, fmt.Errorf("game.session_ttl must be positive, got %s", cfg.Game.SessionTTL)
	}

	return &cfg, nil
}
