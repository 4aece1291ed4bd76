package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PredictHQ API defaults
const PHQ_ENDPOINT_BASE = "https://api.predicthq.com"
const PHQ_SAVED_LOCATIONS_PATH = "/saved-locations"
const PHQ_EVENTS_PATH = "/v1/events/"
const PHQ_SPEND_TOTAL_PATH = "/v1/events/spend-total/"
const PHQ_SAVED_LOCATIONS_PAGE_SIZE = 10
const PHQ_EVENTS_LIMIT = 500
const PHQ_HTTP_TIMEOUT_SECONDS = 10

// Used when a location's coordinates cannot be resolved to a zone.
const DEFAULT_TIMEZONE = "America/New_York"

// Session config
const SESSION_TTL_MINUTES = 12 * 60

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

const DEFAULT_CONFIG_PATH = "config.yaml"
const DEFAULT_LISTEN = ":8080"

// RedisConfig holds connection settings for the session store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Config is the top-level application configuration.
type Config struct {
	// Env selects the API client: "prod" talks to the real API, anything else
	// serves the embedded fixtures.
	Env    string `yaml:"env"`
	Listen string `yaml:"listen"`

	// APIToken is never read from the YAML file, only from PHQ_API_TOKEN.
	APIToken string `yaml:"-"`

	APIBaseURL         string `yaml:"api_base_url"`
	SavedLocationsPath string `yaml:"saved_locations_path"`
	EventsPath         string `yaml:"events_path"`
	SpendTotalPath     string `yaml:"spend_total_path"`
	PageSize           int    `yaml:"page_size"`
	EventLimit         int    `yaml:"event_limit"`
	HTTPTimeoutSeconds int    `yaml:"http_timeout_seconds"`

	DefaultTimezone   string `yaml:"default_timezone"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`

	Redis RedisConfig `yaml:"redis"`

	LogLevel           string   `yaml:"log_level"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Env:                "prod",
		Listen:             DEFAULT_LISTEN,
		APIBaseURL:         PHQ_ENDPOINT_BASE,
		SavedLocationsPath: PHQ_SAVED_LOCATIONS_PATH,
		EventsPath:         PHQ_EVENTS_PATH,
		SpendTotalPath:     PHQ_SPEND_TOTAL_PATH,
		PageSize:           PHQ_SAVED_LOCATIONS_PAGE_SIZE,
		EventLimit:         PHQ_EVENTS_LIMIT,
		HTTPTimeoutSeconds: PHQ_HTTP_TIMEOUT_SECONDS,
		DefaultTimezone:    DEFAULT_TIMEZONE,
		SessionTTLMinutes:  SESSION_TTL_MINUTES,
		Redis: RedisConfig{
			Addr:     REDIS_DB_ADDRESS,
			Password: REDIS_DB_PASSWORD,
			DB:       REDIS_DB,
		},
		LogLevel:           "info",
		CORSAllowedOrigins: []string{"*"},
	}
}

// Normalize fills in missing/zero values so partially-filled files still work.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Env == "" {
		c.Env = d.Env
	}
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = d.APIBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.SavedLocationsPath == "" {
		c.SavedLocationsPath = d.SavedLocationsPath
	}
	if c.EventsPath == "" {
		c.EventsPath = d.EventsPath
	}
	if c.SpendTotalPath == "" {
		c.SpendTotalPath = d.SpendTotalPath
	}
	if c.PageSize <= 0 {
		c.PageSize = d.PageSize
	}
	if c.EventLimit <= 0 {
		c.EventLimit = d.EventLimit
	}
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = d.HTTPTimeoutSeconds
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = d.DefaultTimezone
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = d.SessionTTLMinutes
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = d.Redis.Addr
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = d.LogLevel
	}
	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = d.CORSAllowedOrigins
	}
}

// HasToken reports whether an API credential was supplied.
func (c *Config) HasToken() bool {
	return strings.TrimSpace(c.APIToken) != ""
}

// Load reads the YAML file at path (defaults when it does not exist), then
// applies environment overrides. A .env file in the working directory is
// loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file, using environment variables")
	}

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			cfg = &Config{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("[Config] %s not found, using defaults", path)
		default:
			return nil, err
		}
	}

	applyEnv(cfg)
	cfg.Normalize()
	return cfg, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("PHQ_API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv("PHQ_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
