package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/standings"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendLocal    = "local"
	BackendMemory   = "memory"
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Event publishers
const (
	PublisherLog       = "log"
	PublisherJetStream = "jetstream"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		LoginPath      string   `yaml:"login_path"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Store struct {
		Backend  string        `yaml:"backend"`
		Dir      string        `yaml:"dir"`
		RedisURL string        `yaml:"redis_url"`
		RedisTTL time.Duration `yaml:"redis_ttl"`
		Migrate  bool          `yaml:"migrate"`
	} `yaml:"store"`

	Supabase struct {
		URL       string `yaml:"url"`
		AnonKey   string `yaml:"anon_key"`
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"supabase"`

	Events struct {
		Publisher     string `yaml:"publisher"`
		NATSURL       string `yaml:"nats_url"`
		StreamName    string `yaml:"stream_name"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"events"`

	Standings struct {
		TiePolicy string `yaml:"tie_policy"`
	} `yaml:"standings"`

	Scoreboard struct {
		Themes []models.Theme `yaml:"themes"`
	} `yaml:"scoreboard"`
}

func defaultConfig() *Config {
	var c Config
	c.Server.Port = "8080"
	c.Server.LoginPath = "/login"
	c.Server.AllowedOrigins = []string{"*"}
	c.Log.Level = "info"
	c.Log.Format = "json"
	c.Store.Backend = BackendLocal
	c.Store.Dir = "data"
	c.Store.Migrate = true
	c.Events.Publisher = PublisherLog
	c.Standings.TiePolicy = string(standings.TieAwayWins)
	return &c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// loadConfig reads path over the defaults; a missing file means defaults only
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

// applyEnv lets the environment override the file
func (c *Config) applyEnv() {
	if port := getEnvAsInt("PORT", 0); port > 0 {
		c.Server.Port = strconv.Itoa(port)
	}
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Store.Backend = getEnv("STORE_BACKEND", c.Store.Backend)
	c.Store.Dir = getEnv("STORE_DIR", c.Store.Dir)
	c.Store.RedisURL = getEnv("REDIS_URL", c.Store.RedisURL)
	if ttl := getEnvAsInt("REDIS_TTL_HOURS", 0); ttl > 0 {
		c.Store.RedisTTL = time.Duration(ttl) * time.Hour
	}
	c.Supabase.URL = getEnv("SUPABASE_URL", c.Supabase.URL)
	c.Supabase.AnonKey = getEnv("SUPABASE_ANON_KEY", c.Supabase.AnonKey)
	c.Supabase.JWTSecret = getEnv("SUPABASE_JWT_SECRET", c.Supabase.JWTSecret)
	c.Events.Publisher = getEnv("EVENTS_PUBLISHER", c.Events.Publisher)
	c.Events.NATSURL = getEnv("NATS_URL", c.Events.NATSURL)
	c.Standings.TiePolicy = getEnv("TIE_POLICY", c.Standings.TiePolicy)
}

// authEnabled reports whether sign-in is configured
func (c *Config) authEnabled() bool {
	return c.Supabase.URL != "" && c.Supabase.AnonKey != ""
}

func (c *Config) validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case BackendLocal, BackendMemory:
	case BackendSupabase, BackendPostgres, BackendRedis:
		if !c.authEnabled() {
			return fmt.Errorf("store backend %q needs SUPABASE_URL and SUPABASE_ANON_KEY for sign-in", c.Store.Backend)
		}
		if c.Store.Backend == BackendRedis && c.Store.RedisURL == "" {
			return errors.New("store backend redis needs REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	switch c.Events.Publisher {
	case PublisherLog, PublisherJetStream:
	default:
		return fmt.Errorf("unknown events publisher %q", c.Events.Publisher)
	}

	if _, err := standings.ParseTiePolicy(c.Standings.TiePolicy); err != nil {
		return err
	}
	return nil
}
