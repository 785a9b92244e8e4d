// Package config loads server settings from an optional TOML file, a .env
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const DefaultFile = "twin.toml"

type Server struct {
	Port      string `toml:"port"`
	PublicURL string `toml:"public_url"`
}

type Gemini struct {
	APIKey        string `toml:"api_key"`
	Model         string `toml:"model"`
	RatePerMinute int    `toml:"rate_per_minute"`
}

type Census struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Year    string `toml:"year"`
}

// Cache selects Redis when RedisURL is set and memory otherwise. TTL is a Go
// duration string; "0" keeps entries indefinitely.
type Cache struct {
	RedisURL string `toml:"redis_url"`
	TTL      string `toml:"ttl"`
}

type Config struct {
	LogLevel string `toml:"log_level"`
	Server   Server `toml:"server"`
	Gemini   Gemini `toml:"gemini"`
	Census   Census `toml:"census"`
	Cache    Cache  `toml:"cache"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Server:   Server{Port: "8080"},
		Gemini:   Gemini{Model: "gemini-2.5-flash-lite", RatePerMinute: 60},
		Census:   Census{BaseURL: "https://api.census.gov/data", Year: "2019"},
		Cache:    Cache{TTL: "1h"},
	}
}

// Load reads path over the defaults, then .env, then the process
// environment. A missing file at path is not an error when path is
// DefaultFile.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if !(errors.Is(err, os.ErrNotExist) && path == DefaultFile) {
				return Config{}, err
			}
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.Gemini.Model, "GEMINI_MODEL")
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.PublicURL, "PUBLIC_URL")
	setString(&c.Census.APIKey, "CENSUS_API_KEY")
	setString(&c.Census.BaseURL, "CENSUS_BASE_URL")
	setString(&c.Census.Year, "CENSUS_YEAR")
	setString(&c.Cache.RedisURL, "REDIS_URL")
	setString(&c.Cache.TTL, "CACHE_TTL")
	setString(&c.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("LLM_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LLM_RATE_PER_MINUTE: %w", err)
		}
		c.Gemini.RatePerMinute = n
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

func (c Config) CacheTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("cache ttl: %w", err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("cache ttl %s must not be negative", c.Cache.TTL)
	}
	return ttl, nil
}

// BaseURL is the externally reachable address used in the agent card.
func (c Config) BaseURL() string {
	if c.Server.PublicURL != "" {
		return c.Server.PublicURL
	}
	return "http://localhost:" + c.Server.Port
}

// ModelEnabled reports whether language-model features can be served.
func (c Config) ModelEnabled() bool {
	return c.Gemini.APIKey != ""
}
