package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	DatabaseURL            string
	HTTPAddr               string
	DefaultLocale          string
	Timezone               string
	SweepInterval          time.Duration
	SweepItemTimeout       time.Duration
	RedisURL               string
	DiscordToken           string
	DiscordNotifyChannelID string
	PosterDir              string
	PosterBaseURL          string
	MigrateOnStart         bool
}

const defaultDatabaseURL = "postgres://localhost:5432/clubvenue?sslmode=disable"

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (Docker, CI, etc.).
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPAddr:               getenv("HTTP_ADDR", ":8080"),
		DefaultLocale:          getenv("DEFAULT_LOCALE", "en"),
		Timezone:               getenv("TIMEZONE", "UTC"),
		RedisURL:               os.Getenv("REDIS_URL"),
		DiscordToken:           os.Getenv("DISCORD_TOKEN"),
		DiscordNotifyChannelID: os.Getenv("DISCORD_NOTIFY_CHANNEL_ID"),
		PosterDir:              getenv("POSTER_DIR", "uploads/posters"),
		PosterBaseURL:          getenv("POSTER_BASE_URL", "/uploads/posters"),
	}

	var err error
	if cfg.SweepInterval, err = parseDuration("SWEEP_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.SweepItemTimeout, err = parseDuration("SWEEP_ITEM_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.MigrateOnStart, err = parseBool("MIGRATE_ON_START", true); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := getenv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s invalid (%q): %w", key, raw, err)
	}
	return d, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s invalid (%q): %w", key, raw, err)
	}
	return b, nil
}

// validate applies the configuration rules after loading.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Local default when DATABASE_URL is not provided.
		c.DatabaseURL = defaultDatabaseURL
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}

	if c.RedisURL != "" {
		if u, err := url.Parse(c.RedisURL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			return fmt.Errorf("config: REDIS_URL must be a redis:// or rediss:// URL")
		}
	}

	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: DEFAULT_LOCALE invalid (%q): %w", c.DefaultLocale, err)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: TIMEZONE invalid (%q): %w", c.Timezone, err)
	}

	if c.SweepInterval <= 0 {
		return fmt.Errorf("config: SWEEP_INTERVAL must be positive")
	}
	if c.SweepItemTimeout <= 0 {
		return fmt.Errorf("config: SWEEP_ITEM_TIMEOUT must be positive")
	}

	if (c.DiscordToken == "") != (c.DiscordNotifyChannelID == "") {
		return fmt.Errorf("config: DISCORD_TOKEN and DISCORD_NOTIFY_CHANNEL_ID must be set together")
	}
	for _, r := range c.DiscordNotifyChannelID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_NOTIFY_CHANNEL_ID must be a Discord channel ID (digits only)")
		}
	}

	if strings.TrimSpace(c.PosterDir) == "" {
		return fmt.Errorf("config: POSTER_DIR cannot be empty")
	}

	return nil
}

// DiscordEnabled reports whether Discord notifications are configured.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordNotifyChannelID != ""
}
