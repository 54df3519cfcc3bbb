package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv         string `env:"APP_ENV" default:"development"`
	Port           string `env:"PORT" default:"8080"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	LogLevel       string `env:"LOG_LEVEL" default:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	SupabaseJWTSecret   string `env:"SUPABASE_JWT_SECRET"`
	SupabaseJWTAudience string `env:"SUPABASE_JWT_AUDIENCE" default:"authenticated"`

	// Cron spec, evaluated in UTC.
	StreakResetSchedule string        `env:"STREAK_RESET_SCHEDULE" default:"5 0 * * *"`
	LeaderboardCacheTTL time.Duration `env:"LEADERBOARD_CACHE_TTL" default:"30s"`
	RateLimitModule     time.Duration `env:"RATE_LIMIT_MODULE" default:"10s"`
	SeedDevelopmentData bool          `env:"SEED_DEVELOPMENT_DATA" default:"false"`

	// Empty means on in development and off elsewhere.
	AutoMigrate string `env:"AUTO_MIGRATE"`
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if cfg.SupabaseJWTSecret == "" {
		return errors.New("SUPABASE_JWT_SECRET is required")
	}
	if cfg.LeaderboardCacheTTL < 0 {
		return errors.New("LEADERBOARD_CACHE_TTL must not be negative")
	}
	if cfg.RateLimitModule < 0 {
		return errors.New("RATE_LIMIT_MODULE must not be negative")
	}
	if cfg.AutoMigrate != "" {
		if _, err := strconv.ParseBool(cfg.AutoMigrate); err != nil {
			return fmt.Errorf("AUTO_MIGRATE must be a boolean: %w", err)
		}
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// ShouldAutoMigrate reports whether the schema is migrated at startup.
func (c *Config) ShouldAutoMigrate() bool {
	if c.AutoMigrate == "" {
		return c.IsDevelopment()
	}
	enabled, err := strconv.ParseBool(c.AutoMigrate)
	return err == nil && enabled
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
