// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	GRPCPort string `envconfig:"PORT" default:"50051"`
	WebPort  string `envconfig:"WEB_PORT" default:"8080"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// memory, redis or postgres
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPrefix  string `envconfig:"REDIS_PREFIX" default:"logotherapy"`
	DatabaseURL  string `envconfig:"DATABASE_URL"`

	PasswordHasher string `envconfig:"PASSWORD_HASHER" default:"bcrypt"`
	// Zone appointment dates are read in; empty means the host zone.
	Timezone string `envconfig:"TIMEZONE"`

	QuoteURL     string        `envconfig:"QUOTE_URL" default:"https://api.allorigins.win/raw?url=https://zenquotes.io/api/random"`
	QuoteTimeout time.Duration `envconfig:"QUOTE_TIMEOUT" default:"5s"`

	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

// Load reads the given .env files (missing ones are ignored) and then the
// process environment, which wins on conflicts.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case "memory", "redis":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("config: rate limit must be positive")
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
