package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Contact ContactConfig
	Store   StoreConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type AppConfig struct {
	Name        string `env:"NOME_APP" envDefault:"Portfólio Backend API"`
	Environment string `env:"AMBIENTE" envDefault:"local"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Origins     string `env:"ORIGENS_PERMITIDAS" envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
}

type ContactConfig struct {
	FormspreeURL    string        `env:"FORMSPREE_URL" envDefault:"https://formspree.io/f"`
	FormspreeFormID string        `env:"FORMSPREE_FORM_ID"`
	Timeout         time.Duration `env:"DELIVERY_TIMEOUT" envDefault:"10s"`
	RatePerMinute   int           `env:"DELIVERY_RATE_PER_MIN" envDefault:"30"`
	Burst           int           `env:"DELIVERY_BURST" envDefault:"5"`
}

type StoreConfig struct {
	Driver   string `env:"STORE_DRIVER" envDefault:"file"`
	DataDir  string `env:"DATA_DIR" envDefault:"dados"`
	Redis    RedisConfig
	Database DatabaseConfig
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"portfolio:dataset:"`
}

type DatabaseConfig struct {
	DSN string `env:"DB_DSN"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return parse(env.Options{})
}

// Parse builds a Config from the given variables only.
func Parse(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AllowedOrigins splits ORIGENS_PERMITIDAS, dropping blank entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.App.Origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Contact.Timeout <= 0 {
		return fmt.Errorf("DELIVERY_TIMEOUT must be positive")
	}

	switch c.Store.Driver {
	case DriverFile:
		if c.Store.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file store")
		}
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	case DriverPostgres:
		if c.Store.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	for _, origin := range c.AllowedOrigins() {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid origin %q in ORIGENS_PERMITIDAS", origin)
		}
	}

	return nil
}
