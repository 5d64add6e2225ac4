package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string   `env:"PORT,            default=3000"`
	Env            string   `env:"ENV,             default=development"`
	LogLevel       string   `env:"LOG_LEVEL,       default=info"`
	StaticDir      string   `env:"STATIC_DIR,      default=."`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:3000"`

	DB        DBConfig
	Session   SessionConfig
	Hashing   HashingConfig
	Bootstrap BootstrapConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type DBConfig struct {
	Driver string `env:"DB_DRIVER, default=sqlite"`
	DSN    string `env:"DB_DSN,    default=./restaurant.db"`
}

type SessionConfig struct {
	Store        string        `env:"SESSION_STORE,         default=memory"`
	Secret       string        `env:"SESSION_SECRET"`
	CookieName   string        `env:"SESSION_COOKIE,        default=sid"`
	TTL          time.Duration `env:"SESSION_TTL,           default=24h"`
	Sliding      bool          `env:"SESSION_SLIDING,       default=false"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type HashingConfig struct {
	BcryptCost int `env:"BCRYPT_COST,  default=10"`
	Workers    int `env:"HASH_WORKERS, default=4"`
}

// BootstrapConfig controls the default manager account. The default
// password is public, so production deployments should set a random one.
type BootstrapConfig struct {
	Enabled        bool   `env:"BOOTSTRAP_ADMIN,                 default=true"`
	Name           string `env:"BOOTSTRAP_ADMIN_NAME,            default=Admin"`
	Email          string `env:"BOOTSTRAP_ADMIN_EMAIL,           default=admin@taplejung.com"`
	Password       string `env:"BOOTSTRAP_ADMIN_PASSWORD,        default=admin123"`
	RandomPassword bool   `env:"BOOTSTRAP_ADMIN_RANDOM_PASSWORD, default=false"`
}

// MongoConfig is optional: audit events go to the log when URI is empty.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=restaurant"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// IsDevelopment reports whether the process runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file, then environment variables using
// go-envconfig. Invalid configuration is fatal.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := load(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DB.Driver)
	}
	switch c.Session.Store {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("SESSION_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be memory or redis, got %q", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Hashing.Workers <= 0 {
		return errors.New("HASH_WORKERS must be positive")
	}
	return nil
}
