package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=168h"`

	// StoreDriver selects the persistence backend: "mongo" or "memory".
	StoreDriver string `env:"STORE_DRIVER, default=mongo"`

	UploadDir    string `env:"UPLOAD_DIR,    default=./uploads"`
	ClientDir    string `env:"CLIENT_DIR,    default=./client"`
	MediaWorkers int    `env:"MEDIA_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
	AMQP  AMQPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=social_network"`
}

// RedisConfig is optional: an empty Addr disables the search cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,         default=0"`
	CacheTTL time.Duration `env:"SEARCH_CACHE_TTL, default=30s"`
}

// AMQPConfig is optional: an empty URL disables activity publishing.
type AMQPConfig struct {
	URL   string `env:"AMQP_URL"`
	Queue string `env:"AMQP_QUEUE, default=social.activity"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("load config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("load config: JWT_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool { return c.Env == "production" }
