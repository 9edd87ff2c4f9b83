package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	id "chocolate/pkg/domain"
)

// Store backends selectable with CHOCOLATE_STORE.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreLevelDB  = "leveldb"
)

// Server captures everything cmd/server needs.
type Server struct {
	Addr     string `env:"CHOCOLATE_ADDR" envDefault:":8080"`
	Env      string `env:"CHOCOLATE_ENV" envDefault:"dev"`
	LogLevel string `env:"CHOCOLATE_LOG_LEVEL" envDefault:"info"`

	Store          string `env:"CHOCOLATE_STORE" envDefault:"memory"`
	StoreCacheSize int    `env:"CHOCOLATE_STORE_CACHE_SIZE" envDefault:"0"`
	Redis          RedisConfig
	DatabaseURL    string `env:"DATABASE_URL"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"chocolate.db"`
	LevelDBPath    string `env:"LEVELDB_PATH" envDefault:"chocolate-leveldb"`

	Hash        string        `env:"CHOCOLATE_HASH" envDefault:"blake2b-256"`
	AdminRaw    string        `env:"CHOCOLATE_ADMIN,required"`
	Authorizers []string      `env:"CHOCOLATE_AUTHORIZERS" envSeparator:","`
	CallTimeout time.Duration `env:"CHOCOLATE_CALL_TIMEOUT" envDefault:"5s"`

	JWT   JWTConfig
	Kafka KafkaConfig

	AuditBuffer  int    `env:"AUDIT_BUFFER" envDefault:"256"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	KeyPrefix    string        `env:"REDIS_KEY_PREFIX" envDefault:"chocolate:"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

type JWTConfig struct {
	// Use the default for development only; production must override it.
	SigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer     string `env:"JWT_ISSUER" envDefault:"chocolate"`
	Audience   string `env:"JWT_AUDIENCE" envDefault:"chocolate-api"`
}

type KafkaConfig struct {
	Brokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	AuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"chocolate.audit"`
	Group      string   `env:"KAFKA_AUDIT_GROUP" envDefault:"chocolate-audit-materializer"`
}

// FromEnv parses and validates the server configuration.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreLevelDB:
	case StoreRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("CHOCOLATE_STORE=redis needs REDIS_URL")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("CHOCOLATE_STORE=postgres needs DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.StoreCacheSize < 0 {
		return fmt.Errorf("CHOCOLATE_STORE_CACHE_SIZE must not be negative")
	}
	if c.AuditBuffer < 0 {
		return fmt.Errorf("AUDIT_BUFFER must not be negative")
	}
	if _, err := c.Admin(); err != nil {
		return fmt.Errorf("CHOCOLATE_ADMIN: %w", err)
	}
	if _, err := c.SeedAuthorizers(); err != nil {
		return err
	}
	return nil
}

func (c Server) Admin() (id.AccountID, error) {
	return id.ParseAccountID(c.AdminRaw)
}

// SeedAuthorizers parses CHOCOLATE_AUTHORIZERS.
func (c Server) SeedAuthorizers() ([]id.AccountID, error) {
	out := make([]id.AccountID, 0, len(c.Authorizers))
	for _, raw := range c.Authorizers {
		account, err := id.ParseAccountID(raw)
		if err != nil {
			return nil, fmt.Errorf("CHOCOLATE_AUTHORIZERS entry %q: %w", raw, err)
		}
		out = append(out, account)
	}
	return out, nil
}

func (c Server) IsDev() bool {
	return c.Env == "dev"
}

func (c Server) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}
