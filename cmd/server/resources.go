package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"

	"chocolate/internal/platform/config"
	"chocolate/internal/platform/kafka"
	"chocolate/internal/platform/postgres"
	redisclient "chocolate/internal/platform/redis"
	"chocolate/pkg/platform/audit"
	"chocolate/pkg/platform/audit/consumer"
	auditkafka "chocolate/pkg/platform/audit/publishers/kafka"
	"chocolate/pkg/platform/audit/store/memory"
	auditpostgres "chocolate/pkg/platform/audit/store/postgres"
	"chocolate/pkg/platform/kv"
	kvleveldb "chocolate/pkg/platform/kv/leveldb"
	kvpostgres "chocolate/pkg/platform/kv/postgres"
	kvredis "chocolate/pkg/platform/kv/redis"
	kvsqlite "chocolate/pkg/platform/kv/sqlite"
)

const (
	auditTopicPartitions = 1
	auditTopicReplicas   = 1
)

// resources closes what the server opened, in reverse order.
type resources struct {
	closers []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

func (r *resources) add(name string, close func() error) {
	r.closers = append(r.closers, namedCloser{name: name, close: close})
}

func (r *resources) close(log *slog.Logger) {
	for i := len(r.closers) - 1; i >= 0; i-- {
		c := r.closers[i]
		if err := c.close(); err != nil {
			log.Warn("failed to close resource", "resource", c.name, "error", err)
		}
	}
}

func openBackend(ctx context.Context, cfg config.Server, res *resources) (kv.Backend, error) {
	var backend kv.Backend
	switch cfg.Store {
	case config.StoreMemory:
		backend = kv.NewInMemory()
	case config.StoreRedis:
		client, err := redisclient.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		res.add("redis", client.Close)
		backend = kvredis.New(client, kvredis.WithKeyPrefix(cfg.Redis.KeyPrefix))
	case config.StorePostgres:
		pool, err := postgres.OpenPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		res.add("pgxpool", func() error { pool.Close(); return nil })
		store := kvpostgres.New(pool)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		backend = store
	case config.StoreSQLite:
		store, err := kvsqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		res.add("sqlite", store.Close)
		backend = store
	case config.StoreLevelDB:
		store, err := kvleveldb.Open(cfg.LevelDBPath)
		if err != nil {
			return nil, err
		}
		res.add("leveldb", store.Close)
		backend = store
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	if cfg.StoreCacheSize > 0 {
		cached, err := kv.NewCached(backend, cfg.StoreCacheSize)
		if err != nil {
			return nil, err
		}
		return cached, nil
	}
	return backend, nil
}

// openAuditSink prefers Kafka, then Postgres when the registry itself lives
// there, then memory.
func openAuditSink(ctx context.Context, cfg config.Server, res *resources) (audit.Appender, error) {
	switch {
	case cfg.KafkaEnabled():
		client, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return nil, err
		}
		res.add("kafka producer", func() error { client.Close(); return nil })
		if err := auditkafka.EnsureTopic(ctx, kadm.NewClient(client), cfg.Kafka.AuditTopic, auditTopicPartitions, auditTopicReplicas); err != nil {
			return nil, err
		}
		return auditkafka.NewProducer(client, cfg.Kafka.AuditTopic), nil
	case cfg.Store == config.StorePostgres && cfg.DatabaseURL != "":
		return openAuditStore(ctx, cfg, res)
	default:
		return memory.NewInMemoryStore(), nil
	}
}

func openAuditStore(ctx context.Context, cfg config.Server, res *resources) (*auditpostgres.Store, error) {
	db, err := postgres.OpenDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	res.add("audit db", db.Close)
	store := auditpostgres.New(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// openAuditConsumer materializes the Kafka audit topic into Postgres. It
// returns nil when either side is not configured.
func openAuditConsumer(ctx context.Context, cfg config.Server, res *resources, log *slog.Logger) (*consumer.Consumer, error) {
	if !cfg.KafkaEnabled() || cfg.DatabaseURL == "" {
		return nil, nil
	}
	store, err := openAuditStore(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	client, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Group, cfg.Kafka.AuditTopic)
	if err != nil {
		return nil, err
	}
	res.add("kafka consumer", func() error { client.Close(); return nil })
	return consumer.New(client, store, log), nil
}
