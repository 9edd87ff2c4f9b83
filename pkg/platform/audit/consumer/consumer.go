// Package consumer materializes the Kafka audit stream into a queryable
// audit.Store.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "chocolate/pkg/platform/audit"
	auditkafka "chocolate/pkg/platform/audit/publishers/kafka"
)

// Consumer polls a consumer-group client and commits offsets only after every
// record of a poll has been stored.
type Consumer struct {
	client *kgo.Client
	store  audit.Store
	logger *slog.Logger
}

func New(client *kgo.Client, store audit.Store, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{client: client, store: store, logger: logger}
}

// Run consumes until ctx is cancelled or the client is closed.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}
		for _, fe := range fetches.Errors() {
			if errors.Is(fe.Err, context.Canceled) {
				return nil
			}
			c.logger.WarnContext(ctx, "audit fetch error",
				"topic", fe.Topic,
				"partition", fe.Partition,
				"error", fe.Err,
			)
		}

		var handleErr error
		fetches.EachRecord(func(record *kgo.Record) {
			if handleErr != nil {
				return
			}
			handleErr = c.Handle(ctx, record)
		})
		if handleErr != nil {
			return handleErr
		}
		if err := c.client.CommitUncommittedOffsets(ctx); err != nil {
			c.logger.WarnContext(ctx, "failed to commit audit offsets", "error", err)
		}
	}
}

// Handle stores one record. Undecodable records are logged and skipped so
// they are committed rather than redelivered forever.
func (c *Consumer) Handle(ctx context.Context, record *kgo.Record) error {
	event, err := auditkafka.Decode(record)
	if err != nil {
		c.logger.WarnContext(ctx, "skipping malformed audit record",
			"key", string(record.Key),
			"offset", record.Offset,
			"error", err,
		)
		return nil
	}
	if err := c.store.Append(ctx, event); err != nil {
		return fmt.Errorf("materialize audit event %s: %w", event.ID, err)
	}
	return nil
}
