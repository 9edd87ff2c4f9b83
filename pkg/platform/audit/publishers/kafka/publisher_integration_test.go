//go:build integration

package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	id "chocolate/pkg/domain"
	audit "chocolate/pkg/platform/audit"
	"chocolate/pkg/testutil/containers"
)

func TestProducer_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	brokers := containers.GetManager().GetRedpanda(t).Brokers
	topic := "audit-" + uuid.NewString()

	producer, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	require.NoError(t, err)
	defer producer.Close()
	admin := kadm.NewClient(producer)
	require.NoError(t, EnsureTopic(ctx, admin, topic, 1, 1))
	require.NoError(t, EnsureTopic(ctx, admin, topic, 1, 1), "second call tolerates an existing topic")

	event := audit.Event{
		ID:        uuid.New(),
		Category:  audit.CategoryOperations,
		Action:    audit.ActionProjectAdded,
		Actor:     id.AccountID{1},
		Subject:   "0",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, NewProducer(producer, topic).Append(ctx, event))

	reader, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer reader.Close()

	fetches := reader.PollFetches(ctx)
	require.Empty(t, fetches.Errors())
	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, event.ID.String(), string(records[0].Key))

	got, err := Decode(records[0])
	require.NoError(t, err)
	assert.Equal(t, event, got)
}
