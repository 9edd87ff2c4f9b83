package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "chocolate/pkg/domain"
	audit "chocolate/pkg/platform/audit"
	auditkafka "chocolate/pkg/platform/audit/publishers/kafka"
	"chocolate/pkg/platform/audit/store/memory"
)

func TestConsumer_Handle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	c := New(nil, store, nil)
	actor := id.AccountID{7}

	event := audit.Event{
		ID:        uuid.New(),
		Category:  audit.CategoryCompliance,
		Action:    audit.ActionAccountVerified,
		Actor:     actor,
		Subject:   id.AccountID{8}.String(),
		Timestamp: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	}
	record, err := auditkafka.Encode("audit", event)
	require.NoError(t, err)

	t.Run("stores decoded events once", func(t *testing.T) {
		require.NoError(t, c.Handle(ctx, record))
		require.NoError(t, c.Handle(ctx, record))

		events, err := store.ListByActor(ctx, actor)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event, events[0])
	})

	t.Run("skips malformed records", func(t *testing.T) {
		err := c.Handle(ctx, &kgo.Record{Key: []byte("x"), Value: []byte("{not json")})
		assert.NoError(t, err)
	})
}
