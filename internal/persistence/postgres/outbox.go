package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Topics carrying routine lifecycle events.
const (
	TopicRoutineEvents     = "routine_events"
	TopicCompositionEvents = "routine_composition_events"
)

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	Topic string
}

var eventCatalog = map[string]EventMetadata{
	"routine.created":           {Topic: TopicRoutineEvents},
	"routine.updated":           {Topic: TopicRoutineEvents},
	"routine.deleted":           {Topic: TopicRoutineEvents},
	"routine_activity.attached": {Topic: TopicCompositionEvents},
	"routine_activity.removed":  {Topic: TopicCompositionEvents},
}

// insertOutbox records an event row in the caller's transaction so the event
// is published iff the mutation commits.
func insertOutbox(ctx context.Context, tx pgx.Tx, aggregateType, aggregateID, eventType, partitionKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta := eventCatalog[eventType]
	if meta.Topic == "" {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	dedupeKey := fmt.Sprintf("%s:%s", aggregateID, eventType)

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err = tx.Exec(ctx, stmt, aggregateType, aggregateID, eventType, meta.Topic, partitionKey, body, dedupeKey)
	return err
}
