package postgres

import (
	"context"
	"database/sql"
	"fmt"

	id "chocolate/pkg/domain"
	audit "chocolate/pkg/platform/audit"
)

// Store implements audit.Store on the audit_events table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS audit_events (
		id         UUID PRIMARY KEY,
		category   TEXT NOT NULL,
		action     TEXT NOT NULL,
		actor      TEXT NOT NULL,
		subject    TEXT NOT NULL DEFAULT '',
		reason     TEXT NOT NULL DEFAULT '',
		request_id TEXT NOT NULL DEFAULT '',
		client_ip  TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		timestamp  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS audit_events_actor_idx ON audit_events (actor, timestamp);
`

// Migrate creates the audit table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate audit_events: %w", err)
	}
	return nil
}

// Append inserts event. Redelivered events (same ID) are ignored via
// ON CONFLICT DO NOTHING.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (
			id, category, action, actor, subject, reason,
			request_id, client_ip, user_agent, timestamp
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		string(event.Category),
		string(event.Action),
		event.Actor.String(),
		event.Subject,
		event.Reason,
		event.RequestID,
		event.ClientIP,
		event.UserAgent,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, category, action, actor, subject, reason,
		   request_id, client_ip, user_agent, timestamp
	FROM audit_events
`

// ListByActor returns actor's events oldest first.
func (s *Store) ListByActor(ctx context.Context, actor id.AccountID) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`WHERE actor = $1 ORDER BY timestamp ASC, id ASC`, actor.String())
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListRecent returns up to limit events, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+`ORDER BY timestamp DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			e        audit.Event
			category string
			action   string
			actor    string
		)
		if err := rows.Scan(
			&e.ID, &category, &action, &actor, &e.Subject, &e.Reason,
			&e.RequestID, &e.ClientIP, &e.UserAgent, &e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		account, err := id.ParseAccountID(actor)
		if err != nil {
			return nil, fmt.Errorf("audit event %s has bad actor: %w", e.ID, err)
		}
		e.Category = audit.EventCategory(category)
		e.Action = audit.Action(action)
		e.Actor = account
		e.Timestamp = e.Timestamp.UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
