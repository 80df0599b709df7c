package audit

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_records (
	id             UUID PRIMARY KEY,
	event          TEXT        NOT NULL,
	actor          TEXT        NOT NULL DEFAULT '',
	action         TEXT        NOT NULL DEFAULT '',
	entity_type    TEXT        NOT NULL DEFAULT '',
	entity_id      TEXT        NOT NULL DEFAULT '',
	result         TEXT        NOT NULL,
	error          TEXT        NOT NULL DEFAULT '',
	correlation_id TEXT        NOT NULL DEFAULT '',
	metadata       JSONB,
	occurred_at    TIMESTAMPTZ NOT NULL,
	recorded_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_records_entity ON audit_records (entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_records_actor ON audit_records (actor);
CREATE INDEX IF NOT EXISTS idx_audit_records_occurred_at ON audit_records (occurred_at);
`

// PostgresStorage persists audit records in a PostgreSQL table.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage creates a storage over the given pool. Call Migrate
// before first use.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

// Migrate creates the audit table and indexes if they do not exist.
func (s *PostgresStorage) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, auditSchema); err != nil {
		return errors.Join(ErrMigrateFailed, err)
	}
	return nil
}

// Store inserts the record.
func (s *PostgresStorage) Store(ctx context.Context, rec Record) error {
	var metadata []byte
	if rec.Metadata != nil {
		var err error
		metadata, err = json.Marshal(rec.Metadata)
		if err != nil {
			return errors.Join(ErrStoreFailed, err)
		}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_records
			(id, event, actor, action, entity_type, entity_id, result, error, correlation_id, metadata, occurred_at, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rec.ID, rec.Event, rec.Actor, rec.Action, rec.EntityType, rec.EntityID,
		string(rec.Result), rec.Error, rec.CorrelationID, metadata, rec.OccurredAt, rec.RecordedAt,
	)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// ByEntity returns records for one entity, most recent first.
func (s *PostgresStorage) ByEntity(ctx context.Context, entityType, entityID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, event, actor, action, entity_type, entity_id, result, error, correlation_id, metadata, occurred_at, recorded_at
		FROM audit_records
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY occurred_at DESC
		LIMIT $3`,
		entityType, entityID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var result string
		var metadata []byte
		if err := rows.Scan(
			&rec.ID, &rec.Event, &rec.Actor, &rec.Action, &rec.EntityType, &rec.EntityID,
			&result, &rec.Error, &rec.CorrelationID, &metadata, &rec.OccurredAt, &rec.RecordedAt,
		); err != nil {
			return nil, err
		}
		rec.Result = Result(result)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &rec.Metadata); err != nil {
				return nil, err
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
