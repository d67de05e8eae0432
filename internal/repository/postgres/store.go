package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/upwatch/upwatch/internal/repository/recordstore"
)

var _ recordstore.Store = (*RecordStore)(nil)

// RecordStore keeps every collection in a single jsonb-backed table, keyed
// by (collection, id). The primary key gives Create its fail-if-exists
// atomicity.
type RecordStore struct {
	db *DB
}

func NewRecordStore(db *DB) *RecordStore { return &RecordStore{db: db} }

const (
	qRecInsert = `
INSERT INTO records (collection, id, payload)
VALUES ($1, $2, $3);`

	qRecSelect = `
SELECT payload
FROM records
WHERE collection = $1 AND id = $2;`

	qRecUpdate = `
UPDATE records
SET payload = $3, updated_at = NOW()
WHERE collection = $1 AND id = $2;`

	qRecDelete = `DELETE FROM records WHERE collection = $1 AND id = $2;`
)

func (s *RecordStore) Create(ctx context.Context, collection, id string, payload json.RawMessage) error {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	if _, err := s.db.Pool.Exec(ctx, qRecInsert, collection, id, payload); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return recordstore.ErrExists
		}
		return fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RecordStore) Read(ctx context.Context, collection, id string) (json.RawMessage, error) {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	var payload json.RawMessage
	if err := s.db.Pool.QueryRow(ctx, qRecSelect, collection, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, recordstore.ErrNotFound
		}
		return nil, fmt.Errorf("select %s/%s: %w", collection, id, err)
	}
	return payload, nil
}

func (s *RecordStore) Update(ctx context.Context, collection, id string, payload json.RawMessage) error {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	cmd, err := s.db.Pool.Exec(ctx, qRecUpdate, collection, id, payload)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if cmd.RowsAffected() == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := s.db.withTimeout(ctx)
	defer cancel()

	cmd, err := s.db.Pool.Exec(ctx, qRecDelete, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if cmd.RowsAffected() == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}
