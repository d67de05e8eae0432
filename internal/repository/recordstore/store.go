// Package recordstore defines the namespaced record store the check manager
// persists through, plus typed repositories layered on top of it. Records
// are opaque JSON payloads addressed by (collection, id); the store must
// make Create atomic with respect to existence so id collisions surface as
// ErrExists rather than silent overwrites.
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
)

const (
	CollectionChecks = "checks"
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
)

type Store interface {
	Create(ctx context.Context, collection, id string, payload json.RawMessage) error
	Read(ctx context.Context, collection, id string) (json.RawMessage, error)
	Update(ctx context.Context, collection, id string, payload json.RawMessage) error
	Delete(ctx context.Context, collection, id string) error
}

func marshalRecord(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
