// Package redis provides the record store backend for deployments that keep
// check state in Redis instead of Postgres. SetNX/SetXX give the same
// create-fails-if-exists and update-fails-if-absent semantics the manager
// relies on.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/upwatch/upwatch/internal/repository/recordstore"
)

type Config struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

var _ recordstore.Store = (*RecordStore)(nil)

type RecordStore struct {
	client *redis.Client
}

func NewRecordStore(ctx context.Context, cfg Config) (*RecordStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RecordStore{client: client}, nil
}

func (s *RecordStore) Close() error { return s.client.Close() }

func (s *RecordStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func key(collection, id string) string { return collection + ":" + id }

func (s *RecordStore) Create(ctx context.Context, collection, id string, payload json.RawMessage) error {
	ok, err := s.client.SetNX(ctx, key(collection, id), []byte(payload), 0).Result()
	if err != nil {
		return fmt.Errorf("setnx %s/%s: %w", collection, id, err)
	}
	if !ok {
		return recordstore.ErrExists
	}
	return nil
}

func (s *RecordStore) Read(ctx context.Context, collection, id string) (json.RawMessage, error) {
	b, err := s.client.Get(ctx, key(collection, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, recordstore.ErrNotFound
		}
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return b, nil
}

func (s *RecordStore) Update(ctx context.Context, collection, id string, payload json.RawMessage) error {
	ok, err := s.client.SetXX(ctx, key(collection, id), []byte(payload), 0).Result()
	if err != nil {
		return fmt.Errorf("setxx %s/%s: %w", collection, id, err)
	}
	if !ok {
		return recordstore.ErrNotFound
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, collection, id string) error {
	n, err := s.client.Del(ctx, key(collection, id)).Result()
	if err != nil {
		return fmt.Errorf("del %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}
