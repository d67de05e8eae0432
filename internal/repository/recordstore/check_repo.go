package recordstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/upwatch/upwatch/internal/domain/check"
)

var _ check.Repo = (*CheckRepo)(nil)

type CheckRepo struct {
	store Store
}

func NewCheckRepo(store Store) *CheckRepo { return &CheckRepo{store: store} }

func (r *CheckRepo) Create(ctx context.Context, c *check.Check) error {
	payload, err := marshalRecord(c)
	if err != nil {
		return fmt.Errorf("marshal check: %w", err)
	}
	return r.store.Create(ctx, CollectionChecks, c.ID, payload)
}

func (r *CheckRepo) GetByID(ctx context.Context, id string) (*check.Check, error) {
	payload, err := r.store.Read(ctx, CollectionChecks, id)
	if err != nil {
		return nil, err
	}
	var c check.Check
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("unmarshal check %s: %w", id, err)
	}
	return &c, nil
}

func (r *CheckRepo) Update(ctx context.Context, c *check.Check) error {
	payload, err := marshalRecord(c)
	if err != nil {
		return fmt.Errorf("marshal check: %w", err)
	}
	return r.store.Update(ctx, CollectionChecks, c.ID, payload)
}

func (r *CheckRepo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, CollectionChecks, id)
}
