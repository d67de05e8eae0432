package recordstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/upwatch/upwatch/internal/domain/user"
)

var _ user.Repo = (*UserRepo)(nil)

type UserRepo struct {
	store Store
}

func NewUserRepo(store Store) *UserRepo { return &UserRepo{store: store} }

func (r *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	payload, err := r.store.Read(ctx, CollectionUsers, id)
	if err != nil {
		return nil, err
	}
	var u user.User
	if err := json.Unmarshal(payload, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user %s: %w", id, err)
	}
	if u.ID == "" {
		u.ID = id
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	payload, err := marshalRecord(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return r.store.Update(ctx, CollectionUsers, u.ID, payload)
}
