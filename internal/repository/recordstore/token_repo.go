package recordstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/upwatch/upwatch/internal/domain/token"
)

var _ token.Repo = (*TokenRepo)(nil)

type TokenRepo struct {
	store Store
}

func NewTokenRepo(store Store) *TokenRepo { return &TokenRepo{store: store} }

func (r *TokenRepo) GetByID(ctx context.Context, id string) (*token.Token, error) {
	payload, err := r.store.Read(ctx, CollectionTokens, id)
	if err != nil {
		return nil, err
	}
	var t token.Token
	if err := json.Unmarshal(payload, &t); err != nil {
		return nil, fmt.Errorf("unmarshal token: %w", err)
	}
	if t.ID == "" {
		t.ID = id
	}
	return &t, nil
}
