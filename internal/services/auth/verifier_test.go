package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upwatch/upwatch/internal/domain/token"
	"github.com/upwatch/upwatch/internal/repository/recordstore"
	"github.com/upwatch/upwatch/internal/services/auth"
)

type tokenRepoStub struct {
	tokens map[string]*token.Token
	err    error
}

func (s *tokenRepoStub) GetByID(_ context.Context, id string) (*token.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.tokens[id]
	if !ok {
		return nil, recordstore.ErrNotFound
	}
	return t, nil
}

func TestVerify(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo := &tokenRepoStub{tokens: map[string]*token.Token{
		"good": {ID: "good", OwnerID: "alice", ExpiresAt: now.Add(time.Hour)},
		"old":  {ID: "old", OwnerID: "alice", ExpiresAt: now.Add(-time.Minute)},
	}}
	v := auth.NewVerifier(repo, func() time.Time { return now })

	ok, err := v.Verify(context.Background(), "good", "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	for name, tc := range map[string]struct{ token, owner string }{
		"unknown token": {"nope", "alice"},
		"wrong owner":   {"good", "bob"},
		"expired":       {"old", "alice"},
		"empty token":   {"", "alice"},
		"empty owner":   {"good", ""},
	} {
		ok, err := v.Verify(context.Background(), tc.token, tc.owner)
		require.NoError(t, err, name)
		assert.False(t, ok, name)
	}
}

func TestVerify_StoreError(t *testing.T) {
	boom := errors.New("store down")
	v := auth.NewVerifier(&tokenRepoStub{err: boom}, nil)

	ok, err := v.Verify(context.Background(), "good", "alice")
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}
