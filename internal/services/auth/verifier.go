// Package auth verifies opaque tokens against the token records issued by
// the account service. Issuance and refresh live there; this side only
// answers "is this token currently valid for this owner".
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/upwatch/upwatch/internal/domain/token"
	"github.com/upwatch/upwatch/internal/repository/recordstore"
)

var _ token.Verifier = (*Verifier)(nil)

type Verifier struct {
	tokens token.Repo
	now    func() time.Time
}

func NewVerifier(tokens token.Repo, now func() time.Time) *Verifier {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Verifier{tokens: tokens, now: now}
}

// Verify returns true iff the token record exists, is bound to claimedOwner
// and has not expired. Store lookups that fail for reasons other than
// absence are surfaced as errors so the caller can distinguish "denied"
// from "could not check".
func (v *Verifier) Verify(ctx context.Context, tokenID, claimedOwner string) (bool, error) {
	if tokenID == "" || claimedOwner == "" {
		return false, nil
	}
	t, err := v.tokens.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if t.OwnerID != claimedOwner {
		return false, nil
	}
	if t.ExpiredAt(v.now()) {
		return false, nil
	}
	return true, nil
}
