package token

import "context"

type Repo interface {
	GetByID(ctx context.Context, id string) (*Token, error)
}

// Verifier reports whether a token is currently valid and bound to the
// claimed owner. A false result with nil error means "not authorized".
type Verifier interface {
	Verify(ctx context.Context, tokenID, claimedOwner string) (bool, error)
}
