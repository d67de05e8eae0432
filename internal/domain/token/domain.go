package token

import "time"

// Token maps an opaque credential string to its owning user. Issued and
// refreshed elsewhere; this service only reads tokens to authorize requests.
type Token struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (t *Token) ExpiredAt(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
