// Package checks is the check resource manager: it validates check
// definitions, authorizes the caller through the token subsystem, enforces
// the per-user quota and keeps the owner's check-id index consistent with
// the check records themselves.
package checks

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/upwatch/upwatch/internal/domain/check"
	"github.com/upwatch/upwatch/internal/domain/event"
	"github.com/upwatch/upwatch/internal/domain/token"
	"github.com/upwatch/upwatch/internal/domain/user"
	"github.com/upwatch/upwatch/internal/obs"
	"github.com/upwatch/upwatch/internal/obs/retry"
	"github.com/upwatch/upwatch/internal/repository/recordstore"
	"github.com/upwatch/upwatch/internal/validate"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrAuth          = errors.New("authentication failed")
	ErrQuotaExceeded = errors.New("check quota reached")
	ErrNoFields      = errors.New("no updatable fields supplied")
	ErrNotFound      = errors.New("check not found")
)

type Usecase struct {
	log      *zap.Logger
	checks   check.Repo
	users    user.Repo
	tokens   token.Repo
	verifier token.Verifier
	events   event.CheckEvents

	maxChecks int
	clk       func() time.Time
	ownerMu   *keyedMutex
}

func New(
	log *zap.Logger,
	checks check.Repo,
	users user.Repo,
	tokens token.Repo,
	verifier token.Verifier,
	events event.CheckEvents,
	maxChecks int,
	clk func() time.Time,
) *Usecase {
	if clk == nil {
		clk = func() time.Time { return time.Now().UTC() }
	}
	return &Usecase{
		log:       log,
		checks:    checks,
		users:     users,
		tokens:    tokens,
		verifier:  verifier,
		events:    events,
		maxChecks: maxChecks,
		clk:       clk,
		ownerMu:   newKeyedMutex(),
	}
}

// Create validates all five fields, resolves the caller from the token,
// enforces the quota and writes the check record followed by the owner
// index. The two writes are not atomic: if the index write fails the fresh
// check record is deleted again (compensation) so no orphan survives.
func (u *Usecase) Create(ctx context.Context, tokenID string, in CreateInput) (*check.Check, error) {
	if !in.complete() {
		return nil, ErrInvalidInput
	}

	tok, err := u.resolveToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	// Quota is read-then-write on the user record; serialize per owner.
	unlock := u.ownerMu.Lock(tok.OwnerID)
	defer unlock()

	owner, err := u.users.GetByID(ctx, tok.OwnerID)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrAuth
		}
		return nil, fmt.Errorf("load user %s: %w", tok.OwnerID, err)
	}

	if err := u.authorize(ctx, tokenID, tok.OwnerID); err != nil {
		return nil, err
	}

	if len(owner.Checks) >= u.maxChecks {
		return nil, ErrQuotaExceeded
	}

	id, err := newCheckID()
	if err != nil {
		return nil, fmt.Errorf("generate check id: %w", err)
	}
	now := u.clk()
	c := &check.Check{
		ID:             id,
		OwnerID:        owner.ID,
		Protocol:       in.Protocol.Value,
		URL:            in.URL.Value,
		Method:         in.Method.Value,
		SuccessCodes:   in.SuccessCodes.Value,
		TimeoutSeconds: in.TimeoutSeconds.Value,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.checks.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create check: %w", err)
	}

	owner.Checks = append(owner.Checks, c.ID)
	if err := u.users.Update(ctx, owner); err != nil {
		u.compensateCreate(ctx, c.ID)
		return nil, fmt.Errorf("update owner index: %w", err)
	}

	u.publish(ctx, "created", func() error { return u.events.CheckCreated(ctx, c) })
	return c, nil
}

// Fetch returns the check for id if the token is bound to its owner. The
// owner id embedded in the record is trusted; the user record is not
// re-read on the read path.
func (u *Usecase) Fetch(ctx context.Context, tokenID string, id validate.Field[string]) (*check.Check, error) {
	if !id.Ok() {
		return nil, ErrNotFound
	}
	c, err := u.checks.GetByID(ctx, id.Value)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load check %s: %w", id.Value, err)
	}
	if err := u.authorize(ctx, tokenID, c.OwnerID); err != nil {
		return nil, err
	}
	return c, nil
}

// Modify applies the Valid subset of fields to an existing check. Fields
// that failed validation are ignored; supplying none is an input error.
func (u *Usecase) Modify(ctx context.Context, tokenID string, in ModifyInput) (*check.Check, error) {
	if !in.ID.Ok() {
		return nil, ErrInvalidInput
	}
	if in.validFields() == 0 {
		return nil, ErrNoFields
	}

	c, err := u.checks.GetByID(ctx, in.ID.Value)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load check %s: %w", in.ID.Value, err)
	}
	if err := u.authorize(ctx, tokenID, c.OwnerID); err != nil {
		return nil, err
	}

	in.apply(c)
	c.UpdatedAt = u.clk()
	if err := u.checks.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update check %s: %w", c.ID, err)
	}

	u.publish(ctx, "updated", func() error { return u.events.CheckUpdated(ctx, c) })
	return c, nil
}

// Delete removes the check record and then its entry in the owner index.
// The index write is retried; if it still fails the record is already gone
// and the dangling index entry is logged for reconciliation.
func (u *Usecase) Delete(ctx context.Context, tokenID string, id validate.Field[string]) error {
	if !id.Ok() {
		return ErrNotFound
	}
	c, err := u.checks.GetByID(ctx, id.Value)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load check %s: %w", id.Value, err)
	}
	if err := u.authorize(ctx, tokenID, c.OwnerID); err != nil {
		return err
	}

	unlock := u.ownerMu.Lock(c.OwnerID)
	defer unlock()

	if err := u.checks.Delete(ctx, c.ID); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete check %s: %w", c.ID, err)
	}

	if err := u.unindex(ctx, c.OwnerID, c.ID); err != nil {
		obs.OrphanCompensations.WithLabelValues("delete", "exhausted").Inc()
		u.log.Error("owner index left with dangling check id",
			zap.String("owner_id", c.OwnerID), zap.String("check_id", c.ID), zap.Error(err))
		return fmt.Errorf("update owner index: %w", err)
	}

	u.publish(ctx, "deleted", func() error { return u.events.CheckDeleted(ctx, c.ID, c.OwnerID) })
	return nil
}

// resolveToken maps the caller's token to its record; absence is an auth
// failure, anything else is a store fault.
func (u *Usecase) resolveToken(ctx context.Context, tokenID string) (*token.Token, error) {
	if tokenID == "" {
		return nil, ErrAuth
	}
	tok, err := u.tokens.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil, ErrAuth
		}
		return nil, fmt.Errorf("load token: %w", err)
	}
	return tok, nil
}

func (u *Usecase) authorize(ctx context.Context, tokenID, ownerID string) error {
	ok, err := u.verifier.Verify(ctx, tokenID, ownerID)
	if err != nil {
		return fmt.Errorf("verify token: %w", err)
	}
	if !ok {
		return ErrAuth
	}
	return nil
}

// compensateCreate deletes a check whose owner-index append failed, with a
// short retry so a transient store hiccup does not strand an orphan.
func (u *Usecase) compensateCreate(ctx context.Context, checkID string) {
	err := retry.Do(ctx, func() error {
		err := u.checks.Delete(ctx, checkID)
		if errors.Is(err, recordstore.ErrNotFound) {
			return nil
		}
		return err
	}, retry.DefaultStorePolicy("check_orphan_cleanup", u.log))
	if err != nil {
		obs.OrphanCompensations.WithLabelValues("create", "exhausted").Inc()
		u.log.Error("orphan check left behind after failed index update",
			zap.String("check_id", checkID), zap.Error(err))
		return
	}
	obs.OrphanCompensations.WithLabelValues("create", "ok").Inc()
}

func (u *Usecase) unindex(ctx context.Context, ownerID, checkID string) error {
	return retry.Do(ctx, func() error {
		owner, err := u.users.GetByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, recordstore.ErrNotFound) {
				// Owner gone; nothing left to unindex.
				return nil
			}
			return err
		}
		if !owner.RemoveCheck(checkID) {
			return nil
		}
		return u.users.Update(ctx, owner)
	}, retry.DefaultStorePolicy("owner_unindex", u.log))
}

// publish emits a lifecycle event best-effort; delivery failures are logged
// and never fail the request.
func (u *Usecase) publish(ctx context.Context, typ string, fn func() error) {
	if u.events == nil {
		return
	}
	if err := fn(); err != nil {
		obs.WithTrace(ctx, u.log).Warn("check event publish failed",
			zap.String("type", typ), zap.Error(err))
	}
}

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

func newCheckID() (string, error) {
	b := make([]byte, check.IDLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = idCharset[int(b[i])%len(idCharset)]
	}
	return string(b), nil
}
