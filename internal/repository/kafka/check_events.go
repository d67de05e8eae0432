package kafka

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/upwatch/upwatch/internal/domain/check"
	"github.com/upwatch/upwatch/internal/domain/event"
)

const (
	EventCheckCreated = "check.created"
	EventCheckUpdated = "check.updated"
	EventCheckDeleted = "check.deleted"
)

// Envelope is the wire format of a check lifecycle event. Messages are
// keyed by check id so per-check ordering is preserved within a partition.
type Envelope struct {
	EventID string       `json:"event_id"`
	Type    string       `json:"type"`
	CheckID string       `json:"check_id"`
	OwnerID string       `json:"owner_id"`
	Check   *check.Check `json:"check,omitempty"`
	Ts      time.Time    `json:"ts"`
}

var _ event.CheckEvents = (*CheckEventsKafka)(nil)

type CheckEventsKafka struct {
	p   *Producer
	now func() time.Time
}

func NewCheckEventsKafka(p *Producer) *CheckEventsKafka {
	return &CheckEventsKafka{p: p, now: func() time.Time { return time.Now().UTC() }}
}

func (e *CheckEventsKafka) publish(ctx context.Context, typ, checkID, ownerID string, c *check.Check) error {
	return e.p.PublishJSON(ctx, []byte(checkID), Envelope{
		EventID: uuid.New().String(),
		Type:    typ,
		CheckID: checkID,
		OwnerID: ownerID,
		Check:   c,
		Ts:      e.now(),
	})
}

func (e *CheckEventsKafka) CheckCreated(ctx context.Context, c *check.Check) error {
	return e.publish(ctx, EventCheckCreated, c.ID, c.OwnerID, c)
}

func (e *CheckEventsKafka) CheckUpdated(ctx context.Context, c *check.Check) error {
	return e.publish(ctx, EventCheckUpdated, c.ID, c.OwnerID, c)
}

func (e *CheckEventsKafka) CheckDeleted(ctx context.Context, checkID, ownerID string) error {
	return e.publish(ctx, EventCheckDeleted, checkID, ownerID, nil)
}
