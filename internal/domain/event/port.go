package event

import (
	"context"

	"github.com/upwatch/upwatch/internal/domain/check"
)

// CheckEvents publishes check lifecycle events to the platform bus so the
// scheduling and notification services can react to definition changes.
type CheckEvents interface {
	CheckCreated(ctx context.Context, c *check.Check) error
	CheckUpdated(ctx context.Context, c *check.Check) error
	CheckDeleted(ctx context.Context, checkID, ownerID string) error
}
