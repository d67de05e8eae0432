package check

import "context"

type Repo interface {
	Create(ctx context.Context, c *Check) error
	GetByID(ctx context.Context, id string) (*Check, error)
	Update(ctx context.Context, c *Check) error
	Delete(ctx context.Context, id string) error
}
