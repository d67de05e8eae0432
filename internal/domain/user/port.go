package user

import "context"

type Repo interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, u *User) error
}
