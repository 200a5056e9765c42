package clinician

import "context"

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	List(ctx context.Context) ([]*User, error)
	Exists(ctx context.Context) (bool, error)
}
