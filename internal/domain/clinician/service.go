package clinician

import (
	"context"
	"fmt"

	"github.com/ward/ward/internal/platform/db"
)

type Service struct {
	users UserRepository
	tx    db.Transactor
}

func NewService(users UserRepository, tx db.Transactor) *Service {
	return &Service{users: users, tx: tx}
}

// CreateUser validates u and stores it, filling in the assigned id. It runs
// in the caller's transaction when ctx carries one.
func (s *Service) CreateUser(ctx context.Context, u *User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// AnyUser reports whether at least one user exists.
func (s *Service) AnyUser(ctx context.Context) (bool, error) {
	return s.users.Exists(ctx)
}

// ListUsers returns every user in id order.
func (s *Service) ListUsers(ctx context.Context) ([]UserRead, error) {
	var out []UserRead
	err := s.tx.InReadTx(ctx, func(ctx context.Context) error {
		users, err := s.users.List(ctx)
		if err != nil {
			return err
		}
		out = make([]UserRead, 0, len(users))
		for _, u := range users {
			out = append(out, u.ToRead())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}
