package clinician

import (
	"strings"
	"time"

	"github.com/ward/ward/pkg/apperr"
)

// User is a clinician account. Users are provisioned outside this service
// and own the patients on their list.
type User struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Email       *string    `db:"email"`
	LastLoginAt *time.Time `db:"last_login_at"`
}

// UserRead is the external read shape of a User.
type UserRead struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (u *User) ToRead() UserRead {
	return UserRead{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		LastLoginAt: u.LastLoginAt,
	}
}

// Validate checks the fields that must hold before the user is stored.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return apperr.Required("name")
	}
	return nil
}
