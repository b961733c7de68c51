package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// Repo abstracts user persistence. Emails are unique and treated
// case-insensitively.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	// Upsert inserts or refreshes identity fields only; profile fields of an
	// existing row are preserved. Used by the OAuth sign-in path.
	Upsert(ctx context.Context, user User) error
	UpdateProfile(ctx context.Context, email string, changes ProfileChanges) error
}
