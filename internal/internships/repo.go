package internships

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("internship not found")

type Repo interface {
	List(ctx context.Context) ([]Internship, error)
	Put(ctx context.Context, posting Internship) error
}
