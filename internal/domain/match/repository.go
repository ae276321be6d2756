package match

import (
	"context"
	"errors"
)

// ErrDuplicateMatch is returned by Insert when a match with the same id is
// already stored.
var ErrDuplicateMatch = errors.New("duplicate match")

// Repository stores canonical matches keyed by game id only. Callers own
// platform disambiguation.
type Repository interface {
	FindByID(ctx context.Context, id int64) (Match, bool, error)
	Insert(ctx context.Context, item Match) error
}
