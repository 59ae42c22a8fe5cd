package repository

import (
	"context"
	"errors"
	"time"

	"itemtracker/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	// a write violated a uniqueness or check constraint
	ErrConflict = errors.New("conflict")
)

// List filters. Empty strings mean "no filter"; all filters are ANDed.
type ItemListQuery struct {
	Skip     int
	Limit    int
	Search   string // name, case-insensitive substring
	Status   string // exact
	Category string // exact
	Location string // case-insensitive substring
}

// ItemRepository persists items. ErrNotFound is returned for absent ids.
type ItemRepository interface {
	// List returns one page ordered by id and the match count before paging.
	List(ctx context.Context, q ItemListQuery) ([]model.Item, int64, error)
	FindByID(ctx context.Context, id int64) (model.Item, error)

	Create(ctx context.Context, it model.Item) (model.Item, error)
	// Update applies patch and sets updated_at to a value strictly after the
	// stored one, no earlier than now.
	Update(ctx context.Context, id int64, patch model.ItemPatch, now time.Time) (model.Item, error)
	Delete(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}
