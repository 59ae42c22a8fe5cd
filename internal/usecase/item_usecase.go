package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"itemtracker/internal/domain/model"
	repo "itemtracker/internal/repository"
	"itemtracker/internal/validator"

	"gopkg.in/guregu/null.v3"
)

// Page size bounds for GET /items.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type ItemUsecase struct {
	items repo.ItemRepository
	clock Clock
	v     *validator.Validator
}

// DI
func NewItemUsecase(items repo.ItemRepository, clock Clock) *ItemUsecase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ItemUsecase{
		items: items,
		clock: clock,
		v:     validator.New(),
	}
}

// now is truncated to the database's microsecond resolution so a record
// returned by Create equals the one read back later.
func (u *ItemUsecase) now() time.Time {
	return u.clock.Now().UTC().Truncate(time.Microsecond)
}

// GET /items input
type ListItemsInput struct {
	Skip     int    `query:"skip" json:"skip" validate:"gte=0"`
	Limit    int    `query:"limit" json:"limit" validate:"gte=1,lte=100"`
	Search   string `query:"search" json:"search"`
	Status   string `query:"status" json:"status"`
	Category string `query:"category" json:"category"`
	Location string `query:"location" json:"location"`
}

type ItemListOutput struct {
	Items   []model.Item `json:"items"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	Pages   int          `json:"pages"`
}

// PageOf is the 1-based page that skip falls on. It is derived, so a skip
// that is not a multiple of limit lands on the page containing its first row.
func PageOf(skip, limit int) int {
	return skip/limit + 1
}

// PageCount is ceil(total/limit), or 1 when nothing matched.
func PageCount(total int64, limit int) int {
	if total <= 0 {
		return 1
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

func (u *ItemUsecase) ListItems(ctx context.Context, in ListItemsInput) (ItemListOutput, error) {
	if in.Skip < 0 {
		return ItemListOutput{}, NewValidationError("invalid skip")
	}
	if in.Limit < 1 || in.Limit > MaxLimit {
		return ItemListOutput{}, NewValidationError("invalid limit")
	}

	items, total, err := u.items.List(ctx, repo.ItemListQuery{
		Skip:     in.Skip,
		Limit:    in.Limit,
		Search:   strings.TrimSpace(in.Search),
		Status:   strings.TrimSpace(in.Status),
		Category: strings.TrimSpace(in.Category),
		Location: strings.TrimSpace(in.Location),
	})
	if err != nil {
		return ItemListOutput{}, NewStorageError(err)
	}
	if items == nil {
		items = []model.Item{}
	}

	return ItemListOutput{
		Items:   items,
		Total:   total,
		Page:    PageOf(in.Skip, in.Limit),
		PerPage: in.Limit,
		Pages:   PageCount(total, in.Limit),
	}, nil
}

// POST /items input
type CreateItemInput struct {
	Name        string      `json:"name" validate:"required,max=255"`
	Description null.String `json:"description"`
	Location    null.String `json:"location" validate:"omitempty,max=255"`
	Status      string      `json:"status" validate:"max=50"`
	Category    null.String `json:"category" validate:"omitempty,max=100"`
	IsFragile   bool        `json:"is_fragile"`
	ImageURL    null.String `json:"image_url" validate:"omitempty,max=500"`
}

func (u *ItemUsecase) CreateItem(ctx context.Context, in CreateItemInput) (model.Item, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = model.ItemStatusActive
	}

	if err := u.v.Struct(in); err != nil {
		return model.Item{}, NewValidationError(validator.Reason(err))
	}

	now := u.now()
	it, err := u.items.Create(ctx, model.Item{
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Status:      in.Status,
		Category:    in.Category,
		IsFragile:   in.IsFragile,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Item{}, repoError(err)
	}
	return it, nil
}

// GetItem reports absence through found rather than an error.
func (u *ItemUsecase) GetItem(ctx context.Context, id int64) (it model.Item, found bool, err error) {
	if id <= 0 {
		return model.Item{}, false, nil
	}

	it, err = u.items.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Item{}, false, nil
	}
	if err != nil {
		return model.Item{}, false, NewStorageError(err)
	}
	return it, true, nil
}

// UpdateItem overwrites exactly the columns present in patch and refreshes
// updated_at, even when patch is empty.
func (u *ItemUsecase) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (model.Item, error) {
	clean, err := u.checkPatch(patch)
	if err != nil {
		return model.Item{}, err
	}
	if id <= 0 {
		return model.Item{}, NewNotFoundError("Item not found")
	}

	it, err := u.items.Update(ctx, id, clean, u.now())
	if err != nil {
		return model.Item{}, repoError(err)
	}
	return it, nil
}

func (u *ItemUsecase) DeleteItem(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewNotFoundError("Item not found")
	}
	if err := u.items.Delete(ctx, id); err != nil {
		return repoError(err)
	}
	return nil
}

// nullable string columns and their length limits (0 = unbounded)
var nullableColumns = map[string]int{
	model.ColDescription: 0,
	model.ColLocation:    model.LocationMaxLen,
	model.ColCategory:    model.CategoryMaxLen,
	model.ColImageURL:    model.ImageURLMaxLen,
}

// checkPatch validates every present column and returns a copy with
// normalised values.
func (u *ItemUsecase) checkPatch(patch model.ItemPatch) (model.ItemPatch, error) {
	clean := make(model.ItemPatch, len(patch))

	for col, val := range patch {
		switch col {
		case model.ColName, model.ColStatus:
			s, ok := val.(string)
			if !ok {
				return nil, NewValidationError(col + " must be a string")
			}
			s = strings.TrimSpace(s)
			tag := fmt.Sprintf("max=%d", model.StatusMaxLen)
			if col == model.ColName {
				tag = fmt.Sprintf("required,max=%d", model.NameMaxLen)
			}
			if err := u.v.Field(col, s, tag); err != nil {
				return nil, NewValidationError(validator.Reason(err))
			}
			if col == model.ColStatus && s == "" {
				return nil, NewValidationError("status is required")
			}
			clean[col] = s

		case model.ColIsFragile:
			b, ok := val.(bool)
			if !ok {
				return nil, NewValidationError(col + " must be a boolean")
			}
			clean[col] = b

		default:
			maxLen, known := nullableColumns[col]
			if !known {
				return nil, NewValidationError("unknown field " + col)
			}
			ns, ok := val.(null.String)
			if !ok {
				return nil, NewValidationError(col + " must be a string or null")
			}
			if ns.Valid && maxLen > 0 {
				if err := u.v.Field(col, ns.String, fmt.Sprintf("max=%d", maxLen)); err != nil {
					return nil, NewValidationError(validator.Reason(err))
				}
			}
			clean[col] = ns
		}
	}

	return clean, nil
}

func repoError(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return NewNotFoundError("Item not found")
	case errors.Is(err, repo.ErrConflict):
		return NewConflictError(err.Error())
	default:
		return NewStorageError(err)
	}
}
