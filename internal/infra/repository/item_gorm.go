package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"itemtracker/internal/domain/model"
	"itemtracker/internal/infra/db"
	repo "itemtracker/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewItemGormRepository(gdb *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: gdb}
}

var _ repo.ItemRepository = (*ItemGormRepository)(nil)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// Filtered page of items plus the filtered count.
func (r *ItemGormRepository) List(ctx context.Context, q repo.ItemListQuery) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Item{})

	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(s))
	}
	if s := strings.TrimSpace(q.Status); s != "" {
		tx = tx.Where("status = ?", s)
	}
	if s := strings.TrimSpace(q.Category); s != "" {
		tx = tx.Where("category = ?", s)
	}
	if s := strings.TrimSpace(q.Location); s != "" {
		tx = tx.Where(`LOWER(location) LIKE ? ESCAPE '\'`, containsPattern(s))
	}

	// total before offset/limit
	if err := tx.Count(&total).Error; err != nil {
		return []model.Item{}, 0, errors.Wrap(err, "counting items")
	}

	if err := tx.Order("id asc").Offset(q.Skip).Limit(q.Limit).Find(&items).Error; err != nil {
		return []model.Item{}, 0, errors.Wrap(err, "listing items")
	}
	if items == nil {
		items = []model.Item{}
	}

	return items, total, nil
}

// storageError maps constraint failures to ErrConflict and adds context to
// everything else.
func storageError(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return errors.Wrap(repo.ErrConflict, err.Error())
	}
	return errors.Wrap(err, msg)
}

func (r *ItemGormRepository) FindByID(ctx context.Context, id int64) (model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).First(&it, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, errors.Wrapf(err, "finding item %d", id)
	}
	return it, nil
}

func (r *ItemGormRepository) Create(ctx context.Context, it model.Item) (model.Item, error) {
	if err := r.db.WithContext(ctx).Create(&it).Error; err != nil {
		return model.Item{}, storageError(err, "creating item")
	}
	return it, nil
}

// Update applies the patch and re-reads the row in one transaction.
func (r *ItemGormRepository) Update(ctx context.Context, id int64, patch model.ItemPatch, now time.Time) (model.Item, error) {
	var out model.Item

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Item
		if err := tx.First(&cur, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		// updated_at must move forward even if the clock did not
		if !now.After(cur.UpdatedAt) {
			now = cur.UpdatedAt.Add(time.Microsecond)
		}

		values := patch.Clone()
		values[model.ColUpdatedAt] = now

		res := tx.Model(&model.Item{}).Where("id = ?", id).Updates(map[string]interface{}(values))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		return tx.First(&out, id).Error
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, storageError(err, fmt.Sprintf("updating item %d", id))
	}
	return out, nil
}

func (r *ItemGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "deleting item %d", id)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ItemGormRepository) Ping(ctx context.Context) error {
	return db.Ping(ctx, r.db)
}
