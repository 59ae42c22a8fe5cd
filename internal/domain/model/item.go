package model

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// Recognised item statuses. The database does not enforce them.
const (
	ItemStatusActive  = "active"
	ItemStatusStored  = "stored"
	ItemStatusLost    = "lost"
	ItemStatusDonated = "donated"
	ItemStatusSold    = "sold"
)

// ItemStatuses is the list returned by GET /statuses.
var ItemStatuses = []string{
	ItemStatusActive,
	ItemStatusStored,
	ItemStatusLost,
	ItemStatusDonated,
	ItemStatusSold,
}

// Column limits shared by validation and the schema.
const (
	NameMaxLen     = 255
	LocationMaxLen = 255
	StatusMaxLen   = 50
	CategoryMaxLen = 100
	ImageURLMaxLen = 500
)

type Item struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null" json:"name"`
	Description null.String `gorm:"type:text" json:"description"`
	Location    null.String `gorm:"type:varchar(255)" json:"location"`
	Status      string      `gorm:"type:varchar(50);not null;default:active;index" json:"status"`
	Category    null.String `gorm:"type:varchar(100);index" json:"category"`
	IsFragile   bool        `gorm:"not null;default:false" json:"is_fragile"`
	ImageURL    null.String `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (Item) TableName() string { return "items" }

// ItemPatch holds the columns a partial update touches.
// A missing key leaves the column as is; a present key with a null
// null.String sets the column to NULL.
type ItemPatch map[string]interface{}

// Patchable columns.
const (
	ColName        = "name"
	ColDescription = "description"
	ColLocation    = "location"
	ColStatus      = "status"
	ColCategory    = "category"
	ColIsFragile   = "is_fragile"
	ColImageURL    = "image_url"
	ColUpdatedAt   = "updated_at"
)

// Has reports whether the patch carries the column.
func (p ItemPatch) Has(col string) bool {
	_, ok := p[col]
	return ok
}

// Clone returns a shallow copy so callers can add updated_at without
// touching the caller's map.
func (p ItemPatch) Clone() ItemPatch {
	out := make(ItemPatch, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}
