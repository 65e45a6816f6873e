// Repository functions for the Official model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// officialListSpec declares the searchable/filterable/sortable surface of
// the officials listing.
var officialListSpec = QuerySpec{
	SearchColumns: []string{"name", "position"},
	FilterColumns: map[string]string{"position": "position"},
	SortColumns: map[string]string{
		"name":       "name",
		"position":   "position",
		"created_at": "created_at",
	},
	DefaultSort: "name",
}

// CreateOfficial inserts a new Official row. CreatedAt is set to UTC.
func CreateOfficial(ctx context.Context, db *gorm.DB, o *domain.Official) error {
	o.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(o).Error
}

// GetOfficial fetches a single official by ID, or ErrNotFound if missing.
func GetOfficial(ctx context.Context, db *gorm.DB, id uint) (*domain.Official, error) {
	var o domain.Official
	if err := db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// SaveOfficial persists all fields of an existing official by primary key.
// Returns ErrNotFound when no row was affected.
func SaveOfficial(ctx context.Context, db *gorm.DB, o *domain.Official) error {
	res := db.WithContext(ctx).Model(o).Select("name", "position", "image").Updates(o)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOfficial removes an official row permanently.
// Returns ErrNotFound when the id does not exist.
func DeleteOfficial(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Official{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOfficialsByPosition counts officials holding a position, excluding
// excludeID (0 = exclude none). Used by the exclusivity constraint check.
func CountOfficialsByPosition(ctx context.Context, db *gorm.DB, position string, excludeID uint) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Model(&domain.Official{}).Where("position = ?", position)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n, err
}

// ListOfficialsPage returns one page of officials plus the total match count.
func ListOfficialsPage(ctx context.Context, db *gorm.DB, p ListParams) ([]domain.Official, int64, error) {
	return FindPage[domain.Official](ctx, db, officialListSpec, p)
}
