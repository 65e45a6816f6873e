// Repository functions for the Barangay model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

var barangayListSpec = QuerySpec{
	SearchColumns: []string{"name", "captain"},
	SortColumns: map[string]string{
		"name":       "name",
		"captain":    "captain",
		"created_at": "created_at",
	},
	DefaultSort: "name",
}

// CreateBarangay inserts a new Barangay row. CreatedAt is set to UTC.
func CreateBarangay(ctx context.Context, db *gorm.DB, b *domain.Barangay) error {
	b.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(b).Error
}

// GetBarangay fetches a single barangay by ID, or ErrNotFound if missing.
func GetBarangay(ctx context.Context, db *gorm.DB, id uint) (*domain.Barangay, error) {
	var b domain.Barangay
	if err := db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// CountBarangaysByName counts barangays with the given name, excluding
// excludeID (0 = exclude none). Backs the name-uniqueness check.
func CountBarangaysByName(ctx context.Context, db *gorm.DB, name string, excludeID uint) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Model(&domain.Barangay{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n, err
}

// SaveBarangay persists name and captain of an existing barangay.
// Returns ErrNotFound when no row was affected.
func SaveBarangay(ctx context.Context, db *gorm.DB, b *domain.Barangay) error {
	res := db.WithContext(ctx).Model(b).Select("name", "captain").Updates(b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBarangay removes a barangay row permanently.
// Returns ErrNotFound when the id does not exist.
func DeleteBarangay(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Barangay{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBarangaysPage returns one page of barangays plus the total match count.
func ListBarangaysPage(ctx context.Context, db *gorm.DB, p ListParams) ([]domain.Barangay, int64, error) {
	return FindPage[domain.Barangay](ctx, db, barangayListSpec, p)
}

// ListBarangayNames returns all barangay names ordered alphabetically, for
// filter dropdowns and broadcast targeting.
func ListBarangayNames(ctx context.Context, db *gorm.DB) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).
		Model(&domain.Barangay{}).
		Order("name asc").
		Pluck("name", &names).Error
	return names, err
}
