// Repository functions for the SeniorCitizen model, including the
// recycle-bin (soft delete) lifecycle.
//
// GORM's default scope hides rows whose deleted_at is set, so the regular
// lookup/list functions naturally exclude recycle-bin entries. The *Deleted
// variants use Unscoped to address exactly those rows.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

var citizenListSpec = QuerySpec{
	SearchColumns: []string{"last_name", "first_name", "middle_name", "osca_id"},
	FilterColumns: map[string]string{
		"barangay": "barangay",
		"gender":   "gender",
		"status":   "status",
	},
	SortColumns: map[string]string{
		"last_name":  "last_name",
		"osca_id":    "osca_id",
		"barangay":   "barangay",
		"birth_date": "birth_date",
		"created_at": "created_at",
	},
	DefaultSort: "last_name",
}

// CreateCitizen inserts a new SeniorCitizen row. CreatedAt is set to UTC.
func CreateCitizen(ctx context.Context, db *gorm.DB, c *domain.SeniorCitizen) error {
	c.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(c).Error
}

// GetCitizen fetches an active (not soft-deleted) citizen by ID.
func GetCitizen(ctx context.Context, db *gorm.DB, id uint) (*domain.SeniorCitizen, error) {
	var c domain.SeniorCitizen
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCitizenAnyState fetches a citizen regardless of soft-delete state.
// Used by restore/purge, which address recycle-bin rows.
func GetCitizenAnyState(ctx context.Context, db *gorm.DB, id uint) (*domain.SeniorCitizen, error) {
	var c domain.SeniorCitizen
	if err := db.WithContext(ctx).Unscoped().First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CountCitizensByOscaID counts citizens (any state) holding the given OSCA
// ID, excluding excludeID. Backs the OSCA-ID uniqueness check; soft-deleted
// rows still own their ID so a restore cannot collide.
func CountCitizensByOscaID(ctx context.Context, db *gorm.DB, oscaID string, excludeID uint) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Unscoped().Model(&domain.SeniorCitizen{}).Where("osca_id = ?", oscaID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n, err
}

// SaveCitizen persists all mutable fields of an existing citizen.
// Returns ErrNotFound when no row was affected.
func SaveCitizen(ctx context.Context, db *gorm.DB, c *domain.SeniorCitizen) error {
	res := db.WithContext(ctx).Model(c).
		Select("osca_id", "last_name", "first_name", "middle_name", "suffix",
			"birth_date", "gender", "civil_status", "barangay", "purok",
			"contact_number", "status", "photo").
		Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteCitizen moves an active citizen to the recycle bin.
// Returns ErrNotFound when the id does not exist in the active set.
func SoftDeleteCitizen(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.SeniorCitizen{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RestoreCitizen clears the soft-delete marker of a recycle-bin row.
func RestoreCitizen(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Unscoped().
		Model(&domain.SeniorCitizen{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeCitizen removes a citizen row permanently, bypassing the soft-delete
// scope. The caller is responsible for attachment cleanup.
func PurgeCitizen(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Unscoped().Delete(&domain.SeniorCitizen{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCitizensPage returns one page of active citizens plus the total count.
func ListCitizensPage(ctx context.Context, db *gorm.DB, p ListParams) ([]domain.SeniorCitizen, int64, error) {
	return FindPage[domain.SeniorCitizen](ctx, db, citizenListSpec, p)
}

// ListDeletedCitizensPage returns one page of the recycle bin: exclusively
// soft-deleted rows.
func ListDeletedCitizensPage(ctx context.Context, db *gorm.DB, p ListParams) ([]domain.SeniorCitizen, int64, error) {
	scoped := db.Unscoped().Where("deleted_at IS NOT NULL")
	return FindPage[domain.SeniorCitizen](ctx, scoped, citizenListSpec, p)
}

// ListCitizenNumbers returns distinct non-empty contact numbers, optionally
// restricted to one barangay. Used by SMS broadcast targeting.
func ListCitizenNumbers(ctx context.Context, db *gorm.DB, barangay string) ([]string, error) {
	q := db.WithContext(ctx).
		Model(&domain.SeniorCitizen{}).
		Where("contact_number <> ''").
		Where("status = ?", domain.StatusActive)
	if barangay != "" && barangay != FilterAll {
		q = q.Where("barangay = ?", barangay)
	}
	var numbers []string
	err := q.Distinct().Order("contact_number asc").Pluck("contact_number", &numbers).Error
	return numbers, err
}
