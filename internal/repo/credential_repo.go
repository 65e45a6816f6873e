// Repository functions for the SmsCredential singleton.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

// GetCredential returns the stored gateway credential, or ErrNotFound when
// none has been configured yet.
func GetCredential(ctx context.Context, db *gorm.DB) (*domain.SmsCredential, error) {
	var cred domain.SmsCredential
	if err := db.WithContext(ctx).Order("id asc").First(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

// UpsertCredential inserts the credential row on first save and updates it
// in place afterwards. The table never holds more than one row.
func UpsertCredential(ctx context.Context, db *gorm.DB, cred *domain.SmsCredential) error {
	existing, err := GetCredential(ctx, db)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			cred.ID = 0
			cred.CreatedAt = time.Now().UTC()
			return db.WithContext(ctx).Create(cred).Error
		}
		return err
	}
	cred.ID = existing.ID
	return db.WithContext(ctx).Model(cred).
		Select("api_key", "sender_name").
		Updates(cred).Error
}
