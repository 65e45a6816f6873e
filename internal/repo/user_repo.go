// Repository functions for the User model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

var userListSpec = QuerySpec{
	SearchColumns: []string{"email", "name"},
	FilterColumns: map[string]string{"role": "role"},
	SortColumns: map[string]string{
		"email":      "email",
		"name":       "name",
		"created_at": "created_at",
	},
	DefaultSort: "email",
}

// CreateUser inserts a new User row. CreatedAt is set to UTC.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	u.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(u).Error
}

// GetUserByEmail fetches a user by email, or ErrNotFound if missing.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// CountUsersByEmail counts users with the given email. Backs the
// registration uniqueness check.
func CountUsersByEmail(ctx context.Context, db *gorm.DB, email string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&n).Error
	return n, err
}

// ListUsersPage returns one page of users plus the total match count.
func ListUsersPage(ctx context.Context, db *gorm.DB, p ListParams) ([]domain.User, int64, error) {
	return FindPage[domain.User](ctx, db, userListSpec, p)
}
