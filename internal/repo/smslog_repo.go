// Repository functions for the SMS delivery log.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

var smsLogListSpec = QuerySpec{
	SearchColumns: []string{"message"},
	FilterColumns: map[string]string{"status": "status"},
	SortColumns: map[string]string{
		"created_at": "created_at",
		"status":     "status",
	},
	DefaultSort: "created_at",
}

// AppendSmsLog writes one delivery-log entry with the timestamp set at
// write time.
func AppendSmsLog(ctx context.Context, db *gorm.DB, entry *domain.SmsLog) error {
	entry.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(entry).Error
}

// ListSmsLogsPage returns one page of the delivery log plus the total count.
func ListSmsLogsPage(ctx context.Context, db *gorm.DB, p ListParams) ([]domain.SmsLog, int64, error) {
	return FindPage[domain.SmsLog](ctx, db, smsLogListSpec, p)
}
