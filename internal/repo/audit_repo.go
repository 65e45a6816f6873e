// Repository functions for the append-only audit trail. There is no update
// or delete path here on purpose: entries are immutable once written, and
// retention is an operational concern outside the application.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

var auditListSpec = QuerySpec{
	SearchColumns: []string{"actor_email", "details"},
	FilterColumns: map[string]string{
		"action": "action",
		"actor":  "actor_email",
	},
	SortColumns: map[string]string{
		"created_at": "created_at",
		"action":     "action",
	},
	DefaultSort: "created_at",
}

// AppendAuditLog writes one audit entry with the timestamp set at write time.
func AppendAuditLog(ctx context.Context, db *gorm.DB, entry *domain.AuditLog) error {
	entry.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(entry).Error
}

// ListAuditLogsPage returns one page of the audit trail plus the total count.
func ListAuditLogsPage(ctx context.Context, db *gorm.DB, p ListParams) ([]domain.AuditLog, int64, error) {
	return FindPage[domain.AuditLog](ctx, db, auditListSpec, p)
}
