// Package services – AuditRecorder
//
// The recorder is the single write path into the audit trail: one
// synchronous append per qualifying action, no batching, no retries.
// Entries are immutable once written; nothing in the application updates or
// deletes them. Callers must not record an UPDATE with an empty change
// summary — the change-tracked services enforce that by skipping the append
// when the field diff is empty.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
)

// AuditRecorder appends audit entries. A failed append is reported to the
// caller, who treats the enclosing mutation as succeeded-but-unaudited.
type AuditRecorder struct {
	// DB is the GORM handle used for the append.
	DB *gorm.DB
}

// NewAuditRecorder constructs an AuditRecorder on the given handle.
func NewAuditRecorder(db *gorm.DB) *AuditRecorder {
	return &AuditRecorder{DB: db}
}

// Record appends one entry attributed to actor. The timestamp is assigned
// at write time by the repository.
func (r *AuditRecorder) Record(ctx context.Context, actor *domain.Actor, action, details string) error {
	entry := &domain.AuditLog{
		ActorEmail: actor.Email,
		ActorRole:  actor.Role,
		Action:     action,
		Details:    details,
	}
	return repo.AppendAuditLog(ctx, r.DB, entry)
}

// ListPage returns one page of the audit trail for the admin view.
func (r *AuditRecorder) ListPage(ctx context.Context, p repo.ListParams) ([]domain.AuditLog, int64, error) {
	return repo.ListAuditLogsPage(ctx, r.DB, p)
}
