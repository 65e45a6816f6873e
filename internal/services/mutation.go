// Shared plumbing for change-tracked mutations.
//
// Every mutating operation has one primary effect (the record write, which
// must succeed or the whole call fails) and up to two secondary effects:
// deleting a superseded attachment and appending an audit entry. Secondary
// effects are attempted after the primary write succeeds; their failures are
// captured as warnings on the Outcome and logged, never propagated as errors
// and never rolled back.
package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/storage"
)

// Outcome carries the primary result of a mutation plus any non-fatal
// warnings accumulated by its secondary effects. Warnings are operator
// diagnostics (already logged); transports may surface or drop them.
type Outcome[T any] struct {
	Value    T
	Warnings []string
}

func (o *Outcome[T]) warnf(format string, args ...any) {
	o.Warnings = append(o.Warnings, fmt.Sprintf(format, args...))
}

// cleanupAttachment deletes a superseded or orphaned stored file. Failure is
// recorded as a warning on the outcome; the enclosing mutation has already
// succeeded and is not affected.
func cleanupAttachment[T any](ctx context.Context, store storage.Store, out *Outcome[T], ref string) {
	if store == nil || ref == "" {
		return
	}
	if err := store.Delete(ctx, ref); err != nil {
		log.Warn().Err(err).Str("ref", ref).Msg("attachment cleanup failed")
		out.warnf("attachment cleanup failed for %s: %v", ref, err)
	}
}

// appendAudit records the mutation in the audit trail when an actor is
// present. An append failure leaves the mutation "succeeded but unaudited":
// it is logged and added to the warnings, never returned as an error.
func appendAudit[T any](ctx context.Context, rec *AuditRecorder, out *Outcome[T], actor *domain.Actor, action, details string) {
	if rec == nil || actor == nil {
		return
	}
	if err := rec.Record(ctx, actor, action, details); err != nil {
		log.Warn().Err(err).Str("action", action).Str("actor", actor.Email).Msg("audit append failed")
		out.warnf("audit append failed: %v", err)
	}
}

// exclusive is a declared uniqueness constraint over a field: at most one
// record may hold any of the listed values (or, when values is empty, any
// value at all — plain per-value uniqueness). The count callback reports how
// many other records currently hold the value, excluding excludeID.
//
// Declaring the constraint once and checking it through this routine keeps
// the per-entity services free of ad hoc duplicated queries.
type exclusive struct {
	values   []string
	conflict error
	count    func(ctx context.Context, value string, excludeID uint) (int64, error)
}

// check returns the constraint's conflict error when another record already
// holds value. It runs before any write, so a violation has no side effects.
func (e exclusive) check(ctx context.Context, value string, excludeID uint) error {
	if len(e.values) > 0 {
		constrained := false
		for _, v := range e.values {
			if v == value {
				constrained = true
				break
			}
		}
		if !constrained {
			return nil
		}
	}
	n, err := e.count(ctx, value, excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return e.conflict
	}
	return nil
}
