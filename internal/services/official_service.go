// Package services – OfficialService
//
// This file implements the OfficialService, which manages federation
// officials: the change-tracked create/update/delete operations, the
// exclusive head/vice position constraint, and the photo attachment
// lifecycle. Service-level errors (e.g. ErrOfficialNotFound,
// ErrPositionTaken) are returned for predictable cases so handlers can map
// them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
	"github.com/jrcatalan/go-osca-backend/internal/storage"
)

// OfficialRepo defines the repository contract required by OfficialService.
type OfficialRepo interface {
	// Create inserts a new official row.
	Create(ctx context.Context, db *gorm.DB, o *domain.Official) error

	// Get fetches an official by ID.
	Get(ctx context.Context, db *gorm.DB, id uint) (*domain.Official, error)

	// Save persists name, position and image of an existing official.
	Save(ctx context.Context, db *gorm.DB, o *domain.Official) error

	// Delete removes an official row permanently.
	Delete(ctx context.Context, db *gorm.DB, id uint) error

	// CountByPosition counts officials holding a position, excluding excludeID.
	CountByPosition(ctx context.Context, db *gorm.DB, position string, excludeID uint) (int64, error)

	// ListPage returns a page of officials plus the total match count.
	ListPage(ctx context.Context, db *gorm.DB, p repo.ListParams) ([]domain.Official, int64, error)
}

// OfficialInput is the proposed state for a create or update. Photo and
// RemoveImage are distinct on purpose: omitting a photo keeps the stored
// image untouched, RemoveImage explicitly clears it.
type OfficialInput struct {
	Name        string
	Position    string
	Photo       *storage.Upload
	RemoveImage bool
}

// OfficialService provides the change-tracked operations on officials.
type OfficialService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the official repository used by this service.
	Repo OfficialRepo
	// Store holds official photos.
	Store storage.Store
	// Audit receives one entry per qualifying mutation.
	Audit *AuditRecorder
}

// NewOfficialService constructs an OfficialService.
func NewOfficialService(db *gorm.DB, r OfficialRepo, st storage.Store, audit *AuditRecorder) *OfficialService {
	return &OfficialService{DB: db, Repo: r, Store: st, Audit: audit}
}

// positionRule declares the exclusivity of the head and vice positions.
func (s *OfficialService) positionRule() exclusive {
	return exclusive{
		values:   []string{domain.PositionHead, domain.PositionVice},
		conflict: ErrPositionTaken,
		count: func(ctx context.Context, value string, excludeID uint) (int64, error) {
			return s.Repo.CountByPosition(ctx, s.DB, value, excludeID)
		},
	}
}

// Create validates the input, enforces the position constraint, stores the
// photo if supplied, persists the record, and — when actor is non-nil —
// appends a CREATE audit entry. A constraint violation is reported before
// any write occurs.
func (s *OfficialService) Create(ctx context.Context, in OfficialInput, actor *domain.Actor) (Outcome[*domain.Official], error) {
	var out Outcome[*domain.Official]

	name := strings.TrimSpace(in.Name)
	position := strings.TrimSpace(strings.ToLower(in.Position))
	if name == "" {
		return out, ErrMissingName
	}
	if position == "" {
		return out, ErrMissingPosition
	}
	if err := s.positionRule().check(ctx, position, 0); err != nil {
		return out, err
	}

	var image string
	if in.Photo != nil {
		ref, err := s.Store.Save(ctx, in.Photo)
		if err != nil {
			return out, err
		}
		image = ref
	}

	o := &domain.Official{Name: name, Position: position, Image: image}
	if err := s.Repo.Create(ctx, s.DB, o); err != nil {
		// The record write failed; the file saved above is now orphaned.
		cleanupAttachment(ctx, s.Store, &out, image)
		return out, err
	}

	out.Value = o
	appendAudit(ctx, s.Audit, &out, actor, domain.ActionCreate,
		"Added official "+o.Name+" ("+o.Position+")")
	return out, nil
}

// Update applies the proposed state to an existing official.
//
// Sequence: read the prior state, check the position constraint against
// other records, resolve the effective image (new upload > explicit clear >
// keep prior), persist, then run the secondary effects: delete the
// superseded file (best-effort) and append an UPDATE entry carrying the
// field diff — but only when at least one field actually changed.
//
// There is no row lock around read-diff-write: two concurrent updates of
// the same official race, the last write wins, and the loser's audit entry
// may describe a stale prior state.
func (s *OfficialService) Update(ctx context.Context, id uint, in OfficialInput, actor *domain.Actor) (Outcome[*domain.Official], error) {
	var out Outcome[*domain.Official]

	old, err := s.Repo.Get(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrOfficialNotFound
		}
		return out, err
	}

	name := strings.TrimSpace(in.Name)
	position := strings.TrimSpace(strings.ToLower(in.Position))
	if name == "" {
		return out, ErrMissingName
	}
	if position == "" {
		return out, ErrMissingPosition
	}
	if err := s.positionRule().check(ctx, position, id); err != nil {
		return out, err
	}

	image := old.Image
	if in.Photo != nil {
		ref, err := s.Store.Save(ctx, in.Photo)
		if err != nil {
			return out, err
		}
		image = ref
	} else if in.RemoveImage {
		image = ""
	}

	updated := *old
	updated.Name = name
	updated.Position = position
	updated.Image = image
	if err := s.Repo.Save(ctx, s.DB, &updated); err != nil {
		if in.Photo != nil {
			// Roll back the file we just stored; the record kept its old one.
			cleanupAttachment(ctx, s.Store, &out, image)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrOfficialNotFound
		}
		return out, err
	}
	out.Value = &updated

	if old.Image != "" && old.Image != image {
		cleanupAttachment(ctx, s.Store, &out, old.Image)
	}

	if changes := updated.DiffFrom(*old); !changes.Empty() {
		appendAudit(ctx, s.Audit, &out, actor, domain.ActionUpdate,
			"Updated official "+updated.Name+": "+changes.String())
	}
	return out, nil
}

// Delete permanently removes an official, deletes its photo (best-effort),
// and appends a DELETE audit entry naming the removed record.
func (s *OfficialService) Delete(ctx context.Context, id uint, actor *domain.Actor) (Outcome[struct{}], error) {
	var out Outcome[struct{}]

	old, err := s.Repo.Get(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrOfficialNotFound
		}
		return out, err
	}

	if err := s.Repo.Delete(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrOfficialNotFound
		}
		return out, err
	}

	cleanupAttachment(ctx, s.Store, &out, old.Image)
	appendAudit(ctx, s.Audit, &out, actor, domain.ActionDelete,
		"Deleted official "+old.Name)
	return out, nil
}

// Get fetches one official by ID.
func (s *OfficialService) Get(ctx context.Context, id uint) (*domain.Official, error) {
	o, err := s.Repo.Get(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficialNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListPage returns a page of officials for the listing view.
func (s *OfficialService) ListPage(ctx context.Context, p repo.ListParams) ([]domain.Official, int64, error) {
	return s.Repo.ListPage(ctx, s.DB, p)
}
