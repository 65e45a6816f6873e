// Package services – BarangayService
//
// Change-tracked operations on barangays. Barangays carry no attachment, so
// the pattern reduces to: read prior state, name-uniqueness check, persist,
// diff, conditional audit. Uses the repository functions directly.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
)

// BarangayInput is the proposed state for a create or update.
type BarangayInput struct {
	Name    string
	Captain string
}

// BarangayService provides the change-tracked operations on barangays.
type BarangayService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Audit receives one entry per qualifying mutation.
	Audit *AuditRecorder
}

// NewBarangayService constructs a BarangayService.
func NewBarangayService(db *gorm.DB, audit *AuditRecorder) *BarangayService {
	return &BarangayService{DB: db, Audit: audit}
}

// nameRule declares that barangay names are unique.
func (s *BarangayService) nameRule() exclusive {
	return exclusive{
		conflict: ErrBarangayNameTaken,
		count: func(ctx context.Context, value string, excludeID uint) (int64, error) {
			return repo.CountBarangaysByName(ctx, s.DB, value, excludeID)
		},
	}
}

// Create persists a new barangay and, when actor is non-nil, appends a
// CREATE audit entry.
func (s *BarangayService) Create(ctx context.Context, in BarangayInput, actor *domain.Actor) (Outcome[*domain.Barangay], error) {
	var out Outcome[*domain.Barangay]

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return out, ErrMissingName
	}
	if err := s.nameRule().check(ctx, name, 0); err != nil {
		return out, err
	}

	b := &domain.Barangay{Name: name, Captain: strings.TrimSpace(in.Captain)}
	if err := repo.CreateBarangay(ctx, s.DB, b); err != nil {
		return out, err
	}

	out.Value = b
	appendAudit(ctx, s.Audit, &out, actor, domain.ActionCreate,
		"Added barangay "+b.Name)
	return out, nil
}

// Update applies the proposed state to an existing barangay. An UPDATE
// audit entry is appended only when at least one field actually changed;
// an unchanged record produces none.
func (s *BarangayService) Update(ctx context.Context, id uint, in BarangayInput, actor *domain.Actor) (Outcome[*domain.Barangay], error) {
	var out Outcome[*domain.Barangay]

	old, err := repo.GetBarangay(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrBarangayNotFound
		}
		return out, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return out, ErrMissingName
	}
	if err := s.nameRule().check(ctx, name, id); err != nil {
		return out, err
	}

	updated := *old
	updated.Name = name
	updated.Captain = strings.TrimSpace(in.Captain)
	if err := repo.SaveBarangay(ctx, s.DB, &updated); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrBarangayNotFound
		}
		return out, err
	}
	out.Value = &updated

	if changes := updated.DiffFrom(*old); !changes.Empty() {
		appendAudit(ctx, s.Audit, &out, actor, domain.ActionUpdate,
			"Updated barangay "+updated.Name+": "+changes.String())
	}
	return out, nil
}

// Delete permanently removes a barangay and appends a DELETE audit entry
// naming the removed record.
func (s *BarangayService) Delete(ctx context.Context, id uint, actor *domain.Actor) (Outcome[struct{}], error) {
	var out Outcome[struct{}]

	old, err := repo.GetBarangay(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrBarangayNotFound
		}
		return out, err
	}

	if err := repo.DeleteBarangay(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrBarangayNotFound
		}
		return out, err
	}

	appendAudit(ctx, s.Audit, &out, actor, domain.ActionDelete,
		"Deleted barangay "+old.Name)
	return out, nil
}

// Get fetches one barangay by ID.
func (s *BarangayService) Get(ctx context.Context, id uint) (*domain.Barangay, error) {
	b, err := repo.GetBarangay(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBarangayNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListPage returns a page of barangays for the listing view.
func (s *BarangayService) ListPage(ctx context.Context, p repo.ListParams) ([]domain.Barangay, int64, error) {
	return repo.ListBarangaysPage(ctx, s.DB, p)
}

// Names returns all barangay names for dropdowns and broadcast targeting.
func (s *BarangayService) Names(ctx context.Context) ([]string, error) {
	return repo.ListBarangayNames(ctx, s.DB)
}
