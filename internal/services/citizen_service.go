// Package services – CitizenService
//
// Change-tracked operations on the senior-citizen registry, including the
// recycle-bin lifecycle: delete is reversible (soft delete), restore brings
// a record back, purge removes it permanently together with its photo.
// The OSCA ID uniqueness check spans the recycle bin, so a soft-deleted
// record keeps its ID reserved until purged.
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

// CitizenInput is the proposed state for a create or update. Photo and
// RemovePhoto are distinct: omitting a photo keeps the stored one, while
// RemovePhoto explicitly clears it.
type CitizenInput struct {
	OscaID        string
	LastName      string
	FirstName     string
	MiddleName    string
	Suffix        string
	BirthDate     string
	Gender        string
	CivilStatus   string
	Barangay      string
	Purok         string
	ContactNumber string
	Status        string
	Photo         *storage.Upload
	RemovePhoto   bool
}

// CitizenService provides the change-tracked operations on senior citizens.
type CitizenService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Store holds citizen photos.
	Store storage.Store
	// Audit receives one entry per qualifying mutation.
	Audit *AuditRecorder
}

// NewCitizenService constructs a CitizenService.
func NewCitizenService(db *gorm.DB, st storage.Store, audit *AuditRecorder) *CitizenService {
	return &CitizenService{DB: db, Store: st, Audit: audit}
}

func (s *CitizenService) oscaIDRule() exclusive {
	return exclusive{
		conflict: ErrOscaIDTaken,
		count: func(ctx context.Context, value string, excludeID uint) (int64, error) {
			return repo.CountCitizensByOscaID(ctx, s.DB, value, excludeID)
		},
	}
}

func (in CitizenInput) validate() error {
	if strings.TrimSpace(in.OscaID) == "" {
		return ErrMissingOscaID
	}
	if strings.TrimSpace(in.LastName) == "" || strings.TrimSpace(in.FirstName) == "" {
		return ErrMissingName
	}
	return nil
}

// apply copies the input's field values onto a record, leaving ID, photo,
// and lifecycle columns alone.
func (in CitizenInput) apply(c *domain.SeniorCitizen) {
	c.OscaID = strings.TrimSpace(in.OscaID)
	c.LastName = strings.TrimSpace(in.LastName)
	c.FirstName = strings.TrimSpace(in.FirstName)
	c.MiddleName = strings.TrimSpace(in.MiddleName)
	c.Suffix = strings.TrimSpace(in.Suffix)
	c.BirthDate = strings.TrimSpace(in.BirthDate)
	c.Gender = strings.ToLower(strings.TrimSpace(in.Gender))
	c.CivilStatus = strings.TrimSpace(in.CivilStatus)
	c.Barangay = strings.TrimSpace(in.Barangay)
	c.Purok = strings.TrimSpace(in.Purok)
	c.ContactNumber = strings.TrimSpace(in.ContactNumber)
	c.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if c.Status == "" {
		c.Status = domain.StatusActive
	}
}

// Create registers a new senior citizen. The OSCA ID must be unused across
// both the active set and the recycle bin.
func (s *CitizenService) Create(ctx context.Context, in CitizenInput, actor *domain.Actor) (Outcome[*domain.SeniorCitizen], error) {
	var out Outcome[*domain.SeniorCitizen]

	if err := in.validate(); err != nil {
		return out, err
	}
	if err := s.oscaIDRule().check(ctx, strings.TrimSpace(in.OscaID), 0); err != nil {
		return out, err
	}

	var photo string
	if in.Photo != nil {
		ref, err := s.Store.Save(ctx, in.Photo)
		if err != nil {
			return out, err
		}
		photo = ref
	}

	c := &domain.SeniorCitizen{Photo: photo}
	in.apply(c)
	if err := repo.CreateCitizen(ctx, s.DB, c); err != nil {
		cleanupAttachment(ctx, s.Store, &out, photo)
		return out, err
	}

	out.Value = c
	appendAudit(ctx, s.Audit, &out, actor, domain.ActionCreate,
		"Registered senior citizen "+c.FullName())
	return out, nil
}

// Update applies the proposed state to an active citizen record. The
// superseded photo is deleted best-effort after the record write; an UPDATE
// audit entry is appended only when at least one field actually changed.
//
// The read-diff-write sequence is not locked; concurrent updates of the
// same record race with last-writer-wins semantics.
func (s *CitizenService) Update(ctx context.Context, id uint, in CitizenInput, actor *domain.Actor) (Outcome[*domain.SeniorCitizen], error) {
	var out Outcome[*domain.SeniorCitizen]

	old, err := repo.GetCitizen(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCitizenNotFound
		}
		return out, err
	}

	if err := in.validate(); err != nil {
		return out, err
	}
	if err := s.oscaIDRule().check(ctx, strings.TrimSpace(in.OscaID), id); err != nil {
		return out, err
	}

	photo := old.Photo
	if in.Photo != nil {
		ref, err := s.Store.Save(ctx, in.Photo)
		if err != nil {
			return out, err
		}
		photo = ref
	} else if in.RemovePhoto {
		photo = ""
	}

	updated := *old
	in.apply(&updated)
	updated.Photo = photo
	if err := repo.SaveCitizen(ctx, s.DB, &updated); err != nil {
		if in.Photo != nil {
			cleanupAttachment(ctx, s.Store, &out, photo)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCitizenNotFound
		}
		return out, err
	}
	out.Value = &updated

	if old.Photo != "" && old.Photo != photo {
		cleanupAttachment(ctx, s.Store, &out, old.Photo)
	}

	if changes := updated.DiffFrom(*old); !changes.Empty() {
		appendAudit(ctx, s.Audit, &out, actor, domain.ActionUpdate,
			"Updated senior citizen "+updated.FullName()+": "+changes.String())
	}
	return out, nil
}

// SoftDelete moves an active record to the recycle bin. The photo is kept —
// restore must bring the record back intact. Soft-deleting a record that is
// already in the bin is a conflict, so a double delete cannot produce a
// second audit entry.
func (s *CitizenService) SoftDelete(ctx context.Context, id uint, actor *domain.Actor) (Outcome[struct{}], error) {
	var out Outcome[struct{}]

	c, err := repo.GetCitizenAnyState(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCitizenNotFound
		}
		return out, err
	}
	if c.DeletedAt.Valid {
		return out, ErrAlreadyDeleted
	}

	if err := repo.SoftDeleteCitizen(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCitizenNotFound
		}
		return out, err
	}

	appendAudit(ctx, s.Audit, &out, actor, domain.ActionDelete,
		"Moved senior citizen "+c.FullName()+" to the recycle bin")
	return out, nil
}

// Restore brings a recycle-bin record back to the active set.
func (s *CitizenService) Restore(ctx context.Context, id uint, actor *domain.Actor) (Outcome[*domain.SeniorCitizen], error) {
	var out Outcome[*domain.SeniorCitizen]

	c, err := repo.GetCitizenAnyState(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCitizenNotFound
		}
		return out, err
	}
	if !c.DeletedAt.Valid {
		return out, ErrNotDeleted
	}

	if err := repo.RestoreCitizen(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCitizenNotFound
		}
		return out, err
	}
	c.DeletedAt = gorm.DeletedAt{}
	out.Value = c

	appendAudit(ctx, s.Audit, &out, actor, domain.ActionRestore,
		"Restored senior citizen "+c.FullName()+" from the recycle bin")
	return out, nil
}

// Purge permanently removes a recycle-bin record and its photo, exactly as
// a non-recycle delete would.
func (s *CitizenService) Purge(ctx context.Context, id uint, actor *domain.Actor) (Outcome[struct{}], error) {
	var out Outcome[struct{}]

	c, err := repo.GetCitizenAnyState(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCitizenNotFound
		}
		return out, err
	}
	if !c.DeletedAt.Valid {
		return out, ErrNotDeleted
	}

	if err := repo.PurgeCitizen(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCitizenNotFound
		}
		return out, err
	}

	cleanupAttachment(ctx, s.Store, &out, c.Photo)
	appendAudit(ctx, s.Audit, &out, actor, domain.ActionPurge,
		"Permanently deleted senior citizen "+c.FullName())
	return out, nil
}

// Get fetches one active citizen by ID.
func (s *CitizenService) Get(ctx context.Context, id uint) (*domain.SeniorCitizen, error) {
	c, err := repo.GetCitizen(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCitizenNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListPage returns a page of active citizens for the listing view.
func (s *CitizenService) ListPage(ctx context.Context, p repo.ListParams) ([]domain.SeniorCitizen, int64, error) {
	return repo.ListCitizensPage(ctx, s.DB, p)
}

// ListRecycleBinPage returns a page of soft-deleted citizens.
func (s *CitizenService) ListRecycleBinPage(ctx context.Context, p repo.ListParams) ([]domain.SeniorCitizen, int64, error) {
	return repo.ListDeletedCitizensPage(ctx, s.DB, p)
}
