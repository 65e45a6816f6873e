package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
)

// CredentialInput is the proposed SMS gateway configuration.
type CredentialInput struct {
	ApiKey     string
	SenderName string
}

// CredentialService manages the singleton SMS gateway credential row.
type CredentialService struct {
	DB    *gorm.DB
	Audit *AuditRecorder
}

// NewCredentialService constructs a CredentialService.
func NewCredentialService(db *gorm.DB, audit *AuditRecorder) *CredentialService {
	return &CredentialService{DB: db, Audit: audit}
}

// Get returns the stored credentials, or ErrCredentialNotFound when the
// gateway has never been configured.
func (s *CredentialService) Get(ctx context.Context) (*domain.SmsCredential, error) {
	c, err := repo.GetCredential(ctx, s.DB)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	return c, nil
}

// Save creates or replaces the gateway credentials. The first save is
// audited as a CREATE; later saves diff against the stored row and audit
// an UPDATE only when something changed. The API key is masked in the
// rendered change so it never lands in the audit trail.
func (s *CredentialService) Save(ctx context.Context, in CredentialInput, actor *domain.Actor) (Outcome[*domain.SmsCredential], error) {
	var out Outcome[*domain.SmsCredential]

	if strings.TrimSpace(in.ApiKey) == "" {
		return out, ErrMissingApiKey
	}

	old, err := repo.GetCredential(ctx, s.DB)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return out, err
	}

	cred := &domain.SmsCredential{
		ApiKey:     strings.TrimSpace(in.ApiKey),
		SenderName: strings.TrimSpace(in.SenderName),
	}
	if old != nil {
		cred.ID = old.ID
	}
	if err := repo.UpsertCredential(ctx, s.DB, cred); err != nil {
		return out, err
	}
	out.Value = cred

	if old == nil {
		appendAudit(ctx, s.Audit, &out, actor, domain.ActionCreate,
			"Configured SMS gateway credentials")
		return out, nil
	}
	if changes := cred.DiffFrom(*old); !changes.Empty() {
		appendAudit(ctx, s.Audit, &out, actor, domain.ActionUpdate,
			"Updated SMS gateway credentials: "+changes.String())
	}
	return out, nil
}
