package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
	"github.com/jrcatalan/go-osca-backend/internal/sms"
)

// SmsService broadcasts messages to registered senior citizens and keeps a
// log of every attempt. A gateway failure is recorded, not raised: the log
// row makes the failed broadcast visible even though nothing was delivered.
type SmsService struct {
	DB      *gorm.DB
	Gateway sms.Gateway
	Audit   *AuditRecorder
}

// NewSmsService constructs an SmsService.
func NewSmsService(db *gorm.DB, gw sms.Gateway, audit *AuditRecorder) *SmsService {
	return &SmsService{DB: db, Gateway: gw, Audit: audit}
}

// Broadcast sends message to every active citizen with a contact number,
// optionally narrowed to one barangay.
func (s *SmsService) Broadcast(ctx context.Context, message, barangay string, actor *domain.Actor) (Outcome[*domain.SmsLog], error) {
	var out Outcome[*domain.SmsLog]

	message = strings.TrimSpace(message)
	if message == "" {
		return out, ErrMissingMessage
	}

	cred, err := repo.GetCredential(ctx, s.DB)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrCredentialNotFound
		}
		return out, err
	}

	numbers, err := repo.ListCitizenNumbers(ctx, s.DB, barangay)
	if err != nil {
		return out, err
	}
	if len(numbers) == 0 {
		return out, ErrNoRecipients
	}

	entry := &domain.SmsLog{
		Message:        message,
		Recipients:     strings.Join(numbers, ","),
		RecipientCount: len(numbers),
	}
	res, sendErr := s.Gateway.Send(ctx, message, numbers, *cred)
	if sendErr != nil {
		log.Warn().Err(sendErr).Int("recipients", len(numbers)).Msg("sms send failed")
		entry.Status = "failed"
		out.warnf("gateway send failed: %v", sendErr)
	} else {
		entry.Status = res.Status
		entry.ProviderRef = res.ProviderRef
	}

	if err := repo.AppendSmsLog(ctx, s.DB, entry); err != nil {
		return out, err
	}
	out.Value = entry

	appendAudit(ctx, s.Audit, &out, actor, domain.ActionCreate,
		fmt.Sprintf("Sent SMS broadcast to %d recipient(s)", len(numbers)))
	return out, nil
}

// ListLogs returns a page of past broadcast attempts.
func (s *SmsService) ListLogs(ctx context.Context, p repo.ListParams) ([]domain.SmsLog, int64, error) {
	return repo.ListSmsLogsPage(ctx, s.DB, p)
}
