package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
	"github.com/jrcatalan/go-osca-backend/internal/sms"
)

// fakeGateway records the last send and returns a canned result or error.
type fakeGateway struct {
	lastMessage    string
	lastRecipients []string
	lastCred       domain.SmsCredential
	err            error
}

func (f *fakeGateway) Send(_ context.Context, message string, recipients []string, cred domain.SmsCredential) (*sms.Result, error) {
	f.lastMessage = message
	f.lastRecipients = recipients
	f.lastCred = cred
	if f.err != nil {
		return nil, f.err
	}
	return &sms.Result{Status: "queued", ProviderRef: "batch-1"}, nil
}

func newSmsHarness(t *testing.T) (*SmsService, *fakeGateway, *gorm.DB) {
	t.Helper()
	db := newServiceDB(t,
		&domain.SeniorCitizen{}, &domain.SmsCredential{},
		&domain.SmsLog{}, &domain.AuditLog{})
	gw := &fakeGateway{}
	return NewSmsService(db, gw, NewAuditRecorder(db)), gw, db
}

func seedRecipients(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()
	rows := []domain.SeniorCitizen{
		{OscaID: "R-1", LastName: "Uno", FirstName: "A", Barangay: "Poblacion", ContactNumber: "09171234567", Status: domain.StatusActive},
		{OscaID: "R-2", LastName: "Dos", FirstName: "B", Barangay: "San Isidro", ContactNumber: "09177654321", Status: domain.StatusActive},
		{OscaID: "R-3", LastName: "Tres", FirstName: "C", Barangay: "Poblacion", Status: domain.StatusActive},  // no number
		{OscaID: "R-4", LastName: "Kwatro", FirstName: "D", Barangay: "Poblacion", ContactNumber: "09170000001", Status: domain.StatusDeceased},
	}
	for i := range rows {
		if err := repo.CreateCitizen(ctx, db, &rows[i]); err != nil {
			t.Fatalf("seed recipient %d: %v", i, err)
		}
	}
	if err := repo.UpsertCredential(ctx, db, &domain.SmsCredential{ApiKey: "sk-12345678", SenderName: "OSCA"}); err != nil {
		t.Fatalf("seed credential: %v", err)
	}
}

func TestSmsService_BroadcastTargetsActiveNumbersOnly(t *testing.T) {
	svc, gw, db := newSmsHarness(t)
	seedRecipients(t, db)
	ctx := context.Background()

	out, err := svc.Broadcast(ctx, "Pension release on Friday.", "", testActor())
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	// Missing numbers and non-active statuses are excluded.
	if len(gw.lastRecipients) != 2 {
		t.Fatalf("recipients = %v, want 2", gw.lastRecipients)
	}
	if gw.lastCred.ApiKey != "sk-12345678" {
		t.Fatalf("credential not passed through: %+v", gw.lastCred)
	}
	if out.Value.Status != "queued" || out.Value.RecipientCount != 2 {
		t.Fatalf("log entry = %+v", out.Value)
	}

	logs := auditEntries(t, db)
	if len(logs) != 1 || logs[0].Details != "Sent SMS broadcast to 2 recipient(s)" {
		t.Fatalf("audit = %+v", logs)
	}
}

func TestSmsService_BroadcastNarrowedToBarangay(t *testing.T) {
	svc, gw, db := newSmsHarness(t)
	seedRecipients(t, db)

	if _, err := svc.Broadcast(context.Background(), "Barangay assembly.", "Poblacion", testActor()); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(gw.lastRecipients) != 1 || gw.lastRecipients[0] != "09171234567" {
		t.Fatalf("recipients = %v", gw.lastRecipients)
	}
}

func TestSmsService_GatewayFailureIsLoggedNotRaised(t *testing.T) {
	svc, gw, db := newSmsHarness(t)
	seedRecipients(t, db)
	gw.err = errors.New("provider timeout")

	out, err := svc.Broadcast(context.Background(), "Test message.", "", testActor())
	if err != nil {
		t.Fatalf("broadcast returned error for gateway failure: %v", err)
	}
	if out.Value.Status != "failed" {
		t.Fatalf("log status = %q, want failed", out.Value.Status)
	}
	if len(out.Warnings) == 0 {
		t.Fatal("expected a warning on the outcome")
	}

	entries, total, err := svc.ListLogs(context.Background(), repo.ListParams{})
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if total != 1 || entries[0].Status != "failed" {
		t.Fatalf("delivery log = %+v", entries)
	}
}

func TestSmsService_BroadcastPreconditions(t *testing.T) {
	svc, _, db := newSmsHarness(t)
	ctx := context.Background()

	if _, err := svc.Broadcast(ctx, "   ", "", testActor()); !errors.Is(err, ErrMissingMessage) {
		t.Fatalf("blank message: err = %v, want ErrMissingMessage", err)
	}
	if _, err := svc.Broadcast(ctx, "Hello", "", testActor()); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("no credential: err = %v, want ErrCredentialNotFound", err)
	}

	if err := repo.UpsertCredential(ctx, db, &domain.SmsCredential{ApiKey: "sk-1"}); err != nil {
		t.Fatalf("seed credential: %v", err)
	}
	if _, err := svc.Broadcast(ctx, "Hello", "", testActor()); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("no recipients: err = %v, want ErrNoRecipients", err)
	}
}
