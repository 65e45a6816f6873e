package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
	"github.com/jrcatalan/go-osca-backend/internal/storage"
)

// fakeOfficialRepo is an in-memory OfficialRepo.
type fakeOfficialRepo struct {
	byID      map[uint]*domain.Official
	nextID    uint
	createErr error
	saveErr   error
}

func newFakeOfficialRepo() *fakeOfficialRepo {
	return &fakeOfficialRepo{byID: map[uint]*domain.Official{}}
}

func (f *fakeOfficialRepo) Create(_ context.Context, _ *gorm.DB, o *domain.Official) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	o.ID = f.nextID
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOfficialRepo) Get(_ context.Context, _ *gorm.DB, id uint) (*domain.Official, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOfficialRepo) Save(_ context.Context, _ *gorm.DB, o *domain.Official) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.byID[o.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOfficialRepo) Delete(_ context.Context, _ *gorm.DB, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeOfficialRepo) CountByPosition(_ context.Context, _ *gorm.DB, position string, excludeID uint) (int64, error) {
	var n int64
	for id, o := range f.byID {
		if o.Position == position && id != excludeID {
			n++
		}
	}
	return n, nil
}

func (f *fakeOfficialRepo) ListPage(_ context.Context, _ *gorm.DB, _ repo.ListParams) ([]domain.Official, int64, error) {
	out := make([]domain.Official, 0, len(f.byID))
	for _, o := range f.byID {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func newOfficialHarness(t *testing.T) (*OfficialService, *fakeOfficialRepo, *fakeStore, *gorm.DB) {
	t.Helper()
	db := newServiceDB(t, &domain.AuditLog{})
	r := newFakeOfficialRepo()
	st := newFakeStore()
	return NewOfficialService(db, r, st, NewAuditRecorder(db)), r, st, db
}

func TestOfficialService_UpdateUnchangedProducesNoAuditEntry(t *testing.T) {
	svc, _, _, db := newOfficialHarness(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, OfficialInput{Name: "Maria Santos", Position: "treasurer"}, testActor())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, created.Value.ID, OfficialInput{Name: "Maria Santos", Position: "treasurer"}, testActor()); err != nil {
		t.Fatalf("update: %v", err)
	}

	logs := auditEntries(t, db)
	if len(logs) != 1 {
		t.Fatalf("expected only the CREATE entry, got %d entries", len(logs))
	}
	if logs[0].Action != domain.ActionCreate {
		t.Fatalf("unexpected action %q", logs[0].Action)
	}
}

func TestOfficialService_UpdateRecordsOnlyChangedFields(t *testing.T) {
	svc, _, _, db := newOfficialHarness(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, OfficialInput{Name: "Maria Santos", Position: "treasurer"}, testActor())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, created.Value.ID, OfficialInput{Name: "Maria Reyes", Position: "treasurer"}, testActor()); err != nil {
		t.Fatalf("update: %v", err)
	}

	logs := auditEntries(t, db)
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(logs))
	}
	want := "Updated official Maria Reyes: name: 'Maria Santos' → 'Maria Reyes'"
	if logs[1].Details != want {
		t.Fatalf("details = %q, want %q", logs[1].Details, want)
	}
	if strings.Contains(logs[1].Details, "position") {
		t.Fatalf("unchanged field leaked into the diff: %q", logs[1].Details)
	}
}

func TestOfficialService_ReplacingPhotoDeletesSupersededFile(t *testing.T) {
	svc, _, st, _ := newOfficialHarness(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, OfficialInput{
		Name:     "Jose Cruz",
		Position: "auditor",
		Photo:    &storage.Upload{Filename: "a.jpg", Data: []byte("old")},
	}, testActor())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldRef := created.Value.Image
	if oldRef == "" {
		t.Fatal("expected an image ref after create")
	}

	updated, err := svc.Update(ctx, created.Value.ID, OfficialInput{
		Name:     "Jose Cruz",
		Position: "auditor",
		Photo:    &storage.Upload{Filename: "b.jpg", Data: []byte("new")},
	}, testActor())
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Value.Image == oldRef {
		t.Fatal("image ref was not replaced")
	}
	if len(st.deleted) != 1 || st.deleted[0] != oldRef {
		t.Fatalf("superseded file not deleted: deleted=%v want [%s]", st.deleted, oldRef)
	}
}

func TestOfficialService_OmittedPhotoKeepsStoredImage(t *testing.T) {
	svc, _, st, _ := newOfficialHarness(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, OfficialInput{
		Name:     "Jose Cruz",
		Position: "auditor",
		Photo:    &storage.Upload{Filename: "a.jpg", Data: []byte("pic")},
	}, testActor())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.Value.ID, OfficialInput{
		Name:     "Jose D. Cruz",
		Position: "auditor",
	}, testActor())
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Value.Image != created.Value.Image {
		t.Fatalf("image changed: %q → %q", created.Value.Image, updated.Value.Image)
	}
	if len(st.deleted) != 0 {
		t.Fatalf("stored file was deleted: %v", st.deleted)
	}
}

func TestOfficialService_RemoveImageClearsStoredImage(t *testing.T) {
	svc, _, st, _ := newOfficialHarness(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, OfficialInput{
		Name:     "Jose Cruz",
		Position: "auditor",
		Photo:    &storage.Upload{Filename: "a.jpg", Data: []byte("pic")},
	}, testActor())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.Value.ID, OfficialInput{
		Name:        "Jose Cruz",
		Position:    "auditor",
		RemoveImage: true,
	}, testActor())
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Value.Image != "" {
		t.Fatalf("image not cleared: %q", updated.Value.Image)
	}
	if len(st.deleted) != 1 || st.deleted[0] != created.Value.Image {
		t.Fatalf("old file not deleted: %v", st.deleted)
	}
}

func TestOfficialService_HeadPositionIsExclusive(t *testing.T) {
	svc, r, st, db := newOfficialHarness(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, OfficialInput{Name: "Incumbent", Position: domain.PositionHead}, testActor()); err != nil {
		t.Fatalf("create incumbent: %v", err)
	}

	_, err := svc.Create(ctx, OfficialInput{
		Name:     "Challenger",
		Position: domain.PositionHead,
		Photo:    &storage.Upload{Filename: "c.jpg", Data: []byte("pic")},
	}, testActor())
	if !errors.Is(err, ErrPositionTaken) {
		t.Fatalf("err = %v, want ErrPositionTaken", err)
	}

	// Nothing may persist from the rejected call: no record, no file, no audit.
	if len(r.byID) != 1 {
		t.Fatalf("record count = %d, want 1", len(r.byID))
	}
	if len(st.files) != 0 {
		t.Fatalf("orphaned files: %v", st.files)
	}
	if logs := auditEntries(t, db); len(logs) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(logs))
	}
}

func TestOfficialService_TwoOrdinaryMembersMayShareTitle(t *testing.T) {
	svc, _, _, _ := newOfficialHarness(t)
	ctx := context.Background()

	for _, name := range []string{"First Member", "Second Member"} {
		if _, err := svc.Create(ctx, OfficialInput{Name: name, Position: "member"}, testActor()); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
}

func TestOfficialService_CreateFailureCleansUpStoredFile(t *testing.T) {
	svc, r, st, _ := newOfficialHarness(t)
	r.createErr = errors.New("disk full")

	_, err := svc.Create(context.Background(), OfficialInput{
		Name:     "Jose Cruz",
		Position: "auditor",
		Photo:    &storage.Upload{Filename: "a.jpg", Data: []byte("pic")},
	}, testActor())
	if err == nil {
		t.Fatal("expected create to fail")
	}
	if len(st.files) != 0 {
		t.Fatalf("orphaned files after failed create: %v", st.files)
	}
}

func TestOfficialService_NilActorSkipsAudit(t *testing.T) {
	svc, _, _, db := newOfficialHarness(t)

	if _, err := svc.Create(context.Background(), OfficialInput{Name: "System Seed", Position: "member"}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if logs := auditEntries(t, db); len(logs) != 0 {
		t.Fatalf("audit entries = %d, want 0", len(logs))
	}
}
