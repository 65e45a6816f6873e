package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
	"github.com/jrcatalan/go-osca-backend/internal/repo"
	"github.com/jrcatalan/go-osca-backend/internal/storage"
)

func newServiceDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// fakeStore is an in-memory storage.Store recording every save and delete.
type fakeStore struct {
	n       int
	files   map[string][]byte
	deleted []string
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}}
}

func (f *fakeStore) Save(_ context.Context, up *storage.Upload) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.n++
	ref := fmt.Sprintf("file-%d", f.n)
	f.files[ref] = up.Data
	return ref, nil
}

func (f *fakeStore) Delete(_ context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	delete(f.files, ref)
	return nil
}

func testActor() *domain.Actor {
	return &domain.Actor{Email: "admin@osca.gov.ph", Role: "admin"}
}

// auditEntries returns every trail entry in append order.
func auditEntries(t *testing.T, db *gorm.DB) []domain.AuditLog {
	t.Helper()
	logs, _, err := repo.ListAuditLogsPage(context.Background(), db, repo.ListParams{PageSize: 100})
	if err != nil {
		t.Fatalf("list audit logs: %v", err)
	}
	return logs
}
