package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jrcatalan/go-osca-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
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

func seedCitizens(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		c := &domain.SeniorCitizen{
			OscaID:    fmt.Sprintf("OSCA-%03d", i),
			LastName:  fmt.Sprintf("Lastname%02d", i),
			FirstName: "Test",
			Barangay:  map[bool]string{true: "Poblacion", false: "San Isidro"}[i%2 == 0],
			Gender:    map[bool]string{true: "female", false: "male"}[i%2 == 0],
			Status:    domain.StatusActive,
		}
		if err := CreateCitizen(context.Background(), db, c); err != nil {
			t.Fatalf("seed citizen %d: %v", i, err)
		}
	}
}

func TestFindPage_PagesPartitionTheResultSet(t *testing.T) {
	db := newTestDB(t, &domain.SeniorCitizen{})
	seedCitizens(t, db, 25)

	const pageSize = 10
	seen := map[uint]bool{}
	var total int64
	for page := 1; page <= 3; page++ {
		items, tot, err := ListCitizensPage(context.Background(), db, ListParams{
			Page: page, PageSize: pageSize, SortKey: "last_name",
		})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		total = tot
		for _, c := range items {
			if seen[c.ID] {
				t.Fatalf("record %d appeared on two pages", c.ID)
			}
			seen[c.ID] = true
		}
	}
	if total != 25 {
		t.Fatalf("total = %d; want 25", total)
	}
	if len(seen) != 25 {
		t.Fatalf("sum of page sizes = %d; want 25", len(seen))
	}
}

func TestFindPage_BeyondRangeReturnsEmptyNotError(t *testing.T) {
	db := newTestDB(t, &domain.SeniorCitizen{})
	seedCitizens(t, db, 3)

	items, total, err := ListCitizensPage(context.Background(), db, ListParams{Page: 99, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(items) != 0 {
		t.Fatalf("got %d items, total %d; want 0 items, total 3", len(items), total)
	}
}

func TestFindPage_ClampsMalformedPagination(t *testing.T) {
	db := newTestDB(t, &domain.SeniorCitizen{})
	seedCitizens(t, db, 5)

	items, total, err := ListCitizensPage(context.Background(), db, ListParams{Page: -3, PageSize: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 || len(items) != 5 {
		t.Fatalf("clamped listing: %d items, total %d", len(items), total)
	}
}

func TestFindPage_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	db := newTestDB(t, &domain.SeniorCitizen{})
	seedCitizens(t, db, 5)

	items, total, err := ListCitizensPage(context.Background(), db, ListParams{Search: "LASTNAME03"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].LastName != "Lastname03" {
		t.Fatalf("search miss: total=%d items=%+v", total, items)
	}
}

func TestFindPage_FilterAllMeansNoConstraint(t *testing.T) {
	db := newTestDB(t, &domain.SeniorCitizen{})
	seedCitizens(t, db, 6)

	_, all, err := ListCitizensPage(context.Background(), db, ListParams{
		Filters: map[string]string{"barangay": FilterAll},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all != 6 {
		t.Fatalf("All filter matched %d; want 6", all)
	}

	_, some, err := ListCitizensPage(context.Background(), db, ListParams{
		Filters: map[string]string{"barangay": "Poblacion"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if some != 3 {
		t.Fatalf("Poblacion filter matched %d; want 3", some)
	}
}

func TestFindPage_UnknownSortKeyFallsBackToDefault(t *testing.T) {
	db := newTestDB(t, &domain.SeniorCitizen{})
	seedCitizens(t, db, 3)

	// A hostile sort key must not reach SQL; listing still succeeds ordered
	// by the QuerySpec default.
	items, _, err := ListCitizensPage(context.Background(), db, ListParams{
		SortKey: "last_name; DROP TABLE senior_citizens",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 || items[0].LastName != "Lastname01" {
		t.Fatalf("fallback ordering broken: %+v", items)
	}
}

func TestFindPage_TieBreakKeepsPageBoundariesStable(t *testing.T) {
	db := newTestDB(t, &domain.SeniorCitizen{})
	// All rows share the same last name so the primary sort key ties.
	for i := 1; i <= 4; i++ {
		c := &domain.SeniorCitizen{
			OscaID:   fmt.Sprintf("T-%d", i),
			LastName: "Same", FirstName: "Tie", Status: domain.StatusActive,
		}
		if err := CreateCitizen(context.Background(), db, c); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	p1, _, err := ListCitizensPage(context.Background(), db, ListParams{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	p2, _, err := ListCitizensPage(context.Background(), db, ListParams{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if p1[0].ID >= p1[1].ID || p1[1].ID >= p2[0].ID || p2[0].ID >= p2[1].ID {
		t.Fatalf("id tie-break not monotonic: %v %v %v %v", p1[0].ID, p1[1].ID, p2[0].ID, p2[1].ID)
	}
}
