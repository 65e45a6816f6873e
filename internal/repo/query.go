// Generic listing engine: free-text search, categorical filters, allow-listed
// sorting, and pagination composed into one bounded query.
//
// Each entity's list endpoint declares a QuerySpec (which columns are
// searchable, filterable, sortable) and passes caller input as ListParams.
// Sort keys outside the allow-list fall back to the QuerySpec default instead of
// reaching the SQL layer, so sort parameters cannot inject column expressions.
// A secondary "id ASC" tie-break keeps page boundaries stable when primary
// sort values collide.
package repo

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// FilterAll is the sentinel filter value meaning "no constraint".
const FilterAll = "All"

// Listing bounds applied when callers pass malformed or missing values.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams carries caller-supplied listing input. Zero values are safe:
// page/pageSize are clamped, empty search and filters match everything, and
// an unknown sort key falls back to the QuerySpec default.
type ListParams struct {
	Search   string
	Filters  map[string]string // filter name → requested value ("" or "All" skips)
	SortKey  string
	SortDir  string // "asc" (default) or "desc"
	Page     int
	PageSize int
}

// QuerySpec declares, per entity, which columns the engine may touch.
type QuerySpec struct {
	SearchColumns []string          // matched case-insensitively as substrings
	FilterColumns map[string]string // filter name → column
	SortColumns   map[string]string // sort key → column
	DefaultSort   string            // column used when SortKey is absent/unknown
}

// Clamp normalizes page and pageSize to sane positive bounds.
func (p *ListParams) Clamp() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// searchFolder lower-cases search terms with full Unicode case folding.
var searchFolder = cases.Fold()

// FindPage runs the composed query and returns the requested page plus the
// total number of matching rows (pre-pagination). A page beyond the last one
// yields an empty slice and no error.
//
// The db handle carries any pre-applied scope (e.g. Unscoped recycle-bin
// selection); the engine only adds search, filters, ordering, and bounds.
func FindPage[T any](ctx context.Context, db *gorm.DB, spec QuerySpec, p ListParams) ([]T, int64, error) {
	p.Clamp()

	q := db.WithContext(ctx).Model(new(T))

	if term := strings.TrimSpace(p.Search); term != "" && len(spec.SearchColumns) > 0 {
		// The column side goes through SQLite's LOWER(), which only folds
		// ASCII; stored values with non-ASCII uppercase (e.g. "PEÑA") only
		// match a search term typed in the same case. Full Unicode matching
		// would need an ICU-enabled build.
		pattern := "%" + searchFolder.String(term) + "%"
		var clauses []string
		var args []any
		for _, col := range spec.SearchColumns {
			clauses = append(clauses, "LOWER("+col+") LIKE ?")
			args = append(args, pattern)
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}

	for name, val := range p.Filters {
		if val == "" || val == FilterAll {
			continue
		}
		col, ok := spec.FilterColumns[name]
		if !ok {
			continue // undeclared filter names are ignored, not errors
		}
		q = q.Where(col+" = ?", val)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	col, ok := spec.SortColumns[p.SortKey]
	if !ok {
		col = spec.DefaultSort
	}
	dir := "ASC"
	if strings.EqualFold(p.SortDir, "desc") {
		dir = "DESC"
	}

	var items []T
	err := q.
		Order(col + " " + dir + ", id ASC").
		Offset((p.Page - 1) * p.PageSize).
		Limit(p.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
