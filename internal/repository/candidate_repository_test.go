package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/database"

	"github.com/google/uuid"
)

type fakeRows struct {
	rows [][]any
	pos  int
	err  error
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return r.err }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan arity mismatch: %d != %d", len(dest), len(row))
	}
	for i, src := range row {
		switch d := dest[i].(type) {
		case *uuid.UUID:
			d.UnmarshalText([]byte(src.(string)))
		case *string:
			*d = src.(string)
		case *bool:
			*d = src.(bool)
		case *int:
			*d = src.(int)
		case *float64:
			*d = src.(float64)
		case *sql.NullFloat64:
			if v, ok := src.(float64); ok {
				*d = sql.NullFloat64{Float64: v, Valid: true}
			} else {
				*d = sql.NullFloat64{}
			}
		case *sql.NullInt64:
			if v, ok := src.(int64); ok {
				*d = sql.NullInt64{Int64: v, Valid: true}
			} else {
				*d = sql.NullInt64{}
			}
		case *sql.NullTime:
			if v, ok := src.(time.Time); ok {
				*d = sql.NullTime{Time: v, Valid: true}
			} else {
				*d = sql.NullTime{}
			}
		default:
			return fmt.Errorf("unsupported dest type %T", dest[i])
		}
	}
	return nil
}

type fakeDB struct {
	rows *fakeRows
	err  error
}

func (f fakeDB) Ping(context.Context) error { return nil }
func (f fakeDB) Close() error               { return nil }
func (f fakeDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, f.err
}
func (f fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
func (f fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return nil
}

func candidateRow(id uuid.UUID) []any {
	updated := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return []any{
		id.String(), "jobseeker", true,
		"Backend Engineer", "Builds services in Go", "Software Engineer",
		4.5, 12.0,
		"Go, PostgreSQL, , Redis", "Go",
		"Jakarta", "Bandung,  Surabaya",
		false, int64(30),
		"bachelor", 85,
		updated, true, false,
	}
}

func TestListActive_ScansNullableColumns(t *testing.T) {
	id := uuid.New()
	repo := NewPostgresCandidateRepository(fakeDB{rows: &fakeRows{rows: [][]any{candidateRow(id)}}})

	out, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(out))
	}

	c := out[0]
	if c.ID != id || !c.Active || !c.IsJobseeker() {
		t.Fatalf("unexpected candidate identity: %+v", c)
	}
	if c.CurrentSalary == nil || *c.CurrentSalary != 12.0 {
		t.Fatalf("expected salary 12.0, got %v", c.CurrentSalary)
	}
	if c.NoticePeriodDays == nil || *c.NoticePeriodDays != 30 {
		t.Fatalf("expected notice 30 days, got %v", c.NoticePeriodDays)
	}
	if len(c.Skills) != 3 || c.Skills[2] != "Redis" {
		t.Fatalf("expected comma list trimmed to 3 skills, got %v", c.Skills)
	}
	if len(c.PreferredLocations) != 2 || c.PreferredLocations[1] != "Surabaya" {
		t.Fatalf("expected trimmed preferred locations, got %v", c.PreferredLocations)
	}
	if c.LastProfileUpdate.IsZero() {
		t.Fatalf("expected last profile update set")
	}
}

func TestListActive_NullProfileFields(t *testing.T) {
	id := uuid.New()
	row := candidateRow(id)
	row[7] = nil  // current_salary
	row[13] = nil // notice_period_days
	row[16] = nil // last_profile_update
	repo := NewPostgresCandidateRepository(fakeDB{rows: &fakeRows{rows: [][]any{row}}})

	out, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c := out[0]
	if c.CurrentSalary != nil || c.NoticePeriodDays != nil {
		t.Fatalf("expected nil salary and notice for NULL columns, got %+v", c)
	}
	if !c.LastProfileUpdate.IsZero() {
		t.Fatalf("expected zero time for NULL last update")
	}
}

func TestFindByIDs_EmptyInputSkipsQuery(t *testing.T) {
	repo := NewPostgresCandidateRepository(fakeDB{err: fmt.Errorf("must not be called")})
	out, err := repo.FindByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList("  "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
	got := splitList("Go, ,PostgreSQL ,Redis,")
	if len(got) != 3 || got[0] != "Go" || got[1] != "PostgreSQL" || got[2] != "Redis" {
		t.Fatalf("unexpected split: %v", got)
	}
}
