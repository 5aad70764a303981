package criteria

import (
	"errors"
	"testing"
)

func TestExtract_EmptyMetadata(t *testing.T) {
	spec, err := Extract(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !spec.IsZero() {
		t.Fatalf("expected zero spec, got %+v", spec)
	}
}

func TestExtract_AliasPrecedence(t *testing.T) {
	spec, err := Extract(map[string]any{
		"experienceMin":     float64(3),
		"workExperienceMin": float64(8),
		"candidateLocations": []any{
			"Jakarta",
		},
		"locations": []any{"Bandung"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if spec.Experience == nil || spec.Experience.Min != 3 {
		t.Fatalf("expected experienceMin to win over workExperienceMin, got %+v", spec.Experience)
	}
	if len(spec.Locations) != 1 || spec.Locations[0] != "Jakarta" {
		t.Fatalf("expected candidateLocations to win, got %v", spec.Locations)
	}
}

func TestExtract_UnboundedRangeDefaults(t *testing.T) {
	spec, err := Extract(map[string]any{
		"experienceMin": float64(5),
		"salaryMin":     float64(10),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if spec.Experience == nil || spec.Experience.Max != DefaultMaxExperienceYears {
		t.Fatalf("expected experience max default %d, got %+v", DefaultMaxExperienceYears, spec.Experience)
	}
	if spec.Salary == nil || spec.Salary.Max != DefaultMaxSalary {
		t.Fatalf("expected salary max default %d, got %+v", DefaultMaxSalary, spec.Salary)
	}
}

func TestExtract_MaxOnlyRange(t *testing.T) {
	spec, err := Extract(map[string]any{"experienceMax": float64(10)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if spec.Experience == nil || spec.Experience.Min != 0 || spec.Experience.Max != 10 {
		t.Fatalf("expected [0,10], got %+v", spec.Experience)
	}
}

func TestExtract_NonNumericBound(t *testing.T) {
	_, err := Extract(map[string]any{"experienceMin": "senior"})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestExtract_InvertedRange(t *testing.T) {
	_, err := Extract(map[string]any{
		"salaryMin": float64(20),
		"salaryMax": float64(5),
	})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestExtract_NumericStringBound(t *testing.T) {
	spec, err := Extract(map[string]any{"salaryMin": "7.5"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if spec.Salary == nil || spec.Salary.Min != 7.5 {
		t.Fatalf("expected salary min 7.5, got %+v", spec.Salary)
	}
}

func TestExtract_SkillsFromCommaString(t *testing.T) {
	spec, err := Extract(map[string]any{"requiredSkills": "Go, PostgreSQL, go , "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(spec.RequiredSkills) != 2 {
		t.Fatalf("expected case-insensitive dedup to 2 skills, got %v", spec.RequiredSkills)
	}
	if spec.RequiredSkills[0] != "Go" || spec.RequiredSkills[1] != "PostgreSQL" {
		t.Fatalf("expected original casing preserved, got %v", spec.RequiredSkills)
	}
}

func TestExtract_NoticePeriod(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"Immediately", 0},
		{"15 days", 15},
		{"30 days", 30},
		{"1 month", 30},
		{"2 weeks", 14},
		{"45 days", 45},
		{"3 months", 90},
	}
	for _, tc := range cases {
		spec, err := Extract(map[string]any{"noticePeriod": tc.raw})
		if err != nil {
			t.Fatalf("%q: unexpected err: %v", tc.raw, err)
		}
		if spec.NoticePeriodMaxDays == nil || *spec.NoticePeriodMaxDays != tc.want {
			t.Fatalf("%q: expected %d days, got %v", tc.raw, tc.want, spec.NoticePeriodMaxDays)
		}
	}
}

func TestExtract_UnrecognizedNoticePeriod(t *testing.T) {
	_, err := Extract(map[string]any{"noticePeriod": "whenever"})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestSpec_HashChangesWithCriteria(t *testing.T) {
	a, err := Extract(map[string]any{"requiredSkills": []any{"Go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := Extract(map[string]any{"requiredSkills": []any{"Rust"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.Hash() == b.Hash() {
		t.Fatalf("expected different hashes for different specs")
	}
	if a.Hash() != a.Hash() {
		t.Fatalf("expected stable hash")
	}
}
