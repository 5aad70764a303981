package matching

import (
	"testing"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/candidate"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/criteria"

	"github.com/google/uuid"
)

func activeJobseeker() candidate.Candidate {
	return candidate.Candidate{
		ID:     uuid.New(),
		Role:   candidate.RoleJobseeker,
		Active: true,
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestMatchPool_EmptySpecMatchesFullActivePool(t *testing.T) {
	a := activeJobseeker()
	b := activeJobseeker()
	inactive := activeJobseeker()
	inactive.Active = false
	employer := activeJobseeker()
	employer.Role = "employer"

	ids := MatchPool(criteria.Spec{}, []candidate.Candidate{a, b, inactive, employer})
	if len(ids) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(ids))
	}
}

func TestMatchPool_DeterministicOrder(t *testing.T) {
	pool := make([]candidate.Candidate, 0, 10)
	for i := 0; i < 10; i++ {
		pool = append(pool, activeJobseeker())
	}

	first := MatchPool(criteria.Spec{}, pool)
	for i := 0; i < 5; i++ {
		again := MatchPool(criteria.Spec{}, pool)
		if len(again) != len(first) {
			t.Fatalf("run %d: size changed", i)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: order changed at %d", i, j)
			}
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].String() >= first[i].String() {
			t.Fatalf("expected ascending id order, got %s before %s", first[i-1], first[i])
		}
	}
}

func TestMatches_ExperienceRangeIsHard(t *testing.T) {
	spec := criteria.Spec{Experience: &criteria.FloatRange{Min: 3, Max: 8}}

	c := activeJobseeker()
	c.ExperienceYears = 5
	if !Matches(spec, c) {
		t.Fatalf("expected in-range experience to match")
	}

	c.ExperienceYears = 2.5
	if Matches(spec, c) {
		t.Fatalf("expected below-range experience to be excluded")
	}
}

func TestMatches_SkillSubstringAcrossFields(t *testing.T) {
	spec := criteria.Spec{RequiredSkills: []string{"PostgreSQL", "Kafka"}}

	c := activeJobseeker()
	c.Summary = "5 years building services on postgresql and Go"
	if !Matches(spec, c) {
		t.Fatalf("expected case-insensitive substring hit in summary")
	}

	c = activeJobseeker()
	c.Skills = []string{"Python"}
	if Matches(spec, c) {
		t.Fatalf("expected no skill overlap to be excluded")
	}
}

func TestMatches_UnsetSoftAttributesPass(t *testing.T) {
	spec := criteria.Spec{
		Salary:    &criteria.FloatRange{Min: 10, Max: 20},
		Locations: []string{"Jakarta"},
		Education: "bachelor",
	}

	// No salary, no location, no education declared.
	c := activeJobseeker()
	if !Matches(spec, c) {
		t.Fatalf("expected candidate with unset soft attributes to pass")
	}
}

func TestMatches_DeclaredSalaryOutsideRangeExcluded(t *testing.T) {
	spec := criteria.Spec{Salary: &criteria.FloatRange{Min: 10, Max: 20}}

	c := activeJobseeker()
	c.CurrentSalary = floatPtr(30)
	if Matches(spec, c) {
		t.Fatalf("expected declared out-of-range salary to be excluded")
	}
}

func TestMatches_RelocationBypassesLocation(t *testing.T) {
	spec := criteria.Spec{Locations: []string{"Jakarta"}}

	c := activeJobseeker()
	c.CurrentLocation = "Surabaya"
	if Matches(spec, c) {
		t.Fatalf("expected mismatched location to be excluded")
	}

	c.WillingToRelocate = true
	if !Matches(spec, c) {
		t.Fatalf("expected willing-to-relocate to pass location filter")
	}
}

func TestMatches_LocationSubstringBothWays(t *testing.T) {
	spec := criteria.Spec{Locations: []string{"Jakarta"}}

	c := activeJobseeker()
	c.PreferredLocations = []string{"South Jakarta"}
	if !Matches(spec, c) {
		t.Fatalf("expected substring match on preferred location")
	}
}

// A declared notice period never excludes, whatever the employer's joining
// preference is. Regression for fully qualified candidates disappearing over
// a 22-day notice against an immediate-joiner preference.
func TestMatches_NoticePeriodNeverExcludes(t *testing.T) {
	spec := criteria.Spec{
		Experience:          &criteria.FloatRange{Min: 1, Max: 10},
		RequiredSkills:      []string{"Go"},
		NoticePeriodMaxDays: intPtr(0),
	}

	c := activeJobseeker()
	c.ExperienceYears = 4
	c.Skills = []string{"Go"}
	c.NoticePeriodDays = intPtr(22)

	if !Matches(spec, c) {
		t.Fatalf("expected candidate with 22-day notice to match an immediate preference")
	}

	crits := MatchedCriteria(spec, c)
	for _, crit := range crits {
		if crit == CriterionNoticePeriod {
			t.Fatalf("expected notice_period not to count as satisfied by value")
		}
	}
}

func TestMatchedCriteria_ByValueOnly(t *testing.T) {
	spec := criteria.Spec{
		Salary:              &criteria.FloatRange{Min: 10, Max: 20},
		Locations:           []string{"Jakarta"},
		NoticePeriodMaxDays: intPtr(30),
		Education:           "bachelor",
	}

	c := activeJobseeker()
	c.CurrentSalary = floatPtr(15)
	c.CurrentLocation = "Jakarta"
	c.NoticePeriodDays = intPtr(15)
	c.EducationLevel = "master"

	got := MatchedCriteria(spec, c)
	want := map[string]bool{
		CriterionSalary:       true,
		CriterionLocation:     true,
		CriterionNoticePeriod: true,
		CriterionEducation:    true,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d criteria, got %v", len(want), got)
	}
	for _, crit := range got {
		if !want[crit] {
			t.Fatalf("unexpected criterion %q", crit)
		}
	}

	// Unset attributes pass the filter but never count as satisfied.
	empty := activeJobseeker()
	if crits := MatchedCriteria(spec, empty); len(crits) != 0 {
		t.Fatalf("expected no by-value criteria for empty profile, got %v", crits)
	}
}

func TestMatches_UnknownEducationVocabularyPasses(t *testing.T) {
	spec := criteria.Spec{Education: "bachelor"}

	c := activeJobseeker()
	c.EducationLevel = "vocational certificate"
	if !Matches(spec, c) {
		t.Fatalf("expected unknown education level to pass")
	}

	c.EducationLevel = "high school"
	if Matches(spec, c) {
		t.Fatalf("expected lower known education level to be excluded")
	}
}
