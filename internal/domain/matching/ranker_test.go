package matching

import (
	"testing"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/candidate"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/criteria"

	"github.com/google/uuid"
)

func TestRelevanceScore_Bounds(t *testing.T) {
	now := time.Now()
	spec := criteria.Spec{
		Experience:     &criteria.FloatRange{Min: 3, Max: 8},
		Salary:         &criteria.FloatRange{Min: 10, Max: 20},
		RequiredSkills: []string{"Go", "PostgreSQL"},
	}

	best := activeJobseeker()
	best.ExperienceYears = 5
	best.CurrentSalary = floatPtr(15)
	best.Skills = []string{"Go", "PostgreSQL"}
	best.LastProfileUpdate = now.Add(-24 * time.Hour)

	worst := activeJobseeker()
	worst.ExperienceYears = 0
	worst.Skills = []string{"Excel"}

	hi := RelevanceScore(spec, best, now)
	lo := RelevanceScore(spec, worst, now)

	if hi != 100 {
		t.Fatalf("expected full-credit candidate to score 100, got %d", hi)
	}
	if lo < 0 || lo > 100 {
		t.Fatalf("score out of bounds: %d", lo)
	}
	if lo >= hi {
		t.Fatalf("expected weak candidate below strong one: %d >= %d", lo, hi)
	}
}

func TestRelevanceScore_SkillMonotonicity(t *testing.T) {
	now := time.Now()
	spec := criteria.Spec{RequiredSkills: []string{"Go", "PostgreSQL", "Redis", "Kafka"}}

	c := activeJobseeker()
	prev := -1
	for _, skills := range [][]string{
		{"Go"},
		{"Go", "PostgreSQL"},
		{"Go", "PostgreSQL", "Redis"},
		{"Go", "PostgreSQL", "Redis", "Kafka"},
	} {
		c.Skills = skills
		score := RelevanceScore(spec, c, now)
		if score < prev {
			t.Fatalf("adding a skill lowered the score: %d -> %d at %v", prev, score, skills)
		}
		prev = score
	}
}

func TestRelevanceScore_UndeclaredSalaryNeutral(t *testing.T) {
	now := time.Now()
	spec := criteria.Spec{Salary: &criteria.FloatRange{Min: 10, Max: 20}}

	undeclared := activeJobseeker()
	inRange := activeJobseeker()
	inRange.CurrentSalary = floatPtr(15)
	farOff := activeJobseeker()
	farOff.CurrentSalary = floatPtr(100)

	mid := RelevanceScore(spec, undeclared, now)
	hi := RelevanceScore(spec, inRange, now)
	lo := RelevanceScore(spec, farOff, now)

	if !(lo < mid && mid < hi) {
		t.Fatalf("expected far-off < undeclared < in-range, got %d, %d, %d", lo, mid, hi)
	}
}

func TestRank_OrderAndTieBreaks(t *testing.T) {
	now := time.Now()
	requirementID := uuid.New()
	spec := criteria.Spec{RequiredSkills: []string{"Go"}}

	strong := activeJobseeker()
	strong.Skills = []string{"Go"}
	strong.LastProfileUpdate = now.Add(-24 * time.Hour)

	weak := activeJobseeker()
	weak.Skills = []string{"Excel"}

	// Identical scores, tie on profile completion.
	tieHigh := activeJobseeker()
	tieHigh.Skills = []string{"Go"}
	tieHigh.LastProfileUpdate = strong.LastProfileUpdate
	tieHigh.ProfileCompletion = 90

	results := Rank(spec, requirementID, []candidate.Candidate{weak, strong, tieHigh}, now)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].CandidateID != tieHigh.ID {
		t.Fatalf("expected higher profile completion to win the tie")
	}
	if results[1].CandidateID != strong.ID {
		t.Fatalf("expected strong candidate second")
	}
	if results[2].CandidateID != weak.ID {
		t.Fatalf("expected weak candidate last")
	}
	for _, res := range results {
		if res.RequirementID != requirementID {
			t.Fatalf("expected requirement id carried through")
		}
	}
}

func TestRank_StableForFixedSnapshot(t *testing.T) {
	now := time.Now()
	requirementID := uuid.New()
	spec := criteria.Spec{}

	pool := make([]candidate.Candidate, 0, 8)
	for i := 0; i < 8; i++ {
		pool = append(pool, activeJobseeker())
	}

	first := Rank(spec, requirementID, pool, now)
	for run := 0; run < 5; run++ {
		again := Rank(spec, requirementID, pool, now)
		for i := range first {
			if first[i].CandidateID != again[i].CandidateID {
				t.Fatalf("run %d: order changed at %d", run, i)
			}
		}
	}
	// Equal scores and profiles fall through to id order.
	for i := 1; i < len(first); i++ {
		if first[i-1].CandidateID.String() >= first[i].CandidateID.String() {
			t.Fatalf("expected ascending id tie-break")
		}
	}
}
