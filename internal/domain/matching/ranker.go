package matching

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/candidate"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/criteria"

	"github.com/google/uuid"
)

// MatchResult pairs a matched candidate with their deterministic relevance
// score and the soft categories they satisfied by value.
type MatchResult struct {
	CandidateID     uuid.UUID
	RequirementID   uuid.UUID
	RelevanceScore  int
	MatchedCriteria []string
}

// Relevance weight split. Skill overlap dominates.
const (
	weightSkills     = 50.0
	weightExperience = 20.0
	weightSalary     = 15.0
	weightRecency    = 15.0
)

// Rank scores candidates against the spec and returns results ordered by
// relevance descending. Ties break on profile completion, then most recent
// profile update, then candidate ID, so the order is stable for a fixed
// snapshot. Pure computation, no I/O.
func Rank(spec criteria.Spec, requirementID uuid.UUID, pool []candidate.Candidate, now time.Time) []MatchResult {
	results := make([]MatchResult, 0, len(pool))
	for _, c := range pool {
		results = append(results, MatchResult{
			CandidateID:     c.ID,
			RequirementID:   requirementID,
			RelevanceScore:  RelevanceScore(spec, c, now),
			MatchedCriteria: MatchedCriteria(spec, c),
		})
	}

	byID := make(map[uuid.UUID]candidate.Candidate, len(pool))
	for _, c := range pool {
		byID[c.ID] = c
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		ci, cj := byID[results[i].CandidateID], byID[results[j].CandidateID]
		if ci.ProfileCompletion != cj.ProfileCompletion {
			return ci.ProfileCompletion > cj.ProfileCompletion
		}
		if !ci.LastProfileUpdate.Equal(cj.LastProfileUpdate) {
			return ci.LastProfileUpdate.After(cj.LastProfileUpdate)
		}
		return strings.Compare(ci.ID.String(), cj.ID.String()) < 0
	})

	return results
}

// RelevanceScore computes the 0-100 weighted composite: skill overlap,
// experience proximity, salary fit and profile recency. Adding one more
// overlapping skill never lowers the result.
func RelevanceScore(spec criteria.Spec, c candidate.Candidate, now time.Time) int {
	total := skillOverlap(spec, c)*weightSkills +
		experienceProximity(spec, c)*weightExperience +
		salaryFit(spec, c)*weightSalary +
		profileRecency(c, now)*weightRecency

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// skillOverlap is the fraction of requested skills (required and preferred)
// the candidate matches. With no skills requested every candidate gets full
// credit, leaving the other components to differentiate.
func skillOverlap(spec criteria.Spec, c candidate.Candidate) float64 {
	requested := make([]string, 0, len(spec.RequiredSkills)+len(spec.PreferredSkills))
	requested = append(requested, spec.RequiredSkills...)
	requested = append(requested, spec.PreferredSkills...)
	if len(requested) == 0 {
		return 1
	}

	fields := c.SearchableFields()
	matched := 0
	for _, skill := range requested {
		needle := strings.ToLower(strings.TrimSpace(skill))
		if needle == "" {
			continue
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), needle) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(requested))
}

func experienceProximity(spec criteria.Spec, c candidate.Candidate) float64 {
	if spec.Experience == nil {
		return 1
	}
	years := c.ExperienceYears
	r := *spec.Experience
	if r.Contains(years) {
		return 1
	}
	if years < r.Min {
		if r.Min <= 0 {
			return 1
		}
		return clamp01(years / r.Min)
	}
	if years <= 0 {
		return 0
	}
	return clamp01(r.Max / years)
}

func salaryFit(spec criteria.Spec, c candidate.Candidate) float64 {
	if spec.Salary == nil {
		return 1
	}
	if c.CurrentSalary == nil {
		// Undeclared salary earns neutral credit rather than zero.
		return 0.5
	}
	r := *spec.Salary
	sal := *c.CurrentSalary
	if r.Contains(sal) {
		return 1
	}
	if sal < r.Min {
		if r.Min <= 0 {
			return 1
		}
		return clamp01(sal / r.Min)
	}
	if sal <= 0 {
		return 0
	}
	return clamp01(r.Max / sal)
}

func profileRecency(c candidate.Candidate, now time.Time) float64 {
	if c.LastProfileUpdate.IsZero() {
		return 0
	}
	age := now.Sub(c.LastProfileUpdate)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 7*24*time.Hour:
		return 1
	case age <= 30*24*time.Hour:
		return 0.8
	case age <= 90*24*time.Hour:
		return 0.5
	case age <= 180*24*time.Hour:
		return 0.3
	case age <= 365*24*time.Hour:
		return 0.1
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
