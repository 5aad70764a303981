package matching

import (
	"sort"
	"strings"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/candidate"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/criteria"

	"github.com/google/uuid"
)

// Soft-filter category names reported in MatchResult.MatchedCriteria.
const (
	CriterionSalary       = "salary"
	CriterionLocation     = "location"
	CriterionNoticePeriod = "notice_period"
	CriterionEducation    = "education"
)

// MatchPool evaluates the canonical spec against a candidate-pool snapshot
// and returns the eligible candidate IDs, sorted ascending so repeated calls
// over the same snapshot yield an identical set in identical order.
//
// Hard filters (AND): jobseeker role, active account, experience within range
// when set, and, when required skills are set, at least one requested skill
// matching at least one searchable field (case-insensitive substring, OR
// across skills and fields).
//
// Soft filters (salary, location, notice period, education) are AND'd onto
// the hard filters, but within each soft category an unset candidate
// attribute passes. A jobseeker is never excluded for a field they never
// filled in. The notice-period category never excludes at all: a declared
// notice period counts as available whatever the employer's joining
// preference says; closeness only affects ranking. (Treating it as a hard
// filter once dropped fully qualified candidates over a 22-day notice
// against an "Immediately" preference.)
//
// A spec with no usable criteria matches the entire active pool rather than
// nobody.
func MatchPool(spec criteria.Spec, pool []candidate.Candidate) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(pool))
	for _, c := range pool {
		if Matches(spec, c) {
			out = append(out, c.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].String(), out[j].String()) < 0
	})
	return out
}

// Matches reports whether a single candidate passes every hard and soft
// filter of the spec.
func Matches(spec criteria.Spec, c candidate.Candidate) bool {
	if !c.IsJobseeker() || !c.Active {
		return false
	}

	if spec.Experience != nil && !spec.Experience.Contains(c.ExperienceYears) {
		return false
	}

	if len(spec.RequiredSkills) > 0 && !anySkillMatches(spec.RequiredSkills, c.SearchableFields()) {
		return false
	}

	if !salaryPasses(spec, c) {
		return false
	}
	if !locationPasses(spec, c) {
		return false
	}
	if !educationPasses(spec, c) {
		return false
	}

	return true
}

// MatchedCriteria returns the soft categories a candidate actually satisfies
// by value, as opposed to passing through on an unset attribute.
func MatchedCriteria(spec criteria.Spec, c candidate.Candidate) []string {
	out := make([]string, 0, 4)
	if spec.Salary != nil && c.CurrentSalary != nil && spec.Salary.Contains(*c.CurrentSalary) {
		out = append(out, CriterionSalary)
	}
	if len(spec.Locations) > 0 && c.HasLocationInfo() && locationMatches(spec.Locations, c) {
		out = append(out, CriterionLocation)
	}
	if spec.NoticePeriodMaxDays != nil && c.NoticePeriodDays != nil && *c.NoticePeriodDays <= *spec.NoticePeriodMaxDays {
		out = append(out, CriterionNoticePeriod)
	}
	if spec.Education != "" && c.EducationLevel != "" && educationRank(c.EducationLevel) >= educationRank(spec.Education) {
		out = append(out, CriterionEducation)
	}
	return out
}

func anySkillMatches(skills []string, fields []string) bool {
	for _, skill := range skills {
		needle := strings.ToLower(strings.TrimSpace(skill))
		if needle == "" {
			continue
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), needle) {
				return true
			}
		}
	}
	return false
}

func salaryPasses(spec criteria.Spec, c candidate.Candidate) bool {
	if spec.Salary == nil || c.CurrentSalary == nil {
		return true
	}
	return spec.Salary.Contains(*c.CurrentSalary)
}

func locationPasses(spec criteria.Spec, c candidate.Candidate) bool {
	if len(spec.Locations) == 0 || !c.HasLocationInfo() {
		return true
	}
	if c.WillingToRelocate {
		return true
	}
	return locationMatches(spec.Locations, c)
}

func locationMatches(wanted []string, c candidate.Candidate) bool {
	locs := make([]string, 0, len(c.PreferredLocations)+1)
	if strings.TrimSpace(c.CurrentLocation) != "" {
		locs = append(locs, c.CurrentLocation)
	}
	locs = append(locs, c.PreferredLocations...)

	for _, w := range wanted {
		needle := strings.ToLower(strings.TrimSpace(w))
		if needle == "" {
			continue
		}
		for _, l := range locs {
			have := strings.ToLower(strings.TrimSpace(l))
			if have == "" {
				continue
			}
			if strings.Contains(have, needle) || strings.Contains(needle, have) {
				return true
			}
		}
	}
	return false
}

func educationPasses(spec criteria.Spec, c candidate.Candidate) bool {
	if spec.Education == "" || strings.TrimSpace(c.EducationLevel) == "" {
		return true
	}
	want := educationRank(spec.Education)
	have := educationRank(c.EducationLevel)
	if want == 0 || have == 0 {
		// Unknown level names cannot be ordered; treat as a pass rather
		// than excluding on a vocabulary mismatch.
		return true
	}
	return have >= want
}

func educationRank(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high school", "secondary", "10th", "12th":
		return 1
	case "diploma", "associate":
		return 2
	case "bachelor", "bachelors", "bachelor's", "graduate", "undergraduate degree":
		return 3
	case "master", "masters", "master's", "postgraduate":
		return 4
	case "doctorate", "phd":
		return 5
	default:
		return 0
	}
}
