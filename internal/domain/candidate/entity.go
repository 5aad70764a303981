package candidate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const RoleJobseeker = "jobseeker"

// Candidate is the matcher's view of a jobseeker profile. Nullable profile
// attributes are pointers: nil means the jobseeker never filled the field in,
// which the soft filters treat differently from a zero value.
type Candidate struct {
	ID     uuid.UUID
	Role   string
	Active bool

	Headline  string
	Summary   string
	RoleTitle string

	ExperienceYears float64
	CurrentSalary   *float64
	Skills          []string
	KeySkills       []string

	CurrentLocation    string
	PreferredLocations []string
	WillingToRelocate  bool

	NoticePeriodDays *int
	EducationLevel   string

	ProfileCompletion int
	LastProfileUpdate time.Time
	EmailVerified     bool
	PhoneVerified     bool
}

func (c Candidate) IsJobseeker() bool {
	return strings.EqualFold(strings.TrimSpace(c.Role), RoleJobseeker)
}

// SearchableFields returns every free-text field the skill filter may match
// against: skills, key skills, headline, summary and role title.
func (c Candidate) SearchableFields() []string {
	fields := make([]string, 0, len(c.Skills)+len(c.KeySkills)+3)
	fields = append(fields, c.Skills...)
	fields = append(fields, c.KeySkills...)
	for _, f := range []string{c.Headline, c.Summary, c.RoleTitle} {
		if strings.TrimSpace(f) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// HasLocationInfo reports whether the jobseeker declared any location at all.
func (c Candidate) HasLocationInfo() bool {
	if strings.TrimSpace(c.CurrentLocation) != "" {
		return true
	}
	for _, l := range c.PreferredLocations {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
