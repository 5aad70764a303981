package ats

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Breakdown component names and their maxima as used by the scoring
// provider. The maxima sum to 93, not 100; the remaining headroom is
// reserved pending product confirmation and must not be redistributed.
const (
	ComponentSkills         = "skills"
	ComponentLocation       = "location"
	ComponentExperience     = "experience"
	ComponentSalary         = "salary"
	ComponentEducation      = "education"
	ComponentProfileQuality = "profile_quality"
)

var ComponentMaxima = map[string]int{
	ComponentSkills:         35,
	ComponentLocation:       15,
	ComponentExperience:     15,
	ComponentSalary:         10,
	ComponentEducation:      10,
	ComponentProfileQuality: 8,
}

// CandidateContext is the candidate-side input to a scoring call.
type CandidateContext struct {
	ID                 uuid.UUID `json:"id"`
	Headline           string    `json:"headline,omitempty"`
	Summary            string    `json:"summary,omitempty"`
	RoleTitle          string    `json:"role_title,omitempty"`
	ExperienceYears    float64   `json:"experience_years"`
	CurrentSalary      *float64  `json:"current_salary,omitempty"`
	Skills             []string  `json:"skills,omitempty"`
	KeySkills          []string  `json:"key_skills,omitempty"`
	CurrentLocation    string    `json:"current_location,omitempty"`
	PreferredLocations []string  `json:"preferred_locations,omitempty"`
	WillingToRelocate  bool      `json:"willing_to_relocate"`
	NoticePeriodDays   *int      `json:"notice_period_days,omitempty"`
	EducationLevel     string    `json:"education_level,omitempty"`
	ProfileCompletion  int       `json:"profile_completion"`
}

// RequirementContext is the requirement-side input to a scoring call.
type RequirementContext struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	RequiredSkills      []string  `json:"required_skills,omitempty"`
	PreferredSkills     []string  `json:"preferred_skills,omitempty"`
	ExperienceMin       *float64  `json:"experience_min,omitempty"`
	ExperienceMax       *float64  `json:"experience_max,omitempty"`
	SalaryMin           *float64  `json:"salary_min,omitempty"`
	SalaryMax           *float64  `json:"salary_max,omitempty"`
	Locations           []string  `json:"locations,omitempty"`
	NoticePeriodMaxDays *int      `json:"notice_period_max_days,omitempty"`
	Education           string    `json:"education,omitempty"`
}

// Result is one completed scoring call.
type Result struct {
	Score     int
	Breakdown map[string]int
}

// Scorer is the external compatibility-scoring capability. Implementations
// must be idempotent within provider nondeterminism tolerance: a retry must
// not be assumed to change the substantive result.
type Scorer interface {
	Score(ctx context.Context, cand CandidateContext, req RequirementContext) (Result, error)
}

// Error taxonomy the scheduler's retry policy depends on. Provider failures
// wrap exactly one of these sentinels.
var (
	// ErrTransientProvider marks timeouts, rate limiting and upstream 5xx.
	ErrTransientProvider = errors.New("transient provider error")
	// ErrPermanentProvider marks malformed context or rejected content.
	ErrPermanentProvider = errors.New("permanent provider error")
	// ErrValidation marks unknown candidate or requirement input, detected
	// before any scheduling happens.
	ErrValidation = errors.New("validation error")
)

// Transient wraps err as a retryable provider failure.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransientProvider, err)
}

// Permanent wraps err as a non-retryable provider failure.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanentProvider, err)
}

// IsTransient reports whether err should be retried. Deadline expiry on the
// per-call context counts as transient; cancellation does not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ErrTransientProvider) || errors.Is(err, context.DeadlineExceeded)
}

// ClampBreakdown bounds every known component to its maximum and drops
// unknown component names.
func ClampBreakdown(raw map[string]int) map[string]int {
	out := make(map[string]int, len(ComponentMaxima))
	for name, max := range ComponentMaxima {
		v, ok := raw[name]
		if !ok {
			continue
		}
		if v < 0 {
			v = 0
		}
		if v > max {
			v = max
		}
		out[name] = v
	}
	return out
}
