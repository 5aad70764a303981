package criteria

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
)

// FloatRange is a closed numeric interval. A nil *FloatRange on Spec means
// the criterion is unset; a non-nil range always has both bounds concrete.
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Spec is the canonical filter specification produced by Extract. Every
// field is either a concrete range, a concrete set, or explicitly unset
// (nil pointer / empty slice / empty string), never an ambiguous mix.
type Spec struct {
	Experience *FloatRange `json:"experience,omitempty"`
	Salary     *FloatRange `json:"salary,omitempty"`

	RequiredSkills  []string `json:"required_skills,omitempty"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`

	Locations []string `json:"locations,omitempty"`

	// NoticePeriodMaxDays is the employer's joining preference expressed as
	// a day ceiling ("Immediately" = 0). Nil when no preference was given.
	NoticePeriodMaxDays *int `json:"notice_period_max_days,omitempty"`

	Education string `json:"education,omitempty"`
}

// IsZero reports whether no usable criterion is set at all.
func (s Spec) IsZero() bool {
	return s.Experience == nil &&
		s.Salary == nil &&
		len(s.RequiredSkills) == 0 &&
		len(s.PreferredSkills) == 0 &&
		len(s.Locations) == 0 &&
		s.NoticePeriodMaxDays == nil &&
		strings.TrimSpace(s.Education) == ""
}

// Hash returns a stable digest of the spec, used as a cache key component so
// that edited criteria never serve a stale match set.
func (s Spec) Hash() string {
	b, err := json.Marshal(s)
	if err != nil {
		return "unhashable"
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%x", sum[:8])
}
