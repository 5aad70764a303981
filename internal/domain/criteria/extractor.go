package criteria

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCriteria marks structurally invalid requirement metadata, such
// as a non-numeric range bound. Absent keys are never an error.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// Unbounded-end defaults applied when only the minimum of a range is given.
const (
	DefaultMaxExperienceYears = 50
	DefaultMaxSalary          = 200
)

// Aliased metadata keys, newest first. Older clients of the portal wrote the
// legacy names; both may coexist on one requirement and the newer key wins.
var (
	experienceMinKeys = []string{"experienceMin", "workExperienceMin"}
	experienceMaxKeys = []string{"experienceMax", "workExperienceMax"}
	salaryMinKeys     = []string{"salaryMin", "expectedSalaryMin"}
	salaryMaxKeys     = []string{"salaryMax", "expectedSalaryMax"}
	locationKeys      = []string{"candidateLocations", "locations"}
	noticePeriodKeys  = []string{"noticePeriod", "joiningAvailability"}
	educationKeys     = []string{"educationLevel", "qualification"}
	requiredSkillKeys = []string{"requiredSkills", "skills"}
	preferredSkillKey = []string{"preferredSkills", "niceToHaveSkills"}
)

// Extract normalizes raw requirement metadata into a canonical Spec. It is a
// pure function: aliasing is resolved by precedence, unbounded range ends get
// their defaults, and everything left unspecified comes out explicitly unset.
func Extract(meta map[string]any) (Spec, error) {
	spec := Spec{}
	if len(meta) == 0 {
		return spec, nil
	}

	expMin, expMinSet, err := lookupNumber(meta, experienceMinKeys)
	if err != nil {
		return Spec{}, err
	}
	expMax, expMaxSet, err := lookupNumber(meta, experienceMaxKeys)
	if err != nil {
		return Spec{}, err
	}
	if expMinSet || expMaxSet {
		if !expMaxSet {
			expMax = DefaultMaxExperienceYears
		}
		if !expMinSet {
			expMin = 0
		}
		if expMin < 0 || expMax < expMin {
			return Spec{}, fmt.Errorf("%w: experience range [%v, %v]", ErrInvalidCriteria, expMin, expMax)
		}
		spec.Experience = &FloatRange{Min: expMin, Max: expMax}
	}

	salMin, salMinSet, err := lookupNumber(meta, salaryMinKeys)
	if err != nil {
		return Spec{}, err
	}
	salMax, salMaxSet, err := lookupNumber(meta, salaryMaxKeys)
	if err != nil {
		return Spec{}, err
	}
	if salMinSet || salMaxSet {
		if !salMaxSet {
			salMax = DefaultMaxSalary
		}
		if !salMinSet {
			salMin = 0
		}
		if salMin < 0 || salMax < salMin {
			return Spec{}, fmt.Errorf("%w: salary range [%v, %v]", ErrInvalidCriteria, salMin, salMax)
		}
		spec.Salary = &FloatRange{Min: salMin, Max: salMax}
	}

	spec.RequiredSkills = lookupStringSet(meta, requiredSkillKeys)
	spec.PreferredSkills = lookupStringSet(meta, preferredSkillKey)
	spec.Locations = lookupStringSet(meta, locationKeys)

	if raw, ok := lookupString(meta, noticePeriodKeys); ok {
		days, err := parseNoticePeriod(raw)
		if err != nil {
			return Spec{}, err
		}
		spec.NoticePeriodMaxDays = &days
	}

	if raw, ok := lookupString(meta, educationKeys); ok {
		spec.Education = raw
	}

	return spec, nil
}

// lookupNumber resolves the first present key and coerces its value to a
// float. Present-but-non-numeric values are a structural error.
func lookupNumber(meta map[string]any, keys []string) (float64, bool, error) {
	for _, key := range keys {
		raw, ok := meta[key]
		if !ok || raw == nil {
			continue
		}
		v, err := coerceNumber(raw)
		if err != nil {
			return 0, false, fmt.Errorf("%w: key %q: %v", ErrInvalidCriteria, key, err)
		}
		return v, true, nil
	}
	return 0, false, nil
}

func coerceNumber(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("non-finite number")
		}
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty numeric string")
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric value %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}

func lookupString(meta map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		raw, ok := meta[key]
		if !ok || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

// lookupStringSet accepts either a list of strings or a comma-separated
// string, deduplicated case-insensitively with original casing preserved.
func lookupStringSet(meta map[string]any, keys []string) []string {
	for _, key := range keys {
		raw, ok := meta[key]
		if !ok || raw == nil {
			continue
		}

		var parts []string
		switch v := raw.(type) {
		case []string:
			parts = v
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					parts = append(parts, s)
				}
			}
		case string:
			parts = strings.Split(v, ",")
		default:
			continue
		}

		seen := make(map[string]bool, len(parts))
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			lower := strings.ToLower(p)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			out = append(out, p)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// parseNoticePeriod maps a joining preference to a day ceiling.
func parseNoticePeriod(raw string) (int, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	switch norm {
	case "immediately", "immediate":
		return 0, nil
	case "15 days":
		return 15, nil
	case "30 days", "1 month":
		return 30, nil
	case "60 days", "2 months":
		return 60, nil
	case "90 days", "3 months":
		return 90, nil
	}

	fields := strings.Fields(norm)
	if len(fields) == 2 {
		n, err := strconv.Atoi(fields[0])
		if err == nil && n >= 0 {
			switch fields[1] {
			case "day", "days":
				return n, nil
			case "week", "weeks":
				return n * 7, nil
			case "month", "months":
				return n * 30, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: unrecognized notice period %q", ErrInvalidCriteria, raw)
}
