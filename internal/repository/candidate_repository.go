package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/database"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/candidate"

	"github.com/google/uuid"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository interface {
	// ListActive returns one snapshot of the active jobseeker pool. A
	// matching run calls this exactly once so the whole run observes a
	// single population.
	ListActive(ctx context.Context) ([]candidate.Candidate, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]candidate.Candidate, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `c.id, COALESCE(c.role, ''), COALESCE(c.is_active, FALSE),
	 COALESCE(c.headline, ''), COALESCE(c.summary, ''), COALESCE(c.role_title, ''),
	 COALESCE(c.experience_years, 0), c.current_salary,
	 COALESCE(c.skills, ''), COALESCE(c.key_skills, ''),
	 COALESCE(c.current_location, ''), COALESCE(c.preferred_locations, ''),
	 COALESCE(c.willing_to_relocate, FALSE), c.notice_period_days,
	 COALESCE(c.education_level, ''), COALESCE(c.profile_completion, 0),
	 c.last_profile_update, COALESCE(c.email_verified, FALSE), COALESCE(c.phone_verified, FALSE)`

func (r *PostgresCandidateRepository) ListActive(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates c
		 WHERE c.is_active = TRUE AND c.role = 'jobseeker'
		 ORDER BY c.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *PostgresCandidateRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]candidate.Candidate, error) {
	if len(ids) == 0 {
		return []candidate.Candidate{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates c
		 WHERE c.id = ANY($1)
		 ORDER BY c.id ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows database.Rows) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		var (
			c           candidate.Candidate
			salary      sql.NullFloat64
			notice      sql.NullInt64
			skills      string
			keySkills   string
			prefLocs    string
			lastUpdated sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.Role, &c.Active,
			&c.Headline, &c.Summary, &c.RoleTitle,
			&c.ExperienceYears, &salary,
			&skills, &keySkills,
			&c.CurrentLocation, &prefLocs,
			&c.WillingToRelocate, &notice,
			&c.EducationLevel, &c.ProfileCompletion,
			&lastUpdated, &c.EmailVerified, &c.PhoneVerified,
		); err != nil {
			return nil, err
		}

		if salary.Valid {
			v := salary.Float64
			c.CurrentSalary = &v
		}
		if notice.Valid {
			v := int(notice.Int64)
			c.NoticePeriodDays = &v
		}
		if lastUpdated.Valid {
			c.LastProfileUpdate = lastUpdated.Time
		}
		c.Skills = splitList(skills)
		c.KeySkills = splitList(keySkills)
		c.PreferredLocations = splitList(prefLocs)

		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// splitList parses the comma-separated free-text columns jobseekers fill in.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
