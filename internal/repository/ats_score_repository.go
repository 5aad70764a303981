package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/database"

	"github.com/google/uuid"
)

// ATSScoreRecord is the persisted outcome of one scoring call, keyed by
// (candidate_id, requirement_id). Recomputation overwrites: the scores are
// advisory, last write wins.
type ATSScoreRecord struct {
	CandidateID   uuid.UUID
	RequirementID uuid.UUID
	Score         int
	Breakdown     map[string]int
	CalculatedAt  time.Time
}

type ATSScoreRepository interface {
	Upsert(ctx context.Context, rec ATSScoreRecord) error
	ListByRequirement(ctx context.Context, requirementID uuid.UUID) ([]ATSScoreRecord, error)
}

type PostgresATSScoreRepository struct {
	db database.DB
}

func NewPostgresATSScoreRepository(db database.DB) *PostgresATSScoreRepository {
	return &PostgresATSScoreRepository{db: db}
}

func (r *PostgresATSScoreRepository) Upsert(ctx context.Context, rec ATSScoreRecord) error {
	breakdown, err := json.Marshal(rec.Breakdown)
	if err != nil {
		return err
	}

	calculatedAt := rec.CalculatedAt
	if calculatedAt.IsZero() {
		calculatedAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO ats_scores (candidate_id, requirement_id, score, breakdown, calculated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (candidate_id, requirement_id)
		 DO UPDATE SET score = EXCLUDED.score, breakdown = EXCLUDED.breakdown, calculated_at = EXCLUDED.calculated_at`,
		rec.CandidateID, rec.RequirementID, rec.Score, breakdown, calculatedAt,
	)
	return err
}

func (r *PostgresATSScoreRepository) ListByRequirement(ctx context.Context, requirementID uuid.UUID) ([]ATSScoreRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT candidate_id, requirement_id, score, COALESCE(breakdown, '{}'::jsonb), calculated_at
		 FROM ats_scores
		 WHERE requirement_id = $1
		 ORDER BY score DESC, candidate_id ASC`,
		requirementID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ATSScoreRecord, 0)
	for rows.Next() {
		var (
			rec ATSScoreRecord
			raw []byte
		)
		if err := rows.Scan(&rec.CandidateID, &rec.RequirementID, &rec.Score, &raw, &rec.CalculatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &rec.Breakdown); err != nil {
				return nil, err
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
