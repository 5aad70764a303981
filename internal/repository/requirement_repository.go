package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/database"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/requirement"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRequirementNotFound = errors.New("requirement not found")

type RequirementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (requirement.Requirement, error)
}

type PostgresRequirementRepository struct {
	db database.DB
}

func NewPostgresRequirementRepository(db database.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{db: db}
}

func (r *PostgresRequirementRepository) FindByID(ctx context.Context, id uuid.UUID) (requirement.Requirement, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, COALESCE(title, ''), COALESCE(description, ''), COALESCE(metadata, '{}'::jsonb), created_at
		 FROM requirements
		 WHERE id = $1`,
		id,
	)

	var (
		req     requirement.Requirement
		rawMeta []byte
	)
	if err := row.Scan(&req.ID, &req.Title, &req.Description, &rawMeta, &req.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return requirement.Requirement{}, ErrRequirementNotFound
		}
		return requirement.Requirement{}, err
	}

	if len(rawMeta) > 0 {
		if err := json.Unmarshal(rawMeta, &req.Metadata); err != nil {
			return requirement.Requirement{}, err
		}
	}

	return req, nil
}
