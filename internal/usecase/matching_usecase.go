package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/candidate"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/criteria"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/matching"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRequirementNotFound = errors.New("requirement not found")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrInvalidCriteria     = errors.New("invalid filter criteria")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
)

type MatchingUsecase interface {
	// Match selects the eligible candidate pool for a requirement.
	Match(ctx context.Context, requirementID uuid.UUID) ([]uuid.UUID, error)
	// Rank scores the given candidates against the requirement's criteria.
	Rank(ctx context.Context, requirementID uuid.UUID, candidateIDs []uuid.UUID) ([]matching.MatchResult, error)
}

// MatchCache is the slice of the redis cache the matcher needs.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Matching struct {
	requirements repository.RequirementRepository
	candidates   repository.CandidateRepository
	cache        MatchCache
	logger       *zap.Logger
	now          func() time.Time
}

func NewMatchingUsecase(requirements repository.RequirementRepository, candidates repository.CandidateRepository, cache MatchCache, logger *zap.Logger) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		requirements: requirements,
		candidates:   candidates,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
	}
}

func (u *Matching) Match(ctx context.Context, requirementID uuid.UUID) ([]uuid.UUID, error) {
	spec, err := u.loadSpec(ctx, requirementID)
	if err != nil {
		return nil, err
	}

	cacheKey := matchCacheKey(requirementID, spec)
	if u.cache != nil {
		var cached []uuid.UUID
		if ok, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	pool, err := u.candidates.ListActive(ctx)
	if err != nil {
		u.logger.Error("candidate snapshot query failed", zap.Error(err))
		return nil, ErrInternal
	}

	ids := matching.MatchPool(spec, pool)

	u.logger.Info("match computed",
		zap.String("requirement_id", requirementID.String()),
		zap.Int("pool_size", len(pool)),
		zap.Int("matched", len(ids)),
		zap.Bool("criteria_unset", spec.IsZero()),
	)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, ids, 0)
	}

	return ids, nil
}

func (u *Matching) Rank(ctx context.Context, requirementID uuid.UUID, candidateIDs []uuid.UUID) ([]matching.MatchResult, error) {
	if len(candidateIDs) == 0 {
		return nil, ErrInvalidInput
	}

	spec, err := u.loadSpec(ctx, requirementID)
	if err != nil {
		return nil, err
	}

	cands, err := u.findAll(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	return matching.Rank(spec, requirementID, cands, u.now()), nil
}

func (u *Matching) loadSpec(ctx context.Context, requirementID uuid.UUID) (criteria.Spec, error) {
	if requirementID == uuid.Nil {
		return criteria.Spec{}, ErrRequirementNotFound
	}

	req, err := u.requirements.FindByID(ctx, requirementID)
	if err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return criteria.Spec{}, ErrRequirementNotFound
		}
		u.logger.Error("requirement lookup failed", zap.Error(err))
		return criteria.Spec{}, ErrInternal
	}

	spec, err := criteria.Extract(req.Metadata)
	if err != nil {
		return criteria.Spec{}, fmt.Errorf("%w: %w", ErrInvalidCriteria, err)
	}
	return spec, nil
}

func (u *Matching) findAll(ctx context.Context, candidateIDs []uuid.UUID) ([]candidate.Candidate, error) {
	cands, err := u.candidates.FindByIDs(ctx, candidateIDs)
	if err != nil {
		u.logger.Error("candidate lookup failed", zap.Error(err))
		return nil, ErrInternal
	}

	found := make(map[uuid.UUID]bool, len(cands))
	for _, c := range cands {
		found[c.ID] = true
	}
	for _, id := range candidateIDs {
		if !found[id] {
			return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, id)
		}
	}
	return cands, nil
}

func matchCacheKey(requirementID uuid.UUID, spec criteria.Spec) string {
	return fmt.Sprintf("match:%s:%s", requirementID, spec.Hash())
}
