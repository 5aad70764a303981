package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/ats"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/candidate"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/criteria"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/domain/requirement"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/repository"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/scheduler"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrScoringRunActive = errors.New("a scoring run is already active for this requirement")

const runLockTTL = 10 * time.Minute

// RunLock arbitrates one scoring run per requirement at a time.
type RunLock interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	InvalidateRequirement(ctx context.Context, requirementID string) error
}

type ScoringUsecase interface {
	// StreamScores runs one scoring pass over the given candidates, invoking
	// onProgress per terminal candidate, and returns the run report. Zero
	// fields in opts fall back to the configured defaults.
	StreamScores(ctx context.Context, requirementID uuid.UUID, candidateIDs []uuid.UUID, opts scheduler.Options, onProgress func(scheduler.ProgressEvent)) (scheduler.RunReport, error)
	// ListScores returns the persisted scores for a requirement, best first.
	ListScores(ctx context.Context, requirementID uuid.UUID) ([]repository.ATSScoreRecord, error)
}

type Scoring struct {
	requirements repository.RequirementRepository
	candidates   repository.CandidateRepository
	scores       repository.ATSScoreRepository
	scorer       ats.Scorer
	baseOpts     scheduler.Options
	lock         RunLock
	logger       *zap.Logger
}

func NewScoringUsecase(
	requirements repository.RequirementRepository,
	candidates repository.CandidateRepository,
	scores repository.ATSScoreRepository,
	scorer ats.Scorer,
	baseOpts scheduler.Options,
	lock RunLock,
	logger *zap.Logger,
) *Scoring {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scoring{
		requirements: requirements,
		candidates:   candidates,
		scores:       scores,
		scorer:       scorer,
		baseOpts:     baseOpts,
		lock:         lock,
		logger:       logger,
	}
}

func (u *Scoring) StreamScores(ctx context.Context, requirementID uuid.UUID, candidateIDs []uuid.UUID, opts scheduler.Options, onProgress func(scheduler.ProgressEvent)) (scheduler.RunReport, error) {
	if len(candidateIDs) == 0 {
		return scheduler.RunReport{}, ErrInvalidInput
	}

	req, spec, err := u.loadRequirement(ctx, requirementID)
	if err != nil {
		return scheduler.RunReport{}, err
	}

	cands, err := u.findAll(ctx, candidateIDs)
	if err != nil {
		return scheduler.RunReport{}, err
	}
	byID := make(map[uuid.UUID]candidate.Candidate, len(cands))
	for _, c := range cands {
		byID[c.ID] = c
	}

	lockKey := "score:lock:" + requirementID.String()
	lockVal := uuid.NewString()
	if u.lock != nil {
		ok, err := u.lock.SetIfNotExists(ctx, lockKey, lockVal, runLockTTL)
		if err != nil {
			u.logger.Error("run lock acquisition failed", zap.Error(err))
			return scheduler.RunReport{}, ErrInternal
		}
		if !ok {
			return scheduler.RunReport{}, ErrScoringRunActive
		}
		defer func() {
			// The lock outlives the caller's context by design: the run may
			// have been cancelled and still needs releasing.
			relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			_ = u.lock.Delete(relCtx, lockKey)
		}()
	}

	reqCtx := buildRequirementContext(req, spec)
	score := func(ctx context.Context, candidateID uuid.UUID) (ats.Result, error) {
		c, ok := byID[candidateID]
		if !ok {
			return ats.Result{}, fmt.Errorf("%w: %s", ats.ErrValidation, candidateID)
		}

		result, err := u.scorer.Score(ctx, buildCandidateContext(c), reqCtx)
		if err != nil {
			return ats.Result{}, err
		}

		// A score that cannot be persisted is a failed job, not a silent
		// success.
		if err := u.scores.Upsert(ctx, repository.ATSScoreRecord{
			CandidateID:   candidateID,
			RequirementID: requirementID,
			Score:         result.Score,
			Breakdown:     result.Breakdown,
		}); err != nil {
			return ats.Result{}, fmt.Errorf("persist score: %w", err)
		}
		return result, nil
	}

	pool := scheduler.New(mergeOptions(u.baseOpts, opts), u.logger)
	report := pool.Run(ctx, requirementID, candidateIDs, score, onProgress)

	if u.lock != nil {
		invCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := u.lock.InvalidateRequirement(invCtx, requirementID.String()); err != nil {
			u.logger.Warn("match cache invalidation failed", zap.Error(err))
		}
	}

	return report, nil
}

func (u *Scoring) ListScores(ctx context.Context, requirementID uuid.UUID) ([]repository.ATSScoreRecord, error) {
	if _, _, err := u.loadRequirement(ctx, requirementID); err != nil {
		return nil, err
	}

	recs, err := u.scores.ListByRequirement(ctx, requirementID)
	if err != nil {
		u.logger.Error("score listing failed", zap.Error(err))
		return nil, ErrInternal
	}
	return recs, nil
}

func (u *Scoring) loadRequirement(ctx context.Context, requirementID uuid.UUID) (requirement.Requirement, criteria.Spec, error) {
	if requirementID == uuid.Nil {
		return requirement.Requirement{}, criteria.Spec{}, ErrRequirementNotFound
	}

	req, err := u.requirements.FindByID(ctx, requirementID)
	if err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return requirement.Requirement{}, criteria.Spec{}, ErrRequirementNotFound
		}
		u.logger.Error("requirement lookup failed", zap.Error(err))
		return requirement.Requirement{}, criteria.Spec{}, ErrInternal
	}

	spec, err := criteria.Extract(req.Metadata)
	if err != nil {
		return requirement.Requirement{}, criteria.Spec{}, fmt.Errorf("%w: %w", ErrInvalidCriteria, err)
	}
	return req, spec, nil
}

func (u *Scoring) findAll(ctx context.Context, candidateIDs []uuid.UUID) ([]candidate.Candidate, error) {
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

// mergeOptions lays per-run overrides over the configured defaults. Zero
// fields keep the default.
func mergeOptions(base, override scheduler.Options) scheduler.Options {
	out := base
	if override.MaxConcurrent > 0 {
		out.MaxConcurrent = override.MaxConcurrent
	}
	if override.MaxRetries > 0 {
		out.MaxRetries = override.MaxRetries
	}
	if override.MinDelay > 0 {
		out.MinDelay = override.MinDelay
	}
	if override.BatchCooldown > 0 {
		out.BatchCooldown = override.BatchCooldown
	}
	if override.BackoffBase > 0 {
		out.BackoffBase = override.BackoffBase
	}
	if override.PerCallTimeout > 0 {
		out.PerCallTimeout = override.PerCallTimeout
	}
	return out
}

func buildCandidateContext(c candidate.Candidate) ats.CandidateContext {
	return ats.CandidateContext{
		ID:                 c.ID,
		Headline:           c.Headline,
		Summary:            c.Summary,
		RoleTitle:          c.RoleTitle,
		ExperienceYears:    c.ExperienceYears,
		CurrentSalary:      c.CurrentSalary,
		Skills:             c.Skills,
		KeySkills:          c.KeySkills,
		CurrentLocation:    c.CurrentLocation,
		PreferredLocations: c.PreferredLocations,
		WillingToRelocate:  c.WillingToRelocate,
		NoticePeriodDays:   c.NoticePeriodDays,
		EducationLevel:     c.EducationLevel,
		ProfileCompletion:  c.ProfileCompletion,
	}
}

func buildRequirementContext(req requirement.Requirement, spec criteria.Spec) ats.RequirementContext {
	out := ats.RequirementContext{
		ID:                  req.ID,
		Title:               req.Title,
		Description:         req.Description,
		RequiredSkills:      spec.RequiredSkills,
		PreferredSkills:     spec.PreferredSkills,
		Locations:           spec.Locations,
		NoticePeriodMaxDays: spec.NoticePeriodMaxDays,
		Education:           spec.Education,
	}
	if spec.Experience != nil {
		min, max := spec.Experience.Min, spec.Experience.Max
		out.ExperienceMin, out.ExperienceMax = &min, &max
	}
	if spec.Salary != nil {
		min, max := spec.Salary.Min, spec.Salary.Max
		out.SalaryMin, out.SalaryMax = &min, &max
	}
	return out
}
