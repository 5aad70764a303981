package handler

import (
	"errors"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/dto"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/middleware"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/pkg/response"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/scheduler"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/usecase"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ScoreHandler struct {
	uc  usecase.ScoringUsecase
	hub *ws.Hub
}

func NewScoreHandler(uc usecase.ScoringUsecase, hub *ws.Hub) *ScoreHandler {
	return &ScoreHandler{uc: uc, hub: hub}
}

func (h *ScoreHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/requirements")
	grp.Post("/:requirement_id/scores", h.PostScores)
	grp.Get("/:requirement_id/scores", h.GetScores)
}

// PostScores runs one scoring pass synchronously. Progress streams over the
// websocket hub while the request is in flight; the response carries the
// final report.
func (h *ScoreHandler) PostScores(c fiber.Ctx) error {
	requirementID, err := uuid.Parse(c.Params("requirement_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid requirement id", nil, err)
	}

	var body dto.ScoreRunRequest
	if err := c.Bind().Body(&body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if len(body.CandidateIDs) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "candidate_ids is required", nil, nil)
	}

	report, err := h.uc.StreamScores(c.Context(), requirementID, body.CandidateIDs, schedulerOptions(body.Options), h.hub.NotifyScoreProgress)
	if err != nil {
		return mapScoringUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, scoreRunReport(report))
}

func (h *ScoreHandler) GetScores(c fiber.Ctx) error {
	requirementID, err := uuid.Parse(c.Params("requirement_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid requirement id", nil, err)
	}

	recs, err := h.uc.ListScores(c.Context(), requirementID)
	if err != nil {
		return mapScoringUsecaseError(err)
	}

	out := dto.ScoreListResponse{
		RequirementID: requirementID,
		Scores:        make([]dto.ScoreRecordResponse, 0, len(recs)),
	}
	for _, rec := range recs {
		out.Scores = append(out.Scores, dto.ScoreRecordResponse{
			CandidateID:  rec.CandidateID,
			Score:        rec.Score,
			Breakdown:    rec.Breakdown,
			CalculatedAt: rec.CalculatedAt,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func schedulerOptions(o *dto.ScoreRunOptions) scheduler.Options {
	if o == nil {
		return scheduler.Options{}
	}
	return scheduler.Options{
		MaxConcurrent:  o.MaxConcurrent,
		MaxRetries:     o.MaxRetries,
		MinDelay:       time.Duration(o.MinDelayMs) * time.Millisecond,
		BatchCooldown:  time.Duration(o.BatchCooldownMs) * time.Millisecond,
		BackoffBase:    time.Duration(o.BackoffBaseMs) * time.Millisecond,
		PerCallTimeout: time.Duration(o.PerCallTimeoutMs) * time.Millisecond,
	}
}

func scoreRunReport(report scheduler.RunReport) dto.ScoreRunReportResponse {
	out := dto.ScoreRunReportResponse{
		RunID:         report.RunID,
		RequirementID: report.RequirementID,
		Scores:        make([]dto.CandidateScoreResponse, 0, len(report.Successful)),
		Errors:        make([]dto.CandidateErrorResponse, 0, len(report.Errors)),
		Skipped:       report.Skipped,
		Total:         report.Total,
		Completed:     report.Completed,
		Failed:        report.Failed,
		StartedAt:     report.StartedAt,
		FinishedAt:    report.FinishedAt,
	}
	for _, s := range report.Successful {
		out.Scores = append(out.Scores, dto.CandidateScoreResponse{
			CandidateID: s.CandidateID,
			Score:       s.Score,
			Breakdown:   s.Breakdown,
			Attempts:    s.Attempts,
		})
	}
	for _, e := range report.Errors {
		msg := ""
		if e.Err != nil {
			msg = e.Err.Error()
		}
		out.Errors = append(out.Errors, dto.CandidateErrorResponse{
			CandidateID: e.CandidateID,
			Error:       msg,
			Attempts:    e.Attempts,
		})
	}
	return out
}

func mapScoringUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrRequirementNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Requirement not found", nil, err)
	case errors.Is(err, usecase.ErrCandidateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidCriteria):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid filter criteria", nil, err)
	case errors.Is(err, usecase.ErrScoringRunActive):
		return middleware.NewAppError(fiber.StatusConflict, "A scoring run is already active for this requirement", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
