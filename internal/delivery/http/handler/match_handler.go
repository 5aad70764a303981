package handler

import (
	"errors"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/dto"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/middleware"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/pkg/response"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/requirements")
	grp.Post("/:requirement_id/match", h.PostMatch)
	grp.Post("/:requirement_id/rank", h.PostRank)
}

func (h *MatchHandler) PostMatch(c fiber.Ctx) error {
	requirementID, err := uuid.Parse(c.Params("requirement_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid requirement id", nil, err)
	}

	ids, err := h.uc.Match(c.Context(), requirementID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchResponse{
		RequirementID: requirementID,
		CandidateIDs:  ids,
		Total:         len(ids),
	})
}

func (h *MatchHandler) PostRank(c fiber.Ctx) error {
	requirementID, err := uuid.Parse(c.Params("requirement_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid requirement id", nil, err)
	}

	var body dto.RankRequest
	if err := c.Bind().Body(&body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if len(body.CandidateIDs) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "candidate_ids is required", nil, nil)
	}

	results, err := h.uc.Rank(c.Context(), requirementID, body.CandidateIDs)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := dto.RankResponse{
		RequirementID: requirementID,
		Results:       make([]dto.RankedCandidateResponse, 0, len(results)),
	}
	for _, res := range results {
		out.Results = append(out.Results, dto.RankedCandidateResponse{
			CandidateID:     res.CandidateID,
			RelevanceScore:  res.RelevanceScore,
			MatchedCriteria: res.MatchedCriteria,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapMatchingUsecaseError(err error) error {
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
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
