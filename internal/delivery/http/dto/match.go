package dto

import "github.com/google/uuid"

type MatchResponse struct {
	RequirementID uuid.UUID   `json:"requirement_id"`
	CandidateIDs  []uuid.UUID `json:"candidate_ids"`
	Total         int         `json:"total"`
}

type RankRequest struct {
	CandidateIDs []uuid.UUID `json:"candidate_ids"`
}

type RankedCandidateResponse struct {
	CandidateID     uuid.UUID `json:"candidate_id"`
	RelevanceScore  int       `json:"relevance_score"`
	MatchedCriteria []string  `json:"matched_criteria"`
}

type RankResponse struct {
	RequirementID uuid.UUID                 `json:"requirement_id"`
	Results       []RankedCandidateResponse `json:"results"`
}
