package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScoreRunRequest struct {
	CandidateIDs []uuid.UUID      `json:"candidate_ids"`
	Options      *ScoreRunOptions `json:"options,omitempty"`
}

// ScoreRunOptions overrides the configured scheduler defaults for one run.
// Omitted or zero fields keep the defaults.
type ScoreRunOptions struct {
	MaxConcurrent    int `json:"max_concurrent,omitempty"`
	MaxRetries       int `json:"max_retries,omitempty"`
	MinDelayMs       int `json:"min_delay_ms,omitempty"`
	BatchCooldownMs  int `json:"batch_cooldown_ms,omitempty"`
	BackoffBaseMs    int `json:"backoff_base_ms,omitempty"`
	PerCallTimeoutMs int `json:"per_call_timeout_ms,omitempty"`
}

type CandidateScoreResponse struct {
	CandidateID uuid.UUID      `json:"candidate_id"`
	Score       int            `json:"score"`
	Breakdown   map[string]int `json:"breakdown"`
	Attempts    int            `json:"attempts"`
}

type CandidateErrorResponse struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Error       string    `json:"error"`
	Attempts    int       `json:"attempts"`
}

type ScoreRunReportResponse struct {
	RunID         uuid.UUID `json:"run_id"`
	RequirementID uuid.UUID `json:"requirement_id"`

	Scores  []CandidateScoreResponse `json:"scores"`
	Errors  []CandidateErrorResponse `json:"errors"`
	Skipped []uuid.UUID              `json:"skipped"`

	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

type ScoreRecordResponse struct {
	CandidateID  uuid.UUID      `json:"candidate_id"`
	Score        int            `json:"score"`
	Breakdown    map[string]int `json:"breakdown"`
	CalculatedAt time.Time      `json:"calculated_at"`
}

type ScoreListResponse struct {
	RequirementID uuid.UUID             `json:"requirement_id"`
	Scores        []ScoreRecordResponse `json:"scores"`
}
