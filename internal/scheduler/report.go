package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the terminal state of one candidate job.
type JobStatus string

const (
	StatusSuccess JobStatus = "success"
	StatusFailed  JobStatus = "failed"
	StatusSkipped JobStatus = "skipped"
)

// ProgressEvent is emitted exactly once per candidate reaching a terminal
// state. Completed+Failed equals Current and both counters only grow.
type ProgressEvent struct {
	RunID         uuid.UUID `json:"run_id"`
	RequirementID uuid.UUID `json:"requirement_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	Status        JobStatus `json:"status"`
	Score         *int      `json:"score,omitempty"`
	Error         string    `json:"error,omitempty"`
	Current       int       `json:"current"`
	Total         int       `json:"total"`
	Completed     int       `json:"completed"`
	Failed        int       `json:"failed"`
}

// CandidateScore is one successful scoring outcome.
type CandidateScore struct {
	CandidateID uuid.UUID
	Score       int
	Breakdown   map[string]int
	Attempts    int
}

// CandidateError is one permanently failed scoring outcome.
type CandidateError struct {
	CandidateID uuid.UUID
	Err         error
	Attempts    int
}

// RunReport aggregates a finished run. Completed+Failed+Skipped == Total;
// Skipped is only non-zero when the run was cancelled between batches.
type RunReport struct {
	RunID         uuid.UUID
	RequirementID uuid.UUID

	Successful []CandidateScore
	Errors     []CandidateError
	Skipped    []uuid.UUID

	Total     int
	Completed int
	Failed    int

	StartedAt  time.Time
	FinishedAt time.Time
}

// reporter owns the run counters and turns terminal job outcomes into
// progress events and the final report. It is only touched from the
// coordinating goroutine, so counter updates and event emission stay
// serialized without extra locking.
type reporter struct {
	runID         uuid.UUID
	requirementID uuid.UUID
	total         int
	completed     int
	failed        int

	successful []CandidateScore
	failures   []CandidateError
	skipped    []uuid.UUID

	onProgress func(ProgressEvent)
}

func newReporter(runID, requirementID uuid.UUID, total int, onProgress func(ProgressEvent)) *reporter {
	return &reporter{
		runID:         runID,
		requirementID: requirementID,
		total:         total,
		successful:    make([]CandidateScore, 0, total),
		failures:      make([]CandidateError, 0),
		skipped:       make([]uuid.UUID, 0),
		onProgress:    onProgress,
	}
}

func (r *reporter) success(s CandidateScore) {
	r.completed++
	r.successful = append(r.successful, s)
	score := s.Score
	r.emit(ProgressEvent{
		CandidateID: s.CandidateID,
		Status:      StatusSuccess,
		Score:       &score,
	})
}

func (r *reporter) failure(f CandidateError) {
	r.failed++
	r.failures = append(r.failures, f)
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	r.emit(ProgressEvent{
		CandidateID: f.CandidateID,
		Status:      StatusFailed,
		Error:       msg,
	})
}

func (r *reporter) skip(candidateID uuid.UUID) {
	r.skipped = append(r.skipped, candidateID)
}

func (r *reporter) emit(evt ProgressEvent) {
	if r.onProgress == nil {
		return
	}
	evt.RunID = r.runID
	evt.RequirementID = r.requirementID
	evt.Current = r.completed + r.failed
	evt.Total = r.total
	evt.Completed = r.completed
	evt.Failed = r.failed
	r.onProgress(evt)
}

func (r *reporter) report(startedAt time.Time) RunReport {
	return RunReport{
		RunID:         r.runID,
		RequirementID: r.requirementID,
		Successful:    r.successful,
		Errors:        r.failures,
		Skipped:       r.skipped,
		Total:         r.total,
		Completed:     r.completed,
		Failed:        r.failed,
		StartedAt:     startedAt,
		FinishedAt:    time.Now().UTC(),
	}
}
