package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/ats"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options bound one scoring run. Zero values fall back to the defaults
// below.
type Options struct {
	MaxConcurrent  int
	MaxRetries     int
	MinDelay       time.Duration
	BatchCooldown  time.Duration
	BackoffBase    time.Duration
	PerCallTimeout time.Duration
}

const (
	defaultMaxConcurrent  = 10
	defaultMaxRetries     = 3
	defaultMinDelay       = 500 * time.Millisecond
	defaultBatchCooldown  = time.Second
	defaultBackoffBase    = 2 * time.Second
	defaultPerCallTimeout = 30 * time.Second
)

func (o Options) withDefaults() Options {
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = defaultMaxConcurrent
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.MinDelay <= 0 {
		o.MinDelay = defaultMinDelay
	}
	if o.BatchCooldown <= 0 {
		o.BatchCooldown = defaultBatchCooldown
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = defaultBackoffBase
	}
	if o.PerCallTimeout <= 0 {
		o.PerCallTimeout = defaultPerCallTimeout
	}
	return o
}

// ScoreFunc performs one scoring attempt for a candidate.
type ScoreFunc func(ctx context.Context, candidateID uuid.UUID) (ats.Result, error)

// Pool drives a ScoreFunc over a candidate list in batches of MaxConcurrent,
// with a global minimum delay between any two dispatches, per-candidate
// exponential retries for transient failures, and a cooldown between
// batches. All run state lives inside Run; the Pool itself is reusable and
// safe for concurrent runs.
type Pool struct {
	opts   Options
	logger *zap.Logger
}

func New(opts Options, logger *zap.Logger) *Pool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{opts: opts.withDefaults(), logger: logger}
}

// runState is the mutable state of one run. The dispatch gate is the only
// field workers touch concurrently and it is guarded by mu; everything else
// belongs to the coordinating goroutine.
type runState struct {
	mu           sync.Mutex
	lastDispatch time.Time
}

// awaitDispatch blocks until the global minimum inter-dispatch delay has
// elapsed since the previous dispatch, then claims the dispatch slot. Called
// by every attempt, retries included, from any worker.
func (s *runState) awaitDispatch(ctx context.Context, minDelay time.Duration) error {
	for {
		s.mu.Lock()
		now := time.Now()
		next := s.lastDispatch.Add(minDelay)
		if s.lastDispatch.IsZero() || !now.Before(next) {
			s.lastDispatch = now
			s.mu.Unlock()
			return nil
		}
		wait := next.Sub(now)
		s.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

type jobOutcome struct {
	candidateID uuid.UUID
	result      ats.Result
	err         error
	attempts    int
}

// Run executes one scoring run to completion. Per-candidate failures never
// abort the run. Cancellation is honored between batches: in-flight jobs
// finish, no new batch starts, and the remainder is reported skipped.
// onProgress is invoked from the coordinating goroutine, exactly once per
// terminal candidate.
func (p *Pool) Run(ctx context.Context, requirementID uuid.UUID, candidateIDs []uuid.UUID, score ScoreFunc, onProgress func(ProgressEvent)) RunReport {
	opts := p.opts
	runID := uuid.New()
	startedAt := time.Now().UTC()

	state := &runState{}
	rep := newReporter(runID, requirementID, len(candidateIDs), onProgress)

	log := p.logger.With(
		zap.String("run_id", runID.String()),
		zap.String("requirement_id", requirementID.String()),
	)
	log.Info("scoring run started",
		zap.Int("total", len(candidateIDs)),
		zap.Int("max_concurrent", opts.MaxConcurrent),
		zap.Duration("min_delay", opts.MinDelay),
	)

	cancelled := false
	for start := 0; start < len(candidateIDs); start += opts.MaxConcurrent {
		if ctx.Err() != nil {
			cancelled = true
			for _, id := range candidateIDs[start:] {
				rep.skip(id)
			}
			break
		}

		end := start + opts.MaxConcurrent
		if end > len(candidateIDs) {
			end = len(candidateIDs)
		}
		batch := candidateIDs[start:end]

		// Cancellation is cooperative: it is checked before each batch and
		// jobs already dispatched run to their terminal state, so they get a
		// context that survives the caller's cancel.
		jobCtx := context.WithoutCancel(ctx)
		outcomes := make(chan jobOutcome, len(batch))
		for _, id := range batch {
			go p.runJob(jobCtx, state, id, score, outcomes)
		}

		// The whole batch resolves before the next one dispatches.
		for range batch {
			out := <-outcomes
			if out.err == nil {
				rep.success(CandidateScore{
					CandidateID: out.candidateID,
					Score:       out.result.Score,
					Breakdown:   out.result.Breakdown,
					Attempts:    out.attempts,
				})
				continue
			}
			log.Warn("candidate scoring failed",
				zap.String("candidate_id", out.candidateID.String()),
				zap.Int("attempts", out.attempts),
				zap.Error(out.err),
			)
			rep.failure(CandidateError{
				CandidateID: out.candidateID,
				Err:         out.err,
				Attempts:    out.attempts,
			})
		}

		if end < len(candidateIDs) {
			if err := sleepCtx(ctx, opts.BatchCooldown); err != nil {
				continue // cancellation is picked up at the top of the loop
			}
		}
	}

	report := rep.report(startedAt)
	log.Info("scoring run finished",
		zap.Int("completed", report.Completed),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", len(report.Skipped)),
		zap.Bool("cancelled", cancelled),
	)
	return report
}

// runJob executes one candidate job: every attempt first claims the global
// dispatch gate, then runs the scoring call under the per-call timeout.
// Transient errors retry with exponential backoff up to MaxRetries attempts.
func (p *Pool) runJob(ctx context.Context, state *runState, candidateID uuid.UUID, score ScoreFunc, outcomes chan<- jobOutcome) {
	opts := p.opts
	attempts := 0

	result, err := ats.Retry(ctx, ats.RetryConfig{
		MaxAttempts: opts.MaxRetries,
		Base:        opts.BackoffBase,
		Retryable:   ats.IsTransient,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			p.logger.Debug("retry scheduled",
				zap.String("candidate_id", candidateID.String()),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err),
			)
		},
	}, func(ctx context.Context) (ats.Result, error) {
		if err := state.awaitDispatch(ctx, opts.MinDelay); err != nil {
			return ats.Result{}, err
		}
		attempts++

		callCtx, cancel := context.WithTimeout(ctx, opts.PerCallTimeout)
		defer cancel()
		return score(callCtx, candidateID)
	})

	outcomes <- jobOutcome{candidateID: candidateID, result: result, err: err, attempts: attempts}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
