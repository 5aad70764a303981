package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/app"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/config"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/logger"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/repository"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/scheduler"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// scorerun scores a candidate list against one requirement from the command
// line. With no -candidates it scores the full matched pool.
func main() {
	requirementFlag := flag.String("requirement", "", "requirement id (required)")
	candidatesFlag := flag.String("candidates", "", "comma-separated candidate ids; empty scores the matched pool")
	maxConcurrent := flag.Int("max-concurrent", 0, "batch size override")
	minDelay := flag.Duration("min-delay", 0, "minimum delay between scoring calls")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() {
		_ = zl.Sync()
	}()

	requirementID, err := uuid.Parse(strings.TrimSpace(*requirementFlag))
	if err != nil {
		zl.Fatal("provide -requirement with a valid id", zap.Error(err))
	}

	c, err := app.NewContainer(cfg, zl)
	if err != nil {
		zl.Fatal("failed to init container", zap.Error(err))
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	requirementRepo := repository.NewPostgresRequirementRepository(c.DB)
	candidateRepo := repository.NewPostgresCandidateRepository(c.DB)
	scoreRepo := repository.NewPostgresATSScoreRepository(c.DB)

	candidateIDs, err := parseCandidateIDs(*candidatesFlag)
	if err != nil {
		zl.Fatal("invalid -candidates", zap.Error(err))
	}
	if len(candidateIDs) == 0 {
		matchingUC := usecase.NewMatchingUsecase(requirementRepo, candidateRepo, c.Cache, zl)
		candidateIDs, err = matchingUC.Match(ctx, requirementID)
		if err != nil {
			zl.Fatal("match failed", zap.Error(err))
		}
		if len(candidateIDs) == 0 {
			zl.Info("no candidates matched, nothing to score")
			os.Exit(0)
		}
	}

	sc := cfg.Scoring
	scoringUC := usecase.NewScoringUsecase(
		requirementRepo,
		candidateRepo,
		scoreRepo,
		c.Scorer,
		scheduler.Options{
			MaxConcurrent:  sc.MaxConcurrent,
			MaxRetries:     sc.MaxRetries,
			MinDelay:       sc.MinDelay,
			BatchCooldown:  sc.BatchCooldown,
			BackoffBase:    sc.BackoffBase,
			PerCallTimeout: sc.PerCallTimeout,
		},
		c.Cache,
		zl,
	)

	overrides := scheduler.Options{
		MaxConcurrent: *maxConcurrent,
		MinDelay:      *minDelay,
	}
	report, err := scoringUC.StreamScores(ctx, requirementID, candidateIDs, overrides, func(evt scheduler.ProgressEvent) {
		zl.Info("progress",
			zap.String("candidate_id", evt.CandidateID.String()),
			zap.String("status", string(evt.Status)),
			zap.Int("current", evt.Current),
			zap.Int("total", evt.Total),
		)
	})
	if err != nil {
		zl.Fatal("scoring run failed", zap.Error(err))
	}

	zl.Info("scoring run report",
		zap.String("run_id", report.RunID.String()),
		zap.Int("total", report.Total),
		zap.Int("completed", report.Completed),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", len(report.Skipped)),
		zap.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)),
	)
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func parseCandidateIDs(raw string) ([]uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
