package v1

import (
	"github.com/hxx-12345678/CarrerZone-sub003/internal/ats"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/config"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/database"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/handler"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/middleware"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/infrastructure/cache"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/pkg/jwt"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/repository"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/scheduler"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/usecase"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Scorer ats.Scorer
	Logger *zap.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(deps.Config.JWT.AccessSecret)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	requirementRepo := repository.NewPostgresRequirementRepository(deps.DB)
	candidateRepo := repository.NewPostgresCandidateRepository(deps.DB)
	scoreRepo := repository.NewPostgresATSScoreRepository(deps.DB)

	matchingUC := usecase.NewMatchingUsecase(requirementRepo, candidateRepo, deps.Cache, deps.Logger)

	sc := deps.Config.Scoring
	scoringUC := usecase.NewScoringUsecase(
		requirementRepo,
		candidateRepo,
		scoreRepo,
		deps.Scorer,
		scheduler.Options{
			MaxConcurrent:  sc.MaxConcurrent,
			MaxRetries:     sc.MaxRetries,
			MinDelay:       sc.MinDelay,
			BatchCooldown:  sc.BatchCooldown,
			BackoffBase:    sc.BackoffBase,
			PerCallTimeout: sc.PerCallTimeout,
		},
		deps.Cache,
		deps.Logger,
	)

	matchHandler := handler.NewMatchHandler(matchingUC)
	scoreHandler := handler.NewScoreHandler(scoringUC, deps.Hub)

	protected := r.Group("", authMw.Middleware())
	matchHandler.RegisterRoutes(protected)
	scoreHandler.RegisterRoutes(protected)
}
