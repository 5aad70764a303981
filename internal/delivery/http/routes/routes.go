package routes

import (
	"github.com/hxx-12345678/CarrerZone-sub003/internal/ats"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/config"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/database"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/handler"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/infrastructure/cache"
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

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	registerHealth(app, deps)
	registerWS(app, deps)
	registerAPI(app, deps)
}

func registerHealth(app *fiber.App, deps Deps) {
	handler.NewHealthHandler(deps.DB).RegisterRoutes(app)
}

func registerWS(app *fiber.App, deps Deps) {
	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)
	app.Get("/ws/runs", wsHandler.HandleRunsWS)
}

func registerAPI(app *fiber.App, deps Deps) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), deps)
}
