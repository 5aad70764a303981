package app

import (
	"fmt"
	"strings"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/config"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/middleware"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(container *Container) *App {
	f := fiber.New(fiber.Config{})

	registerGlobalMiddleware(f, container)
	routes.Register(f, routes.Deps{
		Config: container.Config,
		DB:     container.DB,
		Cache:  container.Cache,
		Hub:    container.Hub,
		Scorer: container.Scorer,
		Logger: container.Logger,
	})

	return &App{Fiber: f, Container: container}
}

func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, container *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(container.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(container.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
