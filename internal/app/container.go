package app

import (
	"context"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/ats"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/ats/gemini"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/config"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/database"
	dbpostgres "github.com/hxx-12345678/CarrerZone-sub003/internal/database/postgres"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/infrastructure/cache"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/ws"

	"go.uber.org/zap"
)

// Container holds the process-wide dependencies: database pool, cache, the
// websocket hub and the scoring provider.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Scorer ats.Scorer
	Logger *zap.Logger
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Hub:    hub,
		Scorer: gemini.NewScorer(generator, logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
