package handler

import (
	"context"
	"time"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/database"
	"github.com/hxx-12345678/CarrerZone-sub003/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.GetHealth)
}

func (h *HealthHandler) GetHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	data := fiber.Map{"database": dbStatus}
	if dbStatus != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, "service unavailable", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
