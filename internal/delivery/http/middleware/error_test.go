package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func testApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(zap.NewNop()).Middleware())
	app.Get("/t", handler)
	return app
}

func decodeEnvelope(t *testing.T, app *fiber.App) response.SemanticResponse {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/t", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.StatusCode != out.Status {
		t.Fatalf("status mismatch: http %d vs envelope %d", resp.StatusCode, out.Status)
	}
	return out
}

func TestErrorMiddleware_AppErrorMapped(t *testing.T) {
	app := testApp(func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, "Requirement not found", nil, errors.New("sql: no rows"))
	})

	out := decodeEnvelope(t, app)
	if out.Status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", out.Status)
	}
	if out.Message != "Requirement not found" {
		t.Fatalf("unexpected message %q", out.Message)
	}
}

func TestErrorMiddleware_InternalDetailNeverLeaks(t *testing.T) {
	app := testApp(func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "pg: connection refused at 10.0.0.5", nil, nil)
	})

	out := decodeEnvelope(t, app)
	if out.Status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", out.Status)
	}
	if out.Message != response.MessageInternalServerError {
		t.Fatalf("expected generic message, got %q", out.Message)
	}
}

func TestErrorMiddleware_PanicRecovered(t *testing.T) {
	app := testApp(func(c fiber.Ctx) error {
		panic("boom")
	})

	out := decodeEnvelope(t, app)
	if out.Status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", out.Status)
	}
}

func TestBearerTokenFromHeader(t *testing.T) {
	if tok, ok := bearerTokenFromHeader("Bearer abc"); !ok || tok != "abc" {
		t.Fatalf("expected token abc, got %q ok=%v", tok, ok)
	}
	if _, ok := bearerTokenFromHeader("bearer abc"); !ok {
		t.Fatalf("expected case-insensitive scheme")
	}
	for _, raw := range []string{"", "abc", "Basic abc", "Bearer  ", "Bearer"} {
		if _, ok := bearerTokenFromHeader(raw); ok {
			t.Fatalf("expected %q rejected", raw)
		}
	}
}
