package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/ats"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Scorer implements ats.Scorer on top of a Gemini content generator.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewScorer(generator contentGenerator, logger *zap.Logger) *Scorer {
	return &Scorer{generator: generator, logger: logger}
}

// Score sends both contexts to the model and parses the JSON verdict.
// Provider failures come back wrapped in the ats error taxonomy so the
// scheduler can decide what to retry.
func (s *Scorer) Score(ctx context.Context, cand ats.CandidateContext, req ats.RequirementContext) (ats.Result, error) {
	candJSON, err := json.MarshalIndent(cand, "", "  ")
	if err != nil {
		return ats.Result{}, ats.Permanent(fmt.Errorf("marshal candidate context: %w", err))
	}
	reqJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return ats.Result{}, ats.Permanent(fmt.Errorf("marshal requirement context: %w", err))
	}

	prompt := buildPrompt(string(candJSON), string(reqJSON))

	s.logger.Debug("ats score request",
		zap.String("candidate_id", cand.ID.String()),
		zap.String("requirement_id", req.ID.String()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return ats.Result{}, classifyProviderError(err)
	}

	result, err := parseResponse(raw)
	if err != nil {
		return ats.Result{}, err
	}

	s.logger.Debug("ats score response",
		zap.String("candidate_id", cand.ID.String()),
		zap.String("requirement_id", req.ID.String()),
		zap.Int("score", result.Score),
	)

	return result, nil
}

func buildPrompt(candidateJSON, requirementJSON string) string {
	prompt := strings.ReplaceAll(promptTemplate, "{{CANDIDATE_JSON}}", candidateJSON)
	prompt = strings.ReplaceAll(prompt, "{{REQUIREMENT_JSON}}", requirementJSON)
	return prompt
}

// classifyProviderError maps transport and API failures onto the retry
// taxonomy: 429 and 5xx are transient, other API codes permanent, timeouts
// transient.
func classifyProviderError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500 {
			return ats.Transient(err)
		}
		return ats.Permanent(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ats.Transient(err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	// Network-level failures without an API status are worth a retry.
	return ats.Transient(err)
}

func parseResponse(raw string) (ats.Result, error) {
	cleaned := extractJSON(raw)

	var data struct {
		Score     any            `json:"score"`
		Breakdown map[string]any `json:"breakdown"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return ats.Result{}, ats.Permanent(fmt.Errorf("parse scoring response: %w", err))
	}

	score, ok := coerceInt(data.Score)
	if !ok {
		return ats.Result{}, ats.Permanent(fmt.Errorf("scoring response missing numeric score"))
	}

	breakdown := make(map[string]int, len(data.Breakdown))
	for name, v := range data.Breakdown {
		if n, ok := coerceInt(v); ok {
			breakdown[name] = n
		}
	}
	breakdown = ats.ClampBreakdown(breakdown)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return ats.Result{Score: score, Breakdown: breakdown}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return int(math.Round(val)), true
	case int:
		return val, true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return int(math.Round(f)), true
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return int(math.Round(f)), true
	default:
		return 0, false
	}
}
