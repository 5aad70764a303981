package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/hxx-12345678/CarrerZone-sub003/internal/ats"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testContexts() (ats.CandidateContext, ats.RequirementContext) {
	return ats.CandidateContext{ID: uuid.New(), Skills: []string{"Go"}},
		ats.RequirementContext{ID: uuid.New(), Title: "Backend Engineer"}
}

func TestScorer_Score_ParsesPlainJSON(t *testing.T) {
	gen := &fakeGenerator{response: `{"score": 72, "breakdown": {"skills": 30, "location": 10}}`}
	s := NewScorer(gen, zap.NewNop())

	cand, req := testContexts()
	res, err := s.Score(context.Background(), cand, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Score != 72 {
		t.Fatalf("expected score 72, got %d", res.Score)
	}
	if res.Breakdown["skills"] != 30 || res.Breakdown["location"] != 10 {
		t.Fatalf("unexpected breakdown: %v", res.Breakdown)
	}
	if !strings.Contains(gen.prompt, "Backend Engineer") {
		t.Fatalf("expected requirement title in prompt")
	}
}

func TestScorer_Score_StripsCodeFences(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"score\": 55, \"breakdown\": {}}\n```"}
	s := NewScorer(gen, zap.NewNop())

	cand, req := testContexts()
	res, err := s.Score(context.Background(), cand, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Score != 55 {
		t.Fatalf("expected score 55, got %d", res.Score)
	}
}

func TestScorer_Score_ClampsBreakdownAndScore(t *testing.T) {
	gen := &fakeGenerator{response: `{"score": 250, "breakdown": {"skills": 99, "made_up": 40}}`}
	s := NewScorer(gen, zap.NewNop())

	cand, req := testContexts()
	res, err := s.Score(context.Background(), cand, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Score != 100 {
		t.Fatalf("expected score clamped to 100, got %d", res.Score)
	}
	if res.Breakdown["skills"] != ats.ComponentMaxima["skills"] {
		t.Fatalf("expected skills clamped, got %d", res.Breakdown["skills"])
	}
	if _, ok := res.Breakdown["made_up"]; ok {
		t.Fatalf("expected unknown component dropped")
	}
}

func TestScorer_Score_MalformedResponseIsPermanent(t *testing.T) {
	gen := &fakeGenerator{response: "I think this candidate is great!"}
	s := NewScorer(gen, zap.NewNop())

	cand, req := testContexts()
	_, err := s.Score(context.Background(), cand, req)
	if !errors.Is(err, ats.ErrPermanentProvider) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if ats.IsTransient(err) {
		t.Fatalf("malformed response must not be retried")
	}
}

func TestScorer_Score_StringNumbersCoerced(t *testing.T) {
	gen := &fakeGenerator{response: `{"score": "64", "breakdown": {"salary": "7.6"}}`}
	s := NewScorer(gen, zap.NewNop())

	cand, req := testContexts()
	res, err := s.Score(context.Background(), cand, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Score != 64 {
		t.Fatalf("expected coerced score 64, got %d", res.Score)
	}
	if res.Breakdown["salary"] != 8 {
		t.Fatalf("expected rounded salary component 8, got %d", res.Breakdown["salary"])
	}
}

func TestClassifyProviderError(t *testing.T) {
	rateLimited := genai.APIError{Code: http.StatusTooManyRequests, Message: "quota"}
	if !ats.IsTransient(classifyProviderError(rateLimited)) {
		t.Fatalf("expected 429 to be transient")
	}

	upstream := genai.APIError{Code: http.StatusBadGateway, Message: "upstream"}
	if !ats.IsTransient(classifyProviderError(upstream)) {
		t.Fatalf("expected 5xx to be transient")
	}

	rejected := genai.APIError{Code: http.StatusBadRequest, Message: "blocked"}
	if ats.IsTransient(classifyProviderError(rejected)) {
		t.Fatalf("expected 4xx to be permanent")
	}

	if !ats.IsTransient(classifyProviderError(context.DeadlineExceeded)) {
		t.Fatalf("expected timeout to be transient")
	}
	if ats.IsTransient(classifyProviderError(context.Canceled)) {
		t.Fatalf("expected cancellation to not be retried")
	}
	if !ats.IsTransient(classifyProviderError(errors.New("connection reset"))) {
		t.Fatalf("expected bare network error to be transient")
	}
}
