package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inkwell-labs/inkwell/internal/responder"
	"github.com/inkwell-labs/inkwell/internal/types"
)

type stubReplier struct {
	result types.GenerationResult
	err    error
}

func (s *stubReplier) Reply(ctx context.Context, msgs []types.ChatMessage, supportType, personalityType, customInstructions string) (types.GenerationResult, error) {
	return s.result, s.err
}

type stubClassifier struct {
	result types.SentimentResult
	err    error
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (types.SentimentResult, error) {
	return s.result, s.err
}

func newTestHandler(rep Replier, cls Classifier) http.Handler {
	return New(rep, cls, nil)
}

func TestReplyEndpointSuccess(t *testing.T) {
	rep := &stubReplier{result: types.GenerationResult{Role: types.RoleAssistant, Content: "noted"}}
	h := newTestHandler(rep, &stubClassifier{})

	body := `{"messages":[{"role":"user","content":"hello"}],"supportType":"general"}`
	req := httptest.NewRequest(http.MethodPost, "/api/ai/reply", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got types.GenerationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if got.Role != types.RoleAssistant || got.Content != "noted" {
		t.Fatalf("unexpected body: %#v", got)
	}
}

func TestReplyEndpointValidationError(t *testing.T) {
	rep := &stubReplier{err: fmt.Errorf("%w: empty message list", responder.ErrInvalidConversation)}
	h := newTestHandler(rep, &stubClassifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/ai/reply", strings.NewReader(`{"messages":[]}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected error payload, got %s", rec.Body.String())
	}
}

func TestReplyEndpointMalformedBody(t *testing.T) {
	h := newTestHandler(&stubReplier{}, &stubClassifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/ai/reply", strings.NewReader(`{"messages": 7}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSentimentEndpoint(t *testing.T) {
	cls := &stubClassifier{result: types.SentimentResult{
		Moods:      []string{"Calm"},
		Sentiment:  types.SentimentNeutral,
		Confidence: 0.6,
	}}
	h := newTestHandler(&stubReplier{}, cls)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/sentiment", strings.NewReader(`{"text":"an ordinary day"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got types.SentimentResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if got.Sentiment != types.SentimentNeutral || len(got.Moods) != 1 {
		t.Fatalf("unexpected body: %#v", got)
	}
}

func TestReflectionsEndpointWithoutStore(t *testing.T) {
	h := newTestHandler(&stubReplier{}, &stubClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/ai/reflections", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %s", rec.Body.String())
	}
}

func TestUnknownMethodRejected(t *testing.T) {
	h := newTestHandler(&stubReplier{}, &stubClassifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/ai/reply", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed && rec.Code != http.StatusNotFound {
		t.Fatalf("expected method rejection, got %d", rec.Code)
	}
}
