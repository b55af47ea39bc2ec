package responder

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/inkwell-labs/inkwell/internal/personality"
	"github.com/inkwell-labs/inkwell/internal/types"
)

const testKey = "sk-test-0000000000000000"

// fakeModel is a scripted model.LLM. It records the last request so
// tests can assert on what would have crossed the wire.
type fakeModel struct {
	text     string
	err      error
	captured *model.LLMRequest
}

func (f *fakeModel) Name() string { return "fake" }

func (f *fakeModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	f.captured = req
	return func(yield func(*model.LLMResponse, error) bool) {
		if f.err != nil {
			yield(nil, f.err)
			return
		}
		if f.text == "" {
			yield(&model.LLMResponse{}, nil)
			return
		}
		yield(&model.LLMResponse{
			Content: genai.NewContentFromText(f.text, "model"),
		}, nil)
	}
}

func newTestService(m model.LLM, key string) *Service {
	s := New(m, Config{
		APIKey:       key,
		ChatModel:    "gpt-4o-mini",
		Timeout:      time.Second,
		HistoryLimit: 10,
	})
	s.pick = func(int) int { return 0 }
	return s
}

func userMsg(content string) types.ChatMessage {
	return types.ChatMessage{Role: types.RoleUser, Content: content}
}

func TestReplyValidation(t *testing.T) {
	s := newTestService(&fakeModel{text: "ok"}, testKey)

	if _, err := s.Reply(context.Background(), nil, "general", "default", ""); !errors.Is(err, ErrInvalidConversation) {
		t.Fatalf("expected ErrInvalidConversation for empty list, got %v", err)
	}

	bad := []types.ChatMessage{{Role: "narrator", Content: "hm"}}
	if _, err := s.Reply(context.Background(), bad, "general", "default", ""); !errors.Is(err, ErrInvalidConversation) {
		t.Fatalf("expected ErrInvalidConversation for bad role, got %v", err)
	}
}

func TestReplyLiveSuccess(t *testing.T) {
	m := &fakeModel{text: "You wrote a lot today, and it shows."}
	s := newTestService(m, testKey)

	got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("long day")}, "general", "default", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Role != types.RoleAssistant || got.Content != m.text {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestReplyAlwaysProducesContentOnFailure(t *testing.T) {
	supports := []string{"emotional", "productivity", "philosophy", "general", "bogus", ""}
	personalities := []string{"default", "stoic", "zen", "poetic", "unknown-style", "empathetic-listener"}

	for _, sup := range supports {
		for _, p := range personalities {
			m := &fakeModel{err: errors.New("boom")}
			s := newTestService(m, testKey)
			got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("today was fine")}, sup, p, "")
			if err != nil {
				t.Fatalf("support %q personality %q: unexpected error %v", sup, p, err)
			}
			if got.Role != types.RoleAssistant || strings.TrimSpace(got.Content) == "" {
				t.Fatalf("support %q personality %q: empty result %#v", sup, p, got)
			}
		}
	}
}

func TestReplyGreetingFallbackVerbatim(t *testing.T) {
	m := &fakeModel{err: errors.New("service unavailable")}
	s := newTestService(m, testKey)

	got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("hello, how are you")}, "general", "default", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pool := fallbackPools[types.SupportGeneral].greeting
	found := false
	for _, candidate := range pool {
		if got.Content == candidate {
			found = true
		}
	}
	if !found {
		t.Fatalf("content %q is not a verbatim general greeting template", got.Content)
	}
}

func TestReplyGreetingBeatsQuestion(t *testing.T) {
	s := newTestService(&fakeModel{err: errors.New("down")}, testKey)

	got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("hello, what should I do about work?")}, "general", "default", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Content != fallbackPools[types.SupportGeneral].greeting[0] {
		t.Fatalf("greeting must take precedence over question, got %q", got.Content)
	}
}

func TestReplyContentFlagBucket(t *testing.T) {
	s := newTestService(&fakeModel{err: errors.New("down")}, testKey)

	got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("my goal is to finish the draft")}, "productivity", "default", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Content != fallbackPools[types.SupportProductivity].flagged[0] {
		t.Fatalf("expected goal-flagged bucket, got %q", got.Content)
	}
}

func TestReplySanitizesUserContentForModel(t *testing.T) {
	m := &fakeModel{text: "noted"}
	s := newTestService(m, testKey)

	entry := "my email is test@example.com and my number is 5551234567"
	if _, err := s.Reply(context.Background(), []types.ChatMessage{userMsg(entry)}, "general", "default", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var all strings.Builder
	for _, c := range m.captured.Contents {
		for _, part := range c.Parts {
			all.WriteString(part.Text)
		}
	}
	sent := all.String()
	if strings.Contains(sent, "test@example.com") || strings.Contains(sent, "5551234567") {
		t.Fatalf("pii reached the model: %q", sent)
	}
	if !strings.Contains(sent, "[EMAIL REDACTED]") || !strings.Contains(sent, "[PHONE REDACTED]") {
		t.Fatalf("redaction markers missing from model input: %q", sent)
	}
}

func TestReplyTruncatesToLastTenMessages(t *testing.T) {
	m := &fakeModel{text: "noted"}
	s := newTestService(m, testKey)

	msgs := make([]types.ChatMessage, 0, 15)
	for i := 0; i < 15; i++ {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		msgs = append(msgs, types.ChatMessage{Role: role, Content: strings.Repeat("x", i+1)})
	}

	if _, err := s.Reply(context.Background(), msgs, "general", "default", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One system message plus the last ten turns.
	if len(m.captured.Contents) != 11 {
		t.Fatalf("expected 11 contents, got %d", len(m.captured.Contents))
	}
	lastSent := m.captured.Contents[len(m.captured.Contents)-1]
	if lastSent.Parts[0].Text != msgs[len(msgs)-1].Content {
		t.Fatalf("last forwarded message %q is not the newest turn", lastSent.Parts[0].Text)
	}
	// First forwarded turn must be message index 5, oldest of the window.
	firstTurn := m.captured.Contents[1]
	if firstTurn.Parts[0].Text != msgs[5].Content {
		t.Fatalf("window start %q, want %q", firstTurn.Parts[0].Text, msgs[5].Content)
	}
}

func TestReplyCustomInstructionsReachSystemMessage(t *testing.T) {
	m := &fakeModel{text: "aye"}
	s := newTestService(m, testKey)

	custom := "Respond like a ship's log."
	if _, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("stormy day")}, "general", "64fa3c9b2e8d1a0047c91b23", custom); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	system := m.captured.Contents[0].Parts[0].Text
	if !strings.Contains(system, custom) {
		t.Fatalf("custom instructions missing from system message: %q", system)
	}
}

func TestReplyCustomPersonalityFallbackNotice(t *testing.T) {
	s := newTestService(&fakeModel{err: errors.New("down")}, testKey)

	got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("quiet day")}, "general", "64fa3c9b2e8d1a0047c91b23", "be a pirate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got.Content, "live generation") {
		t.Fatalf("expected custom-style notice in fallback, got %q", got.Content)
	}
}

func TestReplyEmptyCompletionFallsBack(t *testing.T) {
	s := newTestService(&fakeModel{text: ""}, testKey)

	got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("today was fine")}, "general", "default", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(got.Content) == "" {
		t.Fatal("expected fallback content for empty completion")
	}
}

func TestReplyBadCredentialSkipsModel(t *testing.T) {
	m := &fakeModel{text: "should not be used"}
	s := newTestService(m, "not-a-key")

	got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("today was fine")}, "general", "default", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.captured != nil {
		t.Fatal("model must not be called with an obviously invalid credential")
	}
	if strings.TrimSpace(got.Content) == "" {
		t.Fatal("expected fallback content")
	}
}

func TestReplyCallerCancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestService(&fakeModel{err: context.Canceled}, testKey)
	_, err := s.Reply(ctx, []types.ChatMessage{userMsg("hello")}, "general", "default", "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClassifyFailure(t *testing.T) {
	if classifyFailure(errors.New("429 Too Many Requests")) != "rate_limit" {
		t.Fatal("429 must classify as rate_limit")
	}
	if classifyFailure(errors.New("insufficient quota")) != "rate_limit" {
		t.Fatal("quota must classify as rate_limit")
	}
	if classifyFailure(errors.New("connection refused")) != "generic" {
		t.Fatal("network errors classify as generic")
	}
}

func TestFallbackPoolsCoverAllSupportTypes(t *testing.T) {
	for _, sup := range []types.SupportType{types.SupportEmotional, types.SupportProductivity, types.SupportPhilosophy, types.SupportGeneral} {
		pool, ok := fallbackPools[sup]
		if !ok {
			t.Fatalf("no pool for %s", sup)
		}
		if len(pool.greeting) == 0 || len(pool.question) == 0 || len(pool.generic) == 0 {
			t.Fatalf("pool for %s has an empty required bucket", sup)
		}
	}
}

func TestFallbackPersonalityLockstepUsable(t *testing.T) {
	// Every built-in personality must be usable against a template.
	s := newTestService(&fakeModel{err: errors.New("down")}, testKey)
	for _, p := range personality.BuiltinTypes() {
		got, err := s.Reply(context.Background(), []types.ChatMessage{userMsg("hello")}, "general", string(p), "")
		if err != nil {
			t.Fatalf("personality %s: %v", p, err)
		}
		if strings.TrimSpace(got.Content) == "" {
			t.Fatalf("personality %s produced empty content", p)
		}
	}
}
