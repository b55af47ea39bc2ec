// Package responder produces the assistant reply for a journal
// conversation. It attempts live generation through the configured
// model and, on any failure, synthesizes a reply locally from the
// lexical analyzer and the personality fragment pools. From the
// caller's side the only failure mode is a malformed conversation.
package responder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/inkwell-labs/inkwell/internal/personality"
	"github.com/inkwell-labs/inkwell/internal/sanitize"
	"github.com/inkwell-labs/inkwell/internal/types"
)

// ErrInvalidConversation marks programmer errors in the inbound
// conversation shape. It is the only error Reply surfaces besides
// caller cancellation.
var ErrInvalidConversation = errors.New("invalid conversation")

var errEmptyCompletion = errors.New("model returned empty completion")

// Config carries the generation settings for a Service.
type Config struct {
	APIKey       string
	ChatModel    string
	Timeout      time.Duration
	HistoryLimit int
	MaxTokens    int32
	Temperature  float32
}

// Service is safe for concurrent use; it holds no per-request state.
type Service struct {
	model model.LLM
	cfg   Config
	pick  func(n int) int
}

// New returns a Service. The model may be nil, in which case every
// reply comes from the fallback path.
func New(m model.LLM, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 10
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	return &Service{
		model: m,
		cfg:   cfg,
		pick:  rand.IntN,
	}
}

// Reply generates the assistant turn for the conversation. The result
// content is never empty. Failures of the live model path are absorbed
// into the fallback; they are classified only for the log line.
func (s *Service) Reply(ctx context.Context, msgs []types.ChatMessage, supportRaw, personalityRaw, custom string) (types.GenerationResult, error) {
	if len(msgs) == 0 {
		return types.GenerationResult{}, fmt.Errorf("%w: empty message list", ErrInvalidConversation)
	}
	for i, m := range msgs {
		switch m.Role {
		case types.RoleUser, types.RoleAssistant, types.RoleSystem:
		default:
			return types.GenerationResult{}, fmt.Errorf("%w: message %d has role %q", ErrInvalidConversation, i, m.Role)
		}
	}

	support := types.NormalizeSupportType(supportRaw)
	if !personality.IsCustomRef(personalityRaw) {
		personalityRaw = string(personality.Normalize(personalityRaw))
	}

	window := s.window(msgs)
	instructions := personality.SystemInstructions(support, personalityRaw, custom)

	if s.model != nil && credentialLooksValid(s.cfg.APIKey) {
		text, err := s.attempt(ctx, instructions, window)
		if err == nil {
			return types.GenerationResult{Role: types.RoleAssistant, Content: text}, nil
		}
		if ctx.Err() != nil {
			// The caller walked away; a fallback reply would go nowhere.
			return types.GenerationResult{}, ctx.Err()
		}
		slog.Warn("live generation failed, falling back",
			"class", classifyFailure(err),
			"support", support,
			"error", err.Error())
	} else {
		slog.Debug("model credential not usable, using fallback", "support", support)
	}

	content := s.fallbackReply(window, support, personalityRaw, custom)
	return types.GenerationResult{Role: types.RoleAssistant, Content: content, Fallback: true}, nil
}

// window sanitizes user turns and keeps the most recent turns in
// oldest-first order. Assistant and system content is left untouched.
func (s *Service) window(msgs []types.ChatMessage) []types.ChatMessage {
	out := make([]types.ChatMessage, len(msgs))
	copy(out, msgs)
	for i := range out {
		if out[i].Role == types.RoleUser {
			out[i].Content = sanitize.Redact(out[i].Content)
		}
	}
	if len(out) > s.cfg.HistoryLimit {
		out = out[len(out)-s.cfg.HistoryLimit:]
	}
	return out
}

func (s *Service) attempt(ctx context.Context, instructions string, window []types.ChatMessage) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(window)+1)
	contents = append(contents, genai.NewContentFromText(instructions, "system"))
	for _, m := range window {
		role := m.Role
		if role == types.RoleAssistant {
			role = "model"
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}

	req := &model.LLMRequest{
		Model:    s.cfg.ChatModel,
		Contents: contents,
		Config: &genai.GenerateContentConfig{
			Temperature:     ptr(s.cfg.Temperature),
			MaxOutputTokens: s.cfg.MaxTokens,
		},
	}

	seq := s.model.GenerateContent(cctx, req, false)
	var resp *model.LLMResponse
	var err error
	seq(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		return "", err
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", errEmptyCompletion
	}
	return text, nil
}

func extractText(resp *model.LLMResponse) string {
	if resp == nil || resp.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// credentialLooksValid is a cheap shape check that lets an obviously
// broken key skip the network round trip. It is an optimization only;
// a key that passes can still fail at the API.
func credentialLooksValid(key string) bool {
	return len(key) >= 20 && strings.HasPrefix(key, "sk-")
}

// classifyFailure buckets a generation error for the log line. The
// classification never changes behavior.
func classifyFailure(err error) string {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") || strings.Contains(msg, "429") {
		return "rate_limit"
	}
	return "generic"
}

func ptr[T any](v T) *T {
	return &v
}
