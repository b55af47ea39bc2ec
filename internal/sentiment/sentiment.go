// Package sentiment classifies the mood of a single journal entry. It
// mirrors the responder's two-path design: a structured model
// classification first, a deterministic keyword fallback when the
// model path fails. Both paths satisfy the same result invariants:
// one to five mood labels, a three-way sentiment, confidence in [0,1].
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/inkwell-labs/inkwell/internal/sanitize"
	"github.com/inkwell-labs/inkwell/internal/types"
)

const maxMoods = 5

// Config carries classification settings.
type Config struct {
	APIKey    string
	ChatModel string
	Timeout   time.Duration
}

// Service is stateless and safe for concurrent use.
type Service struct {
	model model.LLM
	cfg   Config
}

// New returns a Service. A nil model forces the fallback path.
func New(m model.LLM, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Service{model: m, cfg: cfg}
}

// moodSchema constrains the model output. It is rendered into the
// classifier prompt so any OpenAI-compatible backend can follow it.
var moodSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"moods", "sentiment", "confidence"},
	Properties: map[string]*jsonschema.Schema{
		"moods": {
			Type:        "array",
			Description: "One to five short mood labels, most prominent first.",
			Items:       &jsonschema.Schema{Type: "string"},
		},
		"sentiment": {
			Type: "string",
			Enum: []any{"positive", "negative", "neutral"},
		},
		"confidence": {
			Type:        "number",
			Description: "Classifier confidence between 0 and 1.",
		},
	},
}

var moodSchemaJSON = func() string {
	raw, err := json.Marshal(moodSchema)
	if err != nil {
		panic(err)
	}
	return string(raw)
}()

// Classify returns the mood classification for text. Model failures
// are absorbed into the fallback; the only error surfaced is caller
// cancellation.
func (s *Service) Classify(ctx context.Context, text string) (types.SentimentResult, error) {
	clean := sanitize.Redact(text)

	if s.model != nil && credentialLooksValid(s.cfg.APIKey) && strings.TrimSpace(clean) != "" {
		result, err := s.attempt(ctx, clean)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return types.SentimentResult{}, ctx.Err()
		}
		slog.Warn("live sentiment classification failed, falling back", "error", err.Error())
	}

	return fallbackClassify(clean), nil
}

func (s *Service) attempt(ctx context.Context, text string) (types.SentimentResult, error) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	system := "You classify the mood of private journal entries. " +
		"Respond with exactly one JSON object matching this schema, and nothing else:\n" + moodSchemaJSON
	req := &model.LLMRequest{
		Model: s.cfg.ChatModel,
		Contents: []*genai.Content{
			genai.NewContentFromText(system, "system"),
			genai.NewContentFromText(text, "user"),
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
		return types.SentimentResult{}, err
	}

	return parseClassification(extractText(resp))
}

// parseClassification extracts the JSON object from a completion and
// normalizes it into a valid SentimentResult.
func parseClassification(raw string) (types.SentimentResult, error) {
	clean := strings.TrimSpace(raw)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	var out struct {
		Moods      []string `json:"moods"`
		Sentiment  string   `json:"sentiment"`
		Confidence float64  `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return types.SentimentResult{}, fmt.Errorf("failed to parse classification: %w", err)
	}

	var sentiment types.Sentiment
	switch strings.ToLower(strings.TrimSpace(out.Sentiment)) {
	case "positive":
		sentiment = types.SentimentPositive
	case "negative":
		sentiment = types.SentimentNegative
	case "neutral":
		sentiment = types.SentimentNeutral
	default:
		return types.SentimentResult{}, fmt.Errorf("invalid sentiment label: %q", out.Sentiment)
	}

	moods := make([]string, 0, maxMoods)
	for _, m := range out.Moods {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		moods = append(moods, m)
		if len(moods) == maxMoods {
			break
		}
	}
	if len(moods) == 0 {
		moods = append(moods, genericMoods[sentiment][0])
	}

	return types.SentimentResult{
		Moods:      moods,
		Sentiment:  sentiment,
		Confidence: clamp01(out.Confidence),
	}, nil
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

func credentialLooksValid(key string) bool {
	return len(key) >= 20 && strings.HasPrefix(key, "sk-")
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
