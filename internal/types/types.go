// Package types holds the shared data model of the reflection core.
package types

import "time"

// Message roles accepted in a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is a single turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SupportType selects the conversational framing of the assistant,
// independent of personality.
type SupportType string

const (
	SupportEmotional    SupportType = "emotional"
	SupportProductivity SupportType = "productivity"
	SupportGeneral      SupportType = "general"
	SupportPhilosophy   SupportType = "philosophy"
)

// NormalizeSupportType maps unknown or empty values to SupportGeneral.
func NormalizeSupportType(raw string) SupportType {
	switch SupportType(raw) {
	case SupportEmotional, SupportProductivity, SupportPhilosophy:
		return SupportType(raw)
	default:
		return SupportGeneral
	}
}

// GenerationResult is the reply produced for a conversation. Content is
// never empty. Fallback records which path produced the reply; it is
// not part of the wire shape.
type GenerationResult struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Fallback bool   `json:"-"`
}

// Sentiment is a three-way polarity label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// SentimentResult is the mood classification of a single text.
// Moods holds between 1 and 5 short labels; Confidence is in [0,1].
type SentimentResult struct {
	Moods      []string  `json:"moods"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
}

// Reflection is a persisted generated reply attached to a user.
type Reflection struct {
	ID          int       `json:"id"`
	UserID      string    `json:"user_id"`
	SupportType string    `json:"support_type"`
	Personality string    `json:"personality"`
	Content     string    `json:"content"`
	Fallback    bool      `json:"fallback"`
	CreatedAt   time.Time `json:"created_at"`
}
