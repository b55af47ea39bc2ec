// Package lexical is the deterministic keyword classifier driving the
// fallback reply path. It has no external dependencies and no state:
// identical input always yields identical output.
package lexical

import (
	"strings"

	"github.com/inkwell-labs/inkwell/internal/types"
)

// Analysis is the full lexical read of one text.
type Analysis struct {
	Sentiment           types.Sentiment
	Topics              []string
	TimeOrientation     string
	IsQuestion          bool
	IsGreeting          bool
	ContainsEmotionWord bool
	MentionsGoals       bool
	MentionsPhilosophy  bool
}

// Time orientation values.
const (
	TimePast    = "past"
	TimePresent = "present"
	TimeFuture  = "future"
)

var positiveWords = []string{
	"happy", "joy", "grateful", "excited", "love", "wonderful", "amazing",
	"great", "good", "proud", "calm", "hopeful", "better", "accomplished",
	"peaceful", "thankful", "energized",
}

var negativeWords = []string{
	"sad", "angry", "anxious", "stressed", "tired", "frustrated", "worried",
	"afraid", "lonely", "overwhelmed", "upset", "terrible", "awful", "bad",
	"hopeless", "exhausted", "miserable",
}

var intensifiers = map[string]bool{"very": true, "really": true}

// topicCategory keeps a fixed declaration order; detected topics are
// reported in this order, not in text order.
type topicCategory struct {
	name     string
	keywords []string
}

var topicCategories = []topicCategory{
	{"work", []string{"work", "job", "boss", "office", "career", "meeting", "deadline"}},
	{"relationships", []string{"friend", "family", "partner", "relationship", "mother", "father", "marriage"}},
	{"health", []string{"health", "sleep", "exercise", "doctor", "sick", "pain", "energy"}},
	{"goals", []string{"goal", "plan", "habit", "progress", "achieve", "milestone"}},
	{"challenges", []string{"problem", "challenge", "struggle", "difficult", "stuck", "obstacle"}},
	{"learning", []string{"learn", "study", "course", "book", "skill", "practice"}},
	{"creativity", []string{"create", "write", "paint", "music", "art", "design"}},
}

var futureMarkers = []string{"will", "tomorrow", "going to", "next week", "plan to", "soon", "someday"}
var pastMarkers = []string{"yesterday", "used to", "last week", "remember when", "back then", "ago"}

var greetingPhrases = []string{"hello", "hey", "good morning", "good afternoon", "good evening"}
var questionPhrases = []string{"how do", "how can", "what should", "why do", "should i", "can i"}
var emotionWords = []string{"feel", "feeling", "felt", "emotion", "heart", "cry", "tears", "mood"}
var goalWords = []string{"goal", "plan", "productivity", "finish", "complete", "task", "focus", "habit"}
var philosophyWords = []string{"meaning", "purpose", "existence", "consciousness", "truth", "morality", "free will", "mortality", "philosophy"}

// Analyze classifies text by fixed keyword lists. Sentiment uses a one
// point hysteresis band so a single stray keyword cannot flip the
// verdict.
func Analyze(text string) Analysis {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)
	padded := " " + strings.Join(tokens, " ") + " "

	positive := affectScore(tokens, positiveWords)
	negative := affectScore(tokens, negativeWords)

	sentiment := types.SentimentNeutral
	switch {
	case positive > negative+1:
		sentiment = types.SentimentPositive
	case negative > positive+1:
		sentiment = types.SentimentNegative
	}

	var topics []string
	for _, cat := range topicCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				topics = append(topics, cat.name)
				break
			}
		}
	}

	orientation := TimePresent
	if containsAnyPhrase(lower, futureMarkers) {
		orientation = TimeFuture
	} else if containsAnyPhrase(lower, pastMarkers) {
		orientation = TimePast
	}

	return Analysis{
		Sentiment:           sentiment,
		Topics:              topics,
		TimeOrientation:     orientation,
		IsQuestion:          strings.Contains(text, "?") || containsAnyPhrase(lower, questionPhrases),
		IsGreeting:          containsAnyPhrase(lower, greetingPhrases) || hasToken(padded, "hi"),
		ContainsEmotionWord: containsAnyPhrase(lower, emotionWords),
		MentionsGoals:       containsAnyPhrase(lower, goalWords),
		MentionsPhilosophy:  containsAnyPhrase(lower, philosophyWords),
	}
}

// affectScore counts list-word occurrences; an occurrence immediately
// preceded by an intensifier earns a half-point bonus.
func affectScore(tokens []string, words []string) float64 {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}

	var score float64
	for i, tok := range tokens {
		if !set[tok] {
			continue
		}
		score++
		if i > 0 && intensifiers[tokens[i-1]] {
			score += 0.5
		}
	}
	return score
}

func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '\''
	})
}

// containsAnyPhrase is a plain substring-membership test; "hi" is the
// one entry short enough to need token matching (see IsGreeting).
func containsAnyPhrase(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func hasToken(padded, word string) bool {
	return strings.Contains(padded, " "+word+" ")
}
