package sentiment

import (
	"strings"

	"github.com/inkwell-labs/inkwell/internal/types"
)

// Compact affect lists for the deterministic path. They are
// intentionally smaller than the lexical analyzer's: moods double as
// user-facing labels, so only clean single words qualify.
var positiveMoodWords = []string{
	"happy", "grateful", "excited", "calm", "hopeful", "proud", "content", "joyful", "relaxed",
}

var negativeMoodWords = []string{
	"sad", "anxious", "stressed", "angry", "tired", "frustrated", "worried", "lonely", "overwhelmed",
}

// genericMoods pads the label list when fewer than three keywords
// matched. Keyed by the winning sentiment.
var genericMoods = map[types.Sentiment][]string{
	types.SentimentPositive: {"Content", "Optimistic", "Energized"},
	types.SentimentNegative: {"Strained", "Weary", "Unsettled"},
	types.SentimentNeutral:  {"Reflective", "Thoughtful", "Steady"},
}

// fallbackClassify derives a classification from keyword counts.
// Confidence starts at 0.6 and grows with the winning count, capped
// at 0.9.
func fallbackClassify(text string) types.SentimentResult {
	lower := strings.ToLower(text)

	posMatches := matches(lower, positiveMoodWords)
	negMatches := matches(lower, negativeMoodWords)

	sentiment := types.SentimentNeutral
	wins := 0
	matched := posMatches
	switch {
	case len(posMatches) > len(negMatches):
		sentiment = types.SentimentPositive
		wins = len(posMatches)
	case len(negMatches) > len(posMatches):
		sentiment = types.SentimentNegative
		wins = len(negMatches)
		matched = negMatches
	default:
		matched = nil
	}

	moods := make([]string, 0, 3)
	for _, w := range matched {
		moods = append(moods, titleCase(w))
		if len(moods) == 3 {
			break
		}
	}
	for _, g := range genericMoods[sentiment] {
		if len(moods) == 3 {
			break
		}
		moods = append(moods, g)
	}

	return types.SentimentResult{
		Moods:      moods,
		Sentiment:  sentiment,
		Confidence: 0.6 + min(0.3, 0.05*float64(wins)),
	}
}

func matches(lower string, words []string) []string {
	var out []string
	for _, w := range words {
		if strings.Contains(lower, w) {
			out = append(out, w)
		}
	}
	return out
}

func titleCase(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
