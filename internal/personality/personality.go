// Package personality maps named response styles to the system
// instruction blocks used for live generation and the fragment pools
// used to flavor fallback replies. Both live in one registry so a
// style can never exist on one path without the other.
package personality

import (
	"strings"

	"github.com/inkwell-labs/inkwell/internal/types"
)

// Type is a built-in personality key.
type Type string

const (
	Default             Type = "default"
	Socratic            Type = "socratic"
	Stoic               Type = "stoic"
	Existentialist      Type = "existentialist"
	Analytical          Type = "analytical"
	Poetic              Type = "poetic"
	Humorous            Type = "humorous"
	Zen                 Type = "zen"
	EmpatheticListener  Type = "empathetic-listener"
	SolutionFocused     Type = "solution-focused"
	TraumaInformed      Type = "trauma-informed"
	MindfulnessBased    Type = "mindfulness-based"
	CognitiveBehavioral Type = "cognitive-behavioral"
	StrengthBased       Type = "strength-based"
	HolisticWellness    Type = "holistic-wellness"
)

// transformRule says how a fallback fragment combines with the base
// reply.
type transformRule int

const (
	transformIdentity transformRule = iota
	transformAppend
	transformPrepend
)

// Profile defines one personality on both generation paths.
type Profile struct {
	Instruction string
	Fragments   []string
	transform   transformRule
}

const customStyleNotice = "Custom reflection styles are applied in full when live generation is available."

// Normalize maps an unknown, non-custom-shaped identifier to Default.
// Custom-shaped identifiers are preserved by the caller; this function
// only resolves built-in keys.
func Normalize(raw string) Type {
	if _, ok := registry[Type(raw)]; ok {
		return Type(raw)
	}
	return Default
}

// IsCustomRef reports whether the identifier has the shape of a stored
// custom personality reference: a 24 character lowercase hex id.
func IsCustomRef(raw string) bool {
	if len(raw) != 24 {
		return false
	}
	for _, r := range raw {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// BuiltinTypes returns every registered personality key.
func BuiltinTypes() []Type {
	keys := make([]Type, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	return keys
}

// SystemInstructions composes the support-type base message with the
// personality block. Custom instructions, when present, replace the
// built-in block verbatim and always follow the base message.
func SystemInstructions(support types.SupportType, personality string, custom string) string {
	base, ok := supportInstructions[support]
	if !ok {
		base = supportInstructions[types.SupportGeneral]
	}

	if strings.TrimSpace(custom) != "" {
		return base + "\n\n" + strings.TrimSpace(custom)
	}

	profile := registry[Normalize(personality)]
	if profile.Instruction == "" {
		return base
	}
	return base + "\n\n" + profile.Instruction
}

// Apply flavors a fallback reply with the personality's fragment pool.
// The pick function chooses the fragment index, so callers control
// randomness. Custom references degrade to the identity transform plus
// a one-line notice rather than an error.
func Apply(personality string, base string, custom string, pick func(n int) int) string {
	if IsCustomRef(personality) || strings.TrimSpace(custom) != "" {
		return base + " " + customStyleNotice
	}

	profile := registry[Normalize(personality)]
	if profile.transform == transformIdentity || len(profile.Fragments) == 0 {
		return base
	}

	fragment := profile.Fragments[pick(len(profile.Fragments))]
	if profile.transform == transformPrepend {
		return fragment + " " + base
	}
	return base + " " + fragment
}

// Lookup exposes a profile for invariant checks in tests.
func Lookup(p Type) (Profile, bool) {
	profile, ok := registry[p]
	return profile, ok
}

var supportInstructions = map[types.SupportType]string{
	types.SupportEmotional: "You are a warm, attentive companion inside a private journaling app. " +
		"The writer is processing feelings, not asking for a lecture. Validate what they felt, " +
		"reflect it back in plain words, and ask at most one gentle question. Never diagnose.",
	types.SupportProductivity: "You are a pragmatic coach inside a private journaling app. " +
		"Help the writer turn what they wrote into one or two small, concrete next steps. " +
		"Acknowledge effort before suggesting changes, and keep advice specific to what they said.",
	types.SupportPhilosophy: "You are a thoughtful dialogue partner inside a private journaling app. " +
		"Treat the writer's entry as an open question about how to live. Explore it with them, " +
		"offer a perspective or a thinker worth sitting with, and leave room for their own answer.",
	types.SupportGeneral: "You are a friendly companion inside a private journaling app. " +
		"Respond to the writer's entry conversationally, stay curious about their day, " +
		"and keep replies short and human.",
}
