package responder

import (
	"github.com/inkwell-labs/inkwell/internal/lexical"
	"github.com/inkwell-labs/inkwell/internal/personality"
	"github.com/inkwell-labs/inkwell/internal/types"
)

// templatePool holds the candidate replies for one support type.
// Bucket precedence is fixed: greeting, then question, then the
// support-specific content flag, then generic.
type templatePool struct {
	greeting []string
	question []string
	flagged  []string
	generic  []string
}

// fallbackReply deterministically routes the last user turn to a
// template bucket and flavors the chosen template with the requested
// personality. It never fails and never returns an empty string.
func (s *Service) fallbackReply(window []types.ChatMessage, support types.SupportType, personalityRaw, custom string) string {
	last := lastUserContent(window)
	analysis := lexical.Analyze(last)

	pool := fallbackPools[support]
	bucket := pool.generic
	switch {
	case analysis.IsGreeting:
		bucket = pool.greeting
	case analysis.IsQuestion:
		bucket = pool.question
	case contentFlag(support, analysis) && len(pool.flagged) > 0:
		bucket = pool.flagged
	}

	base := bucket[s.pick(len(bucket))]
	return personality.Apply(personalityRaw, base, custom, s.pick)
}

// contentFlag is the support-specific third bucket condition. The
// general pool has no content flag and goes straight to generic.
func contentFlag(support types.SupportType, a lexical.Analysis) bool {
	switch support {
	case types.SupportEmotional:
		return a.ContainsEmotionWord
	case types.SupportProductivity:
		return a.MentionsGoals
	case types.SupportPhilosophy:
		return a.MentionsPhilosophy
	default:
		return false
	}
}

func lastUserContent(window []types.ChatMessage) string {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Role == types.RoleUser {
			return window[i].Content
		}
	}
	return ""
}

var fallbackPools = map[types.SupportType]templatePool{
	types.SupportEmotional: {
		greeting: []string{
			"Hi, it's good to see you here. How has your heart been today?",
			"Hello. I'm glad you came back to write. What's sitting with you right now?",
			"Hey there. Take a breath, settle in, and tell me how today has felt.",
		},
		question: []string{
			"That's a real question, and it deserves more than a quick answer. What does your gut say when you ask it?",
			"I hear you searching for an answer. Sometimes writing out the question is the first half of it. What feels most true so far?",
			"You're asking something important. Before looking for the answer, what would it change for you to have one?",
		},
		flagged: []string{
			"Those feelings are worth the space you're giving them here. Naming them is already a step toward carrying them more lightly.",
			"It sounds like a lot is moving inside you. Whatever you're feeling, it's allowed to take up room on this page.",
			"Thank you for trusting this page with how you feel. Emotions written down tend to lose a little of their weight.",
		},
		generic: []string{
			"Thank you for writing today. Whatever brought you here, putting it into words matters.",
			"I'm here with what you wrote. There's no rush; say more whenever you're ready.",
			"However today went, showing up to reflect on it counts for something.",
		},
	},
	types.SupportProductivity: {
		greeting: []string{
			"Hello! Good to see you checking in. What's the one thing you'd like to move forward today?",
			"Hi there. Let's make this useful: what's on your plate right now?",
			"Hey! A quick check-in can set up the whole day. What are you working toward?",
		},
		question: []string{
			"Good question. Try flipping it: if the week went perfectly, what would have happened? Work back from there.",
			"When you're unsure how to proceed, shrink the step. What's a version of this you could finish in ten minutes?",
			"That's worth thinking through. What would you advise a friend who asked you the same thing?",
		},
		flagged: []string{
			"A goal on paper is halfway to a plan. What's the very next physical action it needs?",
			"Progress loves specifics. Pick one task, give it a when and a where, and it's far more likely to happen.",
			"You're clearly oriented toward your goals today. Choose the smallest next step and protect ten minutes for it.",
		},
		generic: []string{
			"Noted. One honest journal entry is worth three productivity apps. What would make today feel like a win?",
			"Thanks for checking in. Small consistent steps beat big occasional pushes.",
			"Whatever got done today, writing it down makes tomorrow's start easier.",
		},
	},
	types.SupportPhilosophy: {
		greeting: []string{
			"Greetings. Every good dialogue starts somewhere ordinary. What's been on your mind?",
			"Hello, fellow traveler. What question has been following you around lately?",
			"Welcome back. The examined life resumes whenever you pick up the pen.",
		},
		question: []string{
			"A genuine question is rarer than an answer. Stay with it a while: what premises is it resting on?",
			"Philosophers would say you've already done the hard part by asking. What answer would you be afraid to hear?",
			"Questions like this don't close; they deepen. What would change in your life if you never resolved it?",
		},
		flagged: []string{
			"Meaning tends to show up in the living, not the defining. What moment recently felt genuinely significant?",
			"You're circling one of the old questions. The Stoics, the existentialists, and the mystics all disagreed, which suggests the answer might be yours to make.",
			"Purpose is less a thing you find and more a direction you keep choosing. What have you kept choosing lately?",
		},
		generic: []string{
			"There's more in an honest page of journaling than in many lectures. Keep pulling on the thread you started.",
			"What you wrote touches on how a life should go, which is the oldest question there is. Keep going.",
			"An unexamined day isn't wasted, but an examined one gives more back. This entry is that examination.",
		},
	},
	types.SupportGeneral: {
		greeting: []string{
			"Hello! It's nice to hear from you. How has your day been treating you?",
			"Hi there! I'm glad you stopped by to write. What's new in your world?",
			"Hey! Good to see you. What would you like to get out of today's entry?",
		},
		question: []string{
			"That's a fair question. Sometimes writing around it for a few minutes shakes an answer loose.",
			"Good question. What's your first instinct? First instincts in a journal are usually worth examining.",
			"I'd sit with that one for a bit. What made it come up today?",
		},
		flagged: nil,
		generic: []string{
			"Thanks for sharing that. Even an ordinary day has something worth noticing in it.",
			"Got it. Keep writing; the interesting part of an entry is usually the second paragraph.",
			"That's a solid entry. Anything else from today you want to keep on record?",
		},
	},
}
