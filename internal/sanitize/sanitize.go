// Package sanitize redacts PII-shaped substrings from journal text
// before it is sent to an external model or written to a log.
package sanitize

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules are applied in declaration order. Phone, ID and card patterns
// are anchored on word boundaries so a longer digit run is never
// partially consumed by a shorter pattern.
var rules = []rule{
	{regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`), "[EMAIL REDACTED]"},
	{regexp.MustCompile(`\(\d{3}\)\s?\d{3}[ .-]?\d{4}`), "[PHONE REDACTED]"},
	{regexp.MustCompile(`\b\d{3}[ .-]\d{3}[ .-]\d{4}\b`), "[PHONE REDACTED]"},
	{regexp.MustCompile(`\b\d{10}\b`), "[PHONE REDACTED]"},
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[ID REDACTED]"},
	{regexp.MustCompile(`\b\d{9}\b`), "[ID REDACTED]"},
	{regexp.MustCompile(`\b\d{4}[ -]\d{4}[ -]\d{4}[ -]\d{4}\b`), "[PAYMENT INFO REDACTED]"},
	{regexp.MustCompile(`\b\d{16}\b`), "[PAYMENT INFO REDACTED]"},
}

// Redact replaces PII-shaped substrings with fixed markers. It is a
// total function: any input, including the empty string, is accepted,
// and applying it twice yields the same output as applying it once.
func Redact(text string) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}
