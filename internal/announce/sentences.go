package announce

import (
	"regexp"
	"strings"
)

// Sentence counting has to survive acronyms ("H.E.R.O.") and
// abbreviations ("Mr."). Their periods are swapped for a marker before
// splitting and restored afterwards.
const periodMarker = "§"

var (
	acronymRe      = regexp.MustCompile(`(?:[A-Z]\.){2,}`)
	abbreviationRe = regexp.MustCompile(`\b[A-Z][a-z]\.`)
)

// ClampSentences truncates text to at most max sentences. Text already
// within the limit is returned unchanged.
func ClampSentences(text string, max int) string {
	sentences := splitSentences(text)
	if len(sentences) <= max {
		return text
	}
	return strings.Join(sentences[:max], ". ") + "."
}

func splitSentences(text string) []string {
	protected := acronymRe.ReplaceAllStringFunc(text, protectPeriods)
	protected = abbreviationRe.ReplaceAllStringFunc(protected, protectPeriods)

	var sentences []string
	for _, part := range strings.Split(protected, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, periodMarker, ".")

		// Short all-caps fragments are stray acronym pieces, not
		// sentences.
		if len(part) <= 10 && part == strings.ToUpper(part) && strings.ContainsAny(part, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}

func protectPeriods(s string) string {
	return strings.ReplaceAll(s, ".", periodMarker)
}
