// Package problem turns the tagged text returned by the problem service into
// the title, description and examples shown to the learner.
package problem

import "strings"

// Tag names understood by Parse.
const (
	TagTitle       = "title"
	TagDescription = "description"
	TagExamples    = "examples"
)

// Placeholders used when a tag pair is missing from the problem text.
const (
	DefaultTitle       = "Untitled Problem"
	DefaultDescription = "No description provided."
	DefaultExamples    = "No examples provided."
)

// Problem is the displayable view of a generated problem text.
type Problem struct {
	Title       string
	Description string
	Examples    string
}

// ExtractTag returns the text between the first <tag> and the first </tag>
// that follows it. Matching is case-sensitive, spans line breaks and does not
// look inside nested tags. The inner text is returned untrimmed; ok is false
// when the text holds no complete pair.
func ExtractTag(text, tag string) (inner string, ok bool) {
	open := "<" + tag + ">"
	closing := "</" + tag + ">"

	start := strings.Index(text, open)
	if start < 0 {
		return "", false
	}
	start += len(open)

	end := strings.Index(text[start:], closing)
	if end < 0 {
		return "", false
	}
	return text[start : start+end], true
}

// Parse extracts the three problem fields from text, trimming each one and
// falling back to its placeholder when the tag pair is absent or empty.
func Parse(text string) Problem {
	return Problem{
		Title:       field(text, TagTitle, DefaultTitle),
		Description: field(text, TagDescription, DefaultDescription),
		Examples:    field(text, TagExamples, DefaultExamples),
	}
}

// HasAnyTag reports whether text carries at least one recognised tag pair.
func HasAnyTag(text string) bool {
	for _, tag := range []string{TagTitle, TagDescription, TagExamples} {
		if _, ok := ExtractTag(text, tag); ok {
			return true
		}
	}
	return false
}

func field(text, tag, fallback string) string {
	inner, ok := ExtractTag(text, tag)
	if !ok || inner == "" {
		return fallback
	}
	return strings.TrimSpace(inner)
}
