package llm

import (
	"regexp"
	"strings"
)

var fenceRE = regexp.MustCompile("```[a-zA-Z]*\n?")

// StripCodeFences removes Markdown code fences that models like to wrap
// around JSON even when asked not to.
func StripCodeFences(s string) string {
	s = fenceRE.ReplaceAllString(s, "")
	return strings.Trim(s, "`\n ")
}
