package util

import (
	"regexp"
	"strings"
)

var codeFenceRegexp = regexp.MustCompile("(?s)```[a-zA-Z]*\n?(.*?)```")

// StripCodeFence unwraps text an LLM returned inside a markdown code
// block; text without a fence passes through trimmed.
func StripCodeFence(text string) string {
	matches := codeFenceRegexp.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return strings.TrimSpace(text)
}
