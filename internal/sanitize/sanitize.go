// Package sanitize turns free-form language model output into text that a
// standard JSON parser has a fair chance of accepting.
//
// The cleanup is purely textual. Comment and trailing-comma removal do not
// understand JSON strings, so a string value that contains "//", "/*" or a
// comma right before a closing bracket can be altered. Callers that need such
// values intact should not route them through Sanitize.
package sanitize

import (
	"regexp"
	"strings"
)

// Empty is returned for any input that cannot be coerced into an object.
const Empty = "{}"

var (
	openingFence  = regexp.MustCompile("^```[\\w.+-]*[ \\t]*\\r?\\n?")
	lineComment   = regexp.MustCompile(`(?m)^[ \t]*//[^\n]*\n?`)
	blockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// Sanitize normalizes raw model output into a string that starts with "{".
// It never fails: anything that cannot be salvaged becomes Empty. The empty
// string stands in for absent input.
func Sanitize(raw string) string {
	return sanitize(raw)
}

// SanitizeBytes is Sanitize for a response body. A nil slice is absent input.
func SanitizeBytes(raw []byte) string {
	if raw == nil {
		return Empty
	}
	return sanitize(string(raw))
}

func sanitize(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Empty
	}

	text = stripFence(text)
	text = stripComments(text)
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "{")
		if start < 0 {
			return Empty
		}
		if end := strings.LastIndex(text, "}"); end > start {
			text = text[start : end+1]
		} else {
			text = text[start:]
		}
	}

	text = stripTrailingCommas(text)
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "{") {
		return Empty
	}
	return text
}

// stripFence drops a leading ``` fence line and everything from the
// closing fence onward. A missing closing fence keeps the remainder.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = openingFence.ReplaceAllString(text, "")
	if end := strings.Index(text, "```"); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}

func stripComments(text string) string {
	text = lineComment.ReplaceAllString(text, "")
	return blockComment.ReplaceAllString(text, "")
}

// stripTrailingCommas repeats until stable so that runs like ",,]" collapse.
func stripTrailingCommas(text string) string {
	for {
		next := trailingComma.ReplaceAllString(text, "$1")
		if next == text {
			return next
		}
		text = next
	}
}
