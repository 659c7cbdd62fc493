package stringutils

import (
	"regexp"
	"strings"
)

var multiSpacePattern = regexp.MustCompile(`\s+`)

// subjectCutset holds the characters stripped from both ends of a generated subject.
const subjectCutset = " \t\r\n\"'`“”‘’"

// CleanSubject strips surrounding quotes and whitespace from a model-generated subject
// and collapses inner runs of whitespace.
func CleanSubject(raw string) string {
	cleaned := strings.Trim(raw, subjectCutset)
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// TruncateTitle truncates a title to a maximum length, breaking at word boundaries
func TruncateTitle(title string, maxLen int) string {
	runes := []rune(title)
	if maxLen <= 0 || len(runes) <= maxLen {
		return title
	}

	// Reserve space for ellipsis so the final string never exceeds maxLen
	ellipsis := "..."
	contentLimit := maxLen - len(ellipsis)
	if contentLimit < 0 {
		contentLimit = 0
	}

	truncated := string(runes[:contentLimit])
	minLen := len(truncated) / 2

	// Prefer to cut on a word boundary when possible
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > minLen {
		truncated = strings.TrimRight(truncated[:lastSpace], " ")
	}

	return truncated + ellipsis
}

// GenerateTitle creates a clean, truncated title from a raw subject completion.
func GenerateTitle(raw string, maxLen int) string {
	cleaned := CleanSubject(raw)
	if cleaned == "" {
		return ""
	}
	return TruncateTitle(cleaned, maxLen)
}
