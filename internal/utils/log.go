package utils

import "strings"

// Head returns the first limit runes of s. No trimming is applied and no marker is added.
func Head(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	head := Head(s, limit)
	if head == s {
		return s
	}
	return head + "..."
}
