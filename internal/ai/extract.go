package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes markdown code fences wrapped around a model reply.
// Models regularly return ```json ... ``` even when told not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractJSON returns the first JSON object or array embedded in a model
// reply, after fence stripping. Falls back to the stripped text when no
// bracketed region is found.
func ExtractJSON(s string) string {
	s = StripFences(s)
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	var end int
	if s[start] == '{' {
		end = strings.LastIndexByte(s, '}')
	} else {
		end = strings.LastIndexByte(s, ']')
	}
	if end <= start {
		return s
	}
	return s[start : end+1]
}

// DecodeJSON parses a model reply into v, tolerating markdown fences and
// surrounding prose.
func DecodeJSON(reply string, v any) error {
	cleaned := ExtractJSON(reply)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("parse model reply: %w (reply: %.200s)", err, cleaned)
	}
	return nil
}
