package client

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/lanceyyyy/balentayms/pkg/types"
)

var reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// fallback is returned when the model's answer cannot be used. It never
// claims a heart.
func fallback(description string, tags ...string) *types.ReviewResult {
	return &types.ReviewResult{
		IsHeart:     false,
		Confidence:  0.1,
		Description: description,
		Tags:        append([]string{"fallback"}, tags...),
	}
}

// ParseReview parses a model answer into a review. Unusable answers produce a
// conservative fallback rather than an error.
func ParseReview(raw string) *types.ReviewResult {
	raw = SanitizeJSON(raw)

	if !strings.HasPrefix(raw, "{") {
		return fallback("Model returned non-JSON response", "non-json")
	}

	var result types.ReviewResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return fallback("Failed to parse model response", "parse-error")
	}
	return &result
}

// SanitizeJSON removes code fences, comments, and trailing commas from a
// model's JSON answer and keeps the outermost object.
func SanitizeJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		if i := strings.Index(raw, "\n"); i >= 0 {
			raw = raw[i+1:]
		}
		if j := strings.LastIndex(raw, "```"); j >= 0 {
			raw = raw[:j]
		}
	}
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "`")

	raw = stripComments(raw)
	raw = reTrailingComma.ReplaceAllString(raw, "$1")

	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	return strings.TrimSpace(raw)
}

// stripComments removes // and /* */ comments outside JSON strings
func stripComments(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	inString, escaped := false, false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			sb.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			sb.WriteByte(c)
		case c == '/' && i+1 < len(raw) && raw[i+1] == '/':
			end := strings.IndexByte(raw[i:], '\n')
			if end < 0 {
				return sb.String()
			}
			i += end - 1
		case c == '/' && i+1 < len(raw) && raw[i+1] == '*':
			end := strings.Index(raw[i+2:], "*/")
			if end < 0 {
				return sb.String()
			}
			i += end + 3
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
