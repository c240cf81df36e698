package postprocess

import "strings"

// StripFences removes a single leading/trailing markdown code fence, along
// with any language tag on the opening fence. Only the outer wrapper is
// stripped; interior fence delimiters are left untouched.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line, including a language tag like ```html
	rest := trimmed[len("```"):]
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[idx+1:]
	} else {
		rest = ""
	}

	rest = strings.TrimSpace(rest)
	if strings.HasSuffix(rest, "```") {
		rest = strings.TrimSuffix(rest, "```")
	}

	return strings.TrimSpace(rest)
}
