// Package sanitize turns raw backend diagnostics into short, user-safe log labels.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Log removes fenced code blocks from v, cuts it at the first colon and
// collapses whitespace. Values that are not strings yield "".
func Log(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = codeBlockRe.ReplaceAllString(s, "")
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Logs sanitizes each entry in order and drops the ones that end up blank.
func Logs(entries []any) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if s := Log(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}
