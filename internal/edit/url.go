package edit

import (
	"regexp"
	"strings"
)

var urlRegex = regexp.MustCompile(`^https?://.+(\..+)+$`)

// IsURL reports whether text looks like an absolute http(s) URL.
func IsURL(text string) bool {
	return urlRegex.MatchString(text)
}

// NormalizeURL prefixes "http://" when raw has no http scheme.
// Empty input stays empty (the node becomes a folder).
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http") {
		return raw
	}
	return "http://" + raw
}
