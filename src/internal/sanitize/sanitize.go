package sanitize

import (
	"net/url"
	"strings"
)

// CleanString trims the string and removes ASCII control characters except
// tab, newline and carriage return. BibTeX field values occasionally carry
// stray control bytes from copy-pasted reference-manager exports.
func CleanString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanURL returns a validated http/https URL or empty string.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	// remove embedded whitespace
	u.Path = strings.ReplaceAll(u.Path, " ", "%20")
	return u.String()
}
