// Package names handles the personal-name forms found in BibTeX author
// fields: "Family, Given Names" and "Given Names Family".
package names

import "strings"

// Family returns the family name of a single author name. Names written
// "Family, Given" split at the first comma; otherwise the last
// whitespace-separated word is taken as the family name.
func Family(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if i := strings.Index(name, ","); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	parts := strings.Fields(name)
	return parts[len(parts)-1]
}

// First returns the first author of a raw BibTeX author field, where
// multiple authors are joined with the literal " and " conjunction.
func First(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if i := strings.Index(raw, " and "); i >= 0 {
		return strings.TrimSpace(raw[:i])
	}
	return raw
}
