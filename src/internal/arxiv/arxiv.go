// Package arxiv detects preprint indicators buried in free-text BibTeX
// fields and pulls out the numeric arXiv identifier when one is present.
package arxiv

import (
	"regexp"
	"strings"

	"bib2text/src/internal/bibtex"
)

// Info is the outcome of a preprint scan for one record.
type Info struct {
	Preprint bool
	ID       string
}

// scanFields lists the fields that may carry arXiv information, in the
// order they are checked.
var scanFields = []string{"journal", "note", "publisher", "howpublished", "url", "doi"}

// idPatterns are the identifier shapes tried in order against each field;
// the first match in a field wins.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)arxiv:(\d+\.\d+)`),
	regexp.MustCompile(`(?i)arxiv/(\d+\.\d+)`),
	regexp.MustCompile(`(?i)abs/(\d+\.\d+)`),
}

// Detect scans the record for preprint indicators. Each candidate field is
// normalized and lowercased before matching; the substring "arxiv" or
// "preprint" anywhere sets the flag. An identifier found in an earlier field
// is kept even when later fields would also match. Records with the flag set
// but no extractable identifier return an empty ID.
func Detect(rec bibtex.Record, normalize func(string) string) Info {
	var info Info
	for _, name := range scanFields {
		raw := rec.Field(name)
		if raw == "" {
			continue
		}
		text := strings.ToLower(normalize(raw))
		if !strings.Contains(text, "arxiv") && !strings.Contains(text, "preprint") {
			continue
		}
		info.Preprint = true
		if info.ID != "" {
			continue
		}
		for _, pat := range idPatterns {
			if m := pat.FindStringSubmatch(text); m != nil {
				info.ID = m[1]
				break
			}
		}
	}
	return info
}
