package render

import "strings"

// FormatAuthors turns a raw BibTeX author/editor field into a display list.
// Names are split on the literal " and " conjunction after markup
// normalization; lists longer than MaxAuthors are cut to MaxAuthors-1 names
// plus "et al.". With MaxAuthors at or below one there is nothing to show in
// front of the suffix, so the whole list collapses to a bare "et al.".
func (r *Renderer) FormatAuthors(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return UnknownAuthor
	}
	var authors []string
	for _, name := range strings.Split(r.norm.Normalize(raw), " and ") {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) == 0 {
		return UnknownAuthor
	}
	if len(authors) <= r.opts.MaxAuthors {
		return strings.Join(authors, ", ")
	}
	shown := r.opts.MaxAuthors - 1
	if shown <= 0 {
		return "et al."
	}
	return strings.Join(authors[:shown], ", ") + ", et al."
}
