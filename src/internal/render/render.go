// Package render turns parsed bibliography records into condensed plain-text
// citations: one prose paragraph per record, missing fields covered by
// documented placeholders.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bib2text/src/internal/arxiv"
	"bib2text/src/internal/bibtex"
	"bib2text/src/internal/stringsx"
)

// Placeholder text for absent fields.
const (
	UnknownAuthor      = "Unknown Author"
	UnknownYear        = "Unknown Year"
	Untitled           = "Untitled"
	UnknownProceedings = "Unknown Proceedings"
)

// Options controls optional clauses of the rendered citation.
type Options struct {
	MaxAuthors      int  // author-list truncation threshold
	IncludeAbstract bool // append the abstract clause
	IncludeURL      bool // append a URL/DOI clause when the body did not
}

// Normalizer converts embedded markup in a field value to plain prose.
// *latex.Converter satisfies it.
type Normalizer interface {
	Normalize(string) string
}

// Renderer assembles citations. The markup normalizer is an explicit
// dependency so the renderer stays pure and testable.
type Renderer struct {
	norm Normalizer
	opts Options
}

// New returns a Renderer using the given normalizer and options.
func New(norm Normalizer, opts Options) *Renderer {
	return &Renderer{norm: norm, opts: opts}
}

// bodyFunc writes the type-specific body clause and reports whether it
// already emitted a URL or DOI, so the optional URL clause is suppressed by
// an explicit signal instead of re-parsing the assembled text.
type bodyFunc func(r *Renderer, rec bibtex.Record, b *strings.Builder) bool

// bodyFormatters dispatches on the lowercased entry type. Types not listed
// here fall through to the generic bracketed-type body.
var bodyFormatters = map[string]bodyFunc{
	"article":       (*Renderer).bodyArticle,
	"inproceedings": (*Renderer).bodyProceedings,
	"conference":    (*Renderer).bodyProceedings,
	"proceedings":   (*Renderer).bodyProceedings,
	"techreport":    (*Renderer).bodyTechReport,
	"unpublished":   (*Renderer).bodyUnpublished,
	"book":          (*Renderer).bodyBook,
	"incollection":  (*Renderer).bodyBook,
	"software":      (*Renderer).bodySoftware,
	"dataset":       (*Renderer).bodyDataset,
	"online":        (*Renderer).bodyOnline,
}

// Render produces the one-paragraph citation for rec. Every record yields a
// non-empty line; only a record without a type tag is an error.
func (r *Renderer) Render(rec bibtex.Record) (string, error) {
	typ := strings.ToLower(strings.TrimSpace(rec.Type))
	if typ == "" {
		return "", fmt.Errorf("record %q has no entry type", rec.Key)
	}

	var b strings.Builder
	r.writeAuthorClause(&b, rec)

	if y := rec.Field("year"); y != "" {
		fmt.Fprintf(&b, "(%s) ", y)
	} else {
		b.WriteString("(" + UnknownYear + ") ")
	}

	if t := rec.Field("title"); t != "" {
		b.WriteString(r.norm.Normalize(t) + ". ")
	} else {
		b.WriteString(Untitled + ". ")
	}

	var urlEmitted bool
	if f, ok := bodyFormatters[typ]; ok {
		urlEmitted = f(r, rec, &b)
	} else {
		r.bodyGeneric(typ, rec, &b)
	}

	if info := arxiv.Detect(rec, r.norm.Normalize); info.Preprint {
		b.WriteString("[Preprint] ")
		if info.ID != "" {
			b.WriteString("arXiv:" + info.ID + " ")
		}
	}

	if r.opts.IncludeURL && !urlEmitted {
		if u := rec.Field("url"); u != "" {
			b.WriteString("URL: " + r.norm.Normalize(u) + " ")
		} else if d := rec.Field("doi"); d != "" {
			b.WriteString("DOI: " + r.norm.Normalize(d) + " ")
		}
	}

	if r.opts.IncludeAbstract {
		if a := rec.Field("abstract"); a != "" {
			b.WriteString("Abstract: " + r.norm.Normalize(a))
		}
	}

	return strings.TrimSpace(b.String()), nil
}

// writeAuthorClause emits authors, editors, or an organizational author, in
// that preference order.
func (r *Renderer) writeAuthorClause(b *strings.Builder, rec bibtex.Record) {
	if a := rec.Field("author"); a != "" {
		b.WriteString(r.FormatAuthors(a) + ". ")
		return
	}
	if e := rec.Field("editor"); e != "" {
		b.WriteString(r.FormatAuthors(e) + " (Eds.). ")
		return
	}
	org := stringsx.FirstNonEmpty(
		rec.Field("organization"),
		rec.Field("institution"),
		rec.Field("publisher"),
	)
	if org != "" {
		b.WriteString(r.norm.Normalize(org) + ". ")
		return
	}
	b.WriteString(UnknownAuthor + ". ")
}

// bodyArticle: journal, volume(number), pages. No journal means no clause.
func (r *Renderer) bodyArticle(rec bibtex.Record, b *strings.Builder) bool {
	j := rec.Field("journal")
	if j == "" {
		return false
	}
	b.WriteString(r.norm.Normalize(j))
	if v := rec.Field("volume"); v != "" {
		b.WriteString(", " + r.norm.Normalize(v))
	}
	if n := rec.Field("number"); n != "" {
		b.WriteString("(" + r.norm.Normalize(n) + ")")
	}
	if p := rec.Field("pages"); p != "" {
		b.WriteString(", " + r.norm.Normalize(p))
	}
	b.WriteString(". ")
	return false
}

func (r *Renderer) bodyProceedings(rec bibtex.Record, b *strings.Builder) bool {
	if bt := rec.Field("booktitle"); bt != "" {
		b.WriteString("In: " + r.norm.Normalize(bt) + ". ")
	} else {
		b.WriteString("In: " + UnknownProceedings + ". ")
	}
	return false
}

func (r *Renderer) bodyTechReport(rec bibtex.Record, b *strings.Builder) bool {
	if inst := rec.Field("institution"); inst != "" {
		b.WriteString("Technical Report, " + r.norm.Normalize(inst) + ". ")
	} else {
		b.WriteString("Technical Report. ")
	}
	return false
}

func (r *Renderer) bodyUnpublished(rec bibtex.Record, b *strings.Builder) bool {
	if n := rec.Field("note"); n != "" {
		b.WriteString(r.norm.Normalize(n) + ". ")
	} else {
		b.WriteString("Unpublished. ")
	}
	return false
}

// bodyBook: publisher and address are independently optional sentences.
func (r *Renderer) bodyBook(rec bibtex.Record, b *strings.Builder) bool {
	if p := rec.Field("publisher"); p != "" {
		b.WriteString(r.norm.Normalize(p) + ". ")
	}
	if a := rec.Field("address"); a != "" {
		b.WriteString(r.norm.Normalize(a) + ". ")
	}
	return false
}

func (r *Renderer) bodySoftware(rec bibtex.Record, b *strings.Builder) bool {
	if v := rec.Field("version"); v != "" {
		b.WriteString("[Software] v" + v + ". ")
	} else {
		b.WriteString("[Software]. ")
	}
	emitted := false
	if u := rec.Field("url"); u != "" {
		b.WriteString("Available at: " + r.norm.Normalize(u) + ". ")
		emitted = true
	} else if d := rec.Field("doi"); d != "" {
		b.WriteString("DOI: " + r.norm.Normalize(d) + ". ")
		emitted = true
	}
	if n := rec.Field("note"); n != "" {
		b.WriteString(r.norm.Normalize(n) + ". ")
	}
	return emitted
}

func (r *Renderer) bodyDataset(rec bibtex.Record, b *strings.Builder) bool {
	b.WriteString("[Dataset]. ")
	if p := rec.Field("publisher"); p != "" {
		b.WriteString(r.norm.Normalize(p) + ". ")
	}
	return false
}

func (r *Renderer) bodyOnline(rec bibtex.Record, b *strings.Builder) bool {
	b.WriteString("[Online]. ")
	emitted := false
	if u := rec.Field("url"); u != "" {
		b.WriteString("Available at: " + r.norm.Normalize(u) + ". ")
		emitted = true
	}
	if n := rec.Field("note"); n != "" {
		b.WriteString(r.norm.Normalize(n) + ". ")
	}
	return emitted
}

// bodyGeneric covers every type without a dedicated formatter: the
// capitalized type in brackets plus the first informative field, if any.
func (r *Renderer) bodyGeneric(typ string, rec bibtex.Record, b *strings.Builder) {
	b.WriteString("[" + cases.Title(language.English).String(typ) + "]. ")
	if v := rec.First("publisher", "institution", "organization", "howpublished", "note"); v != "" {
		b.WriteString(r.norm.Normalize(v) + ". ")
	}
}
