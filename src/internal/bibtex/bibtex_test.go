package bibtex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseBasic(t *testing.T) {
	src := `
% a comment line
@article{smith2020,
  author  = {Smith, Jane and Doe, John},
  Title   = {A {Grand} Theory},
  journal = {Nature},
  volume  = {12},
  year    = 2020,
}

@book{plato,
  title = "The Republic",
  publisher = {Penguin}
}
`
	recs, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	a := recs[0]
	if a.Type != "article" || a.Key != "smith2020" {
		t.Fatalf("record 0: %+v", a)
	}
	if got := a.Field("author"); got != "Smith, Jane and Doe, John" {
		t.Fatalf("author: %q", got)
	}
	// field names lowercased at parse time
	if got := a.Field("TITLE"); got != "A {Grand} Theory" {
		t.Fatalf("title lookup should be case-insensitive, got %q", got)
	}
	if got := a.Field("year"); got != "2020" {
		t.Fatalf("bare year: %q", got)
	}
	b := recs[1]
	if b.Field("title") != "The Republic" || b.Field("publisher") != "Penguin" {
		t.Fatalf("record 1: %+v", b)
	}
}

func TestParseMacrosAndDirectives(t *testing.T) {
	src := `
@string{jmlr = {Journal of Machine Learning Research}}
@comment{this block is ignored {even nested}}
@preamble{"\newcommand{\noop}[1]{#1}"}

@article{a,
  journal = jmlr,
  month   = sep,
  title   = {T},
}
`
	recs, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("directives must not become records, got %d", len(recs))
	}
	if got := recs[0].Field("journal"); got != "Journal of Machine Learning Research" {
		t.Fatalf("@string macro: %q", got)
	}
	if got := recs[0].Field("month"); got != "September" {
		t.Fatalf("month macro: %q", got)
	}
}

func TestParseConcatenation(t *testing.T) {
	src := `@misc{m, note = "part one" # { and } # "part two"}`
	recs, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := recs[0].Field("note"); got != "part one and part two" {
		t.Fatalf("concatenation: %q", got)
	}
}

func TestParseMissingType(t *testing.T) {
	_, err := Parse("@{orphan,\n  title = {T},\n}")
	if err == nil {
		t.Fatalf("expected error for record without a type tag")
	}
	if !strings.Contains(err.Error(), "type") {
		t.Fatalf("error should mention the type tag: %v", err)
	}
}

func TestParseControlCharsStripped(t *testing.T) {
	recs, err := Parse("@misc{m, title = {Be\x00fore}}")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := recs[0].Field("title"); got != "Before" {
		t.Fatalf("control char survived: %q", got)
	}
}

func TestRecordFirst(t *testing.T) {
	r := Record{Type: "misc", Fields: map[string]string{
		"organization": "  ",
		"institution":  "MIT",
		"publisher":    "Elsevier",
	}}
	if got := r.First("organization", "institution", "publisher"); got != "MIT" {
		t.Fatalf("First: want MIT, got %q", got)
	}
	if got := r.First("editor", "series"); got != "" {
		t.Fatalf("First absent: want '', got %q", got)
	}
	if r.Has("organization") {
		t.Fatalf("blank field should not count as present")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(path, []byte("@misc{m, title={T}}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(recs) != 1 || recs[0].Field("title") != "T" {
		t.Fatalf("unexpected records: %+v", recs)
	}
	if _, err := ParseFile(filepath.Join(dir, "missing.bib")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
