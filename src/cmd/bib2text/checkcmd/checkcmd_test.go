package checkcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bib2text/src/internal/bibtex"
)

func TestLint(t *testing.T) {
	recs := []bibtex.Record{
		{Type: "article", Key: "good", Fields: map[string]string{
			"author": "A", "title": "T", "year": "2020", "url": "https://ok.org",
		}},
		{Type: "misc", Key: "bare", Fields: map[string]string{}},
		{Type: "misc", Key: "BARE", Fields: map[string]string{
			"author": "A", "title": "T", "year": "n.d.", "url": "not a url",
		}},
	}
	warnings := Lint(recs)
	joined := strings.Join(warnings, "\n")
	for _, want := range []string{
		"bare: no author, editor, or organizational author",
		"bare: missing title",
		"bare: missing year",
		"BARE: duplicate citation key",
		`BARE: non-numeric year "n.d."`,
		`BARE: invalid url "not a url"`,
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing warning %q in:\n%s", want, joined)
		}
	}
	for _, w := range warnings {
		if strings.HasPrefix(w, "good:") {
			t.Fatalf("clean record should produce no warnings: %q", w)
		}
	}
}

func TestLintUnkeyedRecordLabel(t *testing.T) {
	warnings := Lint([]bibtex.Record{{Type: "misc", Fields: map[string]string{}}})
	if len(warnings) == 0 || !strings.HasPrefix(warnings[0], "record 1:") {
		t.Fatalf("unkeyed records get a positional label: %v", warnings)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	src := "@misc{only, note={no title here}}"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmd := New()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "only: missing title") || !strings.Contains(out, "1 records, ") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRunParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.bib")
	if err := os.WriteFile(path, []byte("@{orphan, title={T}}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cmd := New()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("parse error must surface")
	}
}
