package sanitize

import (
	"net/url"
	"testing"
	"unicode/utf8"
)

func TestCleanString(t *testing.T) {
	out := CleanString("  \tHello\x00World\n  ")
	if out != "HelloWorld" {
		t.Fatalf("CleanString unexpected: %q", out)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("CleanString produced invalid utf8")
	}
	if s := CleanString("  "); s != "" {
		t.Fatalf("CleanString blank: want '', got %q", s)
	}
	if s := CleanString("a\tb\nc"); s != "a\tb\nc" {
		t.Fatalf("CleanString should keep tab/newline: %q", s)
	}
}

func TestCleanURL(t *testing.T) {
	if CleanURL("") != "" {
		t.Fatalf("CleanURL empty should be empty")
	}
	if CleanURL("not a url") != "" {
		t.Fatalf("CleanURL invalid should be empty")
	}
	u := CleanURL("https://example.com/a b")
	if _, err := url.Parse(u); err != nil {
		t.Fatalf("CleanURL not parseable: %v", err)
	}
	if CleanURL("ftp://x") != "" {
		t.Fatalf("only http/https allowed")
	}
}
