package latex

import "testing"

func TestNormalize(t *testing.T) {
	c := NewConverter()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"plain", "Plain text stays", "Plain text stays"},
		{"acute", `G\'omez`, "Gómez"},
		{"acute braced", `G\'{o}mez`, "Gómez"},
		{"grave", "Gr\\`ave", "Gràve"},
		{"umlaut", `Schr\"odinger`, "Schrödinger"},
		{"umlaut grouped", `Schr{\"o}dinger`, "Schrödinger"},
		{"cedilla", `Fran\c{c}ois`, "François"},
		{"caron", `Dvo\v{r}\'ak`, "Dvořák"},
		{"tilde", `Pe\~na`, "Peña"},
		{"dotless i", `\'\i`, "í"},
		{"ring", `{\aa}ngstr\"om`, "ångström"},
		{"oslash", `S{\o}rensen`, "Sørensen"},
		{"eszett", `Stra{\ss}e`, "Straße"},
		{"emph", `\emph{Nature}`, "Nature"},
		{"textbf", `\textbf{bold} rest`, "bold rest"},
		{"url wrapper", `\url{https://example.com}`, "https://example.com"},
		{"ampersand", `Foo \& Bar`, "Foo & Bar"},
		{"percent", `95\% sure`, "95% sure"},
		{"nbsp", `vol.~3`, "vol. 3"},
		{"page range", "12--34", "12-34"},
		{"em dash", "yes---no", "yes-no"},
		{"single hyphen", "state-of-the-art", "state-of-the-art"},
		{"ellipsis", `and so on\ldots done`, "and so on... done"},
		{"math stripped", `$O(n \log n)$ time`, "O(n log n) time"},
		{"unknown command dropped", `\LaTeX\relax fine`, "LaTeX fine"},
		{"braces stripped", "{The} {Title}", "The Title"},
		{"whitespace collapsed", "a \n\t b", "a b"},
	}
	for _, tc := range cases {
		if got := c.Normalize(tc.in); got != tc.want {
			t.Fatalf("%s: Normalize(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

// Already-plain text must pass through unchanged, so running the converter
// over its own output is a no-op.
func TestNormalizeIdempotent(t *testing.T) {
	c := NewConverter()
	inputs := []string{
		`J\"urgen M\"uller and Jos\'e N\'u\~nez`,
		`The {Biology} of \emph{C. elegans}, 2nd ed., pp. 10--20`,
	}
	for _, in := range inputs {
		once := c.Normalize(in)
		if twice := c.Normalize(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}
