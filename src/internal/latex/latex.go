// Package latex converts the LaTeX-flavored markup found in BibTeX field
// values into plain prose. It covers the typographic subset that shows up in
// real bibliographies (accents, symbol macros, style wrappers, dashes), not
// the full LaTeX grammar.
package latex

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Converter normalizes LaTeX markup to plain text. It is stateless and safe
// for concurrent use; callers pass one instance into whatever needs it rather
// than relying on a package-level singleton.
type Converter struct{}

// NewConverter returns a ready-to-use Converter.
func NewConverter() *Converter { return &Converter{} }

// accentMarks maps single-character accent commands (\' \` \" \^ \~ \= \.)
// to their combining diacritics.
var accentMarks = map[rune]rune{
	'\'': 0x0301, // acute
	'`':  0x0300, // grave
	'"':  0x0308, // diaeresis
	'^':  0x0302, // circumflex
	'~':  0x0303, // tilde
	'=':  0x0304, // macron
	'.':  0x0307, // dot above
}

// accentNames maps letter-named accent commands (\c \v \H ...) to their
// combining diacritics.
var accentNames = map[string]rune{
	"c": 0x0327, // cedilla
	"v": 0x030C, // caron
	"H": 0x030B, // double acute
	"k": 0x0328, // ogonek
	"b": 0x0331, // bar below
	"d": 0x0323, // dot below
	"u": 0x0306, // breve
	"r": 0x030A, // ring above
	"t": 0x0361, // tie
}

// symbols maps letter-named commands to literal replacements. Per the
// page-range policy, dash macros render as a plain hyphen.
var symbols = map[string]string{
	"o": "ø", "O": "Ø", "l": "ł", "L": "Ł",
	"ae": "æ", "AE": "Æ", "oe": "œ", "OE": "Œ",
	"ss": "ß", "aa": "å", "AA": "Å", "i": "ı", "j": "ȷ",
	"ldots": "...", "dots": "...", "textellipsis": "...",
	"textendash": "-", "textemdash": "-",
	"textquotedblleft": "“", "textquotedblright": "”",
	"textquoteleft": "‘", "textquoteright": "’",
	"textasciitilde": "~", "textunderscore": "_", "textbackslash": "\\",
	"copyright": "©", "dag": "†", "ddag": "‡", "S": "§", "P": "¶",
	"pounds": "£", "euro": "€", "textdegree": "°", "degree": "°",
	"times": "×", "pm": "±", "approx": "≈", "infty": "∞",
	"leq": "≤", "geq": "≥", "rightarrow": "→", "leftarrow": "←",
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "lambda": "λ", "mu": "μ", "pi": "π",
	"sigma": "σ", "tau": "τ", "phi": "φ", "omega": "ω",
	"Delta": "Δ", "Sigma": "Σ", "Omega": "Ω",
	"log": "log", "exp": "exp", "min": "min", "max": "max",
	"TeX": "TeX", "LaTeX": "LaTeX", "BibTeX": "BibTeX",
}

// Normalize converts LaTeX markup in s to plain text: accents become
// precomposed Unicode, symbol macros their literal characters, style
// wrappers keep only their argument, unknown commands are dropped, braces
// and math delimiters are stripped, "--"/"---" collapse to "-", and
// whitespace runs collapse to single spaces. Empty input yields "".
func (c *Converter) Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	var b strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); {
		switch r := rs[i]; {
		case r == '\\':
			i = c.command(&b, rs, i+1)
		case r == '{' || r == '}' || r == '$':
			i++
		case r == '~':
			b.WriteRune(' ')
			i++
		case r == '-':
			// any run of hyphens is a single hyphen (en/em dashes, ranges)
			for i < len(rs) && rs[i] == '-' {
				i++
			}
			b.WriteRune('-')
		default:
			b.WriteRune(r)
			i++
		}
	}
	out := norm.NFC.String(b.String())
	return strings.Join(strings.Fields(out), " ")
}

// command handles the text after a backslash and returns the index of the
// first rune past the command. Style wrappers such as \emph{...} need no
// special case: the command name is dropped and the braced argument flows
// through the main loop.
func (c *Converter) command(b *strings.Builder, rs []rune, i int) int {
	if i >= len(rs) {
		return i
	}
	r := rs[i]
	if !isLetter(r) {
		if mark, ok := accentMarks[r]; ok {
			return c.accent(b, rs, i+1, mark)
		}
		switch r {
		case '&', '%', '$', '#', '_', '{', '}':
			b.WriteRune(r)
		case '\\', ' ', '\t', '\n', ',', ';':
			b.WriteRune(' ')
		}
		return i + 1
	}
	j := i
	for j < len(rs) && isLetter(rs[j]) {
		j++
	}
	name := string(rs[i:j])
	if mark, ok := accentNames[name]; ok {
		return c.accent(b, rs, j, mark)
	}
	if rep, ok := symbols[name]; ok {
		b.WriteString(rep)
		return j
	}
	return j
}

// accent reads the base character of an accent command ("e", "{e}", "\i")
// and emits base plus combining mark; NFC composes them afterwards.
func (c *Converter) accent(b *strings.Builder, rs []rune, i int, mark rune) int {
	for i < len(rs) && rs[i] == ' ' {
		i++
	}
	braced := false
	if i < len(rs) && rs[i] == '{' {
		braced = true
		i++
	}
	if i >= len(rs) {
		return i
	}
	var base rune
	if rs[i] == '\\' {
		j := i + 1
		for j < len(rs) && isLetter(rs[j]) {
			j++
		}
		switch name := string(rs[i+1 : j]); name {
		case "i":
			base = 'i' // dotless forms compose on the plain letter
		case "j":
			base = 'j'
		default:
			if rep, ok := symbols[name]; ok {
				if rr := []rune(rep); len(rr) == 1 {
					base = rr[0]
				}
			}
		}
		i = j
	} else {
		base = rs[i]
		i++
	}
	if braced && i < len(rs) && rs[i] == '}' {
		i++
	}
	if base != 0 {
		b.WriteRune(base)
		b.WriteRune(mark)
	}
	return i
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
