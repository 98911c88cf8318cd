// Package bibtex reads BibTeX bibliography files into flat records. Field
// values are kept verbatim (braces, backslash commands and all) so that
// markup conversion stays a separate, later concern.
package bibtex

import (
	"fmt"
	"os"
	"strings"

	"bib2text/src/internal/sanitize"
)

// Record is one bibliography entry: a type tag, a citation key, and whatever
// field/value pairs the entry carries. Field names are lowercased at parse
// time, so lookups are case-insensitive by construction. Records are never
// mutated after parsing.
type Record struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Field returns the trimmed value of the named field, or "" when absent.
func (r Record) Field(name string) string {
	return strings.TrimSpace(r.Fields[strings.ToLower(name)])
}

// Has reports whether the named field is present and non-empty.
func (r Record) Has(name string) bool { return r.Field(name) != "" }

// First returns the value of the first present non-empty field among names,
// in order. It backs the several "first field wins" fallback chains in the
// renderer.
func (r Record) First(names ...string) string {
	for _, n := range names {
		if v := r.Field(n); v != "" {
			return v
		}
	}
	return ""
}

// ParseFile reads and parses a BibTeX file.
func ParseFile(path string) ([]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bibliography: %w", err)
	}
	recs, err := Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return recs, nil
}

// Parse parses BibTeX source. @string macros are collected and substituted
// into bare field values, @comment and @preamble blocks are consumed, and
// the standard month abbreviations are predefined. A record without a type
// tag is a hard error: downstream citation lists must account for every
// entry, so nothing is silently skipped.
func Parse(src string) ([]Record, error) {
	p := &parser{src: src, macros: monthMacros()}
	return p.parse()
}

type parser struct {
	src    string
	i      int
	macros map[string]string
}

func monthMacros() map[string]string {
	return map[string]string{
		"jan": "January", "feb": "February", "mar": "March",
		"apr": "April", "may": "May", "jun": "June",
		"jul": "July", "aug": "August", "sep": "September",
		"oct": "October", "nov": "November", "dec": "December",
	}
}

func (p *parser) parse() ([]Record, error) {
	var recs []Record
	for {
		p.skipWS()
		if p.i >= len(p.src) {
			return recs, nil
		}
		if p.src[p.i] != '@' {
			// stray text between entries is comment by convention
			p.i++
			continue
		}
		at := p.i
		p.i++
		p.skipWS()
		typ := strings.ToLower(p.readIdent())
		if typ == "" {
			return nil, fmt.Errorf("line %d: entry is missing its type tag", p.line(at))
		}
		switch typ {
		case "comment", "preamble":
			if err := p.skipGroup(); err != nil {
				return nil, err
			}
		case "string":
			if err := p.readStringMacro(); err != nil {
				return nil, err
			}
		default:
			rec, err := p.readEntry(typ)
			if err != nil {
				return nil, err
			}
			recs = append(recs, rec)
		}
	}
}

// skipWS advances past whitespace and % line comments.
func (p *parser) skipWS() {
	for p.i < len(p.src) {
		switch c := p.src[p.i]; {
		case c == '%':
			for p.i < len(p.src) && p.src[p.i] != '\n' {
				p.i++
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			p.i++
		default:
			return
		}
	}
}

func (p *parser) readIdent() string {
	start := p.i
	for p.i < len(p.src) && isIdent(p.src[p.i]) {
		p.i++
	}
	return p.src[start:p.i]
}

func isIdent(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '-' || c == '_'
}

func (p *parser) line(offset int) int {
	return 1 + strings.Count(p.src[:offset], "\n")
}

// skipGroup consumes a brace- or paren-delimited block (@comment/@preamble).
func (p *parser) skipGroup() error {
	p.skipWS()
	if p.i >= len(p.src) || (p.src[p.i] != '{' && p.src[p.i] != '(') {
		return fmt.Errorf("line %d: expected '{' after directive", p.line(p.i))
	}
	opener, closer := p.src[p.i], byte('}')
	if opener == '(' {
		closer = ')'
	}
	depth := 0
	for ; p.i < len(p.src); p.i++ {
		switch p.src[p.i] {
		case '\\':
			p.i++
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				p.i++
				return nil
			}
		}
	}
	return fmt.Errorf("unterminated block at end of input")
}

// readStringMacro parses @string{name = value} into the macro table.
func (p *parser) readStringMacro() error {
	p.skipWS()
	if p.i >= len(p.src) || (p.src[p.i] != '{' && p.src[p.i] != '(') {
		return fmt.Errorf("line %d: expected '{' after @string", p.line(p.i))
	}
	p.i++
	p.skipWS()
	name := strings.ToLower(p.readIdent())
	if name == "" {
		return fmt.Errorf("line %d: @string without a name", p.line(p.i))
	}
	p.skipWS()
	if p.i >= len(p.src) || p.src[p.i] != '=' {
		return fmt.Errorf("line %d: expected '=' in @string", p.line(p.i))
	}
	p.i++
	val, err := p.readValue()
	if err != nil {
		return err
	}
	p.macros[name] = val
	p.skipWS()
	if p.i < len(p.src) && (p.src[p.i] == '}' || p.src[p.i] == ')') {
		p.i++
	}
	return nil
}

func (p *parser) readEntry(typ string) (Record, error) {
	p.skipWS()
	if p.i >= len(p.src) || (p.src[p.i] != '{' && p.src[p.i] != '(') {
		return Record{}, fmt.Errorf("line %d: expected '{' after @%s", p.line(p.i), typ)
	}
	p.i++
	p.skipWS()
	start := p.i
	for p.i < len(p.src) && p.src[p.i] != ',' && p.src[p.i] != '}' && p.src[p.i] != ')' {
		p.i++
	}
	if p.i >= len(p.src) {
		return Record{}, fmt.Errorf("unterminated @%s entry", typ)
	}
	rec := Record{Type: typ, Key: strings.TrimSpace(p.src[start:p.i]), Fields: map[string]string{}}
	if p.src[p.i] != ',' {
		p.i++ // entry with a key and no fields
		return rec, nil
	}
	p.i++
	for {
		p.skipWS()
		if p.i >= len(p.src) {
			return Record{}, fmt.Errorf("unterminated @%s entry %q", typ, rec.Key)
		}
		if p.src[p.i] == '}' || p.src[p.i] == ')' {
			p.i++
			return rec, nil
		}
		name := strings.ToLower(p.readIdent())
		if name == "" {
			return Record{}, fmt.Errorf("line %d: expected field name in @%s entry %q", p.line(p.i), typ, rec.Key)
		}
		p.skipWS()
		if p.i >= len(p.src) || p.src[p.i] != '=' {
			return Record{}, fmt.Errorf("line %d: expected '=' after field %q in entry %q", p.line(p.i), name, rec.Key)
		}
		p.i++
		val, err := p.readValue()
		if err != nil {
			return Record{}, fmt.Errorf("entry %q, field %q: %w", rec.Key, name, err)
		}
		rec.Fields[name] = sanitize.CleanString(val)
		p.skipWS()
		if p.i < len(p.src) && p.src[p.i] == ',' {
			p.i++
		}
	}
}

// readValue parses one field value: brace- or quote-delimited strings, bare
// numbers, and macro names, possibly joined with '#' concatenation.
func (p *parser) readValue() (string, error) {
	var parts []string
	for {
		p.skipWS()
		tok, err := p.readValueToken()
		if err != nil {
			return "", err
		}
		parts = append(parts, tok)
		p.skipWS()
		if p.i < len(p.src) && p.src[p.i] == '#' {
			p.i++
			continue
		}
		return strings.Join(parts, ""), nil
	}
}

func (p *parser) readValueToken() (string, error) {
	if p.i >= len(p.src) {
		return "", fmt.Errorf("unexpected end of input in field value")
	}
	switch p.src[p.i] {
	case '{':
		depth := 0
		p.i++
		start := p.i
		for p.i < len(p.src) {
			switch p.src[p.i] {
			case '\\':
				p.i += 2
				continue
			case '{':
				depth++
			case '}':
				if depth == 0 {
					val := p.src[start:p.i]
					p.i++
					return val, nil
				}
				depth--
			}
			p.i++
		}
		return "", fmt.Errorf("unterminated braced value")
	case '"':
		p.i++
		start := p.i
		for p.i < len(p.src) {
			if p.src[p.i] == '\\' {
				p.i += 2
				continue
			}
			if p.src[p.i] == '"' {
				val := p.src[start:p.i]
				p.i++
				return val, nil
			}
			p.i++
		}
		return "", fmt.Errorf("unterminated quoted value")
	default:
		start := p.i
		for p.i < len(p.src) && isIdent(p.src[p.i]) {
			p.i++
		}
		tok := p.src[start:p.i]
		if tok == "" {
			return "", fmt.Errorf("line %d: malformed field value", p.line(p.i))
		}
		if v, ok := p.macros[strings.ToLower(tok)]; ok {
			return v, nil
		}
		return tok, nil
	}
}
