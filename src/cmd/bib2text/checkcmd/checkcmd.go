// Package checkcmd implements a lint pass over a BibTeX file: it reports
// records that would render with placeholder text and fields that look wrong,
// without producing any conversion output.
package checkcmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bib2text/src/internal/bibtex"
	"bib2text/src/internal/sanitize"
)

// New returns the check command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <input.bib>",
		Short: "Check a BibTeX file for missing or suspicious fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := bibtex.ParseFile(args[0])
			if err != nil {
				return err
			}
			warnings := Lint(recs)
			out := cmd.OutOrStdout()
			for _, w := range warnings {
				if _, err := fmt.Fprintln(out, w); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "%d records, %d warnings\n", len(recs), len(warnings))
			return err
		},
	}
	return cmd
}

// Lint returns one human-readable warning per finding, in record order.
func Lint(recs []bibtex.Record) []string {
	var warnings []string
	warn := func(label, format string, args ...any) {
		warnings = append(warnings, label+": "+fmt.Sprintf(format, args...))
	}
	seen := map[string]string{}
	for i, rec := range recs {
		label := rec.Key
		if label == "" {
			label = fmt.Sprintf("record %d", i+1)
		}
		if key := strings.ToLower(rec.Key); key != "" {
			if prev, dup := seen[key]; dup {
				warn(label, "duplicate citation key (also used by %q)", prev)
			} else {
				seen[key] = rec.Key
			}
		}
		if rec.First("author", "editor", "organization", "institution", "publisher") == "" {
			warn(label, "no author, editor, or organizational author")
		}
		if !rec.Has("title") {
			warn(label, "missing title")
		}
		switch y := rec.Field("year"); {
		case y == "":
			warn(label, "missing year")
		default:
			if _, err := strconv.Atoi(y); err != nil {
				warn(label, "non-numeric year %q", y)
			}
		}
		if u := rec.Field("url"); u != "" && sanitize.CleanURL(u) == "" {
			warn(label, "invalid url %q", u)
		}
	}
	return warnings
}
