// Package convertcmd implements the main conversion surface: read a BibTeX
// file, render every record to condensed plain text, and write the result to
// stdout or a file.
package convertcmd

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bib2text/src/internal/bibtex"
	"bib2text/src/internal/config"
	"bib2text/src/internal/latex"
	"bib2text/src/internal/names"
	"bib2text/src/internal/render"
)

// Sorting modes accepted by --sorting.
const (
	SortNone   = "none"
	SortYear   = "year"
	SortAuthor = "author"
)

// New returns the root command: bib2text <input.bib> [flags].
func New() *cobra.Command {
	var (
		output          string
		maxAuthors      int
		includeAbstract bool
		includeURL      bool
		sorting         string
	)
	cmd := &cobra.Command{
		Use:   "bib2text <input.bib>",
		Short: "Convert a BibTeX bibliography to condensed plain text",
		Long: "bib2text renders each BibTeX entry as a one-paragraph plain-text\n" +
			"citation, suitable for pasting into prompts or notes. LaTeX markup in\n" +
			"field values is converted to plain prose.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-authors") {
				maxAuthors = defaults.MaxAuthors
			}
			if !cmd.Flags().Changed("sorting") {
				sorting = defaults.Sorting
			}
			if !cmd.Flags().Changed("include-abstract") {
				includeAbstract = defaults.IncludeAbstract
			}
			if !cmd.Flags().Changed("include-url") {
				includeURL = defaults.IncludeURL
			}
			if sorting != SortNone && sorting != SortYear && sorting != SortAuthor {
				return fmt.Errorf("invalid --sorting %q (want none, year, or author)", sorting)
			}

			recs, err := bibtex.ParseFile(args[0])
			if err != nil {
				return err
			}
			conv := latex.NewConverter()
			sortRecords(recs, sorting, conv.Normalize)

			text, err := Convert(recs, conv, render.Options{
				MaxAuthors:      maxAuthors,
				IncludeAbstract: includeAbstract,
				IncludeURL:      includeURL,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}
			// the whole batch is rendered before anything is written, so a
			// failing run never leaves a truncated output file behind
			if err := os.WriteFile(output, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "converted bibliography written to %s\n", output)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write result to this file instead of stdout")
	cmd.Flags().IntVar(&maxAuthors, "max-authors", 3, "Maximum authors shown before truncating to 'et al.'")
	cmd.Flags().BoolVar(&includeAbstract, "include-abstract", false, "Append each entry's abstract")
	cmd.Flags().BoolVar(&includeURL, "include-url", false, "Append a URL/DOI clause when the entry body has none")
	cmd.Flags().StringVar(&sorting, "sorting", SortNone, "Entry order: none, year, or author")
	return cmd
}

// Convert renders all records in order and joins them with a blank line.
// The batch either succeeds as a whole or fails: citation lists are count-
// sensitive, so there is no mode where broken records are skipped.
func Convert(recs []bibtex.Record, norm render.Normalizer, opts render.Options) (string, error) {
	r := render.New(norm, opts)
	parts := make([]string, 0, len(recs))
	for _, rec := range recs {
		s, err := r.Render(rec)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n"), nil
}

// sortRecords reorders records in place. Both modes are stable, so records
// that compare equal keep their input order.
func sortRecords(recs []bibtex.Record, mode string, normalize func(string) string) {
	switch mode {
	case SortYear:
		sort.SliceStable(recs, func(i, j int) bool {
			return yearKey(recs[i]) < yearKey(recs[j])
		})
	case SortAuthor:
		keys := make([]string, len(recs))
		for i, rec := range recs {
			keys[i] = authorKey(rec, normalize)
		}
		idx := make([]int, len(recs))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			ka, kb := keys[idx[a]], keys[idx[b]]
			if ka == "" {
				return false // nameless entries sort last
			}
			if kb == "" {
				return true
			}
			return ka < kb
		})
		sorted := make([]bibtex.Record, len(recs))
		for i, j := range idx {
			sorted[i] = recs[j]
		}
		copy(recs, sorted)
	}
}

// yearKey parses the year field; entries without a usable year sort last.
func yearKey(rec bibtex.Record) int {
	y, err := strconv.Atoi(strings.TrimSpace(rec.Field("year")))
	if err != nil {
		return math.MaxInt
	}
	return y
}

// authorKey is the lowercased family name of the first author (or editor),
// with markup normalized first.
func authorKey(rec bibtex.Record, normalize func(string) string) string {
	raw := rec.First("author", "editor")
	if raw == "" {
		return ""
	}
	return strings.ToLower(names.Family(names.First(normalize(raw))))
}
