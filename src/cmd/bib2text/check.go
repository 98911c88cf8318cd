package main

import (
	"github.com/spf13/cobra"

	"bib2text/src/cmd/bib2text/checkcmd"
)

// newCheckCmd creates the "check" command that lints a BibTeX file without
// converting it.
func newCheckCmd() *cobra.Command { return checkcmd.New() }
