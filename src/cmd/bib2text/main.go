package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bib2text/src/cmd/bib2text/convertcmd"
)

// rootCmd is the converter itself; maintenance commands hang off it.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := convertcmd.New()
	root.AddCommand(newCheckCmd())
	return root
}

func execute() error {
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
