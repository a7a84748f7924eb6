package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "birch",
	Short: "Birch interpreter",
	Long: `birch is a tree-walking interpreter for Birch, a small dynamically
typed scripting language with closures and single-inheritance classes.

Each subcommand runs one stage of the pipeline:

  birch tokenize <file>   scan the file into tokens
  birch parse <file>      scan and parse a single expression
  birch evaluate <file>   scan, parse, and evaluate a single expression
  birch run <file>        scan, parse, resolve, and execute a whole program`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the requested subcommand and returns the process exit code:
// 0 on success, 65 for a lexical or syntactic diagnostic, 70 for a runtime
// one, matching the fixed contract every subcommand reports through.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
