package cmd

import (
	"fmt"
	"os"

	"github.com/birchlang/birch/internal/interp"
	"github.com/birchlang/birch/internal/parser"
	"github.com/birchlang/birch/internal/resolver"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Birch program",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(_ *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	tokens, lastErr, ok := scanOrReport(source)
	if !ok {
		return lastErr
	}

	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return err
	}

	if err := resolver.Resolve(program); err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return err
	}

	if err := interp.New(os.Stdout).Run(program); err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return err
	}
	return nil
}
