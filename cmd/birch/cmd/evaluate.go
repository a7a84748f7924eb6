package cmd

import (
	"fmt"
	"os"

	"github.com/birchlang/birch/internal/interp"
	"github.com/birchlang/birch/internal/parser"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Parse a single Birch expression and print its value",
	Args:  cobra.ExactArgs(1),
	RunE:  evaluateFile,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func evaluateFile(_ *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	tokens, lastErr, ok := scanOrReport(source)
	if !ok {
		return lastErr
	}

	expr, err := parser.New(tokens).ParseExpression()
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return err
	}

	value, err := interp.New(os.Stdout).Eval(expr)
	if err != nil {
		fmt.Fprint(os.Stderr, err.Error())
		return err
	}

	fmt.Fprintln(os.Stdout, interp.Stringify(value))
	return nil
}
