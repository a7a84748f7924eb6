package cmd

import (
	"fmt"
	"os"

	"github.com/birchlang/birch/internal/ast"
	"github.com/birchlang/birch/internal/lexer"
	"github.com/birchlang/birch/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a single Birch expression and print its S-expression form",
	Args:  cobra.ExactArgs(1),
	RunE:  parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
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

	fmt.Fprintln(os.Stdout, ast.Print(expr))
	return nil
}

// scanOrReport tokenizes source, reporting and returning the last lexical
// diagnostic (already written to stderr) if scanning found any.
func scanOrReport(source string) (tokens []lexer.Token, lastErr error, ok bool) {
	lx := lexer.New(source)
	tokens, hadError := lx.ScanTokens()
	if !hadError {
		return tokens, nil, true
	}
	errs := lx.Errors()
	for _, e := range errs {
		fmt.Fprint(os.Stderr, e.Error())
	}
	return tokens, errs[len(errs)-1], false
}
