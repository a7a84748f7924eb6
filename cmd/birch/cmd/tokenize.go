package cmd

import (
	"fmt"
	"os"

	"github.com/birchlang/birch/internal/lexer"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Scan a Birch source file into tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  tokenizeFile,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}

func tokenizeFile(_ *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	lx := lexer.New(source)
	tokens, hadError := lx.ScanTokens()
	for _, tok := range tokens {
		fmt.Fprintln(os.Stdout, formatToken(tok))
	}

	if hadError {
		errs := lx.Errors()
		for _, e := range errs {
			fmt.Fprint(os.Stderr, e.Error())
		}
		return errs[len(errs)-1]
	}
	return nil
}

func formatToken(tok lexer.Token) string {
	literal := "null"
	switch tok.Kind {
	case lexer.String, lexer.Number:
		literal = tok.Literal
	}
	return fmt.Sprintf("%s %s %s", tok.Kind.String(), tok.Lexeme, literal)
}
