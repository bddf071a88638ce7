package cmd

import (
	"fmt"

	"github.com/mohamedagwa1/fekra/internal/lexer"
	"github.com/spf13/cobra"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the token stream for a Fekra program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
}

func runLex(_ *cobra.Command, args []string) error {
	source, _, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, err := lexer.Lex(source)
	if err != nil {
		return err
	}

	for _, tok := range tokens {
		fmt.Println(tok.String())
	}
	return nil
}
