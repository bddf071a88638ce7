package cmd

import (
	"fmt"

	"github.com/mohamedagwa1/fekra/internal/lexer"
	"github.com/mohamedagwa1/fekra/internal/parser"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parsed AST for a Fekra program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, _, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, err := lexer.Lex(source)
	if err != nil {
		return err
	}

	prog, err := parser.ParseProgram(tokens)
	if err != nil {
		return err
	}

	fmt.Print(prog.String())
	return nil
}
