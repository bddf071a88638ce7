package cmd

import (
	"fmt"

	"github.com/mohamedagwa1/fekra/internal/ir"
	"github.com/mohamedagwa1/fekra/internal/lexer"
	"github.com/mohamedagwa1/fekra/internal/optimizer"
	"github.com/mohamedagwa1/fekra/internal/parser"
	"github.com/mohamedagwa1/fekra/internal/semantic"
	"github.com/mohamedagwa1/fekra/internal/target"
	"github.com/spf13/cobra"
)

var (
	compileEvalExpr string
	dumpIR          bool
	dumpTarget      bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Fekra program without executing it",
	Long: `Run the full pipeline up to (and including) target code
generation, printing the requested intermediate artifacts, but never
hand the result to the VM.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	compileCmd.Flags().BoolVar(&dumpIR, "dump-ir", false, "print the optimized IR listing")
	compileCmd.Flags().BoolVar(&dumpTarget, "dump-target", false, "print the VM instruction listing")
}

func runCompile(_ *cobra.Command, args []string) error {
	source, _, err := readSource(compileEvalExpr, args)
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
	if err := semantic.Analyze(prog); err != nil {
		return err
	}

	irCode := ir.Generate(prog)
	irCode = optimizer.Optimize(irCode)

	if dumpIR {
		fmt.Println("IR:")
		for _, instr := range irCode {
			fmt.Println(instr.String())
		}
	}

	targetCode, err := target.Generate(irCode)
	if err != nil {
		return err
	}

	if dumpTarget {
		fmt.Println("Target:")
		fmt.Print(target.Disassemble(targetCode))
	}

	return nil
}
