package cmd

import (
	"fmt"

	"github.com/mohamedagwa1/fekra/internal/compiler"
	"github.com/spf13/cobra"
)

var runEvalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Fekra program and print its PRINT output",
	Long: `Compile and execute a Fekra program from a file or inline expression,
printing one line per PRINT statement encountered.

Examples:
  fekra run program.fkr
  fekra run -e 'عرض ("مرحبا") ؟'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
}

func runProgram(_ *cobra.Command, args []string) error {
	source, _, err := readSource(runEvalExpr, args)
	if err != nil {
		return err
	}

	result, err := compiler.CompileAndRun(source)
	if err != nil {
		return err
	}

	for _, v := range result.Output {
		fmt.Println(v.String())
	}
	return nil
}
