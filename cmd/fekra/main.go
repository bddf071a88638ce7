// Command fekra runs the Fekra compiler and stack VM from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/mohamedagwa1/fekra/cmd/fekra/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
