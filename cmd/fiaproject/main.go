// Command fiaproject is the CLI front end for the FIA/GLWB block
// projector: it wires the CSV/YAML loaders in internal/config to the
// calculation engine and writes the aggregated results with
// internal/output. Grounded on the teacher's declared (but in the
// retrieved snapshot unused) spf13/cobra dependency.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "fiaproject",
		Short: "Project a block of FIA/GLWB contracts forward month by month",
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newScheduleCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
