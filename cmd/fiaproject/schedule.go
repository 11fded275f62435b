package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fia-glwb/block-projector/internal/domain"
)

// newScheduleCommand prints a single built-in assumption table for
// inspection, the spiritual successor to the teacher's tools/print_prorate
// standalone debug binary (a small program exercising one calculation path
// directly, rather than a full projection run).
func newScheduleCommand() *cobra.Command {
	var table string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print a built-in assumption table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSchedule(table)
		},
	}
	cmd.Flags().StringVar(&table, "table", "surrender-charges", "one of: surrender-charges, rmd, payout, utilization")
	return cmd
}

func printSchedule(table string) error {
	a := domain.DefaultAssumptions()
	switch table {
	case "surrender-charges":
		for year := 1; year <= 12; year++ {
			fmt.Printf("%2d  %s\n", year, a.SurrenderCharges.Rate(year).String())
		}
	case "rmd":
		for _, age := range []int{65, 70, 73, 75, 80, 85, 90, 100, 105} {
			fmt.Printf("%3d  %s\n", age, a.Rmd.Rate(age).String())
		}
	case "payout":
		for _, age := range []int{48, 52, 60, 65, 70, 77, 85, 90, 100} {
			fmt.Printf("%3d  %s\n", age, a.Glwb.Payout.Rate(age).String())
		}
	case "utilization":
		for year := 1; year <= 12; year++ {
			fmt.Printf("%2d  %s\n", year, a.FreeWithdrawalUtil.Utilization(year).String())
		}
	default:
		return fmt.Errorf("unknown table %q (want one of: surrender-charges, rmd, payout, utilization)", table)
	}
	return nil
}
