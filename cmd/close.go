package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielcpolitano/ponto/internal/timeutil"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the workday",
	Long: `Close the workday. Any active session is clocked out first so no
session is left dangling. Closing an already-closed day is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runClose,
}

func runClose(cmd *cobra.Command, args []string) error {
	tr, st, cfg := mustTracker()

	rec, err := tr.EndWorkday()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	goal := "goal not met"
	if rec.GoalMet {
		goal = "goal met"
	}
	fmt.Printf("Workday %s closed. Total: %s (%s).\n",
		rec.Date, timeutil.FormatMinutes(rec.TotalMinutes), goal)

	mirrorIfEnabled(st, cfg)
	return nil
}
