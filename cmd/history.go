package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielcpolitano/ponto/internal/model"
	"github.com/gabrielcpolitano/ponto/internal/timeutil"
	"github.com/gabrielcpolitano/ponto/internal/tracker"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the trailing 7-day history and streak",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	tr, _, _ := mustTracker()

	history, err := tr.WeeklyHistory()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	for _, item := range history {
		line := fmt.Sprintf("%s  %-12s%s",
			item.Date, statusLabel(item.Status), timeutil.FormatMinutes(item.TotalMinutes))
		if item.Justification != nil {
			line += fmt.Sprintf("  – %s", *item.Justification)
		}
		fmt.Println(line)
	}

	streak := tracker.StreakCount(history)
	fmt.Println("--------------------------------")
	fmt.Printf("Streak: %d day(s)\n", streak)
	return nil
}

// statusLabel renders a day status for the history table.
func statusLabel(s model.DayStatus) string {
	switch s {
	case model.StatusGoal:
		return "goal"
	case model.StatusPartial:
		return "partial"
	case model.StatusInProgress:
		return "in progress"
	default:
		return "absence"
	}
}
