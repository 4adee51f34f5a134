package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielcpolitano/ponto/internal/timeutil"
	"github.com/gabrielcpolitano/ponto/internal/tracker"
)

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out and complete the current session",
	Args:  cobra.NoArgs,
	RunE:  runOut,
}

func runOut(cmd *cobra.Command, args []string) error {
	tr, st, cfg := mustTracker()

	session, err := tr.ClockOut()
	if errors.Is(err, tracker.ErrNoActiveSession) {
		// Benign: nothing was running.
		fmt.Println("No active session to clock out of.")
		return nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rec, err := tr.DayRecord(timeutil.DateKey(*session.EndTime))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Clocked out at %s. Session: %s.\n",
		session.EndTime.Format("15:04:05"),
		timeutil.FormatMinutes(session.DurationMinutes))
	fmt.Printf("Today: %s (%d%% of goal)\n",
		timeutil.FormatMinutes(rec.TotalMinutes),
		tr.GoalProgress(rec.TotalMinutes))

	mirrorIfEnabled(st, cfg)
	return nil
}
