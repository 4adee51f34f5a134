package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gabrielcpolitano/ponto/internal/timeutil"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session and today's progress",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()
	tr, _, _ := mustTracker()

	if user, ok, err := tr.CurrentUser(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	} else if ok {
		fmt.Printf("User: %s\n", user.Name)
	}

	active, err := tr.ActiveSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rec, err := tr.DayRecord(timeutil.DateKey(now))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if active != nil {
		// Elapsed time is always derived from now − startTime.
		elapsed := int64(now.Sub(active.StartTime).Seconds())
		fmt.Println("Clocked in:")
		fmt.Printf("  Since: %s\n", active.StartTime.Format("15:04"))
		fmt.Printf("  Elapsed: %s\n", timeutil.FormatClock(elapsed))
	} else {
		fmt.Println("Not clocked in.")
	}

	fmt.Printf("Today: %s of %s (%d%%)\n",
		timeutil.FormatMinutes(rec.TotalMinutes),
		timeutil.FormatMinutes(tr.GoalMinutes()),
		tr.GoalProgress(rec.TotalMinutes))
	if rec.WorkdayClosed {
		fmt.Println("Workday is closed.")
	}
	return nil
}
