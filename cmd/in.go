package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrielcpolitano/ponto/internal/tracker"
)

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in and start a work session",
	Args:  cobra.NoArgs,
	RunE:  runIn,
}

func runIn(cmd *cobra.Command, args []string) error {
	tr, st, cfg := mustTracker()

	session, err := tr.ClockIn()
	if errors.Is(err, tracker.ErrAlreadyClockedIn) {
		fmt.Fprintln(os.Stderr, "Already clocked in. Clock out first with: ponto out")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Clocked in at %s\n", session.StartTime.Format("15:04:05"))
	mirrorIfEnabled(st, cfg)
	return nil
}
