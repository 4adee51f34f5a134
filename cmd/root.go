package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ponto",
	Short: "Ponto – a minimal CLI punch clock",
	Long: `ponto is a single-binary, file-based command-line punch clock.
Clock in and out of work sessions, close your workday, track a daily goal
and justify absences. All data is stored under ~/.ponto/.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(justifyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(syncCmd)
}
