package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Log in as a user",
	Long: `Log in as a user. With no argument, the most recently used name is
reused. Login also checks whether yesterday was an unjustified absence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	tr, st, cfg := mustTracker()

	name := ""
	if len(args) == 1 {
		name = args[0]
	} else {
		last, ok, err := tr.LastUserName()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "No previous user. Run: ponto login <name>")
			os.Exit(1)
		}
		name = last
	}

	user, err := tr.Login(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("Logged in as %s\n", user.Name)

	// Absence check runs once per login.
	date, pending, err := tr.CheckForAbsence()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if pending {
		fmt.Printf("You have an unjustified absence on %s.\n", date)
		fmt.Printf("Justify it with: ponto justify %s \"reason\"\n", date)
	}

	mirrorIfEnabled(st, cfg)
	return nil
}
