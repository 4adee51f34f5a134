package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out the current user",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	tr, _, _ := mustTracker()

	user, ok, err := tr.CurrentUser()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !ok {
		fmt.Println("No user logged in.")
		return nil
	}

	if err := tr.Logout(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("Logged out %s.\n", user.Name)
	return nil
}
