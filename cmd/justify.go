package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gabrielcpolitano/ponto/internal/tracker"
)

var justifyCmd = &cobra.Command{
	Use:   "justify <date> <reason>...",
	Short: "Justify an absence on a past date",
	Long: `Justify an absence. The date is YYYY-MM-DD; the remaining arguments
form the justification text. The day's record is replaced with a closed,
justified absence.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runJustify,
}

func runJustify(cmd *cobra.Command, args []string) error {
	tr, st, cfg := mustTracker()

	date := args[0]
	text := strings.Join(args[1:], " ")

	rec, err := tr.SubmitAbsenceJustification(date, text)
	var verr *tracker.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, verr.Msg)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Absence on %s justified: %s\n", rec.Date, *rec.Justification)
	mirrorIfEnabled(st, cfg)
	return nil
}
