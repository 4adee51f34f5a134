package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gabrielcpolitano/ponto/internal/model"
	"github.com/gabrielcpolitano/ponto/internal/timeutil"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the trailing week's records to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
}

func runExport(cmd *cobra.Command, args []string) error {
	tr, _, _ := mustTracker()

	var records []model.DayRecord
	for _, date := range timeutil.WeekDates(time.Now(), 7) {
		rec, err := tr.DayRecord(date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		records = append(records, rec)
	}

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	default: // csv
		printCSV(records)
	}

	return nil
}

func printCSV(records []model.DayRecord) {
	fmt.Println("date,session_id,start,end,duration_minutes,status,total_minutes,goal_met,closed,justification")
	for _, rec := range records {
		just := ""
		if rec.Justification != nil {
			just = *rec.Justification
		}
		if len(rec.Sessions) == 0 {
			fmt.Printf("%s,,,,0,,%d,%t,%t,%s\n",
				rec.Date, rec.TotalMinutes, rec.GoalMet, rec.WorkdayClosed, csvEscape(just))
			continue
		}
		for _, s := range rec.Sessions {
			endStr := ""
			if s.EndTime != nil {
				endStr = s.EndTime.Format(time.RFC3339)
			}
			fmt.Printf("%s,%s,%s,%s,%d,%s,%d,%t,%t,%s\n",
				rec.Date,
				csvEscape(s.ID),
				s.StartTime.Format(time.RFC3339),
				endStr,
				s.DurationMinutes,
				s.Status,
				rec.TotalMinutes,
				rec.GoalMet,
				rec.WorkdayClosed,
				csvEscape(just),
			)
		}
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
