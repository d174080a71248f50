package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/dashboard"
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Print attendance rows",
	Long: `Fetch attendance from the backend and print the rows the dashboard would
show for the same toggles and filters.

Example:
  presence rows --scope all --checkin --checkout --department Sales`,
	Args: cobra.NoArgs,
	RunE: runRows,
}

func init() {
	rootCmd.AddCommand(rowsCmd)
	addQueryFlags(rowsCmd)
	rowsCmd.Flags().Bool("json", false, "Output as JSON")
}

func runRows(cmd *cobra.Command, args []string) error {
	_, client, err := setup(cmd)
	if err != nil {
		return err
	}

	q, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}

	view, err := dashboard.Fetch(commandContext(cmd), client, nil, q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(view.Rows)
	}

	if len(view.Rows) == 0 {
		fmt.Fprintln(out, "No attendance records")
		return nil
	}

	if err := writeRows(out, view.Layout, view.Rows); err != nil {
		return err
	}

	s := view.Summary
	fmt.Fprintf(out, "\nPresent: %d  On time: %d  Late: %d  Checked out: %d  Left early: %d\n",
		s.Present, s.OnTime, s.Late, s.CheckedOut, s.LeftEarly)

	return nil
}

// writeRows prints rows as an aligned table with the columns of layout.
func writeRows(out io.Writer, layout attendance.Layout, rows []attendance.Row) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	switch layout {
	case attendance.LayoutCheckIns:
		fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tDATE\tCHECK IN\tSTATUS")
	case attendance.LayoutCheckOuts:
		fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tDATE\tCHECK OUT\tSTATUS")
	case attendance.LayoutPaired:
		fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tDATE\tIN\tIN STATUS\tOUT\tOUT STATUS\tHOURS")
	default:
		fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tDATE\tACTION\tSTATUS\tTIME")
	}

	for _, r := range rows {
		switch layout {
		case attendance.LayoutCheckIns, attendance.LayoutCheckOuts:
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.EmployeeID, r.Name, r.Department, r.Date, dash(r.Timestamp), r.Status)
		case attendance.LayoutPaired:
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.EmployeeID, r.Name, r.Department, r.Date,
				dash(r.CheckIn), dash(string(r.CheckInStatus)),
				dash(r.CheckOut), dash(string(r.CheckOutStatus)),
				r.WorkingHours)
		default:
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.EmployeeID, r.Name, r.Department, r.Date, r.Action, r.Status, dash(r.Timestamp))
		}
	}

	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return attendance.NoHours
	}

	return s
}
