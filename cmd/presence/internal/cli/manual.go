package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/backend"
)

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Record a manual punch for an employee",
	Long: `Record a punch on behalf of an employee, with a photo as evidence.

Example:
  presence manual --employee EMP001 --image photo.jpg --timestamp 2024-03-05T09:00:00Z`,
	Args: cobra.NoArgs,
	RunE: runManual,
}

func init() {
	rootCmd.AddCommand(manualCmd)
	manualCmd.Flags().String("employee", "", "Employee ID (required)")
	manualCmd.Flags().String("image", "", "Path to the photo (required)")
	manualCmd.Flags().String("timestamp", "", "RFC 3339 time of the punch (defaults to now)")
	_ = manualCmd.MarkFlagRequired("employee")
	_ = manualCmd.MarkFlagRequired("image")
}

func runManual(cmd *cobra.Command, args []string) error {
	timestamp, err := punchTime(mustGetString(cmd, "timestamp"), time.Now())
	if err != nil {
		return err
	}

	_, client, err := setup(cmd)
	if err != nil {
		return err
	}

	photo, err := readImage(mustGetString(cmd, "image"))
	if err != nil {
		return err
	}

	employee := mustGetString(cmd, "employee")

	if _, err := client.ManualAttendance(commandContext(cmd), backend.ManualRequest{
		Employees: employee,
		Photo:     photo,
		Timestamp: timestamp,
	}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded punch for %s at %s\n", employee, timestamp)

	return nil
}

// punchTime validates an RFC 3339 timestamp, defaulting to now in UTC.
func punchTime(s string, now time.Time) (string, error) {
	if s == "" {
		return now.UTC().Format(time.RFC3339), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", fmt.Errorf("invalid timestamp %q: expected RFC 3339", s)
	}

	return t.Format(time.RFC3339), nil
}
