package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List registered employees",
	Args:  cobra.NoArgs,
	RunE:  runEmployees,
}

func init() {
	rootCmd.AddCommand(employeesCmd)
}

func runEmployees(cmd *cobra.Command, args []string) error {
	_, client, err := setup(cmd)
	if err != nil {
		return err
	}

	employees, err := client.Employees(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tPOSITION\tEMAIL")

	for _, e := range employees {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.EmployeeID, e.Name, e.Department, e.Position, e.Email)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d employees\n", len(employees))

	return nil
}
