package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/export"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.csv>",
	Short: "Read an exported CSV file back",
	Long: `Read a CSV export from disk, detect its character set and layout and
print its contents. Files re-saved by spreadsheet tools in a legacy
encoding are converted to UTF-8.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Int("limit", 20, "Maximum number of rows to print (0 prints all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	table, err := export.ReadCSV(f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	layout := "unknown"
	if l, ok := table.Layout(); ok {
		layout = l.String()
	}

	fmt.Fprintf(out, "File:    %s\n", args[0])
	fmt.Fprintf(out, "Charset: %s\n", table.Charset)
	fmt.Fprintf(out, "Layout:  %s\n", layout)
	fmt.Fprintf(out, "Rows:    %d\n\n", len(table.Records))

	records := table.Records
	if limit := mustGetInt(cmd, "limit"); limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Header, "\t"))

	for _, rec := range records {
		fmt.Fprintln(w, strings.Join(rec, "\t"))
	}

	return w.Flush()
}
