package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/dashboard"
	"github.com/MrJamesThe3rd/presence/internal/database"
	"github.com/MrJamesThe3rd/presence/internal/export"
	"github.com/MrJamesThe3rd/presence/internal/exportlog"
	exportlogStore "github.com/MrJamesThe3rd/presence/internal/exportlog/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export attendance rows to CSV or Excel",
	Long: `Fetch attendance and write the rows to a file named after the scope,
the layout and today's date, e.g. attendance-today-paired-2024-03-05.csv.

With --record the export is also written to the export history database.

Example:
  presence export --scope all --checkin --format xlsx --dir ./exports`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addQueryFlags(exportCmd)
	exportCmd.Flags().String("format", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().String("dir", "", "Output directory (defaults to EXPORT_DIR)")
	exportCmd.Flags().Bool("record", false, "Record the export in the history database")
	exportCmd.Flags().String("user", "cli", "Username stored with --record")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup(cmd)
	if err != nil {
		return err
	}

	q, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(mustGetString(cmd, "format"))
	if err != nil {
		return err
	}

	dir := mustGetString(cmd, "dir")
	if dir == "" {
		dir = cfg.Export.Dir
	}

	ctx := commandContext(cmd)

	view, err := dashboard.Fetch(ctx, client, nil, q)
	if err != nil {
		return err
	}

	exports := export.NewService(nil)

	file, err := exports.Export(format, view.Rows, q.Scope, q.Facets)
	if err != nil {
		return err
	}

	path, err := exports.Save(dir, file)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", file.Rows, path)

	if !mustGetBool(cmd, "record") {
		return nil
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to history database: %w", err)
	}
	defer db.Close()

	if _, err := database.Migrate(ctx, db); err != nil {
		return err
	}

	entry, err := exportlog.NewService(exportlogStore.New(db)).Record(ctx, file, mustGetString(cmd, "user"))
	if err != nil {
		return err
	}

	slog.Info("export recorded", "id", entry.ID, "file", entry.Filename)

	return nil
}
