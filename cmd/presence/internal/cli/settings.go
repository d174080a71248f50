package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/backend"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the attendance policy settings",
	Long: `Show the backend attendance settings. Use "settings set" to change them.`,
	Args: cobra.NoArgs,
	RunE: runSettingsGet,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the attendance policy settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the attendance policy settings",
	Long: `Change one or more settings. Flags that are not given keep their
current value.

Example:
  presence settings set --start 09:00 --end 17:30`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsSetCmd.Flags().String("start", "", "Work day start time (HH:MM)")
	settingsSetCmd.Flags().String("end", "", "Work day end time (HH:MM)")
	settingsSetCmd.Flags().Int("sync", 0, "Sync frequency in minutes")
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	_, client, err := setup(cmd)
	if err != nil {
		return err
	}

	s, err := client.Settings(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	printSettings(cmd.OutOrStdout(), s)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("start") && !flags.Changed("end") && !flags.Changed("sync") {
		return errors.New("nothing to change: pass --start, --end or --sync")
	}

	_, client, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	current, err := client.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	next := *current

	if flags.Changed("start") {
		next.StartTime = mustGetString(cmd, "start")
	}

	if flags.Changed("end") {
		next.EndTime = mustGetString(cmd, "end")
	}

	if flags.Changed("sync") {
		next.SyncFrequency = mustGetInt(cmd, "sync")
	}

	saved, err := client.UpdateSettings(ctx, next)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	printSettings(cmd.OutOrStdout(), saved)

	return nil
}

func printSettings(out io.Writer, s *backend.Settings) {
	fmt.Fprintf(out, "Start time:     %s\n", s.StartTime)
	fmt.Fprintf(out, "End time:       %s\n", s.EndTime)
	fmt.Fprintf(out, "Sync frequency: %d min\n", s.SyncFrequency)
}
