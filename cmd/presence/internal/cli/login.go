package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/backend"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as an administrator and print the backend token",
	Long: `Log in to the backend and print the admin token for PRESENCE_TOKEN.
The password is prompted for when --password is not given.

Example:
  eval "$(presence login --username admin --shell)"`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("username", "", "Admin username (required)")
	loginCmd.Flags().String("password", "", "Admin password")
	loginCmd.Flags().Bool("shell", false, "Print as a shell export statement")
	_ = loginCmd.MarkFlagRequired("username")
}

func runLogin(cmd *cobra.Command, args []string) error {
	_, client, err := setup(cmd)
	if err != nil {
		return err
	}

	password := mustGetString(cmd, "password")
	if password == "" {
		err := huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Run()
		if err != nil {
			return err
		}
	}

	res, err := client.Login(commandContext(cmd), mustGetString(cmd, "username"), password)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidCredentials) {
			return errors.New("invalid username or password")
		}

		return fmt.Errorf("failed to log in: %w", err)
	}

	if mustGetBool(cmd, "shell") {
		fmt.Fprintf(cmd.OutOrStdout(), "export PRESENCE_TOKEN=%s\n", res.Token)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Token)

	return nil
}
