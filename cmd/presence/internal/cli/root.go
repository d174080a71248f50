package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/backend"
	"github.com/MrJamesThe3rd/presence/internal/config"
	"github.com/MrJamesThe3rd/presence/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "presence",
	Short: "Command line companion of the Presence attendance dashboard",
	Long: `Presence reads attendance from the face-recognition backend, exports it
as CSV or Excel, and performs one-shot calls such as recording a punch from
an image file.

The backend admin token is read from --token or PRESENCE_TOKEN. Use
"presence login" to obtain one.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("token", "", "Backend admin token (defaults to PRESENCE_TOKEN)")
	rootCmd.PersistentFlags().String("backend", "", "Backend base URL (defaults to PRESENCE_BACKEND_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (defaults to LOG_LEVEL)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// setup loads the configuration, applies the persistent flag overrides and
// configures logging. The returned client carries the admin token, if any.
func setup(cmd *cobra.Command) (*config.Config, *backend.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if v := mustGetString(cmd, "backend"); v != "" {
		cfg.Backend.URL = v
	}

	if v := mustGetString(cmd, "token"); v != "" {
		cfg.Backend.Token = v
	}

	if v := mustGetString(cmd, "log-level"); v != "" {
		cfg.App.LogLevel = v
	}

	logging.Setup(os.Stderr, cfg.App.LogLevel)

	client, err := backend.New(cfg.Backend.URL, cfg.Backend.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid backend url: %w", err)
	}

	return cfg, client.WithToken(cfg.Backend.Token), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
