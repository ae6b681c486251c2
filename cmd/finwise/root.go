package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	finwise "github.com/finwise/finwise-go"
	"github.com/finwise/finwise-go/pkg/config"
	"github.com/finwise/finwise-go/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "finwise",
	Short: "FinWise personal finance client",
	Long: `finwise talks to a FinWise API gateway: sign in, inspect accounts
and transactions, and manage the local credential used between runs.

Configuration is read from the environment (FINWISE_API_URL,
FINWISE_CREDENTIAL_FILE, FINWISE_LOG_LEVEL and friends); a .env file
in the working directory is honored.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(
		loginCmd,
		logoutCmd,
		whoamiCmd,
		accountsCmd,
		transactionsCmd,
		dashboardCmd,
		healthCmd,
		mfaCmd,
	)
}

// newApp builds the SDK facade from the environment and restores any
// persisted credential so subcommands start from the bootstrapped state.
func newApp(ctx context.Context) (*finwise.App, error) {
	cfg := finwise.MustLoadConfig()

	var logCfg logger.Config
	config.MustLoad(&logCfg)

	app, err := finwise.New(cfg, finwise.WithLogger(logger.NewFromConfig(logCfg)))
	if err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}
	app.Session.Bootstrap(ctx)
	return app, nil
}
