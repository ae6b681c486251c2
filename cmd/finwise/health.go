package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API gateway reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		status, err := app.Client.Health(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (as of %s)\n",
			status.Status, status.Timestamp.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}
