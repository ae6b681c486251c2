package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finwise/finwise-go/pkg/money"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the financial overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}

		data, err := app.Client.Dashboard(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		currency := "USD"
		if len(data.Accounts) > 0 {
			currency = data.Accounts[0].Currency
		}
		total, err := money.Format(data.TotalBalance, currency)
		if err != nil {
			total = data.TotalBalance
		}
		fmt.Fprintf(out, "Total balance: %s across %d accounts\n", total, len(data.Accounts))

		if len(data.RecentTransactions) > 0 {
			fmt.Fprintln(out, "\nRecent transactions:")
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, t := range data.RecentTransactions {
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", t.Date, t.TransactionType, t.Amount, t.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		if len(data.CategoryBreakdown) > 0 {
			fmt.Fprintln(out, "\nSpending by category:")
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, c := range data.CategoryBreakdown {
				fmt.Fprintf(w, "  %s\t%s\t%.1f%%\n", c.Category, c.Amount, c.Percentage)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		return nil
	},
}
