package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finwise/finwise-go/pkg/money"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List bank accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}

		accounts, err := app.Client.Accounts(ctx)
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No accounts.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBANK\tNUMBER\tTYPE\tBALANCE")
		for _, a := range accounts {
			balance, err := money.Format(a.Balance, a.Currency)
			if err != nil {
				balance = a.Balance + " " + a.Currency
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				a.ID, a.BankName, a.AccountNumber, a.AccountType, balance)
		}
		return w.Flush()
	},
}
