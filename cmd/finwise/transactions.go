package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/finwise/finwise-go/pkg/apiclient"
)

var (
	txAccountID int64
	txType      string
	txCategory  string
	txFrom      string
	txTo        string
	txAmountMin string
	txAmountMax string
	txPage      int
	txPageSize  int
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List transactions, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApp(ctx)
		if err != nil {
			return err
		}

		filters := apiclient.TransactionFilters{
			AccountID:       txAccountID,
			TransactionType: apiclient.TransactionType(txType),
			Category:        txCategory,
			AmountMin:       txAmountMin,
			AmountMax:       txAmountMax,
		}
		if txFrom != "" {
			if filters.DateFrom, err = time.Parse(time.DateOnly, txFrom); err != nil {
				return fmt.Errorf("invalid --from date %q: %w", txFrom, err)
			}
		}
		if txTo != "" {
			if filters.DateTo, err = time.Parse(time.DateOnly, txTo); err != nil {
				return fmt.Errorf("invalid --to date %q: %w", txTo, err)
			}
		}

		page, err := app.Client.Transactions(ctx, filters, txPage, txPageSize)
		if err != nil {
			return err
		}
		if len(page.Data) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No transactions.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
		for _, t := range page.Data {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				t.ID, t.Date, t.TransactionType, t.Category, t.Amount, t.Description)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d total)\n",
			page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total)
		return nil
	},
}

func init() {
	f := transactionsCmd.Flags()
	f.Int64Var(&txAccountID, "account", 0, "restrict to one account ID")
	f.StringVar(&txType, "type", "", "debit, credit or transfer")
	f.StringVar(&txCategory, "category", "", "restrict to one category")
	f.StringVar(&txFrom, "from", "", "earliest date (YYYY-MM-DD)")
	f.StringVar(&txTo, "to", "", "latest date (YYYY-MM-DD)")
	f.StringVar(&txAmountMin, "min", "", "minimum amount")
	f.StringVar(&txAmountMax, "max", "", "maximum amount")
	f.IntVar(&txPage, "page", 1, "page number")
	f.IntVar(&txPageSize, "page-size", 20, "items per page")
}
