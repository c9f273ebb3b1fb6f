package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/every-penny/internal/cli"
	"github.com/Veraticus/every-penny/internal/engine"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Record, list, and delete individual transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		budgetID   string
		categoryID string
		note       string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a transaction",
		Long:  `Record a transaction. Negative amounts are refunds. Budget and category are optional.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amountCents, err := parseCents(args[0])
			if err != nil {
				return err
			}

			occurred := time.Now().UTC()
			if date != "" {
				if occurred, err = parseDate(date); err != nil {
					return err
				}
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			txn, err := eng.AddTransaction(ctx, engine.AddTransactionInput{
				UserID:      currentUser(),
				BudgetID:    budgetID,
				CategoryID:  categoryID,
				AmountCents: amountCents,
				Note:        note,
				OccurredAt:  occurred,
			})
			if err != nil {
				return fmt.Errorf("failed to record transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Recorded %s (%s)",
				cli.FormatCents(txn.AmountCents, currency()), txn.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&budgetID, "budget", "", "budget id")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id")
	cmd.Flags().StringVar(&note, "note", "", "transaction note")
	cmd.Flags().StringVar(&date, "date", "", "occurred date (YYYY-MM-DD, default today)")

	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		fromDate string
		toDate   string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var input engine.ListTransactionsInput
			if fromDate != "" {
				from, err := parseDate(fromDate)
				if err != nil {
					return err
				}
				input.From = &from
			}
			if toDate != "" {
				to, err := parseDate(toDate)
				if err != nil {
					return err
				}
				input.To = &to
			}
			input.Limit = limit

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := eng.ListTransactions(ctx, currentUser(), input)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions in this window."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "DATE\tAMOUNT\tNOTE\tBUDGET\tCATEGORY\tID")
			for _, txn := range transactions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.OccurredAt.Format("2006-01-02"),
					cli.FormatCents(txn.AmountCents, currency()),
					txn.Note, txn.BudgetID, txn.CategoryID, txn.ID)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "window start (YYYY-MM-DD, default 30 days ago)")
	cmd.Flags().StringVar(&toDate, "to", "", "window end (YYYY-MM-DD, default now)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (default 50)")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.DeleteTransaction(ctx, args[0], currentUser()); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Transaction deleted"))
			return nil
		},
	}
}
