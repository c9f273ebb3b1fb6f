package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/every-penny/internal/cli"
	"github.com/Veraticus/every-penny/internal/engine"
	"github.com/Veraticus/every-penny/internal/model"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage periodic budgets",
		Long:  `Create, list, update, and delete the recurring budgets attached to categories.`,
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(addBudgetCmd())
	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all budgets with their current status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			userID := currentUser()
			budgets, err := eng.ListBudgets(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No budgets yet. Use 'penny budgets add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "ID\tNAME\tPERIOD\tLIMIT\tSPENT\tUSED\tACTIVE")
			for _, budget := range budgets {
				status, statusErr := eng.GetBudgetStatus(ctx, budget.ID, userID)
				if statusErr != nil {
					return fmt.Errorf("failed to compute status: %w", statusErr)
				}
				if status == nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f%%\t%t\n",
					budget.ID, budget.Name, budget.Period,
					cli.FormatCents(budget.AmountCents, budget.Currency),
					cli.FormatCents(status.SpentCents, budget.Currency),
					status.PercentageUsed, budget.IsActive)
			}

			return nil
		},
	}
}

func addBudgetCmd() *cobra.Command {
	var (
		categoryID string
		amount     string
		period     string
		curr       string
		startDate  string
		endDate    string
		threshold  int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amountCents, err := parseCents(amount)
			if err != nil {
				return err
			}

			budgetPeriod, err := model.ParsePeriod(period)
			if err != nil {
				return err
			}

			start := time.Now().UTC()
			if startDate != "" {
				if start, err = parseDate(startDate); err != nil {
					return err
				}
			}

			input := engine.CreateBudgetInput{
				UserID:      currentUser(),
				CategoryID:  categoryID,
				Name:        args[0],
				AmountCents: amountCents,
				Currency:    curr,
				Period:      budgetPeriod,
				StartDate:   start,
			}
			if endDate != "" {
				end, endErr := parseDate(endDate)
				if endErr != nil {
					return endErr
				}
				input.EndDate = &end
			}
			if cmd.Flags().Changed("alert-threshold") {
				input.AlertThreshold = &threshold
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, err := eng.CreateBudget(ctx, input)
			if err != nil {
				return fmt.Errorf("failed to create budget: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created %s budget %q (%s)",
				budget.Period, budget.Name, budget.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "budget limit, e.g. 500.00 (required)")
	cmd.Flags().StringVar(&period, "period", "MONTHLY", "period: DAILY, WEEKLY, MONTHLY, or YEARLY")
	cmd.Flags().StringVar(&curr, "currency", defaultCurrency, "3-letter currency code")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&endDate, "end", "", "optional end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&threshold, "alert-threshold", 0, "alert when usage reaches this percentage (0-100)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var (
		name      string
		amount    string
		threshold int
		active    bool
		clearEnd  bool
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Update fields of a budget",
		Long:  `Apply a partial update to a budget; unspecified flags leave the fields unchanged.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var updates engine.UpdateBudgetInput
			if cmd.Flags().Changed("name") {
				updates.Name = &name
			}
			if cmd.Flags().Changed("amount") {
				amountCents, err := parseCents(amount)
				if err != nil {
					return err
				}
				updates.AmountCents = &amountCents
			}
			if cmd.Flags().Changed("alert-threshold") {
				updates.AlertThreshold = &threshold
			}
			if cmd.Flags().Changed("active") {
				updates.IsActive = &active
			}
			updates.ClearEndDate = clearEnd

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget, err := eng.UpdateBudget(ctx, args[0], currentUser(), updates)
			if err != nil {
				return fmt.Errorf("failed to update budget: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated budget %q", budget.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new budget name")
	cmd.Flags().StringVar(&amount, "amount", "", "new budget limit, e.g. 500.00")
	cmd.Flags().IntVar(&threshold, "alert-threshold", 0, "new alert threshold (0-100)")
	cmd.Flags().BoolVar(&active, "active", true, "pause or resume the budget")
	cmd.Flags().BoolVar(&clearEnd, "clear-end", false, "remove the budget's end date")

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := eng.DeleteBudget(ctx, args[0], currentUser()); err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Budget deleted"))
			return nil
		},
	}
}
