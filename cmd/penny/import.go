package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/every-penny/internal/cli"
	"github.com/Veraticus/every-penny/internal/engine"
	"github.com/Veraticus/every-penny/internal/ofx"
	"github.com/Veraticus/every-penny/internal/service"
)

func importCmd() *cobra.Command {
	var (
		budgetID       string
		categoryID     string
		autoCategorize bool
		concurrency    int
	)

	cmd := &cobra.Command{
		Use:   "import <file.ofx>",
		Short: "Import transactions from an OFX/QFX file",
		Long: `Import transactions from an OFX/QFX bank statement.

Each statement transaction becomes one recorded transaction. Failures
are reported per item and never abort the rest of the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = file.Close() }()

			items, err := ofx.NewParser().ParseFile(ctx, file)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			if len(items) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No transactions found in file."))
				return nil
			}

			for i := range items {
				if items[i].BudgetID == "" {
					items[i].BudgetID = budgetID
				}
				if items[i].CategoryID == "" {
					items[i].CategoryID = categoryID
				}
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			opts := engine.ImportOptions{Concurrency: concurrency}
			if autoCategorize {
				opts.AutoCategorize = func(ctx context.Context, transactionID, userID string) (*service.CategorySuggestion, error) {
					return eng.CategorizeTransaction(ctx, transactionID, userID)
				}
			}

			bar := importProgressBar(len(items))
			opts.Progress = func() {
				if err := bar.Add(1); err != nil {
					slog.Debug("Failed to advance progress bar", "error", err)
				}
			}

			result, err := eng.BulkImport(ctx, currentUser(), items, opts)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("Imported %d of %d transactions", result.Imported, result.Total)))
			if result.Failed > 0 {
				fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("%d failed:", result.Failed)))
				for _, importErr := range result.Errors {
					fmt.Printf("  item %d (%s): %s\n",
						importErr.Index, importErr.Item.Note, importErr.Message)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&budgetID, "budget", "", "assign all imported transactions to this budget")
	cmd.Flags().StringVar(&categoryID, "category", "", "assign all imported transactions to this category")
	cmd.Flags().BoolVar(&autoCategorize, "auto-categorize", false, "suggest categories for uncategorized items via the configured LLM")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "process up to N items in parallel (default sequential)")

	return cmd
}

func importProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
