package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/every-penny/internal/model"
	"github.com/Veraticus/every-penny/internal/service"
)

// ImportItem is one transaction input in a bulk import batch.
type ImportItem struct {
	OccurredAt  time.Time
	BudgetID    string
	CategoryID  string
	Note        string
	AmountCents int64
}

// ImportError records a single failed item. Index refers to the item's
// position in the input batch so callers can correlate failures.
type ImportError struct {
	Item    ImportItem
	Message string
	Index   int
}

// ImportResult summarizes a bulk import. Success and Errors partition
// the input exactly: Imported + Failed == Total == len(items).
type ImportResult struct {
	Success  []model.Transaction
	Errors   []ImportError
	Imported int
	Failed   int
	Total    int
}

// AutoCategorizeFunc is the optional best-effort enrichment step the
// pipeline invokes per successfully created, uncategorized transaction.
// Its failure never fails the item it was attached to.
type AutoCategorizeFunc func(ctx context.Context, transactionID, userID string) (*service.CategorySuggestion, error)

// ImportOptions configures a bulk import run.
type ImportOptions struct {
	AutoCategorize AutoCategorizeFunc
	// Progress, when set, is invoked once per item as it finishes,
	// regardless of outcome. It must be safe for concurrent use when
	// Concurrency is above 1.
	Progress func()
	// Concurrency bounds parallel item processing. Values below 2 keep
	// the reference sequential behavior. Output ordering by original
	// index is identical either way.
	Concurrency int
}

// BulkImport ingests a batch of transactions with per-item failure
// isolation: one item's failure never aborts or skips the rest, and
// there is no rollback of earlier successes. It returns an error only
// when the import cannot start at all.
func (e *Engine) BulkImport(ctx context.Context, userID string, items []ImportItem, opts ImportOptions) (*ImportResult, error) {
	type slot struct {
		txn *model.Transaction
		err error
	}
	slots := make([]slot, len(items))

	if opts.Concurrency > 1 && len(items) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for i := range items {
			g.Go(func() error {
				txn, err := e.importOne(gctx, userID, items[i], opts)
				slots[i] = slot{txn: txn, err: err}
				if opts.Progress != nil {
					opts.Progress()
				}
				return nil
			})
		}
		// Workers never return errors; failures live in their slots.
		_ = g.Wait()
	} else {
		for i := range items {
			txn, err := e.importOne(ctx, userID, items[i], opts)
			slots[i] = slot{txn: txn, err: err}
			if opts.Progress != nil {
				opts.Progress()
			}
		}
	}

	result := &ImportResult{
		Success: []model.Transaction{},
		Errors:  []ImportError{},
		Total:   len(items),
	}
	for i, s := range slots {
		if s.err != nil {
			result.Errors = append(result.Errors, ImportError{
				Index:   i,
				Message: s.err.Error(),
				Item:    items[i],
			})
			continue
		}
		result.Success = append(result.Success, *s.txn)
	}
	result.Imported = len(result.Success)
	result.Failed = len(result.Errors)

	slog.Info("Bulk import finished",
		"user_id", userID,
		"total", result.Total,
		"imported", result.Imported,
		"failed", result.Failed)

	return result, nil
}

// importOne creates a single transaction and runs the optional
// best-effort categorization step.
func (e *Engine) importOne(ctx context.Context, userID string, item ImportItem, opts ImportOptions) (*model.Transaction, error) {
	txn, err := e.AddTransaction(ctx, AddTransactionInput{
		UserID:      userID,
		BudgetID:    item.BudgetID,
		CategoryID:  item.CategoryID,
		AmountCents: item.AmountCents,
		Note:        item.Note,
		OccurredAt:  item.OccurredAt,
	})
	if err != nil {
		return nil, err
	}

	if txn.CategoryID != "" || strings.TrimSpace(txn.Note) == "" || opts.AutoCategorize == nil {
		return txn, nil
	}

	suggestion, catErr := opts.AutoCategorize(ctx, txn.ID, userID)
	if catErr != nil {
		// Best-effort enrichment: the transaction stays uncategorized.
		slog.Debug("Auto-categorization failed",
			"transaction_id", txn.ID,
			"error", catErr)
		return txn, nil
	}
	if suggestion == nil {
		return txn, nil
	}

	// The categorization step wrote the category; re-read to pick it
	// up, falling back to the pre-categorization transaction.
	updated, readErr := e.transactions.GetTransactionByID(ctx, txn.ID)
	if readErr != nil || updated == nil {
		slog.Debug("Failed to re-read categorized transaction",
			"transaction_id", txn.ID,
			"error", readErr)
		return txn, nil
	}
	return updated, nil
}
