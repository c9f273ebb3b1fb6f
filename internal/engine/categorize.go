package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/every-penny/internal/common"
	"github.com/Veraticus/every-penny/internal/service"
)

// SetCategorizer attaches the optional auto-categorization
// collaborator. Without one, CategorizeTransaction declines every
// transaction.
func (e *Engine) SetCategorizer(categorizer service.Categorizer) {
	e.categorizer = categorizer
}

// CategorizeTransaction asks the categorizer to pick a category for an
// uncategorized transaction based on its note, and persists the pick.
// It returns (nil, nil) when there is nothing to do: the transaction is
// already categorized, has no note, the user has no active categories,
// no categorizer is attached, or the categorizer declines.
func (e *Engine) CategorizeTransaction(ctx context.Context, transactionID, userID string) (*service.CategorySuggestion, error) {
	if e.categorizer == nil {
		return nil, nil
	}

	txn, err := e.transactions.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn == nil || txn.UserID != userID {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, common.ErrNotFound)
	}

	if txn.CategoryID != "" || strings.TrimSpace(txn.Note) == "" {
		return nil, nil
	}

	categories, err := e.categories.ListActiveCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, nil
	}

	options := make([]service.CategoryOption, len(categories))
	valid := make(map[string]bool, len(categories))
	for i, cat := range categories {
		options[i] = service.CategoryOption{ID: cat.ID, Name: cat.Name, Icon: cat.Icon}
		valid[cat.ID] = true
	}

	suggestion, err := e.categorizer.SuggestCategory(ctx, txn.Note, txn.AmountCents, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCategorizationFailed, err)
	}
	if suggestion == nil {
		return nil, nil
	}
	if !valid[suggestion.CategoryID] {
		return nil, fmt.Errorf("%w: suggested unknown category %q", common.ErrCategorizationFailed, suggestion.CategoryID)
	}

	categoryID := suggestion.CategoryID
	if _, err := e.UpdateTransaction(ctx, transactionID, userID, UpdateTransactionInput{
		CategoryID: &categoryID,
	}); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	slog.Info("Auto-categorized transaction",
		"transaction_id", transactionID,
		"category_id", suggestion.CategoryID,
		"reasoning", suggestion.Reasoning)

	return suggestion, nil
}
