package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/every-penny/internal/common"
	"github.com/Veraticus/every-penny/internal/model"
	"github.com/Veraticus/every-penny/internal/service"
)

// Defaults for transaction listing.
const (
	defaultListDays  = 30
	defaultListLimit = 50
)

// AddTransactionInput carries the fields for a new transaction.
// BudgetID and CategoryID are optional; "" means none.
type AddTransactionInput struct {
	OccurredAt  time.Time
	UserID      string
	BudgetID    string
	CategoryID  string
	Note        string
	AmountCents int64
}

// UpdateTransactionInput is a partial update: nil pointer fields are
// left unchanged, a pointer to "" clears the optional references.
type UpdateTransactionInput struct {
	BudgetID    *string
	CategoryID  *string
	AmountCents *int64
	Note        *string
	OccurredAt  *time.Time
}

// ListTransactionsInput bounds a transaction listing. Zero values fall
// back to the last 30 days with a limit of 50.
type ListTransactionsInput struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// AddTransaction records a single transaction.
func (e *Engine) AddTransaction(ctx context.Context, input AddTransactionInput) (*model.Transaction, error) {
	if input.OccurredAt.IsZero() {
		return nil, fmt.Errorf("transaction must have an occurred date: %w", common.ErrInvalidInput)
	}

	now := e.clock.Now()
	txn := &model.Transaction{
		ID:          e.ids.NewID(),
		UserID:      input.UserID,
		BudgetID:    input.BudgetID,
		CategoryID:  input.CategoryID,
		AmountCents: input.AmountCents,
		Note:        input.Note,
		OccurredAt:  input.OccurredAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.transactions.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return txn, nil
}

// GetTransaction returns a transaction, or (nil, nil) when it does not
// exist or belongs to another user.
func (e *Engine) GetTransaction(ctx context.Context, id, userID string) (*model.Transaction, error) {
	txn, err := e.transactions.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn == nil || txn.UserID != userID {
		return nil, nil
	}
	return txn, nil
}

// ListTransactions returns the user's transactions newest first.
func (e *Engine) ListTransactions(ctx context.Context, userID string, input ListTransactionsInput) ([]model.Transaction, error) {
	to := e.clock.Now()
	if input.To != nil {
		to = *input.To
	}
	from := to.AddDate(0, 0, -defaultListDays)
	if input.From != nil {
		from = *input.From
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	transactions, err := e.transactions.ListTransactionsByUser(ctx, userID, service.TransactionFilter{
		From:  &from,
		To:    &to,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// UpdateTransaction applies a partial update, preserving unspecified
// fields and refreshing UpdatedAt.
func (e *Engine) UpdateTransaction(ctx context.Context, id, userID string, updates UpdateTransactionInput) (*model.Transaction, error) {
	existing, err := e.transactions.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrUnauthorized)
	}

	updated := *existing
	if updates.BudgetID != nil {
		updated.BudgetID = *updates.BudgetID
	}
	if updates.CategoryID != nil {
		updated.CategoryID = *updates.CategoryID
	}
	if updates.AmountCents != nil {
		updated.AmountCents = *updates.AmountCents
	}
	if updates.Note != nil {
		updated.Note = *updates.Note
	}
	if updates.OccurredAt != nil {
		updated.OccurredAt = updates.OccurredAt.UTC()
	}
	updated.UpdatedAt = e.clock.Now()

	if err := e.transactions.UpdateTransaction(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return &updated, nil
}

// DeleteTransaction removes a transaction owned by the user.
func (e *Engine) DeleteTransaction(ctx context.Context, id, userID string) error {
	txn, err := e.transactions.GetTransactionByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn == nil {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if txn.UserID != userID {
		return fmt.Errorf("transaction %s: %w", id, common.ErrUnauthorized)
	}

	if err := e.transactions.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
