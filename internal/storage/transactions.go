package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/every-penny/internal/model"
	"github.com/Veraticus/every-penny/internal/service"
)

const transactionColumns = `id, user_id, budget_id, category_id, amount_cents, note, occurred_at, created_at, updated_at`

// GetTransactionByID returns a transaction by id, or nil if it does not exist.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`

	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

// ListTransactionsByUser returns the user's transactions, newest first,
// optionally restricted to an occurredAt window.
func (s *SQLiteStorage) ListTransactionsByUser(ctx context.Context, userID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if filter.From != nil {
		query += ` AND occurred_at >= ?`
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		query += ` AND occurred_at < ?`
		args = append(args, filter.To.UTC())
	}

	query += ` ORDER BY occurred_at DESC, id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "user_id", userID, "count", len(transactions))
	return transactions, nil
}

// CreateTransaction inserts a new transaction.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		txn.ID, txn.UserID, nullString(txn.BudgetID), nullString(txn.CategoryID),
		txn.AmountCents, txn.Note, txn.OccurredAt.UTC(), txn.CreatedAt.UTC(),
		txn.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction rewrites all mutable fields of a transaction.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET budget_id = ?, category_id = ?, amount_cents = ?, note = ?,
		    occurred_at = ?, updated_at = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		nullString(txn.BudgetID), nullString(txn.CategoryID), txn.AmountCents,
		txn.Note, txn.OccurredAt.UTC(), txn.UpdatedAt.UTC(), txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTransaction removes a transaction. Deletion is physical.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// SumSpentByBudgetInPeriod aggregates signed spend and transaction
// count for a budget over [from, to) in a single query.
func (s *SQLiteStorage) SumSpentByBudgetInPeriod(ctx context.Context, budgetID string, from, to time.Time) (service.SpendAggregate, error) {
	if err := validateContext(ctx); err != nil {
		return service.SpendAggregate{}, err
	}
	if err := validateString(budgetID, "budgetID"); err != nil {
		return service.SpendAggregate{}, err
	}
	if !from.Before(to) {
		return service.SpendAggregate{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidDateRange, from, to)
	}

	query := `
		SELECT COALESCE(SUM(amount_cents), 0), COUNT(*)
		FROM transactions
		WHERE budget_id = ? AND occurred_at >= ? AND occurred_at < ?`

	var agg service.SpendAggregate
	err := s.db.QueryRowContext(ctx, query, budgetID, from.UTC(), to.UTC()).
		Scan(&agg.TotalCents, &agg.Count)
	if err != nil {
		return service.SpendAggregate{}, fmt.Errorf("failed to aggregate budget spend: %w", err)
	}
	return agg, nil
}

// SumSpentByCategoryWithoutBudget aggregates the user's orphaned spend
// for a category: transactions with the category set but no budget.
func (s *SQLiteStorage) SumSpentByCategoryWithoutBudget(ctx context.Context, userID, categoryID string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return 0, err
	}

	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM transactions
		WHERE user_id = ? AND category_id = ? AND budget_id IS NULL`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, userID, categoryID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to aggregate orphaned spend: %w", err)
	}
	return total, nil
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var budgetID, categoryID sql.NullString

	err := row.Scan(&txn.ID, &txn.UserID, &budgetID, &categoryID,
		&txn.AmountCents, &txn.Note, &txn.OccurredAt, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, err
	}

	txn.BudgetID = budgetID.String
	txn.CategoryID = categoryID.String
	return &txn, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
