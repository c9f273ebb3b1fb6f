package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/every-penny/internal/model"
)

const budgetColumns = `id, user_id, category_id, name, amount_cents, currency, period, start_date, end_date, is_active, alert_threshold, created_at, updated_at`

// GetBudgetByID returns a budget by id, or nil if it does not exist.
func (s *SQLiteStorage) GetBudgetByID(ctx context.Context, id string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = ?`

	budget, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	return budget, nil
}

// ListBudgetsByUser returns all of a user's budgets.
func (s *SQLiteStorage) ListBudgetsByUser(ctx context.Context, userID string) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = ? ORDER BY name`
	return s.queryBudgets(ctx, query, userID)
}

// ListActiveBudgetsByUser returns budgets in effect at the given
// instant: flagged active, started, and not past their end date.
func (s *SQLiteStorage) ListActiveBudgetsByUser(ctx context.Context, userID string, asOf time.Time) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = ? AND is_active = 1
		  AND start_date <= ?
		  AND (end_date IS NULL OR end_date >= ?)
		ORDER BY name`
	return s.queryBudgets(ctx, query, userID, asOf.UTC(), asOf.UTC())
}

// ListBudgetsByCategory returns every budget of the user referencing
// the category, active or not. The category deletion guard depends on
// inactive budgets being included here.
func (s *SQLiteStorage) ListBudgetsByCategory(ctx context.Context, userID, categoryID string) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}

	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = ? AND category_id = ? ORDER BY name`
	return s.queryBudgets(ctx, query, userID, categoryID)
}

func (s *SQLiteStorage) queryBudgets(ctx context.Context, query string, args ...any) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		budget, scanErr := scanBudget(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", scanErr)
		}
		budgets = append(budgets, *budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	slog.Debug("retrieved budgets", "count", len(budgets))
	return budgets, nil
}

// CreateBudget inserts a new budget.
func (s *SQLiteStorage) CreateBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		budget.ID, budget.UserID, budget.CategoryID, budget.Name,
		budget.AmountCents, budget.Currency, string(budget.Period),
		budget.StartDate.UTC(), nullTime(budget.EndDate), budget.IsActive,
		nullInt(budget.AlertThreshold), budget.CreatedAt.UTC(), budget.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}
	return nil
}

// UpdateBudget rewrites all mutable fields of a budget.
func (s *SQLiteStorage) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	query := `
		UPDATE budgets
		SET category_id = ?, name = ?, amount_cents = ?, currency = ?, period = ?,
		    start_date = ?, end_date = ?, is_active = ?, alert_threshold = ?, updated_at = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		budget.CategoryID, budget.Name, budget.AmountCents, budget.Currency,
		string(budget.Period), budget.StartDate.UTC(), nullTime(budget.EndDate),
		budget.IsActive, nullInt(budget.AlertThreshold), budget.UpdatedAt.UTC(),
		budget.ID)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
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

// DeleteBudget removes a budget. Deletion is physical.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

func scanBudget(row rowScanner) (*model.Budget, error) {
	var budget model.Budget
	var period string
	var endDate sql.NullTime
	var threshold sql.NullInt64

	err := row.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &budget.Name,
		&budget.AmountCents, &budget.Currency, &period, &budget.StartDate,
		&endDate, &budget.IsActive, &threshold, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return nil, err
	}

	budget.Period = model.Period(period)
	if endDate.Valid {
		t := endDate.Time
		budget.EndDate = &t
	}
	if threshold.Valid {
		v := int(threshold.Int64)
		budget.AlertThreshold = &v
	}
	return &budget, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
