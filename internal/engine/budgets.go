package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/every-penny/internal/common"
	"github.com/Veraticus/every-penny/internal/model"
)

// CreateBudgetInput carries the fields for a new budget.
type CreateBudgetInput struct {
	StartDate      time.Time
	EndDate        *time.Time
	AlertThreshold *int
	UserID         string
	CategoryID     string
	Name           string
	Currency       string
	Period         model.Period
	AmountCents    int64
}

// UpdateBudgetInput is a partial update: nil pointer fields are left
// unchanged. ClearEndDate and ClearAlertThreshold remove the optional
// fields outright, which a nil pointer cannot express.
type UpdateBudgetInput struct {
	CategoryID          *string
	Name                *string
	AmountCents         *int64
	Currency            *string
	Period              *model.Period
	StartDate           *time.Time
	EndDate             *time.Time
	AlertThreshold      *int
	IsActive            *bool
	ClearEndDate        bool
	ClearAlertThreshold bool
}

// CreateBudget creates a validated budget attached to one category.
func (e *Engine) CreateBudget(ctx context.Context, input CreateBudgetInput) (*model.Budget, error) {
	category, err := e.categories.GetCategoryByID(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil || category.UserID != input.UserID {
		return nil, fmt.Errorf("category %s: %w", input.CategoryID, common.ErrNotFound)
	}

	now := e.clock.Now()
	budget := &model.Budget{
		ID:             e.ids.NewID(),
		UserID:         input.UserID,
		CategoryID:     input.CategoryID,
		Name:           strings.TrimSpace(input.Name),
		AmountCents:    input.AmountCents,
		Currency:       strings.ToUpper(input.Currency),
		Period:         input.Period,
		StartDate:      input.StartDate.UTC(),
		EndDate:        input.EndDate,
		IsActive:       true,
		AlertThreshold: input.AlertThreshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := budget.Validate(); err != nil {
		return nil, err
	}

	if err := e.budgets.CreateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	slog.Info("Created budget",
		"budget_id", budget.ID,
		"category_id", budget.CategoryID,
		"amount_cents", budget.AmountCents,
		"period", budget.Period)
	return budget, nil
}

// GetBudget returns the user's budget, or nil when it does not exist
// or belongs to someone else.
func (e *Engine) GetBudget(ctx context.Context, id, userID string) (*model.Budget, error) {
	budget, err := e.budgets.GetBudgetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if budget == nil || budget.UserID != userID {
		return nil, nil
	}
	return budget, nil
}

// ListBudgets returns all of the user's budgets.
func (e *Engine) ListBudgets(ctx context.Context, userID string) ([]model.Budget, error) {
	budgets, err := e.budgets.ListBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget applies a partial update, preserving unspecified fields,
// re-validating the result, and refreshing UpdatedAt. CreatedAt is
// immutable.
func (e *Engine) UpdateBudget(ctx context.Context, id, userID string, updates UpdateBudgetInput) (*model.Budget, error) {
	existing, err := e.budgets.GetBudgetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("budget %s: %w", id, common.ErrUnauthorized)
	}

	updated := *existing
	if updates.CategoryID != nil {
		category, catErr := e.categories.GetCategoryByID(ctx, *updates.CategoryID)
		if catErr != nil {
			return nil, fmt.Errorf("failed to load category: %w", catErr)
		}
		if category == nil || category.UserID != userID {
			return nil, fmt.Errorf("category %s: %w", *updates.CategoryID, common.ErrNotFound)
		}
		updated.CategoryID = *updates.CategoryID
	}
	if updates.Name != nil {
		updated.Name = strings.TrimSpace(*updates.Name)
	}
	if updates.AmountCents != nil {
		updated.AmountCents = *updates.AmountCents
	}
	if updates.Currency != nil {
		updated.Currency = strings.ToUpper(*updates.Currency)
	}
	if updates.Period != nil {
		updated.Period = *updates.Period
	}
	if updates.StartDate != nil {
		updated.StartDate = updates.StartDate.UTC()
	}
	if updates.ClearEndDate {
		updated.EndDate = nil
	} else if updates.EndDate != nil {
		updated.EndDate = updates.EndDate
	}
	if updates.ClearAlertThreshold {
		updated.AlertThreshold = nil
	} else if updates.AlertThreshold != nil {
		updated.AlertThreshold = updates.AlertThreshold
	}
	if updates.IsActive != nil {
		updated.IsActive = *updates.IsActive
	}
	updated.UpdatedAt = e.clock.Now()

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := e.budgets.UpdateBudget(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return &updated, nil
}

// DeleteBudget removes a budget owned by the user.
func (e *Engine) DeleteBudget(ctx context.Context, id, userID string) error {
	budget, err := e.budgets.GetBudgetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load budget: %w", err)
	}
	if budget == nil {
		return fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
	}
	if budget.UserID != userID {
		return fmt.Errorf("budget %s: %w", id, common.ErrUnauthorized)
	}

	if err := e.budgets.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	slog.Info("Deleted budget", "budget_id", id)
	return nil
}
