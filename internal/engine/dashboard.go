package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/every-penny/internal/model"
)

// GetDashboard builds the account-wide spend-vs-budget rollup for a
// user. Each active category contributes a summary when it has at
// least one active budget or nonzero orphaned spend (transactions
// tagged with the category but no budget); categories with neither are
// omitted so the payload stays proportional to actual activity.
// OverBudgetCount and AlertCount cover every active budget regardless
// of whether its category was included.
func (e *Engine) GetDashboard(ctx context.Context, userID string) (*model.BudgetDashboard, error) {
	categories, err := e.categories.ListActiveCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	now := e.clock.Now()
	budgets, err := e.budgets.ListActiveBudgetsByUser(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	dashboard := &model.BudgetDashboard{
		Categories: []model.CategoryBudgetSummary{},
	}
	counted := make(map[string]bool, len(budgets))

	for _, category := range categories {
		summary := model.CategoryBudgetSummary{
			CategoryID:    category.ID,
			CategoryName:  category.Name,
			CategoryIcon:  category.Icon,
			CategoryColor: category.Color,
		}

		for _, budget := range budgets {
			if budget.CategoryID != category.ID {
				continue
			}

			status, statusErr := e.GetBudgetStatus(ctx, budget.ID, userID)
			if statusErr != nil {
				return nil, fmt.Errorf("failed to compute status for budget %s: %w", budget.ID, statusErr)
			}
			if status == nil {
				continue
			}
			counted[budget.ID] = true

			summary.Budgets = append(summary.Budgets, *status)
			summary.TotalBudgetCents += status.Budget.AmountCents
			summary.TotalSpentCents += status.SpentCents
			if status.IsOverBudget {
				summary.HasOverBudget = true
				dashboard.OverBudgetCount++
			}
			if status.ShouldAlert {
				dashboard.AlertCount++
			}
		}

		orphaned, orphanErr := e.transactions.SumSpentByCategoryWithoutBudget(ctx, userID, category.ID)
		if orphanErr != nil {
			return nil, fmt.Errorf("failed to aggregate orphaned spend for category %s: %w", category.ID, orphanErr)
		}
		summary.TotalSpentCents += orphaned

		// A category earns a slot with at least one budget or any
		// orphaned spend at all.
		if len(summary.Budgets) == 0 && orphaned == 0 {
			continue
		}

		summary.TotalRemainingCents = summary.TotalBudgetCents - summary.TotalSpentCents
		summary.OverallPercentageUsed = percentageUsed(summary.TotalSpentCents, summary.TotalBudgetCents)

		dashboard.Categories = append(dashboard.Categories, summary)
		dashboard.TotalBudgetCents += summary.TotalBudgetCents
		dashboard.TotalSpentCents += summary.TotalSpentCents
	}

	// Over-budget and alert counts are budget-scoped: budgets whose
	// category is inactive still count even though no summary carries
	// them.
	for _, budget := range budgets {
		if counted[budget.ID] {
			continue
		}

		status, statusErr := e.GetBudgetStatus(ctx, budget.ID, userID)
		if statusErr != nil {
			return nil, fmt.Errorf("failed to compute status for budget %s: %w", budget.ID, statusErr)
		}
		if status == nil {
			continue
		}
		if status.IsOverBudget {
			dashboard.OverBudgetCount++
		}
		if status.ShouldAlert {
			dashboard.AlertCount++
		}
	}

	slog.Debug("built dashboard",
		"user_id", userID,
		"categories", len(dashboard.Categories),
		"over_budget", dashboard.OverBudgetCount,
		"alerts", dashboard.AlertCount)

	return dashboard, nil
}
