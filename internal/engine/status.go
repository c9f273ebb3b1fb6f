package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/Veraticus/every-penny/internal/model"
)

// GetBudgetStatus computes the spend-vs-budget state of one budget for
// the period containing the clock's current instant. It returns
// (nil, nil) when the budget does not exist or belongs to another
// user: budgets that are not visible to the caller are simply absent,
// never an error.
func (e *Engine) GetBudgetStatus(ctx context.Context, budgetID, userID string) (*model.BudgetStatus, error) {
	budget, err := e.budgets.GetBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if budget == nil || budget.UserID != userID {
		return nil, nil
	}

	now := e.clock.Now()
	from, to := model.PeriodWindow(budget.Period, budget.StartDate, now)

	agg, err := e.transactions.SumSpentByBudgetInPeriod(ctx, budget.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spend for budget %s: %w", budget.ID, err)
	}

	spent := agg.TotalCents
	percentage := percentageUsed(spent, budget.AmountCents)

	status := &model.BudgetStatus{
		Budget:           *budget,
		SpentCents:       spent,
		RemainingCents:   budget.AmountCents - spent,
		PercentageUsed:   percentage,
		TransactionCount: agg.Count,
		IsOverBudget:     spent > budget.AmountCents,
		ShouldAlert:      budget.AlertThreshold != nil && percentage >= float64(*budget.AlertThreshold),
	}
	return status, nil
}

// percentageUsed derives spend as a percentage of the budget amount,
// rounded to two decimal places. A zero-amount budget reports 0% while
// spend is zero or negative and 100% once there is positive spend;
// isOverBudget carries the real signal in that case.
func percentageUsed(spentCents, amountCents int64) float64 {
	if amountCents == 0 {
		if spentCents <= 0 {
			return 0
		}
		return 100
	}
	p := float64(spentCents) / float64(amountCents) * 100
	return math.Round(p*100) / 100
}
