package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/every-penny/internal/model"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "125.50 USD", FormatCents(12550, "USD"))
	assert.Equal(t, "0.05 USD", FormatCents(5, "USD"))
	assert.Equal(t, "-12.34 EUR", FormatCents(-1234, "EUR"))
	assert.Equal(t, "0.00 USD", FormatCents(0, "USD"))
}

func TestUsageBar(t *testing.T) {
	assert.Equal(t, "[░░░░░░░░░░]", usageBar(0))
	assert.Equal(t, "[█████░░░░░]", usageBar(50))
	assert.Equal(t, "[██████████]", usageBar(100))
	assert.Equal(t, "[██████████]", usageBar(250), "clamped above 100")
	assert.Equal(t, "[░░░░░░░░░░]", usageBar(-10), "clamped below 0")
}

func TestRenderDashboard(t *testing.T) {
	empty := &model.BudgetDashboard{}
	out := RenderDashboard(empty, "USD")
	assert.Contains(t, out, "No budget activity yet.")

	threshold := 80
	dashboard := &model.BudgetDashboard{
		Categories: []model.CategoryBudgetSummary{
			{
				CategoryName: "Groceries",
				CategoryIcon: "🛒",
				Budgets: []model.BudgetStatus{
					{
						Budget: model.Budget{
							Name:           "Monthly groceries",
							Currency:       "USD",
							AmountCents:    50000,
							AlertThreshold: &threshold,
						},
						SpentCents:     42500,
						RemainingCents: 7500,
						PercentageUsed: 85,
						ShouldAlert:    true,
					},
				},
				TotalBudgetCents:      50000,
				TotalSpentCents:       42500,
				TotalRemainingCents:   7500,
				OverallPercentageUsed: 85,
			},
		},
		TotalBudgetCents: 50000,
		TotalSpentCents:  42500,
		AlertCount:       1,
	}

	out = RenderDashboard(dashboard, "USD")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Monthly groceries")
	assert.Contains(t, out, "425.00 USD")
	assert.Contains(t, out, "85.00%")
	assert.Contains(t, out, "1 budget(s) past alert threshold")
	assert.NotContains(t, out, "over limit")
}
