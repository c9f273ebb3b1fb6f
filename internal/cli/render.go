package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/every-penny/internal/model"
)

// FormatCents renders integer cents as a currency string.
func FormatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}

// RenderDashboard renders the account-wide rollup for the terminal.
func RenderDashboard(dashboard *model.BudgetDashboard, currency string) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("Budget Dashboard"))
	sb.WriteString("\n")

	if len(dashboard.Categories) == 0 {
		sb.WriteString(SubtleStyle.Render("No budget activity yet."))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, category := range dashboard.Categories {
		header := category.CategoryName
		if category.CategoryIcon != "" {
			header = category.CategoryIcon + " " + header
		}
		sb.WriteString(BoldStyle.Render(header))
		sb.WriteString(SubtleStyle.Render(fmt.Sprintf("  %s of %s (%.2f%%)",
			FormatCents(category.TotalSpentCents, currency),
			FormatCents(category.TotalBudgetCents, currency),
			category.OverallPercentageUsed)))
		sb.WriteString("\n")

		for _, status := range category.Budgets {
			sb.WriteString("  ")
			sb.WriteString(renderBudgetLine(status))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total: %s spent of %s budgeted",
		FormatCents(dashboard.TotalSpentCents, currency),
		FormatCents(dashboard.TotalBudgetCents, currency)))
	sb.WriteString("\n")

	if dashboard.OverBudgetCount > 0 {
		sb.WriteString(ErrorStyle.Render(fmt.Sprintf("%d budget(s) over limit", dashboard.OverBudgetCount)))
		sb.WriteString("\n")
	}
	if dashboard.AlertCount > 0 {
		sb.WriteString(WarningStyle.Render(fmt.Sprintf("%d budget(s) past alert threshold", dashboard.AlertCount)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderBudgetLine renders one budget's status with a usage bar.
func renderBudgetLine(status model.BudgetStatus) string {
	line := fmt.Sprintf("%-20s %s %s / %s (%.2f%%)",
		status.Budget.Name,
		usageBar(status.PercentageUsed),
		FormatCents(status.SpentCents, status.Budget.Currency),
		FormatCents(status.Budget.AmountCents, status.Budget.Currency),
		status.PercentageUsed)

	switch {
	case status.IsOverBudget:
		return ErrorStyle.Render(line)
	case status.ShouldAlert:
		return WarningStyle.Render(line)
	default:
		return SuccessStyle.Render(line)
	}
}

// usageBar renders a 10-cell spend bar, clamped to [0, 100].
func usageBar(percentage float64) string {
	filled := int(percentage / 10)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "]"
}
