package model

// BudgetStatus is the derived spend-vs-budget state of one budget for
// its current period. It is computed, never persisted.
type BudgetStatus struct {
	Budget           Budget
	SpentCents       int64
	RemainingCents   int64
	PercentageUsed   float64
	TransactionCount int
	IsOverBudget     bool
	ShouldAlert      bool
}

// CategoryBudgetSummary rolls the statuses of a category's budgets up
// into category-level totals. TotalSpentCents includes orphaned spend:
// transactions tagged with the category but no budget.
type CategoryBudgetSummary struct {
	CategoryID            string
	CategoryName          string
	CategoryIcon          string
	CategoryColor         string
	Budgets               []BudgetStatus
	TotalBudgetCents      int64
	TotalSpentCents       int64
	TotalRemainingCents   int64
	OverallPercentageUsed float64
	HasOverBudget         bool
}

// BudgetDashboard is the account-wide rollup. OverBudgetCount and
// AlertCount are budget-scoped: they count every active budget, whether
// or not its category made it into Categories.
type BudgetDashboard struct {
	Categories       []CategoryBudgetSummary
	TotalBudgetCents int64
	TotalSpentCents  int64
	OverBudgetCount  int
	AlertCount       int
}
