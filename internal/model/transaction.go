package model

import "time"

// Transaction represents a single cash flow event. It may reference a
// budget, a category, both, or neither. AmountCents is signed: refunds
// carry negative amounts and aggregation sums signed values.
type Transaction struct {
	OccurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	UserID      string
	BudgetID    string // "" when not budgeted
	CategoryID  string // "" when uncategorized
	Note        string
	AmountCents int64
}
