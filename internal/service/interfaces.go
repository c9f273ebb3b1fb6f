// Package service defines the ports the budgeting engine depends on.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/every-penny/internal/model"
)

// CategoriesRepo is the persistence port for categories.
type CategoriesRepo interface {
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	ListCategoriesByUser(ctx context.Context, userID string) ([]model.Category, error)
	ListActiveCategoriesByUser(ctx context.Context, userID string) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// BudgetsRepo is the persistence port for budgets.
type BudgetsRepo interface {
	GetBudgetByID(ctx context.Context, id string) (*model.Budget, error)
	ListBudgetsByUser(ctx context.Context, userID string) ([]model.Budget, error)
	// ListActiveBudgetsByUser returns budgets that are active as of the
	// given instant (started, not ended, not paused).
	ListActiveBudgetsByUser(ctx context.Context, userID string, asOf time.Time) ([]model.Budget, error)
	ListBudgetsByCategory(ctx context.Context, userID, categoryID string) ([]model.Budget, error)
	CreateBudget(ctx context.Context, budget *model.Budget) error
	UpdateBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, id string) error
}

// SpendAggregate is the result of a server-side spend aggregation:
// a signed sum of amounts plus the number of matching transactions.
type SpendAggregate struct {
	TotalCents int64
	Count      int
}

// TransactionsRepo is the persistence port for transactions. The two
// Sum methods must be single aggregate queries so that status and
// dashboard cost stays bounded regardless of transaction volume.
type TransactionsRepo interface {
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string, filter TransactionFilter) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	UpdateTransaction(ctx context.Context, tx *model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	// SumSpentByBudgetInPeriod sums transactions for the budget with
	// occurredAt in [from, to).
	SumSpentByBudgetInPeriod(ctx context.Context, budgetID string, from, to time.Time) (SpendAggregate, error)
	// SumSpentByCategoryWithoutBudget sums the user's orphaned spend:
	// transactions tagged with the category but no budget.
	SumSpentByCategoryWithoutBudget(ctx context.Context, userID, categoryID string) (int64, error)
}

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Storage is the full persistence contract: all three repos plus
// database management.
type Storage interface {
	CategoriesRepo
	BudgetsRepo
	TransactionsRepo

	Migrate(ctx context.Context) error
	Close() error
}

// Clock supplies the current time. Use-cases never read the wall clock
// directly; a replayable clock makes every computation testable.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints new entity identifiers. Ids are lexicographically
// sortable (ULIDs in production).
type IDGenerator interface {
	NewID() string
}

// CategoryOption is one category offered to the categorizer.
type CategoryOption struct {
	ID   string
	Name string
	Icon string
}

// CategorySuggestion is a categorizer's pick for a transaction.
type CategorySuggestion struct {
	CategoryID string
	Reasoning  string
}

// Categorizer suggests a category for a transaction note. A nil
// suggestion with nil error means the categorizer declined.
type Categorizer interface {
	SuggestCategory(ctx context.Context, note string, amountCents int64, options []CategoryOption) (*CategorySuggestion, error)
}
