package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/every-penny/internal/model"
	"github.com/Veraticus/every-penny/internal/service"
)

func newTestStore(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

var storeNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func testCategory(id, userID, name string) *model.Category {
	return &model.Category{
		ID:        id,
		UserID:    userID,
		Name:      name,
		IsActive:  true,
		CreatedAt: storeNow,
		UpdatedAt: storeNow,
	}
}

func testBudget(id, userID, categoryID string) *model.Budget {
	return &model.Budget{
		ID:          id,
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        "Budget " + id,
		AmountCents: 10000,
		Currency:    "USD",
		Period:      model.PeriodMonthly,
		StartDate:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
		CreatedAt:   storeNow,
		UpdatedAt:   storeNow,
	}
}

func testTransaction(id, userID string, amountCents int64, occurredAt time.Time) *model.Transaction {
	return &model.Transaction{
		ID:          id,
		UserID:      userID,
		AmountCents: amountCents,
		OccurredAt:  occurredAt,
		CreatedAt:   storeNow,
		UpdatedAt:   storeNow,
	}
}

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	category := testCategory("cat-1", "user-1", "Groceries")
	category.Description = "Food and household"
	category.Icon = "🛒"
	category.Color = "#00B894"
	require.NoError(t, store.CreateCategory(ctx, category))

	got, err := store.GetCategoryByID(ctx, "cat-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Groceries", got.Name)
	assert.Equal(t, "🛒", got.Icon)
	assert.True(t, got.IsActive)

	got.Name = "Food"
	got.IsActive = false
	require.NoError(t, store.UpdateCategory(ctx, got))

	got, err = store.GetCategoryByID(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)
	assert.False(t, got.IsActive)

	require.NoError(t, store.DeleteCategory(ctx, "cat-1"))
	got, err = store.GetCategoryByID(ctx, "cat-1")
	require.NoError(t, err)
	assert.Nil(t, got, "missing rows read as nil, not an error")
}

func TestCategoryUniqueNamePerUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.CreateCategory(ctx, testCategory("cat-1", "user-1", "Groceries")))

	// Uniqueness is case-insensitive and per user.
	err := store.CreateCategory(ctx, testCategory("cat-2", "user-1", "GROCERIES"))
	assert.Error(t, err)

	assert.NoError(t, store.CreateCategory(ctx, testCategory("cat-3", "user-2", "Groceries")))
}

func TestListCategoriesFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := testCategory("cat-1", "user-1", "Bills")
	first.SortOrder = 1
	second := testCategory("cat-2", "user-1", "Auto")
	second.SortOrder = 0
	inactive := testCategory("cat-3", "user-1", "Closed")
	inactive.IsActive = false
	inactive.SortOrder = 2
	require.NoError(t, store.CreateCategory(ctx, first))
	require.NoError(t, store.CreateCategory(ctx, second))
	require.NoError(t, store.CreateCategory(ctx, inactive))
	require.NoError(t, store.CreateCategory(ctx, testCategory("cat-4", "user-2", "Other")))

	all, err := store.ListCategoriesByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Auto", all[0].Name, "ordered by sort order")
	assert.Equal(t, "Bills", all[1].Name)

	active, err := store.ListActiveCategoriesByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, cat := range active {
		assert.True(t, cat.IsActive)
	}
}

func TestBudgetCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.CreateCategory(ctx, testCategory("cat-1", "user-1", "Groceries")))

	budget := testBudget("bgt-1", "user-1", "cat-1")
	end := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	threshold := 80
	budget.EndDate = &end
	budget.AlertThreshold = &threshold
	require.NoError(t, store.CreateBudget(ctx, budget))

	got, err := store.GetBudgetByID(ctx, "bgt-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(10000), got.AmountCents)
	assert.Equal(t, model.PeriodMonthly, got.Period)
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
	require.NotNil(t, got.AlertThreshold)
	assert.Equal(t, 80, *got.AlertThreshold)

	// Nullable fields round-trip back to nil.
	got.EndDate = nil
	got.AlertThreshold = nil
	require.NoError(t, store.UpdateBudget(ctx, got))
	got, err = store.GetBudgetByID(ctx, "bgt-1")
	require.NoError(t, err)
	assert.Nil(t, got.EndDate)
	assert.Nil(t, got.AlertThreshold)

	require.NoError(t, store.DeleteBudget(ctx, "bgt-1"))
	got, err = store.GetBudgetByID(ctx, "bgt-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListActiveBudgetsByUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.CreateCategory(ctx, testCategory("cat-1", "user-1", "Groceries")))

	current := testBudget("bgt-current", "user-1", "cat-1")
	require.NoError(t, store.CreateBudget(ctx, current))

	future := testBudget("bgt-future", "user-1", "cat-1")
	future.StartDate = storeNow.AddDate(0, 1, 0)
	require.NoError(t, store.CreateBudget(ctx, future))

	ended := testBudget("bgt-ended", "user-1", "cat-1")
	endedAt := storeNow.AddDate(0, 0, -1)
	ended.EndDate = &endedAt
	require.NoError(t, store.CreateBudget(ctx, ended))

	deactivated := testBudget("bgt-off", "user-1", "cat-1")
	deactivated.IsActive = false
	require.NoError(t, store.CreateBudget(ctx, deactivated))

	active, err := store.ListActiveBudgetsByUser(ctx, "user-1", storeNow)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "bgt-current", active[0].ID)
}

func TestUpdateMissingRowsReportNoRows(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.UpdateBudget(ctx, testBudget("ghost", "user-1", "cat-1"))
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = store.UpdateTransaction(ctx, testTransaction("ghost", "user-1", 100, storeNow))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListTransactionsByUserWindowAndPaging(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i, day := range []int{1, 5, 10, 20} {
		txn := testTransaction(
			string(rune('a'+i)), "user-1", int64(100*(i+1)),
			time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC))
		require.NoError(t, store.CreateTransaction(ctx, txn))
	}

	from := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	// The window is half-open: March 5 in, March 20 out.
	listed, err := store.ListTransactionsByUser(ctx, "user-1", service.TransactionFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "c", listed[0].ID, "newest first")
	assert.Equal(t, "b", listed[1].ID)

	// Limit and offset page through.
	paged, err := store.ListTransactionsByUser(ctx, "user-1", service.TransactionFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, "b", paged[0].ID)
	assert.Equal(t, "a", paged[1].ID)
}

func TestSumSpentByBudgetInPeriod(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	inWindow := testTransaction("tx-1", "user-1", 3000, from)
	inWindow.BudgetID = "bgt-1"
	require.NoError(t, store.CreateTransaction(ctx, inWindow))

	refund := testTransaction("tx-2", "user-1", -500, from.AddDate(0, 0, 10))
	refund.BudgetID = "bgt-1"
	require.NoError(t, store.CreateTransaction(ctx, refund))

	atEnd := testTransaction("tx-3", "user-1", 9999, to)
	atEnd.BudgetID = "bgt-1"
	require.NoError(t, store.CreateTransaction(ctx, atEnd))

	otherBudget := testTransaction("tx-4", "user-1", 9999, from)
	otherBudget.BudgetID = "bgt-2"
	require.NoError(t, store.CreateTransaction(ctx, otherBudget))

	agg, err := store.SumSpentByBudgetInPeriod(ctx, "bgt-1", from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), agg.TotalCents, "signed sum, window start inclusive, end exclusive")
	assert.Equal(t, 2, agg.Count)

	// Empty windows aggregate to zero, not an error.
	agg, err = store.SumSpentByBudgetInPeriod(ctx, "bgt-none", from, to)
	require.NoError(t, err)
	assert.Zero(t, agg.TotalCents)
	assert.Zero(t, agg.Count)

	// Degenerate windows are rejected.
	_, err = store.SumSpentByBudgetInPeriod(ctx, "bgt-1", to, from)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestSumSpentByCategoryWithoutBudget(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	orphan := testTransaction("tx-1", "user-1", 1500, storeNow)
	orphan.CategoryID = "cat-1"
	require.NoError(t, store.CreateTransaction(ctx, orphan))

	budgeted := testTransaction("tx-2", "user-1", 9999, storeNow)
	budgeted.CategoryID = "cat-1"
	budgeted.BudgetID = "bgt-1"
	require.NoError(t, store.CreateTransaction(ctx, budgeted))

	foreign := testTransaction("tx-3", "user-2", 9999, storeNow)
	foreign.CategoryID = "cat-1"
	require.NoError(t, store.CreateTransaction(ctx, foreign))

	total, err := store.SumSpentByCategoryWithoutBudget(ctx, "user-1", "cat-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), total, "budgeted and foreign spend is excluded")
}
