package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Veraticus/every-penny/internal/model"
	"github.com/Veraticus/every-penny/internal/testutil"
)

// testNow is the fixed instant all engine tests run at.
var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *testutil.FixedClock) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	clock := &testutil.FixedClock{Time: testNow}
	return New(store, clock, &testutil.SequentialIDs{}), clock
}

func mustCreateCategory(t *testing.T, e *Engine, userID, name string) *model.Category {
	t.Helper()
	category, err := e.CreateCategory(context.Background(), CreateCategoryInput{
		UserID: userID,
		Name:   name,
	})
	require.NoError(t, err)
	return category
}

func mustCreateBudget(t *testing.T, e *Engine, userID, categoryID string, amountCents int64, opts ...func(*CreateBudgetInput)) *model.Budget {
	t.Helper()
	input := CreateBudgetInput{
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        "Budget for " + categoryID,
		AmountCents: amountCents,
		Currency:    "USD",
		Period:      model.PeriodMonthly,
		StartDate:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&input)
	}
	budget, err := e.CreateBudget(context.Background(), input)
	require.NoError(t, err)
	return budget
}

func mustAddTransaction(t *testing.T, e *Engine, userID string, amountCents int64, opts ...func(*AddTransactionInput)) *model.Transaction {
	t.Helper()
	input := AddTransactionInput{
		UserID:      userID,
		AmountCents: amountCents,
		OccurredAt:  testNow,
	}
	for _, opt := range opts {
		opt(&input)
	}
	txn, err := e.AddTransaction(context.Background(), input)
	require.NoError(t, err)
	return txn
}
