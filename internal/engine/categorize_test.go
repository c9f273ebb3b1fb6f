package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/every-penny/internal/common"
	"github.com/Veraticus/every-penny/internal/service"
)

// mockCategorizer returns a canned suggestion and records the options
// it was offered.
type mockCategorizer struct {
	suggestion *service.CategorySuggestion
	err        error
	gotNote    string
	gotOptions []service.CategoryOption
	calls      int
}

func (m *mockCategorizer) SuggestCategory(_ context.Context, note string, _ int64, options []service.CategoryOption) (*service.CategorySuggestion, error) {
	m.calls++
	m.gotNote = note
	m.gotOptions = options
	return m.suggestion, m.err
}

func TestCategorizeTransaction(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	category := mustCreateCategory(t, e, "user-1", "Coffee")
	txn := mustAddTransaction(t, e, "user-1", 450, func(in *AddTransactionInput) {
		in.Note = "STARBUCKS #1234"
	})

	mock := &mockCategorizer{
		suggestion: &service.CategorySuggestion{CategoryID: category.ID, Reasoning: "coffee shop"},
	}
	e.SetCategorizer(mock)

	suggestion, err := e.CategorizeTransaction(ctx, txn.ID, "user-1")
	require.NoError(t, err)
	require.NotNil(t, suggestion)
	assert.Equal(t, category.ID, suggestion.CategoryID)
	assert.Equal(t, "STARBUCKS #1234", mock.gotNote)
	require.Len(t, mock.gotOptions, 1)

	// The pick is persisted.
	got, err := e.GetTransaction(ctx, txn.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, category.ID, got.CategoryID)
}

func TestCategorizeTransactionNothingToDo(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	category := mustCreateCategory(t, e, "user-1", "Coffee")

	// No categorizer attached.
	noted := mustAddTransaction(t, e, "user-1", 450, func(in *AddTransactionInput) {
		in.Note = "latte"
	})
	suggestion, err := e.CategorizeTransaction(ctx, noted.ID, "user-1")
	require.NoError(t, err)
	assert.Nil(t, suggestion)

	mock := &mockCategorizer{
		suggestion: &service.CategorySuggestion{CategoryID: category.ID},
	}
	e.SetCategorizer(mock)

	// Already categorized.
	categorized := mustAddTransaction(t, e, "user-1", 450, func(in *AddTransactionInput) {
		in.Note = "latte"
		in.CategoryID = category.ID
	})
	suggestion, err = e.CategorizeTransaction(ctx, categorized.ID, "user-1")
	require.NoError(t, err)
	assert.Nil(t, suggestion)

	// No note.
	blank := mustAddTransaction(t, e, "user-1", 450)
	suggestion, err = e.CategorizeTransaction(ctx, blank.ID, "user-1")
	require.NoError(t, err)
	assert.Nil(t, suggestion)

	assert.Zero(t, mock.calls, "the categorizer is never consulted")
}

func TestCategorizeTransactionNoActiveCategories(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	txn := mustAddTransaction(t, e, "user-1", 450, func(in *AddTransactionInput) {
		in.Note = "latte"
	})

	mock := &mockCategorizer{}
	e.SetCategorizer(mock)

	suggestion, err := e.CategorizeTransaction(ctx, txn.ID, "user-1")
	require.NoError(t, err)
	assert.Nil(t, suggestion)
	assert.Zero(t, mock.calls)
}

func TestCategorizeTransactionErrors(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	category := mustCreateCategory(t, e, "user-1", "Coffee")
	txn := mustAddTransaction(t, e, "user-1", 450, func(in *AddTransactionInput) {
		in.Note = "latte"
	})

	e.SetCategorizer(&mockCategorizer{err: errors.New("model unavailable")})
	_, err := e.CategorizeTransaction(ctx, txn.ID, "user-1")
	assert.ErrorIs(t, err, common.ErrCategorizationFailed)

	// A suggestion outside the offered set is rejected and not persisted.
	e.SetCategorizer(&mockCategorizer{
		suggestion: &service.CategorySuggestion{CategoryID: "hallucinated"},
	})
	_, err = e.CategorizeTransaction(ctx, txn.ID, "user-1")
	assert.ErrorIs(t, err, common.ErrCategorizationFailed)

	got, getErr := e.GetTransaction(ctx, txn.ID, "user-1")
	require.NoError(t, getErr)
	assert.Empty(t, got.CategoryID)

	// Unknown or foreign transactions are not found.
	e.SetCategorizer(&mockCategorizer{
		suggestion: &service.CategorySuggestion{CategoryID: category.ID},
	})
	_, err = e.CategorizeTransaction(ctx, "missing", "user-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = e.CategorizeTransaction(ctx, txn.ID, "user-2")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
