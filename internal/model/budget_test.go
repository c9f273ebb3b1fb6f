package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/every-penny/internal/common"
)

func validBudget() Budget {
	return Budget{
		ID:          "bgt-1",
		UserID:      "user-1",
		CategoryID:  "cat-1",
		Name:        "Groceries",
		Currency:    "USD",
		Period:      PeriodMonthly,
		AmountCents: 50000,
		StartDate:   date(2025, time.January, 1),
		IsActive:    true,
	}
}

func TestBudgetValidate(t *testing.T) {
	end := date(2024, time.December, 1)
	negThreshold := -1
	highThreshold := 101
	okThreshold := 100

	tests := []struct {
		mutate  func(*Budget)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*Budget) {}},
		{name: "blank name", mutate: func(b *Budget) { b.Name = "   " }, wantErr: true},
		{name: "missing category", mutate: func(b *Budget) { b.CategoryID = "" }, wantErr: true},
		{name: "negative amount", mutate: func(b *Budget) { b.AmountCents = -1 }, wantErr: true},
		{name: "zero amount allowed", mutate: func(b *Budget) { b.AmountCents = 0 }},
		{name: "bad period", mutate: func(b *Budget) { b.Period = "SOMETIMES" }, wantErr: true},
		{name: "bad currency", mutate: func(b *Budget) { b.Currency = "DOLLARS" }, wantErr: true},
		{name: "end before start", mutate: func(b *Budget) { b.EndDate = &end }, wantErr: true},
		{name: "threshold below range", mutate: func(b *Budget) { b.AlertThreshold = &negThreshold }, wantErr: true},
		{name: "threshold above range", mutate: func(b *Budget) { b.AlertThreshold = &highThreshold }, wantErr: true},
		{name: "threshold at 100", mutate: func(b *Budget) { b.AlertThreshold = &okThreshold }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBudget()
			tt.mutate(&b)
			err := b.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBudgetIsActiveAt(t *testing.T) {
	end := date(2025, time.June, 30)

	b := validBudget()
	b.EndDate = &end

	assert.False(t, b.IsActiveAt(date(2024, time.December, 31)), "before start")
	assert.True(t, b.IsActiveAt(date(2025, time.January, 1)), "on start")
	assert.True(t, b.IsActiveAt(date(2025, time.June, 30)), "on end date")
	assert.False(t, b.IsActiveAt(date(2025, time.July, 1)), "after end")

	b.IsActive = false
	assert.False(t, b.IsActiveAt(date(2025, time.March, 1)), "deactivated")
}
