package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/every-penny/internal/common"
)

// Budget caps spending for one category over a recurring period.
// AmountCents is an integer count of minor currency units; all spend
// arithmetic is integer cents, never floating point.
type Budget struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	StartDate      time.Time
	EndDate        *time.Time
	AlertThreshold *int
	ID             string
	UserID         string
	CategoryID     string
	Name           string
	Currency       string
	Period         Period
	AmountCents    int64
	IsActive       bool
}

// Validate checks the budget's field invariants.
func (b *Budget) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("budget name cannot be empty: %w", common.ErrInvalidInput)
	}
	if b.CategoryID == "" {
		return fmt.Errorf("budget must have a category: %w", common.ErrInvalidInput)
	}
	if b.AmountCents < 0 {
		return fmt.Errorf("budget amount cannot be negative: %w", common.ErrInvalidInput)
	}
	if !b.Period.Valid() {
		return fmt.Errorf("invalid period %q: %w", b.Period, common.ErrInvalidInput)
	}
	if len(b.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code: %w", common.ErrInvalidInput)
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
		return fmt.Errorf("end date cannot be before start date: %w", common.ErrInvalidInput)
	}
	if b.AlertThreshold != nil && (*b.AlertThreshold < 0 || *b.AlertThreshold > 100) {
		return fmt.Errorf("alert threshold must be between 0 and 100: %w", common.ErrInvalidInput)
	}
	return nil
}

// IsActiveAt reports whether the budget is in effect at the given time.
func (b *Budget) IsActiveAt(t time.Time) bool {
	if !b.IsActive {
		return false
	}
	if t.Before(b.StartDate) {
		return false
	}
	if b.EndDate != nil && t.After(*b.EndDate) {
		return false
	}
	return true
}
