// Package model defines the domain types for the budgeting engine.
package model

import "time"

// Category represents a user-defined spending category.
// Optional string fields use "" to mean unset.
type Category struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	UserID      string
	Name        string
	Description string
	Icon        string
	Color       string
	SortOrder   int
	IsDefault   bool
	IsActive    bool
}
