package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/every-penny/internal/common"
	"github.com/Veraticus/every-penny/internal/model"
)

// CreateCategoryInput carries the fields for a new category.
type CreateCategoryInput struct {
	UserID      string
	Name        string
	Description string
	Icon        string
	Color       string
	IsActive    *bool // nil defaults to active
}

// UpdateCategoryInput is a partial update: nil pointer fields are left
// unchanged, a pointer to the zero value clears an optional field.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
	IsActive    *bool
	SortOrder   *int
}

// CreateCategory creates a category for a user. The name is trimmed
// and must be unique per user, compared case-insensitively.
func (e *Engine) CreateCategory(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("category name cannot be empty: %w", common.ErrInvalidInput)
	}

	existing, err := e.categories.ListCategoriesByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	for _, cat := range existing {
		if strings.EqualFold(cat.Name, name) {
			return nil, fmt.Errorf("category %q: %w", name, common.ErrDuplicateName)
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := e.clock.Now()
	category := &model.Category{
		ID:          e.ids.NewID(),
		UserID:      input.UserID,
		Name:        name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		IsDefault:   false,
		IsActive:    isActive,
		SortOrder:   len(existing),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.categories.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("Created category", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// GetCategory returns a category, or (nil, nil) when it does not exist
// or belongs to another user.
func (e *Engine) GetCategory(ctx context.Context, id, userID string) (*model.Category, error) {
	category, err := e.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil || category.UserID != userID {
		return nil, nil
	}
	return category, nil
}

// ListCategories returns all of the user's categories.
func (e *Engine) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	categories, err := e.categories.ListCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies a partial update, preserving unspecified
// fields and refreshing UpdatedAt.
func (e *Engine) UpdateCategory(ctx context.Context, id, userID string, updates UpdateCategoryInput) (*model.Category, error) {
	existing, err := e.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	if existing.UserID != userID {
		return nil, fmt.Errorf("category %s: %w", id, common.ErrUnauthorized)
	}

	updated := *existing
	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return nil, fmt.Errorf("category name cannot be empty: %w", common.ErrInvalidInput)
		}
		updated.Name = name
	}
	if updates.Description != nil {
		updated.Description = *updates.Description
	}
	if updates.Icon != nil {
		updated.Icon = *updates.Icon
	}
	if updates.Color != nil {
		updated.Color = *updates.Color
	}
	if updates.IsActive != nil {
		updated.IsActive = *updates.IsActive
	}
	if updates.SortOrder != nil {
		updated.SortOrder = *updates.SortOrder
	}
	updated.UpdatedAt = e.clock.Now()

	if err := e.categories.UpdateCategory(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &updated, nil
}

// DeleteCategory removes a category. It fails when any budget, active
// or not, still references the category.
func (e *Engine) DeleteCategory(ctx context.Context, id, userID string) error {
	category, err := e.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	if category.UserID != userID {
		return fmt.Errorf("category %s: %w", id, common.ErrUnauthorized)
	}

	budgets, err := e.budgets.ListBudgetsByCategory(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to list budgets for category: %w", err)
	}
	if len(budgets) > 0 {
		return fmt.Errorf("category %s has %d budgets: %w", id, len(budgets), common.ErrHasDependentBudgets)
	}

	if err := e.categories.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	slog.Info("Deleted category", "category_id", id)
	return nil
}

// SeedDefaultCategories creates the starter category set for a user.
// Seeding is idempotent: once the user has any category at all, it
// returns the existing set untouched.
func (e *Engine) SeedDefaultCategories(ctx context.Context, userID string) ([]model.Category, error) {
	existing, err := e.categories.ListCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	now := e.clock.Now()
	seeded := make([]model.Category, 0, len(model.DefaultCategories))
	for i, config := range model.DefaultCategories {
		category := model.Category{
			ID:          e.ids.NewID(),
			UserID:      userID,
			Name:        config.Name,
			Description: config.Description,
			Icon:        config.Icon,
			Color:       config.Color,
			IsDefault:   true,
			IsActive:    true,
			SortOrder:   i,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := e.categories.CreateCategory(ctx, &category); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", config.Name, err)
		}
		seeded = append(seeded, category)
	}

	slog.Info("Seeded default categories", "user_id", userID, "count", len(seeded))
	return seeded, nil
}
