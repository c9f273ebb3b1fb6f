package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/every-penny/internal/common"
	"github.com/Veraticus/every-penny/internal/config"
	"github.com/Veraticus/every-penny/internal/engine"
	"github.com/Veraticus/every-penny/internal/llm"
	"github.com/Veraticus/every-penny/internal/service"
	"github.com/Veraticus/every-penny/internal/storage"
)

const defaultCurrency = "USD"

// initStorage opens the database and applies pending migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine wires the budgeting engine with its production ports.
func initEngine(ctx context.Context) (*engine.Engine, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(store, common.SystemClock{}, common.NewULIDGenerator())

	if apiKey := viper.GetString("openai.api_key"); apiKey != "" {
		categorizer, catErr := llm.NewCategorizer(llm.Config{
			APIKey:            apiKey,
			Model:             viper.GetString("openai.model"),
			BaseURL:           viper.GetString("openai.base_url"),
			RequestsPerMinute: viper.GetInt("openai.requests_per_minute"),
		})
		if catErr != nil {
			slog.Warn("Auto-categorization unavailable", "error", catErr)
		} else {
			eng.SetCategorizer(categorizer)
		}
	}

	return eng, store, nil
}

// currentUser resolves the acting user id.
func currentUser() string {
	if userID := viper.GetString("user.id"); userID != "" {
		return userID
	}
	return "local"
}

// currency resolves the display currency for amounts.
func currency() string {
	if c := viper.GetString("currency"); c != "" {
		return strings.ToUpper(c)
	}
	return defaultCurrency
}

// parseCents converts a decimal amount string like "125.50" to integer
// cents without going through floating point.
func parseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("empty amount: %w", common.ErrInvalidInput)
	}
	if whole == "" {
		whole = "0"
	}
	switch len(frac) {
	case 0:
		frac = "00"
	case 1:
		frac += "0"
	case 2:
	default:
		return 0, fmt.Errorf("amount %q has more than two decimal places: %w", s, common.ErrInvalidInput)
	}

	var cents int64
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("amount %q is not a number: %w", s, common.ErrInvalidInput)
		}
		cents = cents*10 + int64(r-'0')
	}
	if negative {
		cents = -cents
	}
	return cents, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, common.ErrInvalidInput)
	}
	return t.UTC(), nil
}
