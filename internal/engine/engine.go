// Package engine implements the budgeting core: budget status
// calculation, dashboard aggregation, entity lifecycle guards, and the
// bulk transaction import pipeline.
package engine

import (
	"github.com/Veraticus/every-penny/internal/service"
)

// Engine orchestrates the budgeting use-cases over injected ports.
// It holds no mutable state; every invocation is a synchronous
// sequence of repository calls.
type Engine struct {
	categories   service.CategoriesRepo
	budgets      service.BudgetsRepo
	transactions service.TransactionsRepo
	clock        service.Clock
	ids          service.IDGenerator
	categorizer  service.Categorizer
}

// New creates an engine backed by a single storage implementation.
func New(storage service.Storage, clock service.Clock, ids service.IDGenerator) *Engine {
	return NewWithPorts(storage, storage, storage, clock, ids)
}

// NewWithPorts creates an engine with each port injected separately.
func NewWithPorts(
	categories service.CategoriesRepo,
	budgets service.BudgetsRepo,
	transactions service.TransactionsRepo,
	clock service.Clock,
	ids service.IDGenerator,
) *Engine {
	return &Engine{
		categories:   categories,
		budgets:      budgets,
		transactions: transactions,
		clock:        clock,
		ids:          ids,
	}
}
