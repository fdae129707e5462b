package catalog

import (
	"context"

	"github.com/salesdojo/salesdojo/internal/models"
)

// Memory is a fixed in-memory catalog. It serves whatever scenarios it was
// constructed with, in insertion order.
type Memory struct {
	order     []string
	scenarios map[string]*models.Scenario
}

// NewMemory creates a catalog over the given scenarios.
func NewMemory(scenarios []*models.Scenario) *Memory {
	m := &Memory{scenarios: make(map[string]*models.Scenario, len(scenarios))}
	for _, sc := range scenarios {
		if _, ok := m.scenarios[sc.ID]; !ok {
			m.order = append(m.order, sc.ID)
		}
		m.scenarios[sc.ID] = sc
	}
	return m
}

// NewBuiltin creates a catalog over the built-in scenarios.
func NewBuiltin() *Memory {
	return NewMemory(BuiltinScenarios())
}

// Get returns the scenario with the given id or ErrNotFound.
func (m *Memory) Get(_ context.Context, id string) (*models.Scenario, error) {
	sc, ok := m.scenarios[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sc, nil
}

// List returns all scenarios in insertion order.
func (m *Memory) List(_ context.Context) ([]*models.Scenario, error) {
	out := make([]*models.Scenario, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.scenarios[id])
	}
	return out, nil
}
