package storage

import (
	"context"
	"fmt"
	"time"

	"evalgo.org/emulium/models"
)

// SaveScenario saves a scenario document. Handles both create and
// update; a stale revision is refreshed and retried once.
func (s *Storage) SaveScenario(ctx context.Context, scenario *models.Scenario) error {
	if scenario.Context == "" {
		scenario.Context = "https://schema.org"
	}
	if scenario.Type == "" {
		scenario.Type = "Scenario"
	}
	if scenario.ID == "" {
		scenario.ID = models.GenerateID("scenario")
	}
	if scenario.CreatedAt.IsZero() {
		scenario.CreatedAt = time.Now().UTC()
	}
	scenario.UpdatedAt = time.Now().UTC()

	rev, err := s.putDocument(ctx, scenario.ID, scenario)
	if err != nil {
		return fmt.Errorf("saving scenario %s: %w", scenario.ID, err)
	}
	scenario.Rev = rev

	s.debugLog("Saved scenario %s (rev %s)", scenario.ID, rev)
	return nil
}

// GetScenario retrieves a scenario by ID.
func (s *Storage) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := s.getDocument(ctx, id, &scenario); err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", id, err)
	}
	return &scenario, nil
}

// GetScenarioByName retrieves a scenario by its unique name. Returns
// ErrNotFound when no scenario carries the name.
func (s *Storage) GetScenarioByName(ctx context.Context, name string) (*models.Scenario, error) {
	query := NewQuery("Scenario").Eq("name", name).Limit(1).Build()
	scenarios, err := findTyped[models.Scenario](ctx, s, query)
	if err != nil {
		return nil, fmt.Errorf("finding scenario %q: %w", name, err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("scenario %q: %w", name, ErrNotFound)
	}
	return &scenarios[0], nil
}

// ListScenarios retrieves all scenarios matching the given filters.
func (s *Storage) ListScenarios(ctx context.Context, filters map[string]interface{}) ([]*models.Scenario, error) {
	query := NewQuery("Scenario").Filters(filters).Build()

	scenarios, err := findTyped[models.Scenario](ctx, s, query)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}

	result := make([]*models.Scenario, len(scenarios))
	for i := range scenarios {
		result[i] = &scenarios[i]
	}
	return result, nil
}

// DeleteScenario deletes a scenario by ID. The revision is looked up
// when empty.
func (s *Storage) DeleteScenario(ctx context.Context, id, rev string) error {
	if err := s.deleteDocument(ctx, id, rev); err != nil {
		return fmt.Errorf("deleting scenario %s: %w", id, err)
	}
	s.debugLog("Deleted scenario %s", id)
	return nil
}

// CountScenarios returns the number of stored scenarios.
func (s *Storage) CountScenarios(ctx context.Context) (int, error) {
	scenarios, err := s.ListScenarios(ctx, nil)
	if err != nil {
		return 0, err
	}
	return len(scenarios), nil
}
