package storage

import (
	"context"
	"fmt"
	"time"

	"evalgo.org/emulium/models"
)

// CreateScheduledAction creates a new scheduled action.
func (s *Storage) CreateScheduledAction(ctx context.Context, action *models.ScheduledAction) error {
	s.debugLog("Creating scheduled action: %s (type: %s)", action.Name, action.Type)

	// Validate required fields
	if action.Name == "" {
		return fmt.Errorf("action name is required")
	}
	switch action.Type {
	case models.ActionTypeDeploy, models.ActionTypeStop, models.ActionTypeTeardown:
	default:
		return fmt.Errorf("action type %q is not schedulable", action.Type)
	}
	if action.Object == nil || (action.Object.ID == "" && action.Object.Name == "") {
		return fmt.Errorf("action object (scenario reference) is required")
	}
	if action.Schedule == nil {
		return fmt.Errorf("schedule is required")
	}
	if action.Schedule.RepeatFrequency == "" {
		return fmt.Errorf("schedule repeat frequency is required")
	}

	// Set defaults
	if action.Context == "" {
		action.Context = "https://schema.org"
	}
	if action.ActionStatus == "" {
		action.ActionStatus = models.ActionStatusPotential
	}
	if action.Schedule.Type == "" {
		action.Schedule.Type = "Schedule"
	}
	if action.Schedule.ScheduleTimezone == "" {
		action.Schedule.ScheduleTimezone = "UTC"
	}
	if action.ID == "" {
		action.ID = models.GenerateID("action")
	}
	now := time.Now().UTC()
	if action.CreatedAt.IsZero() {
		action.CreatedAt = now
	}
	action.UpdatedAt = now

	rev, err := s.putDocument(ctx, action.ID, action)
	if err != nil {
		return fmt.Errorf("creating action: %w", err)
	}
	action.Rev = rev

	s.debugLog("Created scheduled action %s with rev %s", action.ID, rev)
	return nil
}

// GetScheduledAction retrieves a scheduled action by ID.
func (s *Storage) GetScheduledAction(ctx context.Context, id string) (*models.ScheduledAction, error) {
	var action models.ScheduledAction
	if err := s.getDocument(ctx, id, &action); err != nil {
		return nil, fmt.Errorf("reading action %s: %w", id, err)
	}
	return &action, nil
}

// ListScheduledActions lists all scheduled actions with optional
// filters. Actions are recognized by carrying a schedule; their @type
// varies with the operation (ActivateAction, DeactivateAction,
// DeleteAction).
func (s *Storage) ListScheduledActions(ctx context.Context, filters map[string]interface{}) ([]*models.ScheduledAction, error) {
	qb := NewQuery("").Exists("schedule")

	if filters != nil {
		if actionType, ok := filters["@type"].(string); ok && actionType != "" {
			qb = qb.Eq("@type", actionType)
		}
		if enabled, ok := filters["enabled"].(bool); ok {
			qb = qb.Eq("enabled", enabled)
		}
		if actionStatus, ok := filters["actionStatus"].(string); ok && actionStatus != "" {
			qb = qb.Eq("actionStatus", actionStatus)
		}
	}

	actions, err := findTyped[models.ScheduledAction](ctx, s, qb.Build())
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}

	s.debugLog("ListScheduledActions returning %d actions", len(actions))

	result := make([]*models.ScheduledAction, len(actions))
	for i := range actions {
		result[i] = &actions[i]
	}
	return result, nil
}

// UpdateScheduledAction updates an existing scheduled action.
func (s *Storage) UpdateScheduledAction(ctx context.Context, action *models.ScheduledAction) error {
	if action.ID == "" {
		return fmt.Errorf("action ID is required")
	}
	action.UpdatedAt = time.Now().UTC()

	rev, err := s.putDocument(ctx, action.ID, action)
	if err != nil {
		return fmt.Errorf("updating action %s: %w", action.ID, err)
	}
	action.Rev = rev

	s.debugLog("Updated scheduled action %s to rev %s", action.ID, rev)
	return nil
}

// DeleteScheduledAction deletes a scheduled action.
func (s *Storage) DeleteScheduledAction(ctx context.Context, id, rev string) error {
	if id == "" {
		return fmt.Errorf("action ID is required")
	}
	if err := s.deleteDocument(ctx, id, rev); err != nil {
		return fmt.Errorf("deleting action %s: %w", id, err)
	}
	s.debugLog("Deleted scheduled action %s", id)
	return nil
}

// GetActiveScheduledActions returns all enabled actions. The scheduler
// evaluates these every tick.
func (s *Storage) GetActiveScheduledActions(ctx context.Context) ([]*models.ScheduledAction, error) {
	return s.ListScheduledActions(ctx, map[string]interface{}{
		"enabled": true,
	})
}

// GetScheduledActionsByType returns all scheduled actions of a specific
// type.
func (s *Storage) GetScheduledActionsByType(ctx context.Context, actionType string) ([]*models.ScheduledAction, error) {
	return s.ListScheduledActions(ctx, map[string]interface{}{
		"@type": actionType,
	})
}
