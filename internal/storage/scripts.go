package storage

import (
	"context"
	"fmt"
	"time"

	"evalgo.org/emulium/models"
)

// SaveScript saves a stored script document.
func (s *Storage) SaveScript(ctx context.Context, script *models.Script) error {
	if script.Context == "" {
		script.Context = "https://schema.org"
	}
	if script.Type == "" {
		script.Type = "SoftwareSourceCode"
	}
	if script.ID == "" {
		script.ID = models.GenerateID("script")
	}
	if script.CreatedAt.IsZero() {
		script.CreatedAt = time.Now().UTC()
	}
	script.UpdatedAt = time.Now().UTC()

	rev, err := s.putDocument(ctx, script.ID, script)
	if err != nil {
		return fmt.Errorf("saving script %s: %w", script.ID, err)
	}
	script.Rev = rev

	s.debugLog("Saved script %s (rev %s)", script.ID, rev)
	return nil
}

// GetScript retrieves a script by ID.
func (s *Storage) GetScript(ctx context.Context, id string) (*models.Script, error) {
	var script models.Script
	if err := s.getDocument(ctx, id, &script); err != nil {
		return nil, fmt.Errorf("reading script %s: %w", id, err)
	}
	return &script, nil
}

// GetScriptByName retrieves a script by name. Returns ErrNotFound when
// no script carries the name.
func (s *Storage) GetScriptByName(ctx context.Context, name string) (*models.Script, error) {
	query := NewQuery("SoftwareSourceCode").Eq("name", name).Limit(1).Build()
	scripts, err := findTyped[models.Script](ctx, s, query)
	if err != nil {
		return nil, fmt.Errorf("finding script %q: %w", name, err)
	}
	if len(scripts) == 0 {
		return nil, fmt.Errorf("script %q: %w", name, ErrNotFound)
	}
	return &scripts[0], nil
}

// ListScripts retrieves all scripts matching the given filters.
func (s *Storage) ListScripts(ctx context.Context, filters map[string]interface{}) ([]*models.Script, error) {
	query := NewQuery("SoftwareSourceCode").Filters(filters).Build()

	scripts, err := findTyped[models.Script](ctx, s, query)
	if err != nil {
		return nil, fmt.Errorf("listing scripts: %w", err)
	}

	result := make([]*models.Script, len(scripts))
	for i := range scripts {
		result[i] = &scripts[i]
	}
	return result, nil
}

// DeleteScript deletes a script by ID.
func (s *Storage) DeleteScript(ctx context.Context, id, rev string) error {
	if err := s.deleteDocument(ctx, id, rev); err != nil {
		return fmt.Errorf("deleting script %s: %w", id, err)
	}
	s.debugLog("Deleted script %s", id)
	return nil
}

// ResolveScriptContent returns the content of a stored script, for
// push jobs and embedded scripts that reference scripts by ID.
func (s *Storage) ResolveScriptContent(ctx context.Context, id string) (string, error) {
	script, err := s.GetScript(ctx, id)
	if err != nil {
		return "", err
	}
	return script.Content, nil
}
