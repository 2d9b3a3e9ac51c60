package storage

import (
	"context"
	"fmt"

	"evalgo.org/emulium/models"
)

// SaveDeployment saves a deployment report document. Deployments are
// written once at the start of a build and updated as phases complete,
// so conflict retry matters here.
func (s *Storage) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if deployment.Context == "" {
		deployment.Context = "https://schema.org"
	}
	if deployment.Type == "" {
		deployment.Type = "Deployment"
	}
	if deployment.ID == "" {
		deployment.ID = models.GenerateID("deployment")
	}

	rev, err := s.putDocument(ctx, deployment.ID, deployment)
	if err != nil {
		return fmt.Errorf("saving deployment %s: %w", deployment.ID, err)
	}
	deployment.Rev = rev
	return nil
}

// GetDeployment retrieves a deployment by ID.
func (s *Storage) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	var deployment models.Deployment
	if err := s.getDocument(ctx, id, &deployment); err != nil {
		return nil, fmt.Errorf("reading deployment %s: %w", id, err)
	}
	return &deployment, nil
}

// ListDeployments retrieves all deployments matching the given filters.
func (s *Storage) ListDeployments(ctx context.Context, filters map[string]interface{}) ([]*models.Deployment, error) {
	query := NewQuery("Deployment").Filters(filters).Build()

	deployments, err := findTyped[models.Deployment](ctx, s, query)
	if err != nil {
		return nil, fmt.Errorf("listing deployments: %w", err)
	}

	result := make([]*models.Deployment, len(deployments))
	for i := range deployments {
		result[i] = &deployments[i]
	}
	return result, nil
}

// GetDeploymentsByStatus retrieves all deployments with a specific status.
func (s *Storage) GetDeploymentsByStatus(ctx context.Context, status string) ([]*models.Deployment, error) {
	return s.ListDeployments(ctx, map[string]interface{}{"status": status})
}

// GetDeploymentsByScenario retrieves all deployments of a stored scenario.
func (s *Storage) GetDeploymentsByScenario(ctx context.Context, scenarioID string) ([]*models.Deployment, error) {
	return s.ListDeployments(ctx, map[string]interface{}{"scenarioId": scenarioID})
}

// GetDeploymentsByProject retrieves all deployments that materialized in
// a GNS3 project. The audit sweep uses this to find orphaned reports.
func (s *Storage) GetDeploymentsByProject(ctx context.Context, projectID string) ([]*models.Deployment, error) {
	return s.ListDeployments(ctx, map[string]interface{}{"projectId": projectID})
}

// DeleteDeployment deletes a deployment report by ID. A missing
// document counts as already deleted.
func (s *Storage) DeleteDeployment(ctx context.Context, id string) error {
	deployment, err := s.GetDeployment(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return err
	}
	if err := s.deleteDocument(ctx, id, deployment.Rev); err != nil {
		return fmt.Errorf("deleting deployment %s: %w", id, err)
	}
	return nil
}
