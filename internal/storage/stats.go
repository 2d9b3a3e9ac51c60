package storage

import (
	"context"

	"evalgo.org/emulium/models"
)

// Statistics contains overview statistics for the dashboard.
type Statistics struct {
	TotalScenarios int `json:"total_scenarios"`
	TotalScripts   int `json:"total_scripts"`
	TotalUsers     int `json:"total_users"`

	TotalDeployments    int `json:"total_deployments"`
	ActiveDeployments   int `json:"active_deployments"`
	CompleteDeployments int `json:"complete_deployments"`
	PartialDeployments  int `json:"partial_deployments"`
	FailedDeployments   int `json:"failed_deployments"`

	// NodesDeployed counts nodes that materialized across all
	// deployment reports.
	NodesDeployed int `json:"nodes_deployed"`

	// DeploymentsByServer maps GNS3 server URL to deployment count.
	DeploymentsByServer map[string]int `json:"deployments_by_server"`

	TotalActions     int `json:"total_actions"`
	EnabledActions   int `json:"enabled_actions"`
	CompletedActions int `json:"completed_actions"`
	FailedActions    int `json:"failed_actions"`
}

// GetStatistics calculates and returns lab statistics from the stored
// documents.
func (s *Storage) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		DeploymentsByServer: make(map[string]int),
	}

	scenarios, err := s.ListScenarios(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats.TotalScenarios = len(scenarios)

	scripts, err := s.ListScripts(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats.TotalScripts = len(scripts)

	deployments, err := s.ListDeployments(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats.TotalDeployments = len(deployments)

	for _, deployment := range deployments {
		switch deployment.Status {
		case models.DeploymentStatusDeploying:
			stats.ActiveDeployments++
		case models.DeploymentStatusComplete:
			stats.CompleteDeployments++
		case models.DeploymentStatusPartial:
			stats.PartialDeployments++
		case models.DeploymentStatusFailed:
			stats.FailedDeployments++
		}
		if deployment.ServerURL != "" {
			stats.DeploymentsByServer[deployment.ServerURL]++
		}
		for i := range deployment.Nodes {
			if deployment.Nodes[i].Status == models.UnitCreated {
				stats.NodesDeployed++
			}
		}
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = len(users)

	// Scheduled action statistics are best-effort; a query failure
	// leaves the counters at zero rather than failing the dashboard.
	actions, err := s.ListScheduledActions(ctx, nil)
	if err == nil {
		stats.TotalActions = len(actions)
		for _, action := range actions {
			if action.Enabled {
				stats.EnabledActions++
			}
			switch action.ActionStatus {
			case models.ActionStatusCompleted:
				stats.CompletedActions++
			case models.ActionStatusFailed:
				stats.FailedActions++
			}
		}
	}

	return stats, nil
}

// ScenarioUsage summarizes how often a scenario has been deployed and
// how the deployments ended.
type ScenarioUsage struct {
	ScenarioID   string `json:"scenario_id"`
	ScenarioName string `json:"scenario_name"`
	Deployments  int    `json:"deployments"`
	Complete     int    `json:"complete"`
	Partial      int    `json:"partial"`
	Failed       int    `json:"failed"`
}

// GetScenarioUsage aggregates deployment outcomes per stored scenario.
func (s *Storage) GetScenarioUsage(ctx context.Context) ([]ScenarioUsage, error) {
	deployments, err := s.ListDeployments(ctx, nil)
	if err != nil {
		return nil, err
	}

	byScenario := make(map[string]*ScenarioUsage)
	order := make([]string, 0)
	for _, deployment := range deployments {
		if deployment.ScenarioID == "" {
			continue
		}
		usage, ok := byScenario[deployment.ScenarioID]
		if !ok {
			usage = &ScenarioUsage{
				ScenarioID:   deployment.ScenarioID,
				ScenarioName: deployment.ScenarioName,
			}
			byScenario[deployment.ScenarioID] = usage
			order = append(order, deployment.ScenarioID)
		}
		usage.Deployments++
		switch deployment.Status {
		case models.DeploymentStatusComplete:
			usage.Complete++
		case models.DeploymentStatusPartial:
			usage.Partial++
		case models.DeploymentStatusFailed:
			usage.Failed++
		}
	}

	result := make([]ScenarioUsage, 0, len(order))
	for _, id := range order {
		result = append(result, *byScenario[id])
	}
	return result, nil
}
