package audit

import (
	"context"
	"fmt"
	"time"

	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/models"
)

// stuckThreshold is how long a deployment may sit in the deploying
// state before the audit calls it stuck.
const stuckThreshold = time.Hour

// Store is the slice of the storage layer the audit reads and prunes.
type Store interface {
	ListScenarios(ctx context.Context, filters map[string]interface{}) ([]*models.Scenario, error)
	ListScripts(ctx context.Context, filters map[string]interface{}) ([]*models.Script, error)
	ListDeployments(ctx context.Context, filters map[string]interface{}) ([]*models.Deployment, error)
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	DeleteDeployment(ctx context.Context, id string) error
}

// Platform answers existence questions about live GNS3 state.
type Platform interface {
	// ProjectIDs returns the project UUIDs of one server. serverURL
	// empty means the default server.
	ProjectIDs(ctx context.Context, serverURL string) (map[string]bool, error)

	// NodeIDs returns the node UUIDs of one project.
	NodeIDs(ctx context.Context, serverURL, projectID string) (map[string]bool, error)
}

// Service runs consistency scans and prunes what they find.
type Service struct {
	store    Store
	platform Platform
	registry *registry.Registry
}

// New creates an audit service. reg may be nil when registry checks
// are not wanted.
func New(store Store, platform Platform, reg *registry.Registry) *Service {
	return &Service{store: store, platform: platform, registry: reg}
}

// Scan checks stored documents and the console registry against live
// platform state and returns the drift report. Unreachable servers
// downgrade their checks to warnings instead of failing the scan.
func (s *Service) Scan(ctx context.Context) (*Report, error) {
	started := time.Now().UTC()
	report := &Report{
		ID:        models.GenerateID("audit"),
		Timestamp: started,
	}

	deployments, err := s.store.ListDeployments(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	scenarios, err := s.store.ListScenarios(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	scripts, err := s.store.ListScripts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}

	report.DocumentsScanned = len(deployments) + len(scenarios) + len(scripts)
	if s.registry != nil {
		report.DocumentsScanned += s.registry.Len()
	}

	projects := s.projectSets(ctx, deployments, report)

	s.checkDeployments(deployments, projects, report)
	s.checkRegistry(ctx, deployments, projects, report)
	s.checkScenarioNames(scenarios, report)
	s.checkScriptRefs(scenarios, scripts, report)

	report.Duration = time.Since(started)
	report.Summary = summarize(report.Issues)

	return report, nil
}

// projectSets fetches the live project set of every server that
// deployments reference, plus the default server. A server that cannot
// be reached gets a nil set and a report warning; its checks are
// skipped rather than misreported.
func (s *Service) projectSets(ctx context.Context, deployments []*models.Deployment, report *Report) map[string]map[string]bool {
	servers := map[string]bool{"": true}
	for _, dep := range deployments {
		servers[dep.ServerURL] = true
	}

	sets := make(map[string]map[string]bool, len(servers))
	for serverURL := range servers {
		ids, err := s.platform.ProjectIDs(ctx, serverURL)
		if err != nil {
			sets[serverURL] = nil
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("server %q unreachable, its checks were skipped: %v", serverURL, err))
			continue
		}
		sets[serverURL] = ids
	}
	return sets
}

func (s *Service) checkDeployments(deployments []*models.Deployment, projects map[string]map[string]bool, report *Report) {
	now := time.Now().UTC()

	for _, dep := range deployments {
		if dep.Status == models.DeploymentStatusDeploying && now.Sub(dep.StartedAt) > stuckThreshold {
			report.Issues = append(report.Issues, Issue{
				ID:         models.GenerateID("issue"),
				Type:       IssueStuckDeployment,
				Severity:   SeverityMedium,
				DocumentID: dep.ID,
				Project:    dep.ProjectID,
				Description: fmt.Sprintf("deployment started %s ago and is still marked deploying",
					now.Sub(dep.StartedAt).Round(time.Minute)),
				DetectedAt: now,
				Repairable: true,
			})
		}

		if dep.ProjectID == "" {
			continue
		}
		live, checked := projects[dep.ServerURL]
		if !checked || live == nil {
			continue
		}
		if !live[dep.ProjectID] {
			report.Issues = append(report.Issues, Issue{
				ID:         models.GenerateID("issue"),
				Type:       IssueStaleDeployment,
				Severity:   SeverityMedium,
				DocumentID: dep.ID,
				Project:    dep.ProjectID,
				Description: fmt.Sprintf("project %s no longer exists on %s",
					dep.ProjectID, dep.ServerURL),
				DetectedAt: now,
				Repairable: true,
			})
		}
	}
}

func (s *Service) checkRegistry(ctx context.Context, deployments []*models.Deployment, projects map[string]map[string]bool, report *Report) {
	if s.registry == nil {
		return
	}
	now := time.Now().UTC()

	// Registry entries carry no server URL; recover it from the
	// deployment that created the project, default server otherwise.
	serverOf := make(map[string]string)
	for _, dep := range deployments {
		if dep.ProjectID != "" {
			serverOf[dep.ProjectID] = dep.ServerURL
		}
	}

	for _, project := range s.registry.Projects() {
		serverURL := serverOf[project]
		live, checked := projects[serverURL]
		if !checked || live == nil {
			continue
		}

		if !live[project] {
			entries := s.registry.List(project)
			report.Issues = append(report.Issues, Issue{
				ID:       models.GenerateID("issue"),
				Type:     IssueOrphanedRegistry,
				Severity: SeverityLow,
				Project:  project,
				Description: fmt.Sprintf("%d console entries for deleted project %s",
					len(entries), project),
				DetectedAt: now,
				Repairable: true,
			})
			continue
		}

		nodes, err := s.platform.NodeIDs(ctx, serverURL, project)
		if err != nil {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("nodes of project %s could not be listed: %v", project, err))
			continue
		}
		for _, entry := range s.registry.List(project) {
			if entry.NodeID != "" && !nodes[entry.NodeID] {
				report.Issues = append(report.Issues, Issue{
					ID:          models.GenerateID("issue"),
					Type:        IssueOrphanedRegistry,
					Severity:    SeverityLow,
					Project:     project,
					Node:        entry.Node,
					Description: fmt.Sprintf("node %s is gone from project %s", entry.Node, project),
					DetectedAt:  now,
					Repairable:  true,
				})
			}
		}
	}
}

func (s *Service) checkScenarioNames(scenarios []*models.Scenario, report *Report) {
	now := time.Now().UTC()

	byName := make(map[string][]*models.Scenario)
	for _, scn := range scenarios {
		byName[scn.Name] = append(byName[scn.Name], scn)
	}

	for name, group := range byName {
		if len(group) < 2 {
			continue
		}
		ids := make([]string, 0, len(group))
		for _, scn := range group {
			ids = append(ids, scn.ID)
		}
		report.Issues = append(report.Issues, Issue{
			ID:          models.GenerateID("issue"),
			Type:        IssueDuplicateScenario,
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("name %q is shared by %d scenarios: %v", name, len(group), ids),
			DetectedAt:  now,
			// Which duplicate survives is a human decision.
			Repairable: false,
		})
	}
}

func (s *Service) checkScriptRefs(scenarios []*models.Scenario, scripts []*models.Script, report *Report) {
	now := time.Now().UTC()

	known := make(map[string]bool, len(scripts))
	for _, script := range scripts {
		known[script.ID] = true
	}

	for _, scn := range scenarios {
		for _, node := range scn.Definition.Nodes {
			for _, es := range node.Scripts {
				if es.ScriptID == "" || es.Content != "" || known[es.ScriptID] {
					continue
				}
				report.Issues = append(report.Issues, Issue{
					ID:         models.GenerateID("issue"),
					Type:       IssueDanglingScriptRef,
					Severity:   SeverityHigh,
					DocumentID: scn.ID,
					Description: fmt.Sprintf("scenario %q node %q references missing script %s",
						scn.Name, node.Name, es.ScriptID),
					DetectedAt: now,
					Repairable: false,
				})
			}
		}
	}
}

// Prune fixes the repairable issues of a report: stale deployment
// reports are deleted, stuck deployments are marked failed, orphaned
// registry entries are dropped. Irreparable issues are counted as
// skipped.
func (s *Service) Prune(ctx context.Context, report *Report) *PruneResult {
	result := &PruneResult{ReportID: report.ID}

	for i := range report.Issues {
		issue := &report.Issues[i]
		if !issue.Repairable {
			result.Skipped++
			continue
		}

		var err error
		switch issue.Type {
		case IssueStaleDeployment:
			err = s.store.DeleteDeployment(ctx, issue.DocumentID)
		case IssueStuckDeployment:
			err = s.failStuckDeployment(ctx, issue.DocumentID)
		case IssueOrphanedRegistry:
			if s.registry != nil {
				if issue.Node == "" {
					s.registry.DropProject(issue.Project)
				} else {
					s.registry.Remove(issue.Project, issue.Node)
				}
			}
		default:
			result.Skipped++
			continue
		}

		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", issue.Type, issue.DocumentID, err))
			continue
		}
		result.Pruned++
	}

	return result
}

func (s *Service) failStuckDeployment(ctx context.Context, id string) error {
	dep, err := s.store.GetDeployment(ctx, id)
	if err != nil {
		return err
	}

	dep.Fail(fmt.Errorf("marked failed by audit: stuck in deploying state"))
	return s.store.SaveDeployment(ctx, dep)
}

// ManagerPlatform adapts the GNS3 gateway manager to the Platform
// interface.
type ManagerPlatform struct {
	manager *gns3.Manager
}

// NewManagerPlatform wraps a gateway manager for audit use.
func NewManagerPlatform(m *gns3.Manager) *ManagerPlatform {
	return &ManagerPlatform{manager: m}
}

// ProjectIDs implements Platform.
func (p *ManagerPlatform) ProjectIDs(ctx context.Context, serverURL string) (map[string]bool, error) {
	client, err := p.manager.ClientFor(serverURL)
	if err != nil {
		return nil, err
	}
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(projects))
	for i := range projects {
		ids[projects[i].ProjectID] = true
	}
	return ids, nil
}

// NodeIDs implements Platform.
func (p *ManagerPlatform) NodeIDs(ctx context.Context, serverURL, projectID string) (map[string]bool, error) {
	client, err := p.manager.ClientFor(serverURL)
	if err != nil {
		return nil, err
	}
	nodes, err := client.ListNodes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(nodes))
	for i := range nodes {
		ids[nodes[i].NodeID] = true
	}
	return ids, nil
}
