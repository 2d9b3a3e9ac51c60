// Package scenario turns scenario definitions into running GNS3
// topologies. The resolver validates a definition and emits an ordered
// operation plan; the builder executes the plan against one server,
// records per-unit outcomes and feeds the console registry.
package scenario

import (
	"context"
	"fmt"

	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/models"
)

// Builder executes operation plans against a GNS3 server. A failed
// node drags down only the links that need it; independent units still
// run, and the returned deployment carries one outcome per declared
// unit.
type Builder struct {
	client   *gns3.Client
	registry *registry.Registry
}

// NewBuilder creates a builder. reg may be nil when console endpoints
// need not be tracked.
func NewBuilder(client *gns3.Client, reg *registry.Registry) *Builder {
	return &Builder{client: client, registry: reg}
}

// BuildOptions control one deployment build.
type BuildOptions struct {
	// ScenarioID and ScenarioName link the deployment to a stored
	// scenario; both stay empty for ad-hoc deployments.
	ScenarioID   string
	ScenarioName string

	// Project overrides the definition's project reference. Accepts a
	// project UUID or a project name.
	Project string

	// StartNodes starts every created node once the links are up.
	StartNodes bool

	// Owner is recorded on the deployment document.
	Owner string

	// OnEvent, when set, receives each deployment event as it happens.
	OnEvent func(models.DeploymentEvent)
}

// Build validates, plans and executes a scenario definition. The
// returned deployment always carries one outcome per declared node and
// link; err is non-nil only when the build was rejected before the
// first create call.
func (b *Builder) Build(ctx context.Context, def *models.ScenarioDefinition, opts BuildOptions) (*models.Deployment, error) {
	dep := models.NewDeployment(b.client.BaseURL())
	dep.ScenarioID = opts.ScenarioID
	dep.ScenarioName = opts.ScenarioName
	dep.Owner = opts.Owner

	plan, err := NewResolver(b.client).Resolve(ctx, def)
	if err != nil {
		return b.fail(dep, &opts, err)
	}
	b.event(dep, &opts, "info", "", fmt.Sprintf("scenario validated: %d nodes, %d links", len(plan.Nodes), len(plan.Links)))
	dep.Progress = 10

	projectRef := opts.Project
	if projectRef == "" {
		projectRef = def.ProjectID
	}
	if projectRef == "" {
		projectRef = def.ProjectName
	}
	if projectRef == "" {
		return b.fail(dep, &opts, &ValidationError{Reason: "no project reference (project_id or project_name)"})
	}
	projectID, err := b.client.ResolveProject(ctx, projectRef)
	if err != nil {
		return b.fail(dep, &opts, fmt.Errorf("resolving project %q: %w", projectRef, err))
	}
	dep.ProjectID = projectID
	if projectRef != projectID {
		dep.ProjectName = projectRef
	}
	b.event(dep, &opts, "info", "", "project resolved: "+projectID)
	dep.Progress = 20

	nodeIDs := b.createNodes(ctx, dep, &opts, projectID, plan)
	dep.Progress = 50
	b.createLinks(ctx, dep, &opts, projectID, plan, nodeIDs)
	dep.Progress = 70
	if opts.StartNodes {
		b.startNodes(ctx, dep, &opts, projectID)
		dep.Progress = 85
	}
	b.collectConsoles(ctx, dep, &opts, projectID)

	dep.Complete()
	b.event(dep, &opts, "info", "", "deployment "+dep.Status)
	return dep, nil
}

// createNodes runs the node part of the plan in order and returns the
// name to node-ID arena used for link resolution.
func (b *Builder) createNodes(ctx context.Context, dep *models.Deployment, opts *BuildOptions, projectID string, plan *Plan) map[string]string {
	dep.Phase = models.PhaseNodes
	nodeIDs := make(map[string]string, len(plan.Nodes))
	for _, pn := range plan.Nodes {
		outcome := models.NodeOutcome{Name: pn.Name, TemplateID: pn.TemplateID}
		node, err := b.client.CreateNode(ctx, projectID, pn.TemplateID, pn.Name, pn.X, pn.Y)
		if err != nil {
			outcome.Status = models.UnitFailed
			outcome.Error = err.Error()
			b.event(dep, opts, "error", pn.Name, "node create failed: "+err.Error())
		} else {
			outcome.Status = models.UnitCreated
			outcome.NodeID = node.NodeID
			nodeIDs[pn.Name] = node.NodeID
			b.event(dep, opts, "info", pn.Name, "node created")
		}
		dep.Nodes = append(dep.Nodes, outcome)
	}
	return nodeIDs
}

// createLinks runs the link part of the plan. Links with an endpoint
// that never materialized are skipped, not attempted.
func (b *Builder) createLinks(ctx context.Context, dep *models.Deployment, opts *BuildOptions, projectID string, plan *Plan, nodeIDs map[string]string) {
	dep.Phase = models.PhaseLinks
	for _, pl := range plan.Links {
		outcome := models.LinkOutcome{Index: pl.Index, A: pl.A, B: pl.B}
		unit := fmt.Sprintf("link[%d]", pl.Index)

		aID, aOK := nodeIDs[pl.A.Node]
		bID, bOK := nodeIDs[pl.B.Node]
		switch {
		case !aOK || !bOK:
			missing := pl.A.Node
			if aOK {
				missing = pl.B.Node
			}
			outcome.Status = models.UnitSkipped
			outcome.Error = fmt.Sprintf("endpoint node %q was not created", missing)
			b.event(dep, opts, "warning", unit, outcome.Error)
		default:
			link, err := b.client.CreateLink(ctx, projectID,
				gns3.LinkNode{NodeID: aID, AdapterNumber: pl.A.Adapter, PortNumber: pl.A.Port},
				gns3.LinkNode{NodeID: bID, AdapterNumber: pl.B.Adapter, PortNumber: pl.B.Port})
			if err != nil {
				outcome.Status = models.UnitFailed
				outcome.Error = err.Error()
				b.event(dep, opts, "error", unit, "link create failed: "+err.Error())
			} else {
				outcome.Status = models.UnitCreated
				outcome.LinkID = link.LinkID
				b.event(dep, opts, "info", unit, fmt.Sprintf("link created: %s <-> %s", pl.A.Node, pl.B.Node))
			}
		}
		dep.Links = append(dep.Links, outcome)
	}
}

// startNodes starts every created node. Start failures degrade the
// node's outcome without failing the deployment.
func (b *Builder) startNodes(ctx context.Context, dep *models.Deployment, opts *BuildOptions, projectID string) {
	dep.Phase = models.PhaseStarting
	for i := range dep.Nodes {
		if dep.Nodes[i].Status != models.UnitCreated {
			continue
		}
		if err := b.client.StartNode(ctx, projectID, dep.Nodes[i].NodeID); err != nil {
			dep.Nodes[i].StartError = err.Error()
			b.event(dep, opts, "warning", dep.Nodes[i].Name, "start failed: "+err.Error())
		} else {
			dep.Nodes[i].Started = true
		}
	}
}

// collectConsoles refreshes each created node's console endpoint and
// feeds the registry. Wildcard console hosts fall back to the server's
// own hostname. Detail fetch failures degrade to warnings.
func (b *Builder) collectConsoles(ctx context.Context, dep *models.Deployment, opts *BuildOptions, projectID string) {
	fallback := b.client.Host()
	for i := range dep.Nodes {
		if dep.Nodes[i].Status != models.UnitCreated {
			continue
		}
		node, err := b.client.GetNode(ctx, projectID, dep.Nodes[i].NodeID)
		if err != nil {
			warning := fmt.Sprintf("node %s: console details unavailable: %v", dep.Nodes[i].Name, err)
			dep.Warnings = append(dep.Warnings, warning)
			b.event(dep, opts, "warning", dep.Nodes[i].Name, warning)
			continue
		}
		host, port := node.ConsoleEndpoint(fallback)
		dep.Nodes[i].ConsoleHost = host
		dep.Nodes[i].ConsolePort = port
		dep.Nodes[i].ConsoleType = node.ConsoleType
		if b.registry != nil && port != 0 {
			b.registry.Put(registry.Entry{
				Project:     projectID,
				Node:        dep.Nodes[i].Name,
				NodeID:      dep.Nodes[i].NodeID,
				Host:        host,
				Port:        port,
				ConsoleType: node.ConsoleType,
				Alive:       dep.Nodes[i].Started,
			})
		}
	}
}

func (b *Builder) event(dep *models.Deployment, opts *BuildOptions, eventType, unit, message string) {
	dep.AddEvent(eventType, unit, message)
	if opts.OnEvent != nil {
		opts.OnEvent(dep.Events[len(dep.Events)-1])
	}
}

func (b *Builder) fail(dep *models.Deployment, opts *BuildOptions, err error) (*models.Deployment, error) {
	b.event(dep, opts, "error", "", err.Error())
	dep.Fail(err)
	return dep, err
}
