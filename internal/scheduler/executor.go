package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"evalgo.org/emulium/internal/config"
	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/internal/push"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/internal/scenario"
	"evalgo.org/emulium/internal/storage"
	"evalgo.org/emulium/models"
)

// LabExecutor executes scheduled actions against the lab platform:
// deploy builds the referenced scenario, stop powers a project's nodes
// down, teardown deletes them. It reuses the same builder and push
// engine as the API handlers, so scheduled and interactive deployments
// behave identically.
type LabExecutor struct {
	storage  *storage.Storage
	gns3     *gns3.Manager
	registry *registry.Registry
	pusher   *push.Orchestrator
	push     config.PushConfig

	// notify, when set, receives lab events for the websocket/MQTT
	// fan-out.
	notify func(event string, data interface{})
}

// NewLabExecutor creates an executor wired to the live platform.
func NewLabExecutor(store *storage.Storage, mgr *gns3.Manager, reg *registry.Registry, pusher *push.Orchestrator, pushCfg config.PushConfig, notify func(event string, data interface{})) *LabExecutor {
	return &LabExecutor{
		storage:  store,
		gns3:     mgr,
		registry: reg,
		pusher:   pusher,
		push:     pushCfg,
		notify:   notify,
	}
}

// Execute dispatches on the action's schema.org type.
func (e *LabExecutor) Execute(ctx context.Context, action *models.ScheduledAction) (*models.ActionResult, error) {
	switch action.Type {
	case models.ActionTypeDeploy:
		return e.deploy(ctx, action)
	case models.ActionTypeStop:
		return e.stop(ctx, action)
	case models.ActionTypeTeardown:
		return e.teardown(ctx, action)
	default:
		return nil, fmt.Errorf("action type %q is not executable", action.Type)
	}
}

// deploy builds the referenced scenario, mirroring the interactive
// deploy flow: build the topology, run embedded scripts, persist the
// deployment report.
func (e *LabExecutor) deploy(ctx context.Context, action *models.ScheduledAction) (*models.ActionResult, error) {
	scn, err := e.resolveScenario(ctx, action)
	if err != nil {
		return nil, err
	}

	def := scn.Definition
	serverURL := action.InstrumentString("gns3_url")
	if serverURL == "" {
		serverURL = def.ServerURL
	}
	client, err := e.gns3.ClientFor(serverURL)
	if err != nil {
		return nil, fmt.Errorf("gns3 server unavailable: %w", err)
	}

	opts := scenario.BuildOptions{
		ScenarioID:   scn.ID,
		ScenarioName: scn.Name,
		Project:      action.InstrumentString("project"),
		StartNodes:   action.InstrumentBool("start_nodes", true),
		Owner:        "scheduler",
		OnEvent: func(ev models.DeploymentEvent) {
			e.emit("deployment_progress", ev)
		},
	}

	e.emit("deployment_started", map[string]string{
		"scenario":  scn.Name,
		"server":    client.BaseURL(),
		"scheduled": action.ID,
	})

	builder := scenario.NewBuilder(client, e.registry)
	dep, buildErr := builder.Build(ctx, &def, opts)

	if buildErr == nil && action.InstrumentBool("run_scripts", true) && def.HasScripts() {
		dep.Phase = models.PhaseScripts
		dep.AddEvent("info", "", "running embedded scripts")

		summaries := e.pusher.RunScenarioScripts(ctx, dep.ProjectID, &def, push.ScriptRunOptions{
			BootDelay:     e.push.BootDelay,
			PriorityDelay: e.push.PriorityDelay,
			Concurrency:   e.push.GroupConcurrency,
			ResolveScript: func(scriptID string) (string, error) {
				return e.storage.ResolveScriptContent(ctx, scriptID)
			},
		})
		dep.Scripts = summaries
		dep.Complete()
	}

	if err := e.storage.SaveDeployment(ctx, dep); err != nil {
		log.Printf("Error persisting scheduled deployment %s: %v", dep.ID, err)
	}
	e.emit("deployment_finished", map[string]interface{}{
		"id":       dep.ID,
		"scenario": dep.ScenarioName,
		"project":  dep.ProjectID,
		"status":   dep.Status,
	})

	if buildErr != nil {
		return nil, buildErr
	}

	return &models.ActionResult{
		Type:      "Thing",
		Name:      "deployment",
		Timestamp: time.Now().UTC(),
		Value: map[string]interface{}{
			"deployment": dep.ID,
			"project":    dep.ProjectID,
			"status":     dep.Status,
			"nodes":      len(dep.Nodes),
			"links":      len(dep.Links),
		},
	}, nil
}

// stop powers down every node of the action's project. Registry entries
// are kept but flagged stale, so a later deploy refreshes them.
func (e *LabExecutor) stop(ctx context.Context, action *models.ScheduledAction) (*models.ActionResult, error) {
	client, projectID, err := e.resolveProject(ctx, action)
	if err != nil {
		return nil, err
	}

	if err := client.StopAllNodes(ctx, projectID); err != nil {
		return nil, fmt.Errorf("stopping nodes of project %s: %w", projectID, err)
	}

	for _, entry := range e.registry.List(projectID) {
		e.registry.MarkStale(projectID, entry.Node)
	}

	e.emit("project_stopped", map[string]string{
		"project":   projectID,
		"scheduled": action.ID,
	})

	return &models.ActionResult{
		Type:      "Thing",
		Name:      "project stopped",
		Timestamp: time.Now().UTC(),
		Value:     map[string]interface{}{"project": projectID},
	}, nil
}

// teardown deletes every node and link of the action's project and
// drops its registry entries.
func (e *LabExecutor) teardown(ctx context.Context, action *models.ScheduledAction) (*models.ActionResult, error) {
	client, projectID, err := e.resolveProject(ctx, action)
	if err != nil {
		return nil, err
	}

	report := client.Cleanup(ctx, projectID)
	e.registry.DropProject(projectID)

	e.emit("project_cleaned", map[string]interface{}{
		"project":       projectID,
		"nodes_deleted": report.NodesDeleted,
		"links_deleted": report.LinksDeleted,
		"success":       report.Success,
		"scheduled":     action.ID,
	})

	if !report.Success {
		return nil, fmt.Errorf("cleanup of project %s finished with %d errors", projectID, len(report.Errors))
	}

	return &models.ActionResult{
		Type:      "Thing",
		Name:      "project cleaned",
		Timestamp: time.Now().UTC(),
		Value: map[string]interface{}{
			"project":       projectID,
			"nodes_deleted": report.NodesDeleted,
			"links_deleted": report.LinksDeleted,
		},
	}, nil
}

// resolveScenario loads the scenario the action's object points at, by
// ID first, then by name.
func (e *LabExecutor) resolveScenario(ctx context.Context, action *models.ScheduledAction) (*models.Scenario, error) {
	obj := action.Object
	if obj == nil {
		return nil, fmt.Errorf("action %s has no object", action.ID)
	}
	if obj.ID != "" {
		return e.storage.GetScenario(ctx, obj.ID)
	}
	if obj.Name != "" {
		return e.storage.GetScenarioByName(ctx, obj.Name)
	}
	return nil, fmt.Errorf("action %s names no scenario", action.ID)
}

// resolveProject determines the GNS3 client and project for stop and
// teardown actions. A Project object is used directly; a Scenario
// object is loaded and its project reference followed. The instrument
// options gns3_url and project override both.
func (e *LabExecutor) resolveProject(ctx context.Context, action *models.ScheduledAction) (*gns3.Client, string, error) {
	serverURL := action.InstrumentString("gns3_url")
	ref := action.InstrumentString("project")

	if ref == "" && action.Object != nil {
		if action.Object.Type == "Project" {
			ref = action.Object.Name
			if ref == "" {
				ref = action.Object.ID
			}
		} else {
			scn, err := e.resolveScenario(ctx, action)
			if err != nil {
				return nil, "", err
			}
			def := scn.Definition
			ref = def.ProjectID
			if ref == "" {
				ref = def.ProjectName
			}
			if serverURL == "" {
				serverURL = def.ServerURL
			}
		}
	}
	if ref == "" {
		return nil, "", fmt.Errorf("action %s names no project", action.ID)
	}

	client, err := e.gns3.ClientFor(serverURL)
	if err != nil {
		return nil, "", fmt.Errorf("gns3 server unavailable: %w", err)
	}
	projectID, err := client.ResolveProject(ctx, ref)
	if err != nil {
		return nil, "", fmt.Errorf("resolving project %q: %w", ref, err)
	}
	return client, projectID, nil
}

func (e *LabExecutor) emit(event string, data interface{}) {
	if e.notify != nil {
		e.notify(event, data)
	}
}
