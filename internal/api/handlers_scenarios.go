package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"evalgo.org/emulium/internal/push"
	"evalgo.org/emulium/internal/scenario"
	"evalgo.org/emulium/models"
)

// DeployRequest carries the per-deployment overrides. Absent booleans
// default to true: a plain deploy brings the lab fully up.
type DeployRequest struct {
	// Server overrides the scenario's GNS3 server URL.
	Server string `json:"gns3_url,omitempty"`

	// Project overrides the scenario's project reference (UUID or name).
	Project string `json:"project,omitempty"`

	StartNodes *bool `json:"start_nodes,omitempty"`
	RunScripts *bool `json:"run_scripts,omitempty"`
}

func (r *DeployRequest) startNodes() bool { return r.StartNodes == nil || *r.StartNodes }
func (r *DeployRequest) runScripts() bool { return r.RunScripts == nil || *r.RunScripts }

// listScenarios handles GET /api/v1/scenarios
// @Summary List scenarios
// @Description Get all stored lab scenarios with optional filtering and pagination
// @Tags Scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by scenario name"
// @Param limit query int false "Maximum number of results (default: 100, max: 1000)"
// @Param offset query int false "Number of results to skip (default: 0)"
// @Success 200 {object} PaginatedScenariosResponse "List of scenarios"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scenarios [get]
func (s *Server) listScenarios(c echo.Context) error {
	filters := make(map[string]interface{})
	if name := c.QueryParam("name"); name != "" {
		filters["name"] = name
	}

	scenarios, err := s.storage.ListScenarios(c.Request().Context(), filters)
	if err != nil {
		return InternalError("Failed to list scenarios", err.Error())
	}

	limit, offset := parsePagination(c)
	page := paginateSliceScenarios(scenarios, limit, offset)

	return c.JSON(http.StatusOK, PaginatedScenariosResponse{
		Count:     len(page),
		Total:     len(scenarios),
		Limit:     limit,
		Offset:    offset,
		Scenarios: page,
	})
}

// getScenario handles GET /api/v1/scenarios/:id
// @Summary Get a scenario
// @Description Get a single scenario by its ID
// @Tags Scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Success 200 {object} models.Scenario "Scenario document"
// @Failure 404 {object} APIError "Scenario not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scenarios/{id} [get]
func (s *Server) getScenario(c echo.Context) error {
	id := c.Param("id")

	scn, err := s.storage.GetScenario(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("scenario", id)
		}
		return InternalError("Failed to get scenario", err.Error())
	}

	return c.JSON(http.StatusOK, scn)
}

// createScenario handles POST /api/v1/scenarios
// @Summary Create a scenario
// @Description Store a new lab scenario document
// @Tags Scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scenario body models.Scenario true "Scenario document"
// @Success 201 {object} models.Scenario "Created scenario"
// @Failure 400 {object} APIError "Invalid scenario"
// @Failure 409 {object} APIError "Scenario name already exists"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scenarios [post]
func (s *Server) createScenario(c echo.Context) error {
	var scn models.Scenario
	if err := c.Bind(&scn); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	if scn.Context == "" {
		scn.Context = "https://schema.org"
	}
	if scn.Type == "" {
		scn.Type = "Scenario"
	}
	if scn.ID == "" {
		scn.ID = models.GenerateID("scenario")
	}
	now := time.Now().UTC()
	scn.CreatedAt = now
	scn.UpdatedAt = now
	scn.Rev = ""
	if scn.Owner == "" {
		scn.Owner = requestOwner(c)
	}

	if errs := s.validator.ValidateStruct(&scn); len(errs) > 0 {
		return ValidationFailedError("Scenario validation failed", errs)
	}
	if err := scenario.Validate(&scn.Definition); err != nil {
		return BadRequestError("Invalid scenario definition", err.Error())
	}

	ctx := c.Request().Context()
	if existing, err := s.storage.GetScenarioByName(ctx, scn.Name); err == nil && existing.ID != scn.ID {
		return ConflictError("Scenario name already exists", scn.Name)
	}

	if err := s.storage.SaveScenario(ctx, &scn); err != nil {
		return InternalError("Failed to save scenario", err.Error())
	}

	s.broadcast(EventScenarioCreated, map[string]string{"id": scn.ID, "name": scn.Name})

	return c.JSON(http.StatusCreated, &scn)
}

// updateScenario handles PUT /api/v1/scenarios/:id
// @Summary Update a scenario
// @Description Replace a stored scenario's content
// @Tags Scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Param scenario body models.Scenario true "Updated scenario document"
// @Success 200 {object} models.Scenario "Updated scenario"
// @Failure 400 {object} APIError "Invalid scenario"
// @Failure 404 {object} APIError "Scenario not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scenarios/{id} [put]
func (s *Server) updateScenario(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	existing, err := s.storage.GetScenario(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("scenario", id)
		}
		return InternalError("Failed to get scenario", err.Error())
	}

	var scn models.Scenario
	if err := c.Bind(&scn); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	// Identity and history come from the stored document.
	scn.Context = existing.Context
	scn.Type = existing.Type
	scn.ID = existing.ID
	scn.Rev = existing.Rev
	scn.CreatedAt = existing.CreatedAt
	scn.UpdatedAt = time.Now().UTC()
	if scn.Owner == "" {
		scn.Owner = existing.Owner
	}

	if errs := s.validator.ValidateStruct(&scn); len(errs) > 0 {
		return ValidationFailedError("Scenario validation failed", errs)
	}
	if err := scenario.Validate(&scn.Definition); err != nil {
		return BadRequestError("Invalid scenario definition", err.Error())
	}

	if err := s.storage.SaveScenario(ctx, &scn); err != nil {
		return InternalError("Failed to update scenario", err.Error())
	}

	s.broadcast(EventScenarioUpdated, map[string]string{"id": scn.ID, "name": scn.Name})

	return c.JSON(http.StatusOK, &scn)
}

// deleteScenario handles DELETE /api/v1/scenarios/:id
// @Summary Delete a scenario
// @Description Delete a stored scenario; deployments built from it are kept
// @Tags Scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Success 200 {object} MessageResponse "Scenario deleted"
// @Failure 404 {object} APIError "Scenario not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scenarios/{id} [delete]
func (s *Server) deleteScenario(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	scn, err := s.storage.GetScenario(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("scenario", id)
		}
		return InternalError("Failed to get scenario", err.Error())
	}

	if err := s.storage.DeleteScenario(ctx, scn.ID, scn.Rev); err != nil {
		return InternalError("Failed to delete scenario", err.Error())
	}

	s.broadcast(EventScenarioDeleted, map[string]string{"id": scn.ID, "name": scn.Name})

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "scenario deleted",
		ID:      scn.ID,
	})
}

// deployScenario handles POST /api/v1/scenarios/:id/deploy
// @Summary Deploy a stored scenario
// @Description Build the scenario's topology on a GNS3 server, start the nodes and run embedded scripts
// @Tags Scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Param options body DeployRequest false "Deployment overrides"
// @Success 201 {object} models.Deployment "Deployment report"
// @Failure 400 {object} APIError "Scenario rejected before any remote call"
// @Failure 404 {object} APIError "Scenario not found"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /scenarios/{id}/deploy [post]
func (s *Server) deployScenario(c echo.Context) error {
	id := c.Param("id")

	scn, err := s.storage.GetScenario(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("scenario", id)
		}
		return InternalError("Failed to get scenario", err.Error())
	}

	var req DeployRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return BadRequestError("Invalid request body", err.Error())
		}
	}

	return s.runDeployment(c, scn, true, &req)
}

// deployAdHoc handles POST /api/v1/deploy
// @Summary Deploy an ad-hoc scenario
// @Description Build a scenario document from the request body without storing it
// @Tags Scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scenario body models.Scenario true "Scenario document"
// @Param start_nodes query bool false "Start created nodes (default: true)"
// @Param run_scripts query bool false "Run embedded scripts (default: true)"
// @Param project query string false "Project override (UUID or name)"
// @Param server query string false "GNS3 server URL override"
// @Success 201 {object} models.Deployment "Deployment report"
// @Failure 400 {object} APIError "Scenario rejected before any remote call"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /deploy [post]
func (s *Server) deployAdHoc(c echo.Context) error {
	var scn models.Scenario
	if err := c.Bind(&scn); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	if err := scenario.Validate(&scn.Definition); err != nil {
		return BadRequestError("Invalid scenario definition", err.Error())
	}

	startNodes := boolParam(c, "start_nodes", true)
	runScripts := boolParam(c, "run_scripts", true)
	req := DeployRequest{
		Server:     c.QueryParam("server"),
		Project:    c.QueryParam("project"),
		StartNodes: &startNodes,
		RunScripts: &runScripts,
	}

	return s.runDeployment(c, &scn, false, &req)
}

// runDeployment executes the shared deploy flow: resolve the target
// server, build the topology, run embedded scripts, persist the report
// and broadcast progress. The response always carries the complete
// deployment report, whatever happened to the individual units.
func (s *Server) runDeployment(c echo.Context, scn *models.Scenario, stored bool, req *DeployRequest) error {
	ctx := c.Request().Context()

	def := scn.Definition

	serverURL := req.Server
	if serverURL == "" {
		serverURL = def.ServerURL
	}
	client, err := s.gns3.ClientFor(serverURL)
	if err != nil {
		return BadGatewayError("GNS3 server unavailable", err.Error())
	}

	opts := scenario.BuildOptions{
		ScenarioName: scn.Name,
		Project:      req.Project,
		StartNodes:   req.startNodes(),
		Owner:        requestOwner(c),
		OnEvent: func(ev models.DeploymentEvent) {
			s.broadcast(EventDeploymentProgress, ev)
		},
	}
	if stored {
		opts.ScenarioID = scn.ID
	}

	s.broadcast(EventDeploymentStarted, map[string]string{
		"scenario": scn.Name,
		"server":   client.BaseURL(),
	})

	builder := scenario.NewBuilder(client, s.registry)
	dep, buildErr := builder.Build(ctx, &def, opts)
	if buildErr != nil {
		s.persistDeployment(ctx, dep)
		s.broadcast(EventDeploymentFinished, deploymentSummary(dep))

		var vErr *scenario.ValidationError
		if errors.As(buildErr, &vErr) {
			return BadRequestError("Scenario rejected", vErr.Error())
		}
		return BadGatewayError("Deployment failed", buildErr.Error())
	}

	if req.runScripts() && def.HasScripts() {
		dep.Phase = models.PhaseScripts
		dep.AddEvent("info", "", "running embedded scripts")

		summaries := s.pusher.RunScenarioScripts(ctx, dep.ProjectID, &def, push.ScriptRunOptions{
			BootDelay:     s.config.Push.BootDelay,
			PriorityDelay: s.config.Push.PriorityDelay,
			Concurrency:   s.config.Push.GroupConcurrency,
			ResolveScript: func(scriptID string) (string, error) {
				return s.storage.ResolveScriptContent(ctx, scriptID)
			},
		})
		dep.Scripts = summaries
		dep.Complete()

		s.broadcast(EventScriptsExecuted, map[string]interface{}{
			"deployment": dep.ID,
			"scripts":    len(summaries),
		})
	}

	s.persistDeployment(ctx, dep)
	s.broadcast(EventDeploymentFinished, deploymentSummary(dep))

	return c.JSON(http.StatusCreated, dep)
}

// deploymentSummary is the broadcast payload for finished deployments;
// the full report can be large, clients fetch it by ID when needed.
func deploymentSummary(dep *models.Deployment) map[string]interface{} {
	return map[string]interface{}{
		"id":       dep.ID,
		"scenario": dep.ScenarioName,
		"project":  dep.ProjectID,
		"status":   dep.Status,
		"nodes":    len(dep.Nodes),
		"links":    len(dep.Links),
	}
}
