package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/models"
)

// PushRequest is a batch of script uploads against one project.
type PushRequest struct {
	// Project is the GNS3 project, as UUID or name.
	Project string `json:"project" validate:"required"`

	// Server overrides the default GNS3 server for console lookups.
	Server string `json:"gns3_url,omitempty"`

	Jobs []models.PushJob `json:"jobs" validate:"required,min=1,dive"`

	// Concurrency bounds parallel console sessions (default: config).
	Concurrency int `json:"concurrency,omitempty"`
}

// RunRequest executes already-uploaded scripts on project nodes.
type RunRequest struct {
	Project     string          `json:"project" validate:"required"`
	Server      string          `json:"gns3_url,omitempty"`
	Jobs        []models.RunJob `json:"jobs" validate:"required,min=1,dive"`
	Concurrency int             `json:"concurrency,omitempty"`
}

// listScripts handles GET /api/v1/scripts
// @Summary List scripts
// @Description Get all stored scripts with optional filtering and pagination
// @Tags Scripts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by script name"
// @Param limit query int false "Maximum number of results (default: 100, max: 1000)"
// @Param offset query int false "Number of results to skip (default: 0)"
// @Success 200 {object} PaginatedScriptsResponse "List of scripts"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scripts [get]
func (s *Server) listScripts(c echo.Context) error {
	filters := make(map[string]interface{})
	if name := c.QueryParam("name"); name != "" {
		filters["name"] = name
	}

	scripts, err := s.storage.ListScripts(c.Request().Context(), filters)
	if err != nil {
		return InternalError("Failed to list scripts", err.Error())
	}

	limit, offset := parsePagination(c)
	page := paginateSliceScripts(scripts, limit, offset)

	return c.JSON(http.StatusOK, PaginatedScriptsResponse{
		Count:   len(page),
		Total:   len(scripts),
		Limit:   limit,
		Offset:  offset,
		Scripts: page,
	})
}

// getScript handles GET /api/v1/scripts/:id
// @Summary Get a script
// @Description Get a single script by its ID
// @Tags Scripts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Script ID"
// @Success 200 {object} models.Script "Script document"
// @Failure 404 {object} APIError "Script not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scripts/{id} [get]
func (s *Server) getScript(c echo.Context) error {
	id := c.Param("id")

	script, err := s.storage.GetScript(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("script", id)
		}
		return InternalError("Failed to get script", err.Error())
	}

	return c.JSON(http.StatusOK, script)
}

// createScript handles POST /api/v1/scripts
// @Summary Create a script
// @Description Store a new shell script that push jobs can reference by ID
// @Tags Scripts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param script body models.Script true "Script document"
// @Success 201 {object} models.Script "Created script"
// @Failure 400 {object} APIError "Invalid script"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scripts [post]
func (s *Server) createScript(c echo.Context) error {
	var script models.Script
	if err := c.Bind(&script); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	if script.Context == "" {
		script.Context = "https://schema.org"
	}
	if script.Type == "" {
		script.Type = "SoftwareSourceCode"
	}
	if script.ID == "" {
		script.ID = models.GenerateID("script")
	}
	now := time.Now().UTC()
	script.CreatedAt = now
	script.UpdatedAt = now
	script.Rev = ""
	if script.Owner == "" {
		script.Owner = requestOwner(c)
	}

	if errs := s.validator.ValidateStruct(&script); len(errs) > 0 {
		return ValidationFailedError("Script validation failed", errs)
	}

	if err := s.storage.SaveScript(c.Request().Context(), &script); err != nil {
		return InternalError("Failed to save script", err.Error())
	}

	s.broadcast(EventScriptCreated, map[string]string{"id": script.ID, "name": script.Name})

	return c.JSON(http.StatusCreated, &script)
}

// updateScript handles PUT /api/v1/scripts/:id
// @Summary Update a script
// @Description Replace a stored script's content
// @Tags Scripts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Script ID"
// @Param script body models.Script true "Updated script document"
// @Success 200 {object} models.Script "Updated script"
// @Failure 400 {object} APIError "Invalid script"
// @Failure 404 {object} APIError "Script not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scripts/{id} [put]
func (s *Server) updateScript(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	existing, err := s.storage.GetScript(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("script", id)
		}
		return InternalError("Failed to get script", err.Error())
	}

	var script models.Script
	if err := c.Bind(&script); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	script.Context = existing.Context
	script.Type = existing.Type
	script.ID = existing.ID
	script.Rev = existing.Rev
	script.CreatedAt = existing.CreatedAt
	script.UpdatedAt = time.Now().UTC()
	if script.Owner == "" {
		script.Owner = existing.Owner
	}

	if errs := s.validator.ValidateStruct(&script); len(errs) > 0 {
		return ValidationFailedError("Script validation failed", errs)
	}

	if err := s.storage.SaveScript(ctx, &script); err != nil {
		return InternalError("Failed to update script", err.Error())
	}

	s.broadcast(EventScriptUpdated, map[string]string{"id": script.ID, "name": script.Name})

	return c.JSON(http.StatusOK, &script)
}

// deleteScript handles DELETE /api/v1/scripts/:id
// @Summary Delete a script
// @Description Delete a stored script; scenarios referencing it by ID will fail to resolve it
// @Tags Scripts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Script ID"
// @Success 200 {object} MessageResponse "Script deleted"
// @Failure 404 {object} APIError "Script not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /scripts/{id} [delete]
func (s *Server) deleteScript(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	script, err := s.storage.GetScript(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("script", id)
		}
		return InternalError("Failed to get script", err.Error())
	}

	if err := s.storage.DeleteScript(ctx, script.ID, script.Rev); err != nil {
		return InternalError("Failed to delete script", err.Error())
	}

	s.broadcast(EventScriptDeleted, map[string]string{"id": script.ID, "name": script.Name})

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "script deleted",
		ID:      script.ID,
	})
}

// pushScripts handles POST /api/v1/scripts/push
// @Summary Push scripts to nodes
// @Description Upload scripts to project nodes over their consoles, bounded-parallel
// @Tags Scripts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PushRequest true "Push batch"
// @Success 200 {object} models.PushReport "Per-job outcomes with batch counters"
// @Failure 400 {object} APIError "Invalid push request"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /scripts/push [post]
func (s *Server) pushScripts(c echo.Context) error {
	var req PushRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if errs := s.validator.ValidateStruct(&req); len(errs) > 0 {
		return ValidationFailedError("Push request validation failed", errs)
	}

	ctx := c.Request().Context()

	// Stored-script references are resolved before any console opens,
	// so a dangling ID fails the request instead of half the batch.
	for i := range req.Jobs {
		job := &req.Jobs[i]
		job.ApplyDefaults()
		if job.Content != "" || job.ScriptID == "" {
			continue
		}
		content, err := s.storage.ResolveScriptContent(ctx, job.ScriptID)
		if err != nil {
			if isNotFound(err) {
				return NotFoundError("script", job.ScriptID)
			}
			return InternalError("Failed to resolve script", err.Error())
		}
		job.Content = content
	}

	projectID, err := s.resolveProjectConsoles(ctx, req.Server, req.Project)
	if err != nil {
		return BadGatewayError("Failed to resolve project", err.Error())
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = s.config.Push.Concurrency
	}

	report := s.pusher.Push(ctx, projectID, req.Jobs, concurrency)

	s.broadcast(EventPushFinished, map[string]interface{}{
		"project":  projectID,
		"total":    report.Total,
		"uploaded": report.Uploaded,
		"executed": report.Executed,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
	})

	return c.JSON(http.StatusOK, report)
}

// runScripts handles POST /api/v1/scripts/run
// @Summary Run scripts on nodes
// @Description Execute already-uploaded scripts on project nodes, bounded-parallel
// @Tags Scripts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RunRequest true "Run batch"
// @Success 200 {object} models.PushReport "Per-job outcomes with batch counters"
// @Failure 400 {object} APIError "Invalid run request"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /scripts/run [post]
func (s *Server) runScripts(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if errs := s.validator.ValidateStruct(&req); len(errs) > 0 {
		return ValidationFailedError("Run request validation failed", errs)
	}

	ctx := c.Request().Context()

	for i := range req.Jobs {
		req.Jobs[i].ApplyDefaults()
	}

	projectID, err := s.resolveProjectConsoles(ctx, req.Server, req.Project)
	if err != nil {
		return BadGatewayError("Failed to resolve project", err.Error())
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = s.config.Push.Concurrency
	}

	report := s.pusher.Run(ctx, projectID, req.Jobs, concurrency)

	s.broadcast(EventScriptsExecuted, map[string]interface{}{
		"project":  projectID,
		"total":    report.Total,
		"executed": report.Executed,
		"failed":   report.Failed,
	})

	return c.JSON(http.StatusOK, report)
}

// resolveProjectConsoles turns a project reference into the project ID
// the registry is keyed by, re-seeding the registry from the live node
// list when this process has no entries for the project yet.
func (s *Server) resolveProjectConsoles(ctx context.Context, serverURL, project string) (string, error) {
	client, err := s.gns3.ClientFor(serverURL)
	if err != nil {
		return "", err
	}

	projectID, err := client.ResolveProject(ctx, project)
	if err != nil {
		return "", err
	}

	if len(s.registry.Snapshot(projectID)) == 0 {
		if _, err := gns3.SyncRegistry(ctx, client, s.registry, projectID); err != nil {
			return "", err
		}
	}

	return projectID, nil
}
