package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/emulium/models"
)

// listScheduledActions handles GET /api/v1/actions
// @Summary List scheduled actions
// @Description Get stored scheduled lab actions with optional filtering and pagination
// @Tags Scheduled Actions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by action type (ActivateAction, DeactivateAction, DeleteAction)"
// @Param status query string false "Filter by action status"
// @Param enabled query bool false "Filter by enabled flag"
// @Param limit query int false "Maximum number of results (default: 100, max: 1000)"
// @Param offset query int false "Number of results to skip (default: 0)"
// @Success 200 {object} PaginatedActionsResponse "List of scheduled actions"
// @Failure 500 {object} APIError "Internal server error"
// @Router /actions [get]
func (s *Server) listScheduledActions(c echo.Context) error {
	filters := make(map[string]interface{})
	if actionType := c.QueryParam("type"); actionType != "" {
		filters["@type"] = actionType
	}
	if status := c.QueryParam("action_status"); status != "" {
		filters["actionStatus"] = status
	}
	if enabled := c.QueryParam("enabled"); enabled != "" {
		filters["enabled"] = enabled == "true"
	}

	actions, err := s.storage.ListScheduledActions(c.Request().Context(), filters)
	if err != nil {
		return InternalError("Failed to list scheduled actions", err.Error())
	}

	limit, offset := parsePagination(c)
	page := paginateSliceActions(actions, limit, offset)

	return c.JSON(http.StatusOK, PaginatedActionsResponse{
		Count:   len(page),
		Total:   len(actions),
		Limit:   limit,
		Offset:  offset,
		Actions: page,
	})
}

// getScheduledAction handles GET /api/v1/actions/:id
// @Summary Get a scheduled action
// @Description Get one scheduled action by its ID
// @Tags Scheduled Actions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Action ID"
// @Success 200 {object} models.ScheduledAction "Scheduled action"
// @Failure 404 {object} APIError "Action not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /actions/{id} [get]
func (s *Server) getScheduledAction(c echo.Context) error {
	id := c.Param("id")

	action, err := s.storage.GetScheduledAction(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("scheduled action", id)
		}
		return InternalError("Failed to get scheduled action", err.Error())
	}

	return c.JSON(http.StatusOK, action)
}

// createScheduledAction handles POST /api/v1/actions
// @Summary Create a scheduled action
// @Description Schedule a scenario deploy, stop or teardown on a recurring schedule
// @Tags Scheduled Actions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param action body models.ScheduledAction true "Scheduled action document"
// @Success 201 {object} models.ScheduledAction "Created action"
// @Failure 400 {object} APIError "Invalid action"
// @Failure 500 {object} APIError "Internal server error"
// @Router /actions [post]
func (s *Server) createScheduledAction(c echo.Context) error {
	var action models.ScheduledAction
	if err := c.Bind(&action); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	// CreateScheduledAction validates the document and applies defaults.
	if err := s.storage.CreateScheduledAction(c.Request().Context(), &action); err != nil {
		return BadRequestError("Failed to create scheduled action", err.Error())
	}

	return c.JSON(http.StatusCreated, &action)
}

// updateScheduledAction handles PUT /api/v1/actions/:id
// @Summary Update a scheduled action
// @Description Replace a scheduled action's schedule, target or options
// @Tags Scheduled Actions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Action ID"
// @Param action body models.ScheduledAction true "Updated action document"
// @Success 200 {object} models.ScheduledAction "Updated action"
// @Failure 400 {object} APIError "Invalid action"
// @Failure 404 {object} APIError "Action not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /actions/{id} [put]
func (s *Server) updateScheduledAction(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	existing, err := s.storage.GetScheduledAction(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("scheduled action", id)
		}
		return InternalError("Failed to get scheduled action", err.Error())
	}

	var action models.ScheduledAction
	if err := c.Bind(&action); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	action.ID = existing.ID
	action.Rev = existing.Rev
	action.CreatedAt = existing.CreatedAt

	if err := s.storage.UpdateScheduledAction(ctx, &action); err != nil {
		return InternalError("Failed to update scheduled action", err.Error())
	}

	return c.JSON(http.StatusOK, &action)
}

// deleteScheduledAction handles DELETE /api/v1/actions/:id
// @Summary Delete a scheduled action
// @Description Delete one scheduled action
// @Tags Scheduled Actions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Action ID"
// @Success 200 {object} MessageResponse "Action deleted"
// @Failure 404 {object} APIError "Action not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /actions/{id} [delete]
func (s *Server) deleteScheduledAction(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	action, err := s.storage.GetScheduledAction(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("scheduled action", id)
		}
		return InternalError("Failed to get scheduled action", err.Error())
	}

	if err := s.storage.DeleteScheduledAction(ctx, action.ID, action.Rev); err != nil {
		return InternalError("Failed to delete scheduled action", err.Error())
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "scheduled action deleted",
		ID:      action.ID,
	})
}
