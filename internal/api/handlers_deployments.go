package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// listDeployments handles GET /api/v1/deployments
// @Summary List deployments
// @Description Get stored deployment reports with optional filtering and pagination
// @Tags Deployments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (deploying, complete, partial, failed)"
// @Param scenario_id query string false "Filter by scenario ID"
// @Param project_id query string false "Filter by GNS3 project ID"
// @Param limit query int false "Maximum number of results (default: 100, max: 1000)"
// @Param offset query int false "Number of results to skip (default: 0)"
// @Success 200 {object} PaginatedDeploymentsResponse "List of deployments"
// @Failure 500 {object} APIError "Internal server error"
// @Router /deployments [get]
func (s *Server) listDeployments(c echo.Context) error {
	filters := make(map[string]interface{})
	if status := c.QueryParam("status"); status != "" {
		filters["status"] = status
	}
	if scenarioID := c.QueryParam("scenario_id"); scenarioID != "" {
		filters["scenarioId"] = scenarioID
	}
	if projectID := c.QueryParam("project_id"); projectID != "" {
		filters["projectId"] = projectID
	}

	deployments, err := s.storage.ListDeployments(c.Request().Context(), filters)
	if err != nil {
		return InternalError("Failed to list deployments", err.Error())
	}

	limit, offset := parsePagination(c)
	page := paginateSliceDeployments(deployments, limit, offset)

	return c.JSON(http.StatusOK, PaginatedDeploymentsResponse{
		Count:       len(page),
		Total:       len(deployments),
		Limit:       limit,
		Offset:      offset,
		Deployments: page,
	})
}

// getDeployment handles GET /api/v1/deployments/:id
// @Summary Get a deployment
// @Description Get one deployment report by its ID
// @Tags Deployments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deployment ID"
// @Success 200 {object} models.Deployment "Deployment report"
// @Failure 404 {object} APIError "Deployment not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /deployments/{id} [get]
func (s *Server) getDeployment(c echo.Context) error {
	id := c.Param("id")

	dep, err := s.storage.GetDeployment(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return NotFoundError("deployment", id)
		}
		return InternalError("Failed to get deployment", err.Error())
	}

	return c.JSON(http.StatusOK, dep)
}

// deleteDeployment handles DELETE /api/v1/deployments/:id
// @Summary Delete a deployment report
// @Description Delete a stored deployment report; the deployed topology is untouched (use cleanup for that)
// @Tags Deployments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deployment ID"
// @Success 200 {object} MessageResponse "Deployment deleted"
// @Failure 404 {object} APIError "Deployment not found"
// @Failure 500 {object} APIError "Internal server error"
// @Router /deployments/{id} [delete]
func (s *Server) deleteDeployment(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	if _, err := s.storage.GetDeployment(ctx, id); err != nil {
		if isNotFound(err) {
			return NotFoundError("deployment", id)
		}
		return InternalError("Failed to get deployment", err.Error())
	}

	if err := s.storage.DeleteDeployment(ctx, id); err != nil {
		return InternalError("Failed to delete deployment", err.Error())
	}

	s.broadcast(EventDeploymentDeleted, map[string]string{"id": id})

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "deployment deleted",
		ID:      id,
	})
}

// listRegistry handles GET /api/v1/registry/:project
// @Summary List console registry entries
// @Description Get the known console endpoints of a project's nodes
// @Tags Registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project path string true "GNS3 project ID"
// @Success 200 {object} RegistryResponse "Registry entries"
// @Router /registry/{project} [get]
func (s *Server) listRegistry(c echo.Context) error {
	project := c.Param("project")
	entries := s.registry.List(project)

	return c.JSON(http.StatusOK, RegistryResponse{
		Project: project,
		Count:   len(entries),
		Entries: entries,
	})
}

// dropRegistry handles DELETE /api/v1/registry/:project
// @Summary Drop console registry entries
// @Description Forget all console endpoints known for a project
// @Tags Registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project path string true "GNS3 project ID"
// @Success 200 {object} MessageResponse "Entries dropped"
// @Router /registry/{project} [delete]
func (s *Server) dropRegistry(c echo.Context) error {
	project := c.Param("project")
	dropped := s.registry.DropProject(project)

	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("%d registry entries dropped", dropped),
		ID:      project,
	})
}
