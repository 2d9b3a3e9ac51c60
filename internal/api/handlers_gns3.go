package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/emulium/internal/gns3"
)

// AddServerRequest registers an additional GNS3 server with the
// gateway manager.
type AddServerRequest struct {
	URL      string `json:"url" validate:"required,url"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// listServers handles GET /api/v1/gns3/servers
// @Summary List GNS3 servers
// @Description Get the GNS3 servers known to the gateway manager
// @Tags GNS3
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ServersResponse "Known servers"
// @Router /gns3/servers [get]
func (s *Server) listServers(c echo.Context) error {
	servers := s.gns3.ListServers()

	return c.JSON(http.StatusOK, ServersResponse{
		Count:   len(servers),
		Default: s.gns3.DefaultURL(),
		Servers: servers,
	})
}

// addServer handles POST /api/v1/gns3/servers
// @Summary Register a GNS3 server
// @Description Register an additional GNS3 server; the server is probed before it is accepted
// @Tags GNS3
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param server body AddServerRequest true "Server connection settings"
// @Success 201 {object} MessageResponse "Server registered"
// @Failure 400 {object} APIError "Invalid request"
// @Failure 502 {object} APIError "Server unreachable"
// @Router /gns3/servers [post]
func (s *Server) addServer(c echo.Context) error {
	var req AddServerRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if errs := s.validator.ValidateStruct(&req); len(errs) > 0 {
		return ValidationFailedError("Server registration failed", errs)
	}

	cfg := gns3.Config{
		URL:      req.URL,
		Username: req.Username,
		Password: req.Password,
		Timeout:  s.config.GNS3.Timeout,
	}
	if err := s.gns3.AddServer(c.Request().Context(), cfg); err != nil {
		return BadGatewayError("GNS3 server unreachable", err.Error())
	}

	return c.JSON(http.StatusCreated, MessageResponse{
		Message: "server registered",
		ID:      req.URL,
	})
}

// removeServer handles DELETE /api/v1/gns3/servers
// @Summary Remove a GNS3 server
// @Description Remove a registered GNS3 server from the gateway manager
// @Tags GNS3
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param server query string true "Server URL"
// @Success 200 {object} MessageResponse "Server removed"
// @Failure 400 {object} APIError "Missing server parameter"
// @Failure 404 {object} APIError "Server not registered"
// @Router /gns3/servers [delete]
func (s *Server) removeServer(c echo.Context) error {
	serverURL := c.QueryParam("server")
	if serverURL == "" {
		return BadRequestError("Missing server parameter", "pass the server URL as ?server=")
	}

	if err := s.gns3.RemoveServer(serverURL); err != nil {
		return NotFoundError("server", serverURL)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "server removed",
		ID:      serverURL,
	})
}

// listTemplates handles GET /api/v1/gns3/templates
// @Summary List templates
// @Description Get the node templates of a GNS3 server
// @Tags GNS3
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param server query string false "GNS3 server URL (default: configured server)"
// @Success 200 {object} TemplatesResponse "Templates"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /gns3/templates [get]
func (s *Server) listTemplates(c echo.Context) error {
	client, err := s.gns3.ClientFor(s.serverParam(c))
	if err != nil {
		return BadGatewayError("GNS3 server unavailable", err.Error())
	}

	templates, err := client.ListTemplates(c.Request().Context())
	if err != nil {
		return BadGatewayError("Failed to list templates", err.Error())
	}

	return c.JSON(http.StatusOK, TemplatesResponse{
		Count:     len(templates),
		Server:    client.BaseURL(),
		Templates: templates,
	})
}

// listProjects handles GET /api/v1/gns3/projects
// @Summary List projects
// @Description Get the projects of a GNS3 server
// @Tags GNS3
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param server query string false "GNS3 server URL (default: configured server)"
// @Success 200 {object} ProjectsResponse "Projects"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /gns3/projects [get]
func (s *Server) listProjects(c echo.Context) error {
	client, err := s.gns3.ClientFor(s.serverParam(c))
	if err != nil {
		return BadGatewayError("GNS3 server unavailable", err.Error())
	}

	projects, err := client.ListProjects(c.Request().Context())
	if err != nil {
		return BadGatewayError("Failed to list projects", err.Error())
	}

	return c.JSON(http.StatusOK, ProjectsResponse{
		Count:    len(projects),
		Server:   client.BaseURL(),
		Projects: projects,
	})
}

// getProject handles GET /api/v1/gns3/projects/:project
// @Summary Get a project
// @Description Get one GNS3 project by UUID or name
// @Tags GNS3
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project path string true "Project UUID or name"
// @Param server query string false "GNS3 server URL (default: configured server)"
// @Success 200 {object} gns3.Project "Project"
// @Failure 404 {object} APIError "Project not found"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /gns3/projects/{project} [get]
func (s *Server) getProject(c echo.Context) error {
	ref := c.Param("project")
	ctx := c.Request().Context()

	client, err := s.gns3.ClientFor(s.serverParam(c))
	if err != nil {
		return BadGatewayError("GNS3 server unavailable", err.Error())
	}

	projectID, err := client.ResolveProject(ctx, ref)
	if err != nil {
		return NotFoundError("project", ref)
	}

	project, err := client.GetProject(ctx, projectID)
	if err != nil {
		return BadGatewayError("Failed to get project", err.Error())
	}

	return c.JSON(http.StatusOK, project)
}

// listProjectNodes handles GET /api/v1/gns3/projects/:project/nodes
// @Summary List project nodes
// @Description Get the nodes of a GNS3 project, including console endpoints
// @Tags GNS3
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project path string true "Project UUID or name"
// @Param server query string false "GNS3 server URL (default: configured server)"
// @Success 200 {object} NodesResponse "Nodes"
// @Failure 404 {object} APIError "Project not found"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /gns3/projects/{project}/nodes [get]
func (s *Server) listProjectNodes(c echo.Context) error {
	ref := c.Param("project")
	ctx := c.Request().Context()

	client, err := s.gns3.ClientFor(s.serverParam(c))
	if err != nil {
		return BadGatewayError("GNS3 server unavailable", err.Error())
	}

	projectID, err := client.ResolveProject(ctx, ref)
	if err != nil {
		return NotFoundError("project", ref)
	}

	nodes, err := client.ListNodes(ctx, projectID)
	if err != nil {
		return BadGatewayError("Failed to list nodes", err.Error())
	}

	return c.JSON(http.StatusOK, NodesResponse{
		Count:   len(nodes),
		Project: projectID,
		Nodes:   nodes,
	})
}

// cleanupProject handles POST /api/v1/gns3/projects/:project/cleanup
// @Summary Clean up a project
// @Description Stop, unlink and delete every node of a project, and drop its registry entries
// @Tags GNS3
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project path string true "Project UUID or name"
// @Param server query string false "GNS3 server URL (default: configured server)"
// @Success 200 {object} models.CleanupReport "Cleanup report"
// @Failure 404 {object} APIError "Project not found"
// @Failure 502 {object} APIError "GNS3 server unreachable"
// @Router /gns3/projects/{project}/cleanup [post]
func (s *Server) cleanupProject(c echo.Context) error {
	ref := c.Param("project")
	ctx := c.Request().Context()

	client, err := s.gns3.ClientFor(s.serverParam(c))
	if err != nil {
		return BadGatewayError("GNS3 server unavailable", err.Error())
	}

	projectID, err := client.ResolveProject(ctx, ref)
	if err != nil {
		return NotFoundError("project", ref)
	}

	report := client.Cleanup(ctx, projectID)
	s.registry.DropProject(projectID)

	s.broadcast(EventProjectCleaned, map[string]interface{}{
		"project":       projectID,
		"nodes_deleted": report.NodesDeleted,
		"links_deleted": report.LinksDeleted,
		"success":       report.Success,
	})

	return c.JSON(http.StatusOK, report)
}
