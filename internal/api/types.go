package api

import (
	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/models"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// PaginatedScenariosResponse represents one page of a scenario listing.
type PaginatedScenariosResponse struct {
	Count     int                `json:"count"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	Scenarios []*models.Scenario `json:"scenarios"`
}

// PaginatedScriptsResponse represents one page of a script listing.
type PaginatedScriptsResponse struct {
	Count   int              `json:"count"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	Scripts []*models.Script `json:"scripts"`
}

// PaginatedDeploymentsResponse represents one page of a deployment listing.
type PaginatedDeploymentsResponse struct {
	Count       int                  `json:"count"`
	Total       int                  `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
	Deployments []*models.Deployment `json:"deployments"`
}

// PaginatedActionsResponse represents one page of a scheduled action listing.
type PaginatedActionsResponse struct {
	Count   int                       `json:"count"`
	Total   int                       `json:"total"`
	Limit   int                       `json:"limit"`
	Offset  int                       `json:"offset"`
	Actions []*models.ScheduledAction `json:"actions"`
}

// RegistryResponse represents the console registry entries of one project.
type RegistryResponse struct {
	Project string           `json:"project"`
	Count   int              `json:"count"`
	Entries []registry.Entry `json:"entries"`
}

// ServersResponse represents the set of known GNS3 servers.
type ServersResponse struct {
	Count   int      `json:"count"`
	Default string   `json:"default"`
	Servers []string `json:"servers"`
}

// TemplatesResponse represents templates of a GNS3 server.
type TemplatesResponse struct {
	Count     int             `json:"count"`
	Server    string          `json:"server"`
	Templates []gns3.Template `json:"templates"`
}

// ProjectsResponse represents projects of a GNS3 server.
type ProjectsResponse struct {
	Count    int            `json:"count"`
	Server   string         `json:"server"`
	Projects []gns3.Project `json:"projects"`
}

// NodesResponse represents nodes of a GNS3 project.
type NodesResponse struct {
	Count   int         `json:"count"`
	Project string      `json:"project"`
	Nodes   []gns3.Node `json:"nodes"`
}
