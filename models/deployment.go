package models

import "time"

// Deployment statuses.
const (
	DeploymentStatusDeploying = "deploying"
	DeploymentStatusComplete  = "complete" // every unit succeeded
	DeploymentStatusPartial   = "partial"  // some units failed, report is complete
	DeploymentStatusFailed    = "failed"   // rejected before any remote call, or nothing materialized
)

// Deployment phases, in execution order.
const (
	PhaseValidating = "validating"
	PhaseNodes      = "creating-nodes"
	PhaseLinks      = "creating-links"
	PhaseStarting   = "starting-nodes"
	PhaseScripts    = "running-scripts"
	PhaseComplete   = "complete"
)

// Unit outcome values shared by node and link records.
const (
	UnitCreated = "created"
	UnitFailed  = "failed"
	UnitSkipped = "skipped"
)

// Deployment is the persisted build report of one scenario deployment.
// Every declared node and link appears exactly once in Nodes/Links, whatever
// happened to it.
type Deployment struct {
	Context string `json:"@context" jsonld:"@context"`
	Type    string `json:"@type" jsonld:"@type"`
	ID      string `json:"@id" jsonld:"@id" couchdb:"_id"`
	Rev     string `json:"_rev,omitempty" couchdb:"_rev"`

	// ScenarioID/ScenarioName reference the stored scenario, empty for
	// ad-hoc deployments.
	ScenarioID   string `json:"scenarioId,omitempty" couchdb:"index"`
	ScenarioName string `json:"scenarioName,omitempty"`

	// ServerURL and project identify where the topology materialized.
	ServerURL   string `json:"gns3_url"`
	ProjectID   string `json:"projectId" couchdb:"index"`
	ProjectName string `json:"projectName,omitempty"`

	Status   string `json:"status" couchdb:"index"`
	Phase    string `json:"phase,omitempty"`
	Progress int    `json:"progress,omitempty"`

	Nodes   []NodeOutcome      `json:"nodes"`
	Links   []LinkOutcome      `json:"links"`
	Scripts []ScriptRunSummary `json:"scripts,omitempty"`

	// Events is the ordered activity trail of the deployment.
	Events []DeploymentEvent `json:"events,omitempty"`

	// Warnings are non-fatal observations (degraded detail fetches etc).
	Warnings []string `json:"warnings,omitempty"`

	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`

	// Owner is the user who triggered the deployment.
	Owner string `json:"owner,omitempty" jsonld:"creator"`
}

// NodeOutcome records what happened to one declared node, including the
// start attempt and the console endpoint discovered after start.
type NodeOutcome struct {
	Name       string `json:"name"`
	NodeID     string `json:"node_id,omitempty"`
	TemplateID string `json:"template_id,omitempty"`

	Status string `json:"status"` // created | failed
	Error  string `json:"error,omitempty"`

	Started    bool   `json:"started,omitempty"`
	StartError string `json:"start_error,omitempty"`

	ConsoleHost string `json:"console_host,omitempty"`
	ConsolePort int    `json:"console,omitempty"`
	ConsoleType string `json:"console_type,omitempty"`
}

// LinkOutcome records what happened to one declared link. Index is the
// link's position in the scenario definition.
type LinkOutcome struct {
	Index  int          `json:"index"`
	A      LinkEndpoint `json:"a"`
	B      LinkEndpoint `json:"b"`
	LinkID string       `json:"link_id,omitempty"`
	Status string       `json:"status"` // created | failed | skipped
	Error  string       `json:"error,omitempty"`
}

// DeploymentEvent is one entry of the deployment activity trail.
type DeploymentEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"` // info | warning | error
	Phase     string    `json:"phase,omitempty"`
	Unit      string    `json:"unit,omitempty"` // node name or link index
	Message   string    `json:"message"`
}

// NewDeployment creates a deployment document in the deploying state.
func NewDeployment(serverURL string) *Deployment {
	return &Deployment{
		Context:   "https://schema.org",
		Type:      "Deployment",
		ID:        GenerateID("deployment"),
		ServerURL: serverURL,
		Status:    DeploymentStatusDeploying,
		Phase:     PhaseValidating,
		StartedAt: time.Now().UTC(),
	}
}

// AddEvent appends to the activity trail.
func (d *Deployment) AddEvent(eventType, unit, message string) {
	d.Events = append(d.Events, DeploymentEvent{
		Timestamp: time.Now().UTC(),
		Type:      eventType,
		Phase:     d.Phase,
		Unit:      unit,
		Message:   message,
	})
}

// Complete stamps the final status from the per-unit outcomes: complete when
// nothing failed, partial otherwise.
func (d *Deployment) Complete() {
	now := time.Now().UTC()
	d.CompletedAt = &now
	d.Phase = PhaseComplete
	d.Progress = 100
	d.Status = DeploymentStatusComplete
	for i := range d.Nodes {
		if d.Nodes[i].Status == UnitFailed || d.Nodes[i].StartError != "" {
			d.Status = DeploymentStatusPartial
			return
		}
	}
	for i := range d.Links {
		if d.Links[i].Status != UnitCreated {
			d.Status = DeploymentStatusPartial
			return
		}
	}
	for i := range d.Scripts {
		if !d.Scripts[i].Success {
			d.Status = DeploymentStatusPartial
			return
		}
	}
}

// Fail stamps a deployment that was rejected before any unit outcome.
func (d *Deployment) Fail(err error) {
	now := time.Now().UTC()
	d.CompletedAt = &now
	d.Status = DeploymentStatusFailed
	if err != nil {
		d.ErrorMessage = err.Error()
	}
}

// CreatedNodes returns the outcomes of nodes that materialized.
func (d *Deployment) CreatedNodes() []NodeOutcome {
	created := make([]NodeOutcome, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.Status == UnitCreated {
			created = append(created, n)
		}
	}
	return created
}

// CleanupReport summarizes a project-wide node sweep.
type CleanupReport struct {
	ProjectID    string   `json:"project_id"`
	NodesDeleted int      `json:"nodes_deleted"`
	LinksDeleted int      `json:"links_deleted"`
	Success      bool     `json:"success"`
	Errors       []string `json:"errors,omitempty"`
}
