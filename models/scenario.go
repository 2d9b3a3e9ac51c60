package models

import "time"

// Default values applied to embedded scripts when the scenario author omits them.
const (
	DefaultScriptPath     = "/tmp/script.sh"
	DefaultScriptShell    = "sh"
	DefaultScriptPriority = 10
	DefaultScriptTimeout  = 30 * time.Second
)

// Scenario is a stored lab scenario: a named, versioned topology definition
// that can be deployed to a GNS3 server. It follows the Schema.org
// CreativeWork type with network-lab extensions.
//
// Example JSON representation:
//
//	{
//	  "@context": "https://schema.org",
//	  "@type": "Scenario",
//	  "@id": "scenario:5478...",
//	  "name": "ot-segmentation-lab",
//	  "definition": {
//	    "templates": {"alpine": "1966b864-93e9-32d5-d0bd-53144621be32"},
//	    "nodes": [{"name": "plc-1", "template_key": "alpine", "x": 120, "y": -40}],
//	    "links": [{"a": {"node": "plc-1"}, "b": {"node": "sw-1", "adapter": 2}}]
//	  }
//	}
type Scenario struct {
	// Context is the JSON-LD @context URL
	Context string `json:"@context" jsonld:"@context"`

	// Type is the JSON-LD @type (Scenario)
	Type string `json:"@type" jsonld:"@type"`

	// ID is the unique scenario identifier (maps to CouchDB _id)
	ID string `json:"@id" jsonld:"@id" couchdb:"_id"`

	// Rev is the CouchDB document revision
	Rev string `json:"_rev,omitempty" couchdb:"_rev"`

	// Name is the scenario name (required, indexed)
	Name string `json:"name" jsonld:"name" couchdb:"required,index" validate:"required"`

	// Description is the human-readable scenario description
	Description string `json:"description,omitempty" jsonld:"description"`

	// Definition is the deployable topology
	Definition ScenarioDefinition `json:"definition" validate:"required"`

	// Owner is the user who created the scenario
	Owner string `json:"owner,omitempty" jsonld:"creator"`

	// Labels are custom key-value labels
	Labels map[string]string `json:"labels,omitempty"`

	// CreatedAt is the scenario creation timestamp
	CreatedAt time.Time `json:"dateCreated" jsonld:"dateCreated" couchdb:"index"`

	// UpdatedAt is the last update timestamp
	UpdatedAt time.Time `json:"dateModified" jsonld:"dateModified"`
}

// ScenarioDefinition is the complete deployable topology: templates, nodes,
// links and the target project. A definition is self-contained; deploying it
// twice produces the same operation plan.
type ScenarioDefinition struct {
	// ServerURL is the default GNS3 server for this scenario. Deploy
	// requests may override it.
	ServerURL string `json:"gns3_url,omitempty"`

	// ProjectID is the GNS3 project UUID. Either ProjectID or ProjectName
	// must be set before deployment.
	ProjectID string `json:"project_id,omitempty"`

	// ProjectName is the GNS3 project name, resolved server-side when
	// ProjectID is empty.
	ProjectName string `json:"project_name,omitempty"`

	// Templates maps scenario-local template keys to GNS3 template UUIDs.
	Templates map[string]string `json:"templates,omitempty"`

	// Nodes are created in declared order.
	Nodes []NodeSpec `json:"nodes,omitempty" validate:"dive"`

	// Links are created after all nodes, in declared order.
	Links []LinkSpec `json:"links,omitempty" validate:"dive"`

	// Layout selects an auto-layout strategy ("grid", "circle", "row")
	// applied when every node sits at the canvas origin. Empty disables it.
	Layout string `json:"layout,omitempty" validate:"omitempty,oneof=grid circle row"`
}

// NodeSpec declares one node of a scenario. The template reference is
// resolved with the precedence TemplateID > TemplateKey > TemplateName.
type NodeSpec struct {
	// Name is unique within the scenario and becomes the GNS3 node name.
	Name string `json:"name" validate:"required"`

	// TemplateID is a GNS3 template UUID used verbatim.
	TemplateID string `json:"template_id,omitempty"`

	// TemplateKey references the definition's Templates map.
	TemplateKey string `json:"template_key,omitempty"`

	// TemplateName is resolved against the server's template list.
	TemplateName string `json:"template_name,omitempty"`

	// X, Y are canvas coordinates, passed through to GNS3.
	X int `json:"x"`
	Y int `json:"y"`

	// Layer and Parent are visualization hints, stored but never
	// interpreted by the builder.
	Layer  string `json:"layer,omitempty"`
	Parent string `json:"parent_name,omitempty"`

	// Scripts run on this node after deployment, grouped by priority.
	Scripts []EmbeddedScript `json:"scripts,omitempty" validate:"dive"`
}

// LinkEndpoint references one side of a link by logical node name.
type LinkEndpoint struct {
	Node    string `json:"node" validate:"required"`
	Adapter int    `json:"adapter" validate:"gte=0"`
	Port    int    `json:"port" validate:"gte=0"`
}

// LinkSpec declares a link between two declared nodes. Adapter/port ranges
// are not validated locally; the GNS3 server is the source of truth and its
// rejection becomes the link outcome.
type LinkSpec struct {
	A LinkEndpoint `json:"a" validate:"required"`
	B LinkEndpoint `json:"b" validate:"required"`
}

// EmbeddedScript is a script carried inside a node spec, executed on that
// node after the topology is up. Lower priority values run first; scripts
// sharing a priority run concurrently.
type EmbeddedScript struct {
	Name string `json:"name" validate:"required"`

	// Content is the inline script body. When empty, ScriptID references a
	// stored script document.
	Content  string `json:"content,omitempty"`
	ScriptID string `json:"script_id,omitempty"`

	Path       string        `json:"remote_path,omitempty"`
	Priority   int           `json:"priority,omitempty" validate:"omitempty,gte=1"`
	Shell      string        `json:"shell,omitempty"`
	RunTimeout time.Duration `json:"timeout,omitempty"`
}

// NewScenario creates a scenario document with defaults.
func NewScenario(name, description string, def ScenarioDefinition) *Scenario {
	now := time.Now().UTC()
	return &Scenario{
		Context:     "https://schema.org",
		Type:        "Scenario",
		ID:          GenerateID("scenario"),
		Name:        name,
		Description: description,
		Definition:  def,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ApplyDefaults fills the zero-valued optional fields of an embedded script.
func (s *EmbeddedScript) ApplyDefaults() {
	if s.Path == "" {
		s.Path = DefaultScriptPath
	}
	if s.Shell == "" {
		s.Shell = DefaultScriptShell
	}
	if s.Priority == 0 {
		s.Priority = DefaultScriptPriority
	}
	if s.RunTimeout == 0 {
		s.RunTimeout = DefaultScriptTimeout
	}
}

// NodeNames returns the declared node names in order.
func (d *ScenarioDefinition) NodeNames() []string {
	names := make([]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		names = append(names, n.Name)
	}
	return names
}

// HasScripts reports whether any node carries embedded scripts.
func (d *ScenarioDefinition) HasScripts() bool {
	for _, n := range d.Nodes {
		if len(n.Scripts) > 0 {
			return true
		}
	}
	return false
}
