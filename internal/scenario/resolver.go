package scenario

import (
	"context"
	"fmt"

	"evalgo.org/emulium/internal/gns3"
	"evalgo.org/emulium/models"
)

// TemplateSource lists the templates available on a GNS3 server. The
// resolver consults it at most once per resolve, and only when a node
// references its template by name.
type TemplateSource interface {
	ListTemplates(ctx context.Context) ([]gns3.Template, error)
}

// ValidationError rejects a scenario definition before any create call
// reaches the server. Unit names the offending node or link.
type ValidationError struct {
	Unit   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Unit == "" {
		return "invalid scenario: " + e.Reason
	}
	return fmt.Sprintf("invalid scenario: %s: %s", e.Unit, e.Reason)
}

// PlannedNode is one create-node operation with its template reference
// resolved to a concrete UUID.
type PlannedNode struct {
	Name       string
	TemplateID string
	X          int
	Y          int
}

// PlannedLink is one create-link operation. Index is the link's
// position in the definition. Endpoints still carry logical node
// names; the builder swaps them for node IDs once the nodes exist.
type PlannedLink struct {
	Index int
	A     models.LinkEndpoint
	B     models.LinkEndpoint
}

// Plan is an ordered operation plan: every node in declared order,
// then every link in declared order. Resolving the same definition
// twice yields the same plan.
type Plan struct {
	Nodes []PlannedNode
	Links []PlannedLink
}

// Resolver validates scenario definitions and turns them into plans.
type Resolver struct {
	templates TemplateSource
}

// NewResolver creates a resolver. templates may be nil when no node
// references its template by name.
func NewResolver(templates TemplateSource) *Resolver {
	return &Resolver{templates: templates}
}

// Validate checks a definition locally: node names present and unique,
// every node carries a template reference, template keys defined, link
// endpoints declared. It never contacts a server.
func Validate(def *models.ScenarioDefinition) error {
	declared := make(map[string]bool, len(def.Nodes))
	for i, node := range def.Nodes {
		if node.Name == "" {
			return &ValidationError{Unit: fmt.Sprintf("node[%d]", i), Reason: "name is required"}
		}
		if declared[node.Name] {
			return &ValidationError{Unit: node.Name, Reason: "duplicate node name"}
		}
		declared[node.Name] = true

		switch {
		case node.TemplateID != "":
		case node.TemplateKey != "":
			if _, ok := def.Templates[node.TemplateKey]; !ok {
				return &ValidationError{Unit: node.Name, Reason: fmt.Sprintf("template key %q is not defined", node.TemplateKey)}
			}
		case node.TemplateName != "":
		default:
			return &ValidationError{Unit: node.Name, Reason: "no template reference (template_id, template_key or template_name)"}
		}
	}
	for i, link := range def.Links {
		unit := fmt.Sprintf("link[%d]", i)
		for _, ep := range [2]models.LinkEndpoint{link.A, link.B} {
			if ep.Node == "" {
				return &ValidationError{Unit: unit, Reason: "endpoint node name is required"}
			}
			if !declared[ep.Node] {
				return &ValidationError{Unit: unit, Reason: fmt.Sprintf("endpoint references undeclared node %q", ep.Node)}
			}
		}
	}
	return nil
}

// Resolve validates the definition and produces its operation plan.
// Template names are resolved through a single template listing; a
// name missing on the server fails the resolve before any create.
func (r *Resolver) Resolve(ctx context.Context, def *models.ScenarioDefinition) (*Plan, error) {
	if err := Validate(def); err != nil {
		return nil, err
	}

	var byName map[string]string
	plan := &Plan{
		Nodes: make([]PlannedNode, 0, len(def.Nodes)),
		Links: make([]PlannedLink, 0, len(def.Links)),
	}
	for _, node := range def.Nodes {
		templateID := node.TemplateID
		switch {
		case templateID != "":
		case node.TemplateKey != "":
			templateID = def.Templates[node.TemplateKey]
		default:
			if byName == nil {
				var err error
				if byName, err = r.templatesByName(ctx); err != nil {
					return nil, err
				}
			}
			id, ok := byName[node.TemplateName]
			if !ok {
				return nil, &ValidationError{Unit: node.Name, Reason: fmt.Sprintf("template named %q not found on server", node.TemplateName)}
			}
			templateID = id
		}
		plan.Nodes = append(plan.Nodes, PlannedNode{
			Name:       node.Name,
			TemplateID: templateID,
			X:          node.X,
			Y:          node.Y,
		})
	}
	for i, link := range def.Links {
		plan.Links = append(plan.Links, PlannedLink{Index: i, A: link.A, B: link.B})
	}

	autoLayout(plan.Nodes, def.Layout)
	return plan, nil
}

func (r *Resolver) templatesByName(ctx context.Context) (map[string]string, error) {
	if r.templates == nil {
		return nil, &ValidationError{Reason: "template name resolution requires a server connection"}
	}
	templates, err := r.templates.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	byName := make(map[string]string, len(templates))
	for i := range templates {
		byName[templates[i].Name] = templates[i].TemplateID
	}
	return byName, nil
}
