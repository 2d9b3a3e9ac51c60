package gns3

// Wire types for the GNS3 controller REST API (v2). Field names follow
// the controller's JSON schema; only the fields Emulium reads are
// declared, unknown fields are dropped on decode.

// Template describes a device template configured on the controller.
type Template struct {
	TemplateID   string `json:"template_id"`
	Name         string `json:"name"`
	TemplateType string `json:"template_type,omitempty"`
	Category     string `json:"category,omitempty"`
	ComputeID    string `json:"compute_id,omitempty"`
	Builtin      bool   `json:"builtin,omitempty"`
	Symbol       string `json:"symbol,omitempty"`
}

// Project is a GNS3 project.
type Project struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Status    string `json:"status,omitempty"`
	Path      string `json:"path,omitempty"`
}

// NodePort describes one attachable interface of a node.
type NodePort struct {
	AdapterNumber int    `json:"adapter_number"`
	PortNumber    int    `json:"port_number"`
	Name          string `json:"name,omitempty"`
	ShortName     string `json:"short_name,omitempty"`
	LinkType      string `json:"link_type,omitempty"`
}

// Node is a node instance inside a project.
type Node struct {
	NodeID      string     `json:"node_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status,omitempty"`
	NodeType    string     `json:"node_type,omitempty"`
	TemplateID  string     `json:"template_id,omitempty"`
	ProjectID   string     `json:"project_id,omitempty"`
	Console     int        `json:"console,omitempty"`
	ConsoleHost string     `json:"console_host,omitempty"`
	ConsoleType string     `json:"console_type,omitempty"`
	X           int        `json:"x"`
	Y           int        `json:"y"`
	Ports       []NodePort `json:"ports,omitempty"`
}

// ConsoleEndpoint returns the host and port a console client should
// dial for this node. The controller often reports "0.0.0.0" or "::"
// as console_host, meaning "all interfaces"; in that case the caller
// must connect to the controller host itself, passed as fallbackHost.
func (n *Node) ConsoleEndpoint(fallbackHost string) (string, int) {
	host := n.ConsoleHost
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = fallbackHost
	}
	return host, n.Console
}

// LinkNode addresses one side of a link: a node plus the adapter and
// port the cable plugs into.
type LinkNode struct {
	NodeID        string `json:"node_id"`
	AdapterNumber int    `json:"adapter_number"`
	PortNumber    int    `json:"port_number"`
}

// Link is a connection between two node interfaces.
type Link struct {
	LinkID    string     `json:"link_id"`
	LinkType  string     `json:"link_type,omitempty"`
	ProjectID string     `json:"project_id,omitempty"`
	Nodes     []LinkNode `json:"nodes"`
}

// nodeCreateRequest is the payload for instantiating a template.
type nodeCreateRequest struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// linkCreateRequest is the payload for connecting two node interfaces.
type linkCreateRequest struct {
	Nodes []LinkNode `json:"nodes"`
}
