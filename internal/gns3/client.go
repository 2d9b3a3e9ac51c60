// Package gns3 provides the gateway to GNS3-compatible emulation
// servers. It wraps the controller's /v2 REST API with typed helpers
// for the project, template, node and link operations Emulium needs,
// and a Manager that caches one authenticated client per server.
//
// The client is deliberately thin: one method per API call, no
// retries, no caching. Retry and error policy belong to the callers
// (scenario builder, cleanup, audit), which record failures per unit
// instead of aborting.
package gns3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"evalgo.org/emulium/models"
)

// ErrNotFound is returned by lookup helpers when no project or
// template matches the requested name.
var ErrNotFound = errors.New("not found")

// APIError is a failed controller call. It carries the HTTP status,
// the request that failed and whatever error detail the controller
// put into the response body.
type APIError struct {
	Status int    `json:"status"`
	Op     string `json:"op"`
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("GNS3 API error (%s): %d %s", e.Op, e.Status, http.StatusText(e.Status))
	if e.Detail != "" {
		msg += " - " + e.Detail
	}
	return msg
}

// errorDetail extracts a human-readable message from a controller
// error body. The controller usually answers {"message": ...}, some
// endpoints use "error" or "detail". Non-JSON bodies are returned
// verbatim, capped at 500 bytes.
func errorDetail(raw []byte) string {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			if v, ok := body[key].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 500 {
		text = text[:500]
	}
	return text
}

// Config holds the connection settings for one GNS3 server.
type Config struct {
	URL          string
	Username     string
	Password     string
	Timeout      time.Duration
	RequestDelay time.Duration
}

// Client talks to a single GNS3 server. Safe for concurrent use.
type Client struct {
	baseURL      string
	username     string
	password     string
	requestDelay time.Duration
	httpClient   *http.Client
}

// NewClient creates a client for the GNS3 server described by cfg.
// Username and password may be empty for unauthenticated servers.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.URL, "/"),
		username:     cfg.Username,
		password:     cfg.Password,
		requestDelay: cfg.RequestDelay,
		httpClient:   &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the normalized server URL this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Host returns the hostname of the server URL. Used as the console
// fallback host when the controller reports a wildcard bind address.
func (c *Client) Host() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// do executes one API call. A nil result discards the response body.
func (c *Client) do(ctx context.Context, method, path string, payload, result interface{}) error {
	if c.requestDelay > 0 {
		select {
		case <-time.After(c.requestDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status: resp.StatusCode,
			Op:     method + " " + path,
			URL:    fullURL,
			Detail: errorDetail(raw),
		}
	}

	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}

	return nil
}

// Version reports the controller version. Doubles as the connectivity
// probe used by the Manager when a server is added.
func (c *Client) Version(ctx context.Context) (string, error) {
	var out struct {
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, "/v2/version", nil, &out); err != nil {
		return "", err
	}
	return out.Version, nil
}

// ListTemplates returns all device templates configured on the server.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := c.do(ctx, http.MethodGet, "/v2/templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// FindTemplateByName returns the template with the given display name.
// Returns ErrNotFound when no template matches.
func (c *Client) FindTemplateByName(ctx context.Context, name string) (*Template, error) {
	templates, err := c.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].Name == name {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("template named %q: %w", name, ErrNotFound)
}

// ListProjects returns all projects on the server.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/v2/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, "/v2/projects/"+projectID, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// FindProjectByName returns the project with the given name.
// Returns ErrNotFound when no project matches.
func (c *Client) FindProjectByName(ctx context.Context, name string) (*Project, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("project named %q: %w", name, ErrNotFound)
}

// ResolveProject resolves a project reference, either a raw project
// UUID or a project name, to a project ID. UUIDs pass through without
// a server round trip.
func (c *Client) ResolveProject(ctx context.Context, ref string) (string, error) {
	if models.IsUUID(ref) {
		return ref, nil
	}
	project, err := c.FindProjectByName(ctx, ref)
	if err != nil {
		return "", err
	}
	return project.ProjectID, nil
}

// CreateNode instantiates a template into the project at the given
// canvas position. The controller assigns the node ID and console.
func (c *Client) CreateNode(ctx context.Context, projectID, templateID, name string, x, y int) (*Node, error) {
	payload := nodeCreateRequest{Name: name, X: x, Y: y}
	var node Node
	path := fmt.Sprintf("/v2/projects/%s/templates/%s", projectID, templateID)
	if err := c.do(ctx, http.MethodPost, path, payload, &node); err != nil {
		return nil, err
	}
	if node.NodeID == "" {
		return nil, fmt.Errorf("failed to create node %q: controller returned no node_id", name)
	}
	return &node, nil
}

// GetNode fetches a single node. Used after start to pick up console
// details that the create response may not carry yet.
func (c *Client) GetNode(ctx context.Context, projectID, nodeID string) (*Node, error) {
	var node Node
	path := fmt.Sprintf("/v2/projects/%s/nodes/%s", projectID, nodeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// ListNodes returns all nodes in a project.
func (c *Client) ListNodes(ctx context.Context, projectID string) ([]Node, error) {
	var nodes []Node
	if err := c.do(ctx, http.MethodGet, "/v2/projects/"+projectID+"/nodes", nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// StartNode boots a node.
func (c *Client) StartNode(ctx context.Context, projectID, nodeID string) error {
	path := fmt.Sprintf("/v2/projects/%s/nodes/%s/start", projectID, nodeID)
	return c.do(ctx, http.MethodPost, path, struct{}{}, nil)
}

// StopNode shuts a node down.
func (c *Client) StopNode(ctx context.Context, projectID, nodeID string) error {
	path := fmt.Sprintf("/v2/projects/%s/nodes/%s/stop", projectID, nodeID)
	return c.do(ctx, http.MethodPost, path, struct{}{}, nil)
}

// StartAllNodes boots every node in the project.
func (c *Client) StartAllNodes(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodPost, "/v2/projects/"+projectID+"/nodes/start", struct{}{}, nil)
}

// StopAllNodes shuts down every node in the project.
func (c *Client) StopAllNodes(ctx context.Context, projectID string) error {
	return c.do(ctx, http.MethodPost, "/v2/projects/"+projectID+"/nodes/stop", struct{}{}, nil)
}

// DeleteNode removes a node from the project.
func (c *Client) DeleteNode(ctx context.Context, projectID, nodeID string) error {
	path := fmt.Sprintf("/v2/projects/%s/nodes/%s", projectID, nodeID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CreateLink connects two node interfaces.
func (c *Client) CreateLink(ctx context.Context, projectID string, a, b LinkNode) (*Link, error) {
	payload := linkCreateRequest{Nodes: []LinkNode{a, b}}
	var link Link
	if err := c.do(ctx, http.MethodPost, "/v2/projects/"+projectID+"/links", payload, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ListLinks returns all links in a project.
func (c *Client) ListLinks(ctx context.Context, projectID string) ([]Link, error) {
	var links []Link
	if err := c.do(ctx, http.MethodGet, "/v2/projects/"+projectID+"/links", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteLink removes a link from the project.
func (c *Client) DeleteLink(ctx context.Context, projectID, linkID string) error {
	return c.do(ctx, http.MethodDelete, "/v2/projects/"+projectID+"/links/"+linkID, nil, nil)
}

// Cleanup stops and removes every node and link in the project:
// best-effort stop-all first, then links, then nodes. Individual
// failures are collected in the report rather than aborting the sweep.
func (c *Client) Cleanup(ctx context.Context, projectID string) *models.CleanupReport {
	report := &models.CleanupReport{ProjectID: projectID}

	if err := c.StopAllNodes(ctx, projectID); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("failed to stop nodes: %v", err))
	}

	links, err := c.ListLinks(ctx, projectID)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("failed to list links: %v", err))
	}
	for _, link := range links {
		if link.LinkID == "" {
			continue
		}
		if err := c.DeleteLink(ctx, projectID, link.LinkID); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to delete link %s: %v", link.LinkID, err))
			continue
		}
		report.LinksDeleted++
	}

	nodes, err := c.ListNodes(ctx, projectID)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("failed to list nodes: %v", err))
	}
	for _, node := range nodes {
		if node.NodeID == "" {
			continue
		}
		if err := c.DeleteNode(ctx, projectID, node.NodeID); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to delete node %s: %v", node.Name, err))
			continue
		}
		report.NodesDeleted++
	}

	report.Success = len(report.Errors) == 0
	return report
}
