// Package client is a typed Go client for the Emulium HTTP API.
//
// The zero-configuration path covers a lab bench with auth disabled:
//
//	c, err := client.New("http://localhost:8085")
//	dep, err := c.Deploy(ctx, "scenario:abc", client.DeployOptions{})
//
// Against a server with auth enabled, call Login first or construct the
// client with a service token:
//
//	c, err := client.New(url, client.WithToken(token))
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"evalgo.org/emulium/models"
)

// Client talks to one Emulium server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the given server URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken replaces the bearer token, e.g. after an out-of-band refresh.
func (c *Client) SetToken(token string) { c.token = token }

// APIError is the server's error envelope.
type APIError struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// ListOptions filter and paginate list calls.
type ListOptions struct {
	Name   string
	Limit  int
	Offset int
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.Name != "" {
		q.Set("name", o.Name)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// DeployOptions are the per-deployment overrides. Nil booleans default
// to true on the server.
type DeployOptions struct {
	Server     string `json:"gns3_url,omitempty"`
	Project    string `json:"project,omitempty"`
	StartNodes *bool  `json:"start_nodes,omitempty"`
	RunScripts *bool  `json:"run_scripts,omitempty"`
}

// PushRequest is a batch of script uploads against one project.
type PushRequest struct {
	Project     string           `json:"project"`
	Server      string           `json:"gns3_url,omitempty"`
	Jobs        []models.PushJob `json:"jobs"`
	Concurrency int              `json:"concurrency,omitempty"`
}

// RunRequest executes already-uploaded scripts on project nodes.
type RunRequest struct {
	Project     string          `json:"project"`
	Server      string          `json:"gns3_url,omitempty"`
	Jobs        []models.RunJob `json:"jobs"`
	Concurrency int             `json:"concurrency,omitempty"`
}

// ScenarioPage is one page of a scenario listing.
type ScenarioPage struct {
	Count     int                `json:"count"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	Scenarios []*models.Scenario `json:"scenarios"`
}

// DeploymentPage is one page of a deployment listing.
type DeploymentPage struct {
	Count       int                  `json:"count"`
	Total       int                  `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
	Deployments []*models.Deployment `json:"deployments"`
}

// LoginResponse carries the token pair of a successful login.
type LoginResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresAt    time.Time            `json:"expires_at"`
	TokenType    string               `json:"token_type"`
}

// Login authenticates and stores the access token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.AccessToken
	return &out, nil
}

// ListScenarios returns one page of stored scenarios.
func (c *Client) ListScenarios(ctx context.Context, opts ListOptions) (*ScenarioPage, error) {
	var out ScenarioPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/scenarios"+opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetScenario fetches one scenario by ID.
func (c *Client) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	var out models.Scenario
	if err := c.do(ctx, http.MethodGet, "/api/v1/scenarios/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateScenario stores a scenario and returns it with its assigned ID.
func (c *Client) CreateScenario(ctx context.Context, scn *models.Scenario) (*models.Scenario, error) {
	var out models.Scenario
	if err := c.do(ctx, http.MethodPost, "/api/v1/scenarios", scn, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateScenario replaces a stored scenario.
func (c *Client) UpdateScenario(ctx context.Context, scn *models.Scenario) (*models.Scenario, error) {
	var out models.Scenario
	if err := c.do(ctx, http.MethodPut, "/api/v1/scenarios/"+url.PathEscape(scn.ID), scn, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteScenario deletes a stored scenario.
func (c *Client) DeleteScenario(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/scenarios/"+url.PathEscape(id), nil, nil)
}

// Deploy builds a stored scenario's topology and returns the report.
func (c *Client) Deploy(ctx context.Context, scenarioID string, opts DeployOptions) (*models.Deployment, error) {
	var out models.Deployment
	path := "/api/v1/scenarios/" + url.PathEscape(scenarioID) + "/deploy"
	if err := c.do(ctx, http.MethodPost, path, opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeployAdHoc deploys a scenario document without storing it.
func (c *Client) DeployAdHoc(ctx context.Context, scn *models.Scenario, opts DeployOptions) (*models.Deployment, error) {
	q := url.Values{}
	if opts.Server != "" {
		q.Set("server", opts.Server)
	}
	if opts.Project != "" {
		q.Set("project", opts.Project)
	}
	if opts.StartNodes != nil {
		q.Set("start_nodes", strconv.FormatBool(*opts.StartNodes))
	}
	if opts.RunScripts != nil {
		q.Set("run_scripts", strconv.FormatBool(*opts.RunScripts))
	}
	path := "/api/v1/deploy"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out models.Deployment
	if err := c.do(ctx, http.MethodPost, path, scn, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PushScripts uploads scripts to project nodes over their consoles.
func (c *Client) PushScripts(ctx context.Context, req PushRequest) (*models.PushReport, error) {
	var out models.PushReport
	if err := c.do(ctx, http.MethodPost, "/api/v1/scripts/push", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunScripts executes already-uploaded scripts on project nodes.
func (c *Client) RunScripts(ctx context.Context, req RunRequest) (*models.PushReport, error) {
	var out models.PushReport
	if err := c.do(ctx, http.MethodPost, "/api/v1/scripts/run", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDeployments returns one page of deployment reports.
func (c *Client) ListDeployments(ctx context.Context, opts ListOptions) (*DeploymentPage, error) {
	var out DeploymentPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/deployments"+opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDeployment fetches one deployment report by ID.
func (c *Client) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	var out models.Deployment
	if err := c.do(ctx, http.MethodGet, "/api/v1/deployments/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDeployment deletes a deployment report.
func (c *Client) DeleteDeployment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/deployments/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError turns a non-2xx response into an *APIError, falling back
// to the raw body when the server did not send the JSON envelope.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	apiErr := &APIError{}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
		apiErr.Details = strings.TrimSpace(string(data))
	}
	if apiErr.Code == 0 {
		apiErr.Code = resp.StatusCode
	}
	return apiErr
}
