package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/emulium/models"
)

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("")
	require.Error(t, err)

	c, err := New("http://localhost:8085/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8085", c.baseURL)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			require.Equal(t, http.MethodPost, r.Method)
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice", req["username"])
			json.NewEncoder(w).Encode(LoginResponse{
				AccessToken: "token-123",
				TokenType:   "Bearer",
			})
		case "/api/v1/scenarios":
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(ScenarioPage{})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	resp, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-123", resp.AccessToken)

	// The stored token rides on subsequent requests.
	_, err = c.ListScenarios(context.Background(), ListOptions{})
	require.NoError(t, err)
}

func TestListScenariosQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/scenarios", r.URL.Path)
		assert.Equal(t, "ospf", r.URL.Query().Get("name"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		json.NewEncoder(w).Encode(ScenarioPage{
			Count: 1,
			Total: 31,
			Scenarios: []*models.Scenario{
				{ID: "scenario:1", Name: "ospf-basics"},
			},
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	page, err := c.ListScenarios(context.Background(), ListOptions{Name: "ospf", Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, 31, page.Total)
	require.Len(t, page.Scenarios, 1)
	assert.Equal(t, "ospf-basics", page.Scenarios[0].Name)
}

func TestDeploy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/scenarios/scenario:web/deploy", r.URL.Path)

		var opts DeployOptions
		require.NoError(t, json.NewDecoder(r.Body).Decode(&opts))
		assert.Equal(t, "classroom-a", opts.Project)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Deployment{
			ID:        "deployment:1",
			ProjectID: "5f0c1b2a",
			Status:    models.DeploymentStatusComplete,
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	dep, err := c.Deploy(context.Background(), "scenario:web", DeployOptions{Project: "classroom-a"})
	require.NoError(t, err)
	assert.Equal(t, "deployment:1", dep.ID)
	assert.Equal(t, models.DeploymentStatusComplete, dep.Status)
}

func TestDeployAdHocQueryParams(t *testing.T) {
	start := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/deploy", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("start_nodes"))

		var scn models.Scenario
		require.NoError(t, json.NewDecoder(r.Body).Decode(&scn))
		assert.Equal(t, "adhoc-lab", scn.Name)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Deployment{ID: "deployment:2"})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	dep, err := c.DeployAdHoc(context.Background(), &models.Scenario{Name: "adhoc-lab"}, DeployOptions{StartNodes: &start})
	require.NoError(t, err)
	assert.Equal(t, "deployment:2", dep.ID)
}

func TestPushScripts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/scripts/push", r.URL.Path)

		var req PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "classroom-a", req.Project)
		require.Len(t, req.Jobs, 2)
		assert.Equal(t, "plc-1", req.Jobs[0].Node)

		json.NewEncoder(w).Encode(models.PushReport{
			Total:    2,
			Uploaded: 2,
			Executed: 1,
			Results: []models.PushResult{
				{Node: "plc-1", Outcome: models.OutcomeExecuted},
				{Node: "plc-2", Outcome: models.OutcomeUploaded},
			},
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	report, err := c.PushScripts(context.Background(), PushRequest{
		Project: "classroom-a",
		Jobs: []models.PushJob{
			{Node: "plc-1", Content: "#!/bin/sh\n", Path: "/tmp/a.sh", RunAfterUpload: true},
			{Node: "plc-2", Content: "#!/bin/sh\n", Path: "/tmp/a.sh"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Executed)
}

func TestDecodeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(APIError{
			Code:    http.StatusNotFound,
			Message: "scenario not found",
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetScenario(context.Background(), "scenario:missing")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	assert.Equal(t, "scenario not found", apiErr.Message)
}

func TestDecodeErrorFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	err = c.DeleteScenario(context.Background(), "scenario:1")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Code)
	assert.Contains(t, apiErr.Details, "upstream exploded")
}
