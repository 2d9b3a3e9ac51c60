package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/emulium/internal/config"
	_ "evalgo.org/emulium/internal/storage"
	"evalgo.org/emulium/internal/validation"
)

func setupTestServer(t *testing.T) (*Server, *echo.Echo) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: "localhost",
			Port: 8085,
		},
	}

	// Create a mock server without storage
	e := echo.New()
	server := &Server{
		echo:   e,
		config: cfg,
	}

	return server, e
}

func TestValidateScenario_Valid(t *testing.T) {
	server, e := setupTestServer(t)

	validScenario := `{
		"@context": "https://schema.org",
		"@type": "Scenario",
		"@id": "scenario:test",
		"name": "ot-lab",
		"definition": {
			"project_name": "ot-lab",
			"nodes": [
				{"name": "plc-1", "template_name": "alpine"},
				{"name": "plc-2", "template_name": "alpine"}
			],
			"links": [
				{"a": {"node": "plc-1"}, "b": {"node": "plc-2"}}
			]
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate/scenario", bytes.NewBufferString(validScenario))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := server.validateScenario(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result validation.ValidationResult
	err = json.Unmarshal(rec.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateScenario_Invalid(t *testing.T) {
	server, e := setupTestServer(t)

	// Missing name, node without template, link to undeclared node.
	invalidScenario := `{
		"@context": "https://schema.org",
		"@type": "Scenario",
		"@id": "scenario:test",
		"definition": {
			"nodes": [{"name": "plc-1"}],
			"links": [{"a": {"node": "plc-1"}, "b": {"node": "ghost"}}]
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate/scenario", bytes.NewBufferString(invalidScenario))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := server.validateScenario(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var result validation.ValidationResult
	err = json.Unmarshal(rec.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)

	fields := make([]string, 0, len(result.Errors))
	for _, ve := range result.Errors {
		fields = append(fields, ve.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "definition.nodes[0]")
	assert.Contains(t, fields, "definition.links[0].b.node")
}

func TestValidateScript_Valid(t *testing.T) {
	server, e := setupTestServer(t)

	validScript := `{
		"@context": "https://schema.org",
		"@type": "SoftwareSourceCode",
		"@id": "script:setup",
		"name": "setup",
		"text": "#!/bin/sh\necho ok\n"
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate/script", bytes.NewBufferString(validScript))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := server.validateScript(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result validation.ValidationResult
	err = json.Unmarshal(rec.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateScript_Invalid(t *testing.T) {
	server, e := setupTestServer(t)

	invalidScript := `{
		"@context": "https://schema.org",
		"@type": "SoftwareSourceCode",
		"@id": "script:empty"
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate/script", bytes.NewBufferString(invalidScript))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := server.validateScript(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var result validation.ValidationResult
	err = json.Unmarshal(rec.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateGeneric_Scenario(t *testing.T) {
	server, e := setupTestServer(t)

	validScenario := `{
		"@context": "https://schema.org",
		"@type": "Scenario",
		"@id": "scenario:test",
		"name": "ot-lab",
		"definition": {
			"nodes": [{"name": "plc-1", "template_name": "alpine"}]
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate/scenario", bytes.NewBufferString(validScenario))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type")
	c.SetParamValues("scenario")

	err := server.validateGeneric(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateGeneric_Action(t *testing.T) {
	server, e := setupTestServer(t)

	validAction := `{
		"@context": "https://schema.org",
		"@type": "ActivateAction",
		"@id": "action:nightly",
		"name": "nightly deploy",
		"object": {"@type": "Scenario", "@id": "scenario:test"},
		"schedule": {"@type": "Schedule", "repeatFrequency": "P1D", "byDay": ["Monday", "Friday"]}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate/action", bytes.NewBufferString(validAction))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type")
	c.SetParamValues("action")

	err := server.validateGeneric(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateGeneric_InvalidType(t *testing.T) {
	server, e := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate/invalid", bytes.NewBufferString("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("type")
	c.SetParamValues("invalid")

	err := server.validateGeneric(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
