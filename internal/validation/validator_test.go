package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/emulium/models"
)

func TestNew(t *testing.T) {
	v := New()
	assert.NotNil(t, v)
	assert.NotNil(t, v.structValidator)
	assert.NotNil(t, v.jsonldProcessor)
}

func TestValidateScenario_Valid(t *testing.T) {
	v := New()

	validScenario := []byte(`{
		"@context": "https://schema.org",
		"@type": "Scenario",
		"@id": "scenario:11111111-2222-3333-4444-555555555555",
		"name": "two-routers",
		"description": "Two routers with a single link",
		"definition": {
			"templates": {"router": "1966b864-93e7-4f41-b4c1-4a2e52a77a2d"},
			"nodes": [
				{
					"name": "r1",
					"template_key": "router",
					"scripts": [{"name": "banner", "content": "#!/bin/sh\necho r1", "priority": 1}]
				},
				{"name": "r2", "template_name": "Alpine Linux"}
			],
			"links": [
				{"a": {"node": "r1", "adapter": 0, "port": 0}, "b": {"node": "r2", "adapter": 0, "port": 0}}
			],
			"layout": "grid"
		}
	}`)

	result, err := v.ValidateScenario(validScenario)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateScenario_MissingContext(t *testing.T) {
	v := New()

	scenario := []byte(`{
		"@type": "Scenario",
		"@id": "scenario:test",
		"name": "no-context",
		"definition": {"nodes": [{"name": "r1", "template_name": "Alpine Linux"}]}
	}`)

	result, err := v.ValidateScenario(scenario)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	// Check that @context error is present
	hasContextError := false
	for _, e := range result.Errors {
		if e.Field == "@context" {
			hasContextError = true
			break
		}
	}
	assert.True(t, hasContextError, "Should have @context error")
}

func TestValidateScenario_MissingRequiredFields(t *testing.T) {
	v := New()

	tests := []struct {
		name          string
		json          string
		expectedField string
	}{
		{
			name: "missing name",
			json: `{
				"@context": "https://schema.org",
				"@type": "Scenario",
				"@id": "scenario:test",
				"definition": {"nodes": [{"name": "r1", "template_name": "Alpine Linux"}]}
			}`,
			expectedField: "name",
		},
		{
			name: "node without name",
			json: `{
				"@context": "https://schema.org",
				"@type": "Scenario",
				"@id": "scenario:test",
				"name": "test",
				"definition": {"nodes": [{"template_name": "Alpine Linux"}]}
			}`,
			expectedField: "definition.nodes[0].name",
		},
		{
			name: "node without template reference",
			json: `{
				"@context": "https://schema.org",
				"@type": "Scenario",
				"@id": "scenario:test",
				"name": "test",
				"definition": {"nodes": [{"name": "r1"}]}
			}`,
			expectedField: "definition.nodes[0]",
		},
		{
			name: "link endpoint without node",
			json: `{
				"@context": "https://schema.org",
				"@type": "Scenario",
				"@id": "scenario:test",
				"name": "test",
				"definition": {
					"nodes": [{"name": "r1", "template_name": "Alpine Linux"}],
					"links": [{"a": {"node": "r1"}, "b": {"adapter": 0, "port": 0}}]
				}
			}`,
			expectedField: "definition.links[0].b.node",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateScenario([]byte(tt.json))
			require.NoError(t, err)
			assert.False(t, result.Valid)

			hasError := false
			for _, e := range result.Errors {
				if e.Field == tt.expectedField {
					hasError = true
					break
				}
			}
			assert.True(t, hasError, "Should have error for field: %s", tt.expectedField)
		})
	}
}

func TestValidateScenario_InvalidLayout(t *testing.T) {
	v := New()

	scenario := []byte(`{
		"@context": "https://schema.org",
		"@type": "Scenario",
		"@id": "scenario:test",
		"name": "test",
		"definition": {
			"nodes": [{"name": "r1", "template_name": "Alpine Linux"}],
			"layout": "spiral"
		}
	}`)

	result, err := v.ValidateScenario(scenario)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	hasLayoutError := false
	for _, e := range result.Errors {
		if e.Field == "definition.layout" {
			hasLayoutError = true
			assert.Equal(t, "spiral", e.Value)
			break
		}
	}
	assert.True(t, hasLayoutError)
}

func TestValidateScenario_DuplicateNodeNames(t *testing.T) {
	v := New()

	scenario := []byte(`{
		"@context": "https://schema.org",
		"@type": "Scenario",
		"@id": "scenario:test",
		"name": "test",
		"definition": {
			"nodes": [
				{"name": "r1", "template_name": "Alpine Linux"},
				{"name": "r1", "template_name": "Alpine Linux"}
			]
		}
	}`)

	result, err := v.ValidateScenario(scenario)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	hasDuplicateError := false
	for _, e := range result.Errors {
		if e.Field == "definition.nodes[1].name" {
			hasDuplicateError = true
			assert.Equal(t, "r1", e.Value)
			break
		}
	}
	assert.True(t, hasDuplicateError)
}

func TestValidateScenario_LinkToUndeclaredNode(t *testing.T) {
	v := New()

	scenario := []byte(`{
		"@context": "https://schema.org",
		"@type": "Scenario",
		"@id": "scenario:test",
		"name": "test",
		"definition": {
			"nodes": [{"name": "r1", "template_name": "Alpine Linux"}],
			"links": [{"a": {"node": "r1"}, "b": {"node": "ghost"}}]
		}
	}`)

	result, err := v.ValidateScenario(scenario)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	hasLinkError := false
	for _, e := range result.Errors {
		if e.Field == "definition.links[0].b.node" {
			hasLinkError = true
			assert.Equal(t, "ghost", e.Value)
			break
		}
	}
	assert.True(t, hasLinkError)
}

func TestValidateScenario_ScriptErrors(t *testing.T) {
	v := New()

	tests := []struct {
		name        string
		json        string
		expectError string
	}{
		{
			name: "script without content or reference",
			json: `{
				"@context": "https://schema.org",
				"@type": "Scenario",
				"@id": "scenario:test",
				"name": "test",
				"definition": {
					"nodes": [{
						"name": "r1",
						"template_name": "Alpine Linux",
						"scripts": [{"name": "empty"}]
					}]
				}
			}`,
			expectError: "definition.nodes[0].scripts[0]",
		},
		{
			name: "script with negative priority",
			json: `{
				"@context": "https://schema.org",
				"@type": "Scenario",
				"@id": "scenario:test",
				"name": "test",
				"definition": {
					"nodes": [{
						"name": "r1",
						"template_name": "Alpine Linux",
						"scripts": [{"name": "bad", "content": "echo hi", "priority": -1}]
					}]
				}
			}`,
			expectError: "definition.nodes[0].scripts[0].priority",
		},
		{
			name: "template key not in templates map",
			json: `{
				"@context": "https://schema.org",
				"@type": "Scenario",
				"@id": "scenario:test",
				"name": "test",
				"definition": {
					"templates": {"router": "1966b864-93e7-4f41-b4c1-4a2e52a77a2d"},
					"nodes": [{"name": "r1", "template_key": "switch"}]
				}
			}`,
			expectError: "definition.nodes[0].template_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateScenario([]byte(tt.json))
			require.NoError(t, err)
			assert.False(t, result.Valid)

			hasError := false
			for _, e := range result.Errors {
				if e.Field == tt.expectError {
					hasError = true
					break
				}
			}
			assert.True(t, hasError, "Should have error for: %s", tt.expectError)
		})
	}
}

func TestValidateScript_Valid(t *testing.T) {
	v := New()

	validScript := []byte(`{
		"@context": "https://schema.org",
		"@type": "SoftwareSourceCode",
		"@id": "script:22222222-3333-4444-5555-666666666666",
		"name": "configure-ospf",
		"text": "#!/bin/sh\necho configuring"
	}`)

	result, err := v.ValidateScript(validScript)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateScript_MissingRequiredFields(t *testing.T) {
	v := New()

	tests := []struct {
		name          string
		json          string
		expectedField string
	}{
		{
			name: "missing name",
			json: `{
				"@context": "https://schema.org",
				"@type": "SoftwareSourceCode",
				"@id": "script:test",
				"text": "echo hi"
			}`,
			expectedField: "name",
		},
		{
			name: "missing content",
			json: `{
				"@context": "https://schema.org",
				"@type": "SoftwareSourceCode",
				"@id": "script:test",
				"name": "no-body"
			}`,
			expectedField: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateScript([]byte(tt.json))
			require.NoError(t, err)
			assert.False(t, result.Valid)

			hasError := false
			for _, e := range result.Errors {
				if e.Field == tt.expectedField {
					hasError = true
					break
				}
			}
			assert.True(t, hasError, "Should have error for field: %s", tt.expectedField)
		})
	}
}

func TestValidateScript_WrongType(t *testing.T) {
	v := New()

	script := []byte(`{
		"@context": "https://schema.org",
		"@type": "SoftwareApplication",
		"@id": "script:test",
		"name": "mistyped",
		"text": "echo hi"
	}`)

	result, err := v.ValidateScript(script)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	hasTypeError := false
	for _, e := range result.Errors {
		if e.Field == "@type" {
			hasTypeError = true
			assert.Equal(t, "SoftwareApplication", e.Value)
			break
		}
	}
	assert.True(t, hasTypeError)
}

func TestValidateScheduledAction_Valid(t *testing.T) {
	v := New()

	validAction := []byte(`{
		"@context": "https://schema.org",
		"@type": "ActivateAction",
		"@id": "action:33333333-4444-5555-6666-777777777777",
		"name": "morning-lab",
		"object": {"@type": "Scenario", "name": "two-routers"},
		"schedule": {
			"@type": "Schedule",
			"repeatFrequency": "P1D",
			"byDay": ["Monday", "Wednesday", "Friday"]
		}
	}`)

	result, err := v.ValidateScheduledAction(validAction)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateScheduledAction_MissingRequiredFields(t *testing.T) {
	v := New()

	tests := []struct {
		name          string
		json          string
		expectedField string
	}{
		{
			name: "missing object",
			json: `{
				"@context": "https://schema.org",
				"@type": "ActivateAction",
				"@id": "action:test",
				"name": "test",
				"schedule": {"@type": "Schedule", "repeatFrequency": "P1D"}
			}`,
			expectedField: "object",
		},
		{
			name: "missing schedule",
			json: `{
				"@context": "https://schema.org",
				"@type": "ActivateAction",
				"@id": "action:test",
				"name": "test",
				"object": {"@type": "Scenario", "name": "two-routers"}
			}`,
			expectedField: "schedule",
		},
		{
			name: "missing repeat frequency",
			json: `{
				"@context": "https://schema.org",
				"@type": "ActivateAction",
				"@id": "action:test",
				"name": "test",
				"object": {"@type": "Scenario", "name": "two-routers"},
				"schedule": {"@type": "Schedule"}
			}`,
			expectedField: "schedule.repeatFrequency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateScheduledAction([]byte(tt.json))
			require.NoError(t, err)
			assert.False(t, result.Valid)

			hasError := false
			for _, e := range result.Errors {
				if e.Field == tt.expectedField {
					hasError = true
					break
				}
			}
			assert.True(t, hasError, "Should have error for field: %s", tt.expectedField)
		})
	}
}

func TestValidateScheduledAction_InvalidType(t *testing.T) {
	v := New()

	action := []byte(`{
		"@context": "https://schema.org",
		"@type": "SendAction",
		"@id": "action:test",
		"name": "test",
		"object": {"@type": "Scenario", "name": "two-routers"},
		"schedule": {"@type": "Schedule", "repeatFrequency": "P1D"}
	}`)

	result, err := v.ValidateScheduledAction(action)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	hasTypeError := false
	for _, e := range result.Errors {
		if e.Field == "@type" {
			hasTypeError = true
			assert.Equal(t, "SendAction", e.Value)
			break
		}
	}
	assert.True(t, hasTypeError)
}

func TestValidateScheduledAction_CalendarConstraints(t *testing.T) {
	v := New()

	tests := []struct {
		name        string
		json        string
		expectError string
	}{
		{
			name: "abbreviated day name",
			json: `{
				"@context": "https://schema.org",
				"@type": "ActivateAction",
				"@id": "action:test",
				"name": "test",
				"object": {"@type": "Scenario", "name": "two-routers"},
				"schedule": {"@type": "Schedule", "repeatFrequency": "P1D", "byDay": ["Mon"]}
			}`,
			expectError: "schedule.byDay[0]",
		},
		{
			name: "month out of range",
			json: `{
				"@context": "https://schema.org",
				"@type": "ActivateAction",
				"@id": "action:test",
				"name": "test",
				"object": {"@type": "Scenario", "name": "two-routers"},
				"schedule": {"@type": "Schedule", "repeatFrequency": "P1D", "byMonth": [13]}
			}`,
			expectError: "schedule.byMonth[0]",
		},
		{
			name: "repeat frequency not a duration",
			json: `{
				"@context": "https://schema.org",
				"@type": "ActivateAction",
				"@id": "action:test",
				"name": "test",
				"object": {"@type": "Scenario", "name": "two-routers"},
				"schedule": {"@type": "Schedule", "repeatFrequency": "daily"}
			}`,
			expectError: "schedule.repeatFrequency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateScheduledAction([]byte(tt.json))
			require.NoError(t, err)
			assert.False(t, result.Valid)

			hasError := false
			for _, e := range result.Errors {
				if e.Field == tt.expectError {
					hasError = true
					break
				}
			}
			assert.True(t, hasError, "Should have error for: %s", tt.expectError)
		})
	}
}

func TestValidateScenario_InvalidJSON(t *testing.T) {
	v := New()

	invalidJSON := []byte(`{invalid json}`)

	result, err := v.ValidateScenario(invalidJSON)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	assert.Equal(t, "document", result.Errors[0].Field)
}

func TestValidateScript_InvalidJSON(t *testing.T) {
	v := New()

	invalidJSON := []byte(`{invalid json}`)

	result, err := v.ValidateScript(invalidJSON)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	assert.Equal(t, "document", result.Errors[0].Field)
}

func TestValidateDocument_NotAnObject(t *testing.T) {
	v := New()

	result, err := v.ValidateDocument([]byte(`["not", "an", "object"]`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "document", result.Errors[0].Field)
}

func TestValidateStruct(t *testing.T) {
	v := New()

	errs := v.ValidateStruct(&models.Script{})
	require.NotEmpty(t, errs)

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "This field is required", fields["Name"])
	assert.Equal(t, "This field is required", fields["Content"])

	valid := &models.Script{Name: "ok", Content: "echo hi"}
	assert.Nil(t, v.ValidateStruct(valid))
}
