package models

import (
	"strings"
	"testing"
	"time"
)

func TestNewScenario_Defaults(t *testing.T) {
	def := ScenarioDefinition{
		ProjectName: "ot-lab",
		Nodes:       []NodeSpec{{Name: "plc-1", TemplateKey: "alpine"}},
	}
	s := NewScenario("ot-segmentation-lab", "segmented OT network", def)

	if s.Type != "Scenario" {
		t.Errorf("Expected type 'Scenario', got '%s'", s.Type)
	}
	if s.Context != "https://schema.org" {
		t.Errorf("Expected schema.org context, got '%s'", s.Context)
	}
	if !strings.HasPrefix(s.ID, "scenario:") {
		t.Errorf("Expected scenario: ID prefix, got '%s'", s.ID)
	}
	if len(s.Definition.Nodes) != 1 {
		t.Errorf("Expected definition to be kept, got %d nodes", len(s.Definition.Nodes))
	}
	if s.CreatedAt.IsZero() || s.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}

func TestEmbeddedScript_ApplyDefaults(t *testing.T) {
	script := EmbeddedScript{Name: "provision", Content: "echo hi"}
	script.ApplyDefaults()

	if script.Path != DefaultScriptPath {
		t.Errorf("Expected default path '%s', got '%s'", DefaultScriptPath, script.Path)
	}
	if script.Shell != DefaultScriptShell {
		t.Errorf("Expected default shell '%s', got '%s'", DefaultScriptShell, script.Shell)
	}
	if script.Priority != DefaultScriptPriority {
		t.Errorf("Expected default priority %d, got %d", DefaultScriptPriority, script.Priority)
	}
	if script.RunTimeout != DefaultScriptTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultScriptTimeout, script.RunTimeout)
	}
}

func TestEmbeddedScript_ApplyDefaultsKeepsExplicit(t *testing.T) {
	script := EmbeddedScript{
		Name:       "provision",
		Path:       "/opt/setup.sh",
		Shell:      "bash",
		Priority:   1,
		RunTimeout: 2 * time.Minute,
	}
	script.ApplyDefaults()

	if script.Path != "/opt/setup.sh" || script.Shell != "bash" || script.Priority != 1 || script.RunTimeout != 2*time.Minute {
		t.Errorf("Expected explicit values to be kept, got %+v", script)
	}
}

func TestScenarioDefinition_NodeNames(t *testing.T) {
	def := ScenarioDefinition{
		Nodes: []NodeSpec{{Name: "plc-1"}, {Name: "sw-1"}, {Name: "hmi-1"}},
	}

	names := def.NodeNames()
	if len(names) != 3 {
		t.Fatalf("Expected 3 names, got %d", len(names))
	}
	if names[0] != "plc-1" || names[2] != "hmi-1" {
		t.Errorf("Expected names in declaration order, got %v", names)
	}
}

func TestScenarioDefinition_HasScripts(t *testing.T) {
	def := ScenarioDefinition{
		Nodes: []NodeSpec{{Name: "plc-1"}},
	}
	if def.HasScripts() {
		t.Error("Expected no scripts on a bare definition")
	}

	def.Nodes[0].Scripts = []EmbeddedScript{{Name: "provision", Content: "echo hi"}}
	if !def.HasScripts() {
		t.Error("Expected HasScripts after adding a script")
	}
}

func TestScript_Summary(t *testing.T) {
	s := NewScript("enable-forwarding", "turn on routing", "#!/bin/sh\nsysctl -w net.ipv4.ip_forward=1\n")

	summary := s.Summary()
	if summary.ID != s.ID {
		t.Errorf("Expected summary to keep the ID, got '%s'", summary.ID)
	}
	if summary.Name != "enable-forwarding" {
		t.Errorf("Expected summary name, got '%s'", summary.Name)
	}
}
