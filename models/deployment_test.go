package models

import (
	"errors"
	"strings"
	"testing"
)

func TestNewDeployment_Defaults(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")

	if d.Type != "Deployment" {
		t.Errorf("Expected type 'Deployment', got '%s'", d.Type)
	}
	if d.Context != "https://schema.org" {
		t.Errorf("Expected schema.org context, got '%s'", d.Context)
	}
	if !strings.HasPrefix(d.ID, "deployment:") {
		t.Errorf("Expected deployment: ID prefix, got '%s'", d.ID)
	}
	if d.Status != DeploymentStatusDeploying {
		t.Errorf("Expected status '%s', got '%s'", DeploymentStatusDeploying, d.Status)
	}
	if d.Phase != PhaseValidating {
		t.Errorf("Expected phase '%s', got '%s'", PhaseValidating, d.Phase)
	}
	if d.ServerURL != "http://gns3.lab:3080" {
		t.Errorf("Expected server URL to be kept, got '%s'", d.ServerURL)
	}
	if d.StartedAt.IsZero() {
		t.Error("Expected StartedAt to be set")
	}
	if d.CompletedAt != nil {
		t.Error("Expected CompletedAt to be unset on a fresh deployment")
	}
}

func TestDeployment_CompleteAllCreated(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")
	d.Nodes = []NodeOutcome{
		{Name: "plc-1", Status: UnitCreated},
		{Name: "sw-1", Status: UnitCreated},
	}
	d.Links = []LinkOutcome{
		{Index: 0, Status: UnitCreated},
	}
	d.Scripts = []ScriptRunSummary{
		{Node: "plc-1", Script: "provision", Success: true},
	}

	d.Complete()

	if d.Status != DeploymentStatusComplete {
		t.Errorf("Expected status '%s', got '%s'", DeploymentStatusComplete, d.Status)
	}
	if d.Phase != PhaseComplete {
		t.Errorf("Expected phase '%s', got '%s'", PhaseComplete, d.Phase)
	}
	if d.Progress != 100 {
		t.Errorf("Expected progress 100, got %d", d.Progress)
	}
	if d.CompletedAt == nil {
		t.Error("Expected CompletedAt to be set")
	}
}

func TestDeployment_CompleteWithFailedNode(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")
	d.Nodes = []NodeOutcome{
		{Name: "plc-1", Status: UnitCreated},
		{Name: "sw-1", Status: UnitFailed, Error: "template not found"},
	}

	d.Complete()

	if d.Status != DeploymentStatusPartial {
		t.Errorf("Expected status '%s' with a failed node, got '%s'", DeploymentStatusPartial, d.Status)
	}
}

func TestDeployment_CompleteWithStartError(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")
	d.Nodes = []NodeOutcome{
		{Name: "plc-1", Status: UnitCreated, StartError: "node refused to start"},
	}

	d.Complete()

	if d.Status != DeploymentStatusPartial {
		t.Errorf("Expected start errors to downgrade to '%s', got '%s'", DeploymentStatusPartial, d.Status)
	}
}

func TestDeployment_CompleteWithSkippedLink(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")
	d.Nodes = []NodeOutcome{
		{Name: "plc-1", Status: UnitCreated},
	}
	d.Links = []LinkOutcome{
		{Index: 0, Status: UnitSkipped},
	}

	d.Complete()

	if d.Status != DeploymentStatusPartial {
		t.Errorf("Expected skipped links to downgrade to '%s', got '%s'", DeploymentStatusPartial, d.Status)
	}
}

func TestDeployment_CompleteWithFailedScript(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")
	d.Nodes = []NodeOutcome{
		{Name: "plc-1", Status: UnitCreated},
	}
	d.Scripts = []ScriptRunSummary{
		{Node: "plc-1", Script: "provision", Success: false, Error: "exit status 1"},
	}

	d.Complete()

	if d.Status != DeploymentStatusPartial {
		t.Errorf("Expected failed scripts to downgrade to '%s', got '%s'", DeploymentStatusPartial, d.Status)
	}
}

func TestDeployment_Fail(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")

	d.Fail(errors.New("project not found"))

	if d.Status != DeploymentStatusFailed {
		t.Errorf("Expected status '%s', got '%s'", DeploymentStatusFailed, d.Status)
	}
	if d.ErrorMessage != "project not found" {
		t.Errorf("Expected error message to be recorded, got '%s'", d.ErrorMessage)
	}
	if d.CompletedAt == nil {
		t.Error("Expected CompletedAt to be set on failure")
	}
}

func TestDeployment_AddEvent(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")
	d.Phase = PhaseNodes
	d.AddEvent("info", "plc-1", "node created")
	d.Phase = PhaseLinks
	d.AddEvent("error", "0", "link rejected")

	if len(d.Events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(d.Events))
	}
	if d.Events[0].Phase != PhaseNodes {
		t.Errorf("Expected first event stamped with phase '%s', got '%s'", PhaseNodes, d.Events[0].Phase)
	}
	if d.Events[1].Type != "error" {
		t.Errorf("Expected second event type 'error', got '%s'", d.Events[1].Type)
	}
	if d.Events[1].Unit != "0" {
		t.Errorf("Expected second event unit '0', got '%s'", d.Events[1].Unit)
	}
}

func TestDeployment_CreatedNodes(t *testing.T) {
	d := NewDeployment("http://gns3.lab:3080")
	d.Nodes = []NodeOutcome{
		{Name: "plc-1", Status: UnitCreated},
		{Name: "sw-1", Status: UnitFailed},
		{Name: "hmi-1", Status: UnitCreated},
	}

	created := d.CreatedNodes()
	if len(created) != 2 {
		t.Fatalf("Expected 2 created nodes, got %d", len(created))
	}
	if created[0].Name != "plc-1" || created[1].Name != "hmi-1" {
		t.Errorf("Expected created nodes in declaration order, got %v", created)
	}
}
