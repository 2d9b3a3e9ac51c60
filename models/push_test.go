package models

import (
	"testing"
	"time"
)

func TestNewPushReport_Counters(t *testing.T) {
	report := NewPushReport([]PushResult{
		{Node: "plc-1", Outcome: OutcomeUploaded},
		{Node: "plc-2", Outcome: OutcomeExecuted},
		{Node: "plc-3", Outcome: OutcomeSkipped, Reason: ReasonExists},
		{Node: "plc-4", Outcome: OutcomeFailed, Reason: ReasonConnectionFailed},
		{Node: "plc-5", Outcome: OutcomeExecuted},
	})

	if report.Total != 5 {
		t.Errorf("Expected total 5, got %d", report.Total)
	}
	// Executed jobs were uploaded first, so they count in both buckets.
	if report.Uploaded != 3 {
		t.Errorf("Expected 3 uploaded, got %d", report.Uploaded)
	}
	if report.Executed != 2 {
		t.Errorf("Expected 2 executed, got %d", report.Executed)
	}
	if report.Skipped != 1 {
		t.Errorf("Expected 1 skipped, got %d", report.Skipped)
	}
	if report.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", report.Failed)
	}
}

func TestNewPushReport_Empty(t *testing.T) {
	report := NewPushReport(nil)

	if report.Total != 0 {
		t.Errorf("Expected total 0, got %d", report.Total)
	}
	if report.Failed != 0 {
		t.Errorf("Expected 0 failed, got %d", report.Failed)
	}
}

func TestPushResult_Failed(t *testing.T) {
	failed := PushResult{Outcome: OutcomeFailed}
	if !failed.Failed() {
		t.Error("Expected failed outcome to report Failed()")
	}

	// Skips are deliberate, not failures.
	skipped := PushResult{Outcome: OutcomeSkipped, Reason: ReasonExists}
	if skipped.Failed() {
		t.Error("Expected skipped outcome not to report Failed()")
	}

	uploaded := PushResult{Outcome: OutcomeUploaded}
	if uploaded.Failed() {
		t.Error("Expected uploaded outcome not to report Failed()")
	}
}

func TestPushJob_ApplyDefaults(t *testing.T) {
	job := PushJob{Node: "plc-1", Path: "/tmp/provision.sh"}
	job.ApplyDefaults()

	if job.Shell != DefaultScriptShell {
		t.Errorf("Expected default shell '%s', got '%s'", DefaultScriptShell, job.Shell)
	}
	if job.RunTimeout != 10*time.Second {
		t.Errorf("Expected default run timeout 10s, got %v", job.RunTimeout)
	}
}

func TestPushJob_ApplyDefaultsKeepsExplicit(t *testing.T) {
	job := PushJob{
		Node:       "plc-1",
		Path:       "/tmp/provision.sh",
		Shell:      "ash",
		RunTimeout: time.Minute,
	}
	job.ApplyDefaults()

	if job.Shell != "ash" {
		t.Errorf("Expected explicit shell to be kept, got '%s'", job.Shell)
	}
	if job.RunTimeout != time.Minute {
		t.Errorf("Expected explicit timeout to be kept, got %v", job.RunTimeout)
	}
}

func TestRunJob_ApplyDefaults(t *testing.T) {
	job := RunJob{Node: "plc-1", Path: "/tmp/provision.sh"}
	job.ApplyDefaults()

	if job.Shell != DefaultScriptShell {
		t.Errorf("Expected default shell '%s', got '%s'", DefaultScriptShell, job.Shell)
	}
	if job.Timeout != 10*time.Second {
		t.Errorf("Expected default timeout 10s, got %v", job.Timeout)
	}
}
