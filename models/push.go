package models

import "time"

// Push job outcomes. Exactly one is recorded per job.
const (
	OutcomeUploaded = "uploaded" // upload succeeded, execution not requested
	OutcomeExecuted = "executed" // upload and execution both completed
	OutcomeSkipped  = "skipped"  // destination existed and overwrite was off
	OutcomeFailed   = "failed"
)

// Reasons attached to skipped/failed outcomes.
const (
	ReasonExists             = "exists"
	ReasonDecodeFailed       = "decode_failed"
	ReasonChmodFailed        = "chmod_failed"
	ReasonConnectionFailed   = "connection_failed"
	ReasonUnknownNode        = "unknown_node"
	ReasonConsoleUnsupported = "console_unsupported"
	ReasonTimeout            = "timeout"
	ReasonCanceled           = "canceled"
	ReasonExitNonZero        = "exit_nonzero"
)

// DefaultPushConcurrency bounds a push batch when the caller does not.
const DefaultPushConcurrency = 5

// PushJob describes one script upload targeting exactly one node. Jobs in a
// batch carry no ordering dependency between each other.
type PushJob struct {
	// Node is the logical node name, resolved through the registry.
	Node string `json:"node_name" validate:"required"`

	// Content is the script body. When empty, ScriptID names a stored
	// script resolved before the batch starts.
	Content  string `json:"content,omitempty"`
	ScriptID string `json:"script_id,omitempty"`

	// Path is the destination on the node.
	Path string `json:"remote_path" validate:"required"`

	RunAfterUpload bool          `json:"run_after_upload"`
	Executable     bool          `json:"executable"`
	Overwrite      bool          `json:"overwrite"`
	RunTimeout     time.Duration `json:"run_timeout,omitempty"`
	Shell          string        `json:"shell,omitempty"`
}

// ApplyDefaults fills the zero-valued shell and run timeout. Executable and
// overwrite are defaulted at the request layer, where absent and false are
// distinguishable.
func (j *PushJob) ApplyDefaults() {
	if j.Shell == "" {
		j.Shell = DefaultScriptShell
	}
	if j.RunTimeout == 0 {
		j.RunTimeout = 10 * time.Second
	}
}

// PushResult is the outcome of one push job. One result is produced per job,
// exactly once, at the job's input position.
type PushResult struct {
	Node string `json:"node_name"`
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
	Path string `json:"remote_path"`

	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`

	// ExitCode is set when the script ran and the console reported status.
	ExitCode *int `json:"exit_code,omitempty"`

	Output   string        `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`

	Timestamp time.Time `json:"timestamp"`
}

// Failed reports whether the job ended in failure (skips are not failures).
func (r *PushResult) Failed() bool {
	return r.Outcome == OutcomeFailed
}

// PushReport wraps an ordered result list with batch counters.
type PushReport struct {
	Results  []PushResult `json:"results"`
	Total    int          `json:"total"`
	Uploaded int          `json:"uploaded"`
	Executed int          `json:"executed"`
	Skipped  int          `json:"skipped"`
	Failed   int          `json:"failed"`
}

// NewPushReport derives the counters from an ordered result list.
func NewPushReport(results []PushResult) *PushReport {
	report := &PushReport{Results: results, Total: len(results)}
	for i := range results {
		switch results[i].Outcome {
		case OutcomeUploaded:
			report.Uploaded++
		case OutcomeExecuted:
			report.Uploaded++
			report.Executed++
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeFailed:
			report.Failed++
		}
	}
	return report
}

// RunJob executes an already-uploaded script on a node.
type RunJob struct {
	Node    string        `json:"node_name" validate:"required"`
	Path    string        `json:"remote_path" validate:"required"`
	Shell   string        `json:"shell,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty"`
}

// ApplyDefaults mirrors PushJob defaults for bare runs.
func (j *RunJob) ApplyDefaults() {
	if j.Shell == "" {
		j.Shell = DefaultScriptShell
	}
	if j.Timeout == 0 {
		j.Timeout = 10 * time.Second
	}
}

// ScriptRunSummary condenses one embedded-script execution for deploy
// responses.
type ScriptRunSummary struct {
	Node     string `json:"node_name"`
	Script   string `json:"script_name"`
	Priority int    `json:"priority"`
	Path     string `json:"remote_path"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}
