// Package audit checks stored lab documents against live platform
// state. Labs drift: projects get deleted in the GNS3 UI while their
// deployment reports live on, registry entries outlive their nodes,
// scenario names collide after imports. The audit reports the drift
// and can prune the stale records on request.
package audit

import (
	"time"
)

// IssueType categorizes one kind of drift.
type IssueType string

const (
	// IssueStaleDeployment is a deployment report whose GNS3 project
	// no longer exists on its server.
	IssueStaleDeployment IssueType = "stale_deployment"

	// IssueStuckDeployment is a deployment still marked deploying long
	// after it started, usually a crashed build.
	IssueStuckDeployment IssueType = "stuck_deployment"

	// IssueOrphanedRegistry is a console registry entry whose node is
	// gone from the project.
	IssueOrphanedRegistry IssueType = "orphaned_registry"

	// IssueDuplicateScenario is two or more scenarios sharing a name.
	IssueDuplicateScenario IssueType = "duplicate_scenario"

	// IssueDanglingScriptRef is a scenario referencing a stored script
	// that no longer exists.
	IssueDanglingScriptRef IssueType = "dangling_script_ref"
)

// Severity rates how much an issue disturbs lab operations.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue is one detected inconsistency.
type Issue struct {
	ID       string    `json:"id"`
	Type     IssueType `json:"type"`
	Severity Severity  `json:"severity"`

	// DocumentID names the affected stored document, when there is one.
	DocumentID string `json:"document_id,omitempty"`

	// Project is the GNS3 project involved, when there is one.
	Project string `json:"project,omitempty"`

	// Node is the registry node involved, for registry issues.
	Node string `json:"node,omitempty"`

	Description string    `json:"description"`
	DetectedAt  time.Time `json:"detected_at"`

	// Repairable marks issues Prune knows how to fix.
	Repairable bool `json:"repairable"`
}

// Summary aggregates a report's issues.
type Summary struct {
	TotalIssues int               `json:"total_issues"`
	ByType      map[IssueType]int `json:"by_type"`
	BySeverity  map[Severity]int  `json:"by_severity"`

	// HealthScore is 0-100; 100 means no drift detected.
	HealthScore int `json:"health_score"`
}

// Report is the result of one consistency scan.
type Report struct {
	ID               string        `json:"id"`
	Timestamp        time.Time     `json:"timestamp"`
	Duration         time.Duration `json:"duration"`
	DocumentsScanned int           `json:"documents_scanned"`
	Issues           []Issue       `json:"issues"`
	Summary          Summary       `json:"summary"`

	// Warnings name checks that could not run (unreachable servers).
	Warnings []string `json:"warnings,omitempty"`
}

// PruneResult summarizes one prune pass over a report's repairable
// issues.
type PruneResult struct {
	ReportID string   `json:"report_id"`
	Pruned   int      `json:"pruned"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// summarize derives the aggregate view from the issue list.
func summarize(issues []Issue) Summary {
	s := Summary{
		TotalIssues: len(issues),
		ByType:      make(map[IssueType]int),
		BySeverity:  make(map[Severity]int),
	}

	score := 100
	for i := range issues {
		s.ByType[issues[i].Type]++
		s.BySeverity[issues[i].Severity]++
		switch issues[i].Severity {
		case SeverityHigh:
			score -= 10
		case SeverityMedium:
			score -= 5
		case SeverityLow:
			score -= 1
		}
	}
	if score < 0 {
		score = 0
	}
	s.HealthScore = score

	return s
}
