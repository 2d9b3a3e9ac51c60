package push

import (
	"context"
	"fmt"
	"sort"
	"time"

	"evalgo.org/emulium/models"
)

// Pacing defaults for post-deploy script execution. Nodes need a
// moment to finish booting before their consoles answer, and priority
// groups get a short gap so lower-priority services are settled before
// their dependents start.
const (
	DefaultBootDelay        = 2 * time.Second
	DefaultPriorityDelay    = 500 * time.Millisecond
	DefaultGroupConcurrency = 8
)

// ScriptRunOptions pace the embedded-script phase of a deployment.
type ScriptRunOptions struct {
	// BootDelay is waited once before the first group.
	BootDelay time.Duration

	// PriorityDelay is waited between consecutive priority groups.
	PriorityDelay time.Duration

	// Concurrency bounds parallel sessions inside one group.
	Concurrency int

	// ResolveScript fetches the content of scripts referenced by ID.
	// Required only when the definition uses script_id references.
	ResolveScript func(scriptID string) (string, error)
}

func (o ScriptRunOptions) withDefaults() ScriptRunOptions {
	if o.BootDelay == 0 {
		o.BootDelay = DefaultBootDelay
	}
	if o.PriorityDelay == 0 {
		o.PriorityDelay = DefaultPriorityDelay
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultGroupConcurrency
	}
	return o
}

// scenarioScript is one embedded script bound to its node.
type scenarioScript struct {
	node   string
	script models.EmbeddedScript
}

// RunScenarioScripts executes a deployed scenario's embedded scripts:
// wait for the nodes to boot, then run one priority group at a time in
// ascending order, bounded-parallel inside each group. Every script
// appears in the summary exactly once; cancellation marks the
// remainder failed without starting them.
func (o *Orchestrator) RunScenarioScripts(ctx context.Context, project string, def *models.ScenarioDefinition, opts ScriptRunOptions) []models.ScriptRunSummary {
	groups, priorities := groupScriptsByPriority(def)
	if len(priorities) == 0 {
		return nil
	}
	opts = opts.withDefaults()

	var summaries []models.ScriptRunSummary
	if !sleepCtx(ctx, opts.BootDelay) {
		return cancelAll(summaries, groups, priorities, 0)
	}

	for g, priority := range priorities {
		if g > 0 && !sleepCtx(ctx, opts.PriorityDelay) {
			return cancelAll(summaries, groups, priorities, g)
		}
		scripts := groups[priority]

		// Scripts whose content cannot be resolved are reported here
		// and never reach a console.
		jobs := make([]models.PushJob, 0, len(scripts))
		jobIndex := make([]int, 0, len(scripts))
		groupSummaries := make([]models.ScriptRunSummary, len(scripts))
		for i, item := range scripts {
			groupSummaries[i] = models.ScriptRunSummary{
				Node:     item.node,
				Script:   item.script.Name,
				Priority: priority,
				Path:     item.script.Path,
			}
			content, err := resolveContent(item.script, opts.ResolveScript)
			if err != nil {
				groupSummaries[i].Error = err.Error()
				continue
			}
			jobs = append(jobs, models.PushJob{
				Node:           item.node,
				Content:        content,
				Path:           item.script.Path,
				RunAfterUpload: true,
				Executable:     true,
				Overwrite:      true,
				RunTimeout:     item.script.RunTimeout,
				Shell:          item.script.Shell,
			})
			jobIndex = append(jobIndex, i)
		}

		report := o.Push(ctx, project, jobs, opts.Concurrency)
		for j, result := range report.Results {
			summary := &groupSummaries[jobIndex[j]]
			if result.Outcome == models.OutcomeExecuted {
				summary.Success = true
				continue
			}
			summary.Error = result.Error
			if summary.Error == "" {
				summary.Error = result.Reason
			}
		}
		summaries = append(summaries, groupSummaries...)

		if ctx.Err() != nil {
			return cancelAll(summaries, groups, priorities, g+1)
		}
	}
	return summaries
}

// resolveContent returns the script body, following a script_id
// reference when the inline content is empty.
func resolveContent(script models.EmbeddedScript, resolve func(string) (string, error)) (string, error) {
	if script.Content != "" || script.ScriptID == "" {
		return script.Content, nil
	}
	if resolve == nil {
		return "", fmt.Errorf("script %q references %s but no resolver is configured", script.Name, script.ScriptID)
	}
	content, err := resolve(script.ScriptID)
	if err != nil {
		return "", fmt.Errorf("resolving script %q: %w", script.Name, err)
	}
	return content, nil
}

// groupScriptsByPriority collects embedded scripts into priority
// groups. Priorities come back ascending; inside a group, node then
// script declaration order is preserved.
func groupScriptsByPriority(def *models.ScenarioDefinition) (map[int][]scenarioScript, []int) {
	groups := make(map[int][]scenarioScript)
	for _, node := range def.Nodes {
		for _, script := range node.Scripts {
			script.ApplyDefaults()
			groups[script.Priority] = append(groups[script.Priority], scenarioScript{node: node.Name, script: script})
		}
	}
	priorities := make([]int, 0, len(groups))
	for priority := range groups {
		priorities = append(priorities, priority)
	}
	sort.Ints(priorities)
	return groups, priorities
}

// cancelAll appends a failed summary for every script in the groups
// from index on.
func cancelAll(summaries []models.ScriptRunSummary, groups map[int][]scenarioScript, priorities []int, from int) []models.ScriptRunSummary {
	for _, priority := range priorities[from:] {
		for _, item := range groups[priority] {
			summaries = append(summaries, models.ScriptRunSummary{
				Node:     item.node,
				Script:   item.script.Name,
				Priority: priority,
				Path:     item.script.Path,
				Error:    "canceled before execution",
			})
		}
	}
	return summaries
}

// sleepCtx waits d unless ctx is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
