// Package push uploads and executes shell scripts on deployed nodes
// over their console endpoints. Batches run through a fixed worker
// pool with one result per job, written at the job's input position;
// a single job failing or timing out never disturbs the others.
package push

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"evalgo.org/emulium/internal/console"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/models"
)

// Read budgets for the fixed upload steps. Script execution uses the
// job's own run timeout instead.
const (
	existenceProbeBudget = 1 * time.Second
	mkdirBudget          = 2 * time.Second
	decodeBudget         = 5 * time.Second
	removeBudget         = 1 * time.Second
	chmodBudget          = 2 * time.Second

	// uploadSettle is how long the heredoc is given to land before the
	// echo backlog is drained.
	uploadSettle = 200 * time.Millisecond

	// heredocWidth is the column the base64 payload wraps at. Console
	// line buffers on small images are not generous.
	heredocWidth = 120
)

// scriptableConsole is the only console type the pusher can drive.
const scriptableConsole = "telnet"

// Orchestrator runs script batches against registered node consoles.
// The registry is snapshotted once per batch; topology changes during
// a push are not picked up mid-batch.
type Orchestrator struct {
	registry *registry.Registry
	dialer   console.Dialer
}

// NewOrchestrator creates an orchestrator. A nil dialer falls back to
// plain TCP with default console settings.
func NewOrchestrator(reg *registry.Registry, dialer console.Dialer) *Orchestrator {
	if dialer == nil {
		dialer = console.NetDialer{}
	}
	return &Orchestrator{registry: reg, dialer: dialer}
}

// Push uploads (and optionally executes) one script per job, at most
// concurrency jobs at a time. The report lists one result per job in
// input order. Canceling ctx stops feeding new jobs; jobs already on a
// worker finish their session, the rest are recorded as canceled.
func (o *Orchestrator) Push(ctx context.Context, project string, jobs []models.PushJob, concurrency int) *models.PushReport {
	endpoints := o.registry.Snapshot(project)
	results := runPool(ctx, len(jobs), concurrency,
		func(i int) models.PushResult {
			job := jobs[i]
			job.ApplyDefaults()
			return o.pushJob(endpoints, job)
		},
		func(i int) models.PushResult {
			return canceledResult(jobs[i].Node, jobs[i].Path)
		},
	)
	return models.NewPushReport(results)
}

// Run executes already-uploaded scripts, one per job, with the same
// pool and ordering guarantees as Push.
func (o *Orchestrator) Run(ctx context.Context, project string, jobs []models.RunJob, concurrency int) *models.PushReport {
	endpoints := o.registry.Snapshot(project)
	results := runPool(ctx, len(jobs), concurrency,
		func(i int) models.PushResult {
			job := jobs[i]
			job.ApplyDefaults()
			return o.runJob(endpoints, job)
		},
		func(i int) models.PushResult {
			return canceledResult(jobs[i].Node, jobs[i].Path)
		},
	)
	return models.NewPushReport(results)
}

// runPool drains count jobs through a fixed pool of workers, writing
// each result at its job's index. The queue is unbuffered, so a job is
// only handed out when a worker is free; on cancellation the feed
// stops and unfed jobs are filled in through canceled.
func runPool(ctx context.Context, count, concurrency int, run func(int) models.PushResult, canceled func(int) models.PushResult) []models.PushResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]models.PushResult, count)
	queue := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				results[i] = run(i)
			}
		}()
	}

feed:
	for i := 0; i < count; i++ {
		select {
		case queue <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	for i := range results {
		if results[i].Outcome == "" {
			results[i] = canceled(i)
		}
	}
	return results
}

// pushJob runs the full per-job pipeline: registry lookup, dial,
// upload, optional execution. The session is closed on every path.
func (o *Orchestrator) pushJob(endpoints map[string]registry.Entry, job models.PushJob) (result models.PushResult) {
	start := time.Now()
	result.Node = job.Node
	result.Path = job.Path
	defer func() {
		result.Duration = time.Since(start)
		result.Timestamp = time.Now().UTC()
	}()

	entry, ok := o.resolveEndpoint(endpoints, job.Node, &result)
	if !ok {
		return
	}

	session, err := o.dialer.Dial(entry.Host, entry.Port)
	if err != nil {
		result.Outcome = models.OutcomeFailed
		result.Reason = models.ReasonConnectionFailed
		result.Error = err.Error()
		return
	}
	defer session.Close()

	if !job.Overwrite {
		probe := fmt.Sprintf("[ -e %s ]", shellQuote(job.Path))
		_, code, err := session.RunCommandWithStatus(probe, existenceProbeBudget)
		if err != nil {
			failConnection(&result, err)
			return
		}
		if code != nil && *code == 0 {
			result.Outcome = models.OutcomeSkipped
			result.Reason = models.ReasonExists
			return
		}
	}

	uploadOutput, ok := o.upload(session, job, &result)
	if !ok {
		return
	}
	result.Outcome = models.OutcomeUploaded
	result.Output = uploadOutput

	if job.RunAfterUpload {
		o.execute(session, job.Shell, job.Path, job.RunTimeout, &result)
	}
	return
}

// runJob executes a script that is already on the node.
func (o *Orchestrator) runJob(endpoints map[string]registry.Entry, job models.RunJob) (result models.PushResult) {
	start := time.Now()
	result.Node = job.Node
	result.Path = job.Path
	defer func() {
		result.Duration = time.Since(start)
		result.Timestamp = time.Now().UTC()
	}()

	entry, ok := o.resolveEndpoint(endpoints, job.Node, &result)
	if !ok {
		return
	}

	session, err := o.dialer.Dial(entry.Host, entry.Port)
	if err != nil {
		result.Outcome = models.OutcomeFailed
		result.Reason = models.ReasonConnectionFailed
		result.Error = err.Error()
		return
	}
	defer session.Close()

	o.execute(session, job.Shell, job.Path, job.Timeout, &result)
	return
}

// resolveEndpoint looks the node up in the batch snapshot and rejects
// consoles the pusher cannot drive.
func (o *Orchestrator) resolveEndpoint(endpoints map[string]registry.Entry, node string, result *models.PushResult) (registry.Entry, bool) {
	entry, ok := endpoints[node]
	if !ok {
		result.Outcome = models.OutcomeFailed
		result.Reason = models.ReasonUnknownNode
		result.Error = fmt.Sprintf("node %q is not registered", node)
		return registry.Entry{}, false
	}
	result.Host = entry.Host
	result.Port = entry.Port

	if entry.ConsoleType != "" && entry.ConsoleType != scriptableConsole {
		result.Outcome = models.OutcomeFailed
		result.Reason = models.ReasonConsoleUnsupported
		result.Error = fmt.Sprintf("console type %q is not scriptable", entry.ConsoleType)
		return registry.Entry{}, false
	}
	return entry, true
}

// upload transfers the script as a base64 heredoc into a temp file,
// decodes it into place and marks it executable when requested. The
// temp file is removed whether or not the decode succeeded. Returns
// the collected step output and false when the result is already
// final.
func (o *Orchestrator) upload(session console.Session, job models.PushJob, result *models.PushResult) (string, bool) {
	encoded := base64.StdEncoding.EncodeToString([]byte(job.Content))
	tmp := fmt.Sprintf("/tmp/.upload_%s.b64", strings.ReplaceAll(uuid.NewString(), "-", ""))

	if err := session.Send(fmt.Sprintf("cat <<'EOF' > %s", shellQuote(tmp))); err != nil {
		failConnection(result, err)
		return "", false
	}
	for _, line := range wrapColumns(encoded, heredocWidth) {
		if err := session.Send(line); err != nil {
			failConnection(result, err)
			return "", false
		}
	}
	if err := session.Send("EOF"); err != nil {
		failConnection(result, err)
		return "", false
	}
	time.Sleep(uploadSettle)
	if _, err := session.ReadFor(uploadSettle); err != nil {
		failConnection(result, err)
		return "", false
	}

	if parent := path.Dir(job.Path); parent != "" && parent != "." {
		if _, _, err := session.RunCommandWithStatus("mkdir -p "+shellQuote(parent), mkdirBudget); err != nil {
			failConnection(result, err)
			return "", false
		}
	}

	decodeOutput, decodeExit, err := session.RunCommandWithStatus(
		fmt.Sprintf("base64 -d %s > %s", shellQuote(tmp), shellQuote(job.Path)), decodeBudget)
	if err != nil {
		failConnection(result, err)
		return "", false
	}

	// Remove the temp file before judging the decode so failures do
	// not litter /tmp.
	if _, _, err := session.RunCommandWithStatus("rm -f "+shellQuote(tmp), removeBudget); err != nil {
		failConnection(result, err)
		return "", false
	}

	if decodeExit == nil || *decodeExit != 0 {
		result.Outcome = models.OutcomeFailed
		result.Reason = models.ReasonDecodeFailed
		result.Output = strings.TrimSpace(decodeOutput)
		result.Error = exitMessage("base64 decode", decodeExit)
		return "", false
	}

	chmodOutput := ""
	if job.Executable {
		output, chmodExit, err := session.RunCommandWithStatus("chmod +x "+shellQuote(job.Path), chmodBudget)
		if err != nil {
			failConnection(result, err)
			return "", false
		}
		chmodOutput = output
		if chmodExit == nil || *chmodExit != 0 {
			result.Outcome = models.OutcomeFailed
			result.Reason = models.ReasonChmodFailed
			result.Output = strings.TrimSpace(output)
			result.Error = exitMessage("chmod", chmodExit)
			return "", false
		}
	}

	return joinOutputs(decodeOutput, chmodOutput), true
}

// execute runs the script under its shell, bounded by timeout. A
// missing exit status means the script outran its budget.
func (o *Orchestrator) execute(session console.Session, shell, remotePath string, timeout time.Duration, result *models.PushResult) {
	command := fmt.Sprintf("%s %s", shell, shellQuote(remotePath))
	output, code, err := session.RunCommandWithStatus(command, timeout)
	if err != nil {
		failConnection(result, err)
		return
	}
	result.Output = output
	result.ExitCode = code
	switch {
	case code == nil:
		result.Outcome = models.OutcomeFailed
		result.Reason = models.ReasonTimeout
		result.Error = fmt.Sprintf("script did not finish within %s", timeout)
	case *code != 0:
		result.Outcome = models.OutcomeFailed
		result.Reason = models.ReasonExitNonZero
		result.Error = fmt.Sprintf("script exited with status %d", *code)
	default:
		result.Outcome = models.OutcomeExecuted
	}
}

func failConnection(result *models.PushResult, err error) {
	result.Outcome = models.OutcomeFailed
	result.Reason = models.ReasonConnectionFailed
	result.Error = err.Error()
}

func canceledResult(node, remotePath string) models.PushResult {
	return models.PushResult{
		Node:      node,
		Path:      remotePath,
		Outcome:   models.OutcomeFailed,
		Reason:    models.ReasonCanceled,
		Error:     "batch canceled before the job started",
		Timestamp: time.Now().UTC(),
	}
}

func exitMessage(step string, code *int) string {
	if code == nil {
		return step + " returned no exit status"
	}
	return fmt.Sprintf("%s exited with status %d", step, *code)
}

// joinOutputs merges step outputs, dropping empty ones.
func joinOutputs(outputs ...string) string {
	parts := make([]string, 0, len(outputs))
	for _, output := range outputs {
		if trimmed := strings.TrimSpace(output); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n")
}

// wrapColumns splits s into chunks of at most width bytes. The base64
// alphabet is single-byte, so slicing cannot split a character.
func wrapColumns(s string, width int) []string {
	if width < 1 || s == "" {
		return nil
	}
	lines := make([]string, 0, len(s)/width+1)
	for len(s) > width {
		lines = append(lines, s[:width])
		s = s[width:]
	}
	return append(lines, s)
}

// shellQuote quotes s for a POSIX shell the way shlex does: strings of
// safe characters pass through, everything else is single-quoted with
// embedded quotes escaped.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("_@%+=:,./-", r):
		default:
			safe = false
		}
		if !safe {
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
