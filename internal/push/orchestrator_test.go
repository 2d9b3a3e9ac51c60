package push

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/emulium/internal/console"
	"evalgo.org/emulium/internal/registry"
	"evalgo.org/emulium/models"
)

const testProject = "aafa01b8-1c41-4ebd-8a72-3b0b9e40ad4d"

func intPtr(v int) *int { return &v }

// reply scripts one console answer, matched by command prefix.
type reply struct {
	output string
	code   *int
	err    error
}

// fakeSession satisfies console.Session without a network. Commands
// answer exit 0 unless a reply or the existence flag says otherwise.
type fakeSession struct {
	dialer *fakeDialer

	mu       sync.Mutex
	sent     []string
	commands []string
	closed   bool

	replies map[string]reply
	exists  bool
	delay   time.Duration
}

func (s *fakeSession) Send(data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return console.ErrClosed
	}
	s.sent = append(s.sent, data)
	return nil
}

func (s *fakeSession) ReadFor(duration time.Duration, prompts ...string) (string, error) {
	return "", nil
}

func (s *fakeSession) RunCommand(command string, readDuration time.Duration, earlyReturn bool) (string, error) {
	output, _, err := s.RunCommandWithStatus(command, readDuration)
	return output, err
}

func (s *fakeSession) RunCommandWithStatus(command string, readDuration time.Duration) (string, *int, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", nil, console.ErrClosed
	}
	s.commands = append(s.commands, command)
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	for prefix, r := range s.replies {
		if strings.HasPrefix(command, prefix) {
			return r.output, r.code, r.err
		}
	}
	if strings.HasPrefix(command, "[ -e ") {
		if s.exists {
			return "", intPtr(0), nil
		}
		return "", intPtr(1), nil
	}
	return "", intPtr(0), nil
}

func (s *fakeSession) State() console.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return console.StateClosed
	}
	return console.StateReady
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	wasClosed := s.closed
	s.closed = true
	s.mu.Unlock()
	if !wasClosed && s.dialer != nil {
		s.dialer.mu.Lock()
		s.dialer.open--
		s.dialer.mu.Unlock()
	}
	return nil
}

func (s *fakeSession) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *fakeSession) sentLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func (s *fakeSession) commandLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// fakeDialer hands out fakeSessions and tracks how many are open at
// once.
type fakeDialer struct {
	mu       sync.Mutex
	replies  map[string]map[string]reply
	exists   map[string]bool
	dialErr  map[string]error
	delay    time.Duration
	sessions []*fakeSession
	open     int
	maxOpen  int
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{
		replies: make(map[string]map[string]reply),
		exists:  make(map[string]bool),
		dialErr: make(map[string]error),
	}
}

func (d *fakeDialer) Dial(host string, port int) (console.Session, error) {
	key := fmt.Sprintf("%s:%d", host, port)
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.dialErr[key]; err != nil {
		return nil, err
	}
	session := &fakeSession{
		dialer:  d,
		replies: d.replies[key],
		exists:  d.exists[key],
		delay:   d.delay,
	}
	d.sessions = append(d.sessions, session)
	d.open++
	if d.open > d.maxOpen {
		d.maxOpen = d.open
	}
	return session, nil
}

func (d *fakeDialer) openSessions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *fakeDialer) peakSessions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxOpen
}

func (d *fakeDialer) allSessions() []*fakeSession {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*fakeSession(nil), d.sessions...)
}

func (d *fakeDialer) onlySession(t *testing.T) *fakeSession {
	t.Helper()
	sessions := d.allSessions()
	require.Len(t, sessions, 1)
	return sessions[0]
}

// endpointKey matches the entries testRegistry creates.
func endpointKey(i int) string {
	return fmt.Sprintf("198.51.100.10:%d", 5001+i)
}

func testRegistry(nodes ...string) *registry.Registry {
	reg := registry.New()
	for i, node := range nodes {
		reg.Put(registry.Entry{
			Project:     testProject,
			Node:        node,
			NodeID:      fmt.Sprintf("node-%d", i+1),
			Host:        "198.51.100.10",
			Port:        5001 + i,
			ConsoleType: "telnet",
			Alive:       true,
		})
	}
	return reg
}

func TestPushUploadAndRun(t *testing.T) {
	dialer := newFakeDialer()
	dialer.replies[endpointKey(0)] = map[string]reply{
		"sh ": {output: "configured\n", code: intPtr(0)},
	}
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	content := "#!/bin/sh\necho configured\n"
	jobs := []models.PushJob{{
		Node:           "plc-1",
		Content:        content,
		Path:           "/opt/lab/setup.sh",
		RunAfterUpload: true,
		Executable:     true,
		Overwrite:      true,
		RunTimeout:     2 * time.Second,
	}}

	report := o.Push(context.Background(), testProject, jobs, 1)
	require.Len(t, report.Results, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeExecuted, result.Outcome)
	assert.Equal(t, "plc-1", result.Node)
	assert.Equal(t, "198.51.100.10", result.Host)
	assert.Equal(t, 5001, result.Port)
	require.NotNil(t, result.ExitCode)
	assert.Equal(t, 0, *result.ExitCode)
	assert.Contains(t, result.Output, "configured")
	assert.Greater(t, result.Duration, time.Duration(0))

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Uploaded)
	assert.Equal(t, 1, report.Executed)

	session := dialer.onlySession(t)
	assert.True(t, session.isClosed())

	// Heredoc: opener, payload, terminator.
	sent := session.sentLines()
	require.Len(t, sent, 3)
	assert.True(t, strings.HasPrefix(sent[0], "cat <<'EOF' > /tmp/.upload_"), sent[0])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(content)), sent[1])
	assert.Equal(t, "EOF", sent[2])

	commands := session.commandLog()
	require.Len(t, commands, 5)
	assert.Equal(t, "mkdir -p /opt/lab", commands[0])
	assert.True(t, strings.HasPrefix(commands[1], "base64 -d /tmp/.upload_"), commands[1])
	assert.True(t, strings.HasSuffix(commands[1], "> /opt/lab/setup.sh"), commands[1])
	assert.True(t, strings.HasPrefix(commands[2], "rm -f /tmp/.upload_"), commands[2])
	assert.Equal(t, "chmod +x /opt/lab/setup.sh", commands[3])
	assert.Equal(t, "sh /opt/lab/setup.sh", commands[4])
}

func TestPushUploadOnly(t *testing.T) {
	dialer := newFakeDialer()
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	jobs := []models.PushJob{{
		Node:      "plc-1",
		Content:   "touch /tmp/ready",
		Path:      "/tmp/mark.sh",
		Overwrite: true,
	}}

	report := o.Push(context.Background(), testProject, jobs, 1)
	result := report.Results[0]
	assert.Equal(t, models.OutcomeUploaded, result.Outcome)
	assert.Nil(t, result.ExitCode)

	for _, command := range dialer.onlySession(t).commandLog() {
		assert.False(t, strings.HasPrefix(command, "sh "), "upload-only job must not execute: %s", command)
	}
}

func TestPushOverwriteFalseSkips(t *testing.T) {
	dialer := newFakeDialer()
	dialer.exists[endpointKey(0)] = true
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	jobs := []models.PushJob{{
		Node:           "plc-1",
		Content:        "echo hi",
		Path:           "/tmp/keep.sh",
		RunAfterUpload: true,
	}}

	report := o.Push(context.Background(), testProject, jobs, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeSkipped, result.Outcome)
	assert.Equal(t, models.ReasonExists, result.Reason)
	assert.Nil(t, result.ExitCode)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Failed, "a skip is not a failure")

	session := dialer.onlySession(t)
	assert.True(t, session.isClosed())
	commands := session.commandLog()
	require.Len(t, commands, 1, "only the existence probe runs")
	assert.Equal(t, "[ -e /tmp/keep.sh ]", commands[0])
	assert.Empty(t, session.sentLines(), "nothing is uploaded")
}

func TestPushOverwriteFalseUploadsWhenMissing(t *testing.T) {
	dialer := newFakeDialer()
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	jobs := []models.PushJob{{
		Node:    "plc-1",
		Content: "echo hi",
		Path:    "/tmp/fresh.sh",
	}}

	report := o.Push(context.Background(), testProject, jobs, 1)
	assert.Equal(t, models.OutcomeUploaded, report.Results[0].Outcome)

	commands := dialer.onlySession(t).commandLog()
	assert.Equal(t, "[ -e /tmp/fresh.sh ]", commands[0])
	assert.Greater(t, len(commands), 1, "upload proceeds after a negative probe")
}

func TestPushUnknownNode(t *testing.T) {
	dialer := newFakeDialer()
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	report := o.Push(context.Background(), testProject, []models.PushJob{{
		Node: "ghost", Content: "x", Path: "/tmp/x.sh", Overwrite: true,
	}}, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeFailed, result.Outcome)
	assert.Equal(t, models.ReasonUnknownNode, result.Reason)
	assert.Contains(t, result.Error, `"ghost"`)
	assert.Empty(t, dialer.allSessions(), "unknown nodes are never dialed")
}

func TestPushConsoleUnsupported(t *testing.T) {
	reg := registry.New()
	reg.Put(registry.Entry{
		Project: testProject, Node: "hmi-1", NodeID: "node-1",
		Host: "198.51.100.10", Port: 5901, ConsoleType: "vnc", Alive: true,
	})
	dialer := newFakeDialer()
	o := NewOrchestrator(reg, dialer)

	report := o.Push(context.Background(), testProject, []models.PushJob{{
		Node: "hmi-1", Content: "x", Path: "/tmp/x.sh", Overwrite: true,
	}}, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeFailed, result.Outcome)
	assert.Equal(t, models.ReasonConsoleUnsupported, result.Reason)
	assert.Contains(t, result.Error, "vnc")
	assert.Equal(t, 5901, result.Port, "the endpoint is still reported")
	assert.Empty(t, dialer.allSessions())
}

func TestPushDialFailure(t *testing.T) {
	dialer := newFakeDialer()
	dialer.dialErr[endpointKey(0)] = fmt.Errorf("dial tcp: connection refused")
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	report := o.Push(context.Background(), testProject, []models.PushJob{{
		Node: "plc-1", Content: "x", Path: "/tmp/x.sh", Overwrite: true,
	}}, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeFailed, result.Outcome)
	assert.Equal(t, models.ReasonConnectionFailed, result.Reason)
	assert.Contains(t, result.Error, "refused")
}

func TestPushDecodeFailure(t *testing.T) {
	dialer := newFakeDialer()
	dialer.replies[endpointKey(0)] = map[string]reply{
		"base64 -d ": {output: "base64: invalid input\n", code: intPtr(2)},
	}
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	report := o.Push(context.Background(), testProject, []models.PushJob{{
		Node: "plc-1", Content: "x", Path: "/tmp/x.sh",
		Overwrite: true, Executable: true, RunAfterUpload: true,
	}}, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeFailed, result.Outcome)
	assert.Equal(t, models.ReasonDecodeFailed, result.Reason)
	assert.Contains(t, result.Error, "exited with status 2")
	assert.Contains(t, result.Output, "invalid input")

	// The temp file is removed even though the decode failed, and
	// neither chmod nor the script itself ran.
	commands := dialer.onlySession(t).commandLog()
	assert.GreaterOrEqual(t, callIndexOf(commands, "rm -f /tmp/.upload_"), 0)
	assert.Equal(t, -1, callIndexOf(commands, "chmod"))
	assert.Equal(t, -1, callIndexOf(commands, "sh "))
}

func TestPushChmodFailure(t *testing.T) {
	dialer := newFakeDialer()
	dialer.replies[endpointKey(0)] = map[string]reply{
		"chmod ": {output: "chmod: read-only file system\n", code: intPtr(1)},
	}
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	report := o.Push(context.Background(), testProject, []models.PushJob{{
		Node: "plc-1", Content: "x", Path: "/tmp/x.sh",
		Overwrite: true, Executable: true, RunAfterUpload: true,
	}}, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeFailed, result.Outcome)
	assert.Equal(t, models.ReasonChmodFailed, result.Reason)
	assert.Equal(t, -1, callIndexOf(dialer.onlySession(t).commandLog(), "sh "))
}

func TestPushRunTimeout(t *testing.T) {
	dialer := newFakeDialer()
	dialer.replies[endpointKey(0)] = map[string]reply{
		"sh ": {output: "still working...", code: nil},
	}
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	report := o.Push(context.Background(), testProject, []models.PushJob{{
		Node: "plc-1", Content: "sleep 60", Path: "/tmp/slow.sh",
		Overwrite: true, RunAfterUpload: true, RunTimeout: 50 * time.Millisecond,
	}}, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeFailed, result.Outcome)
	assert.Equal(t, models.ReasonTimeout, result.Reason)
	assert.Nil(t, result.ExitCode)
	assert.Contains(t, result.Error, "did not finish within")

	// No leaked connection after a timeout.
	assert.True(t, dialer.onlySession(t).isClosed())
	assert.Zero(t, dialer.openSessions())
}

func TestPushRunNonZeroExit(t *testing.T) {
	dialer := newFakeDialer()
	dialer.replies[endpointKey(0)] = map[string]reply{
		"sh ": {output: "oops\n", code: intPtr(3)},
	}
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	report := o.Push(context.Background(), testProject, []models.PushJob{{
		Node: "plc-1", Content: "exit 3", Path: "/tmp/x.sh",
		Overwrite: true, RunAfterUpload: true,
	}}, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeFailed, result.Outcome)
	assert.Equal(t, models.ReasonExitNonZero, result.Reason)
	require.NotNil(t, result.ExitCode)
	assert.Equal(t, 3, *result.ExitCode)
}

func TestPushBatchOrderPreserved(t *testing.T) {
	dialer := newFakeDialer()
	o := NewOrchestrator(testRegistry("A", "B"), dialer)

	jobs := []models.PushJob{
		{Node: "A", Content: "a", Path: "/tmp/a.sh", Overwrite: true, RunAfterUpload: true},
		{Node: "B", Content: "b", Path: "/tmp/b.sh", Overwrite: true, RunAfterUpload: true},
		{Node: "Z", Content: "z", Path: "/tmp/z.sh", Overwrite: true, RunAfterUpload: true},
	}

	report := o.Push(context.Background(), testProject, jobs, 2)
	require.Len(t, report.Results, 3)

	assert.Equal(t, "A", report.Results[0].Node)
	assert.Equal(t, "B", report.Results[1].Node)
	assert.Equal(t, "Z", report.Results[2].Node)

	assert.Equal(t, models.OutcomeExecuted, report.Results[0].Outcome)
	assert.Equal(t, models.OutcomeExecuted, report.Results[1].Outcome)
	assert.Equal(t, models.OutcomeFailed, report.Results[2].Outcome)
	assert.Equal(t, models.ReasonUnknownNode, report.Results[2].Reason)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Executed)
	assert.Equal(t, 1, report.Failed)
}

func TestPushConcurrencyBound(t *testing.T) {
	nodes := []string{"n1", "n2", "n3", "n4", "n5", "n6"}
	dialer := newFakeDialer()
	dialer.delay = 10 * time.Millisecond
	o := NewOrchestrator(testRegistry(nodes...), dialer)

	jobs := make([]models.PushJob, len(nodes))
	for i, node := range nodes {
		jobs[i] = models.PushJob{Node: node, Content: "x", Path: "/tmp/x.sh", Overwrite: true}
	}

	report := o.Push(context.Background(), testProject, jobs, 2)
	require.Len(t, report.Results, 6)
	for i, result := range report.Results {
		assert.Equal(t, models.OutcomeUploaded, result.Outcome, "job %d", i)
	}
	assert.LessOrEqual(t, dialer.peakSessions(), 2)
	assert.Zero(t, dialer.openSessions())
}

func TestPushConcurrencyClampedToOne(t *testing.T) {
	dialer := newFakeDialer()
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	report := o.Push(context.Background(), testProject, []models.PushJob{{
		Node: "plc-1", Content: "x", Path: "/tmp/x.sh", Overwrite: true,
	}}, 0)
	assert.Equal(t, models.OutcomeUploaded, report.Results[0].Outcome)
}

func TestPushCancellation(t *testing.T) {
	dialer := newFakeDialer()
	o := NewOrchestrator(testRegistry("n1", "n2", "n3"), dialer)

	jobs := []models.PushJob{
		{Node: "n1", Content: "x", Path: "/tmp/x.sh", Overwrite: true},
		{Node: "n2", Content: "x", Path: "/tmp/x.sh", Overwrite: true},
		{Node: "n3", Content: "x", Path: "/tmp/x.sh", Overwrite: true},
	}

	// The first job is on a worker when the cancel lands (the upload
	// settle keeps it busy well past 50ms); the rest never start.
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	report := o.Push(ctx, testProject, jobs, 1)
	require.Len(t, report.Results, 3)

	assert.Equal(t, models.OutcomeUploaded, report.Results[0].Outcome, "in-flight job finishes")
	for _, result := range report.Results[1:] {
		assert.Equal(t, models.OutcomeFailed, result.Outcome)
		assert.Equal(t, models.ReasonCanceled, result.Reason)
	}
	assert.Len(t, dialer.allSessions(), 1, "canceled jobs never dial")
}

func TestRunExecutesExistingScript(t *testing.T) {
	dialer := newFakeDialer()
	dialer.replies[endpointKey(0)] = map[string]reply{
		"ash ": {output: "ok\n", code: intPtr(0)},
	}
	o := NewOrchestrator(testRegistry("plc-1"), dialer)

	report := o.Run(context.Background(), testProject, []models.RunJob{{
		Node: "plc-1", Path: "/tmp/installed.sh", Shell: "ash",
	}}, 1)
	result := report.Results[0]

	assert.Equal(t, models.OutcomeExecuted, result.Outcome)
	require.NotNil(t, result.ExitCode)
	assert.Equal(t, 0, *result.ExitCode)

	session := dialer.onlySession(t)
	commands := session.commandLog()
	require.Len(t, commands, 1, "run does not upload")
	assert.Equal(t, "ash /tmp/installed.sh", commands[0])
	assert.True(t, session.isClosed())
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"/tmp/plain.sh", "/tmp/plain.sh"},
		{"safe_NAME-1.2@x", "safe_NAME-1.2@x"},
		{"/tmp/with space.sh", "'/tmp/with space.sh'"},
		{"it's", `'it'\''s'`},
		{"a;b", "'a;b'"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shellQuote(tt.in), "quote(%q)", tt.in)
	}
}

func TestWrapColumns(t *testing.T) {
	long := strings.Repeat("A", 300)
	lines := wrapColumns(long, 120)
	require.Len(t, lines, 3)
	assert.Len(t, lines[0], 120)
	assert.Len(t, lines[1], 120)
	assert.Len(t, lines[2], 60)

	assert.Nil(t, wrapColumns("", 120))
	assert.Equal(t, []string{"abc"}, wrapColumns("abc", 120))
}

func callIndexOf(commands []string, prefix string) int {
	for i, command := range commands {
		if strings.HasPrefix(command, prefix) {
			return i
		}
	}
	return -1
}
