package console

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSettings keeps the poll loop fast so tests finish quickly.
var testSettings = Settings{
	ConnectTimeout: 2 * time.Second,
	PollInterval:   50 * time.Millisecond,
}

// scriptedShell is a fake node console on a local TCP listener. Each
// line it receives (terminated by \r) is answered through the handler.
type scriptedShell struct {
	mu    sync.Mutex
	lines []string
}

func (s *scriptedShell) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func startShell(t *testing.T, handler func(line string) string) (*scriptedShell, string, int) {
	t.Helper()

	shell := &scriptedShell{}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\r')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")

			shell.mu.Lock()
			shell.lines = append(shell.lines, line)
			shell.mu.Unlock()

			if reply := handler(line); reply != "" {
				if _, err := conn.Write([]byte(reply)); err != nil {
					return
				}
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return shell, "127.0.0.1", addr.Port
}

func TestDialAndClose(t *testing.T) {
	shell, host, port := startShell(t, func(string) string { return "" })

	sess, err := Dial(host, port, testSettings)
	require.NoError(t, err)
	assert.Equal(t, StateReady, sess.State())

	require.NoError(t, sess.Close())
	assert.Equal(t, StateClosed, sess.State())

	// Closing again is a no-op.
	require.NoError(t, sess.Close())

	// The session says goodbye to the remote shell on the way out.
	require.Eventually(t, func() bool {
		for _, line := range shell.received() {
			if line == "exit" {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestDialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = Dial("127.0.0.1", port, testSettings)
	assert.Error(t, err)
}

func TestSessionClosedErrors(t *testing.T) {
	_, host, port := startShell(t, func(string) string { return "" })

	sess, err := Dial(host, port, testSettings)
	require.NoError(t, err)
	require.NoError(t, sess.Close())

	assert.ErrorIs(t, sess.Send("pwd"), ErrClosed)

	_, err = sess.ReadFor(50 * time.Millisecond)
	assert.ErrorIs(t, err, ErrClosed)

	_, err = sess.RunCommand("pwd", 50*time.Millisecond, false)
	assert.ErrorIs(t, err, ErrClosed)

	_, _, err = sess.RunCommandWithStatus("pwd", 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRunCommandEarlyReturn(t *testing.T) {
	_, host, port := startShell(t, func(line string) string {
		if line == "echo hi" {
			return "hi\r\n/ # "
		}
		return ""
	})

	sess, err := Dial(host, port, testSettings)
	require.NoError(t, err)
	defer sess.Close()

	start := time.Now()
	out, err := sess.RunCommand("echo hi", 3*time.Second, true)
	require.NoError(t, err)

	assert.Contains(t, out, "hi")
	// The prompt cut the read short of the full three seconds.
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunCommandWithoutEarlyReturnWaitsFullDuration(t *testing.T) {
	_, host, port := startShell(t, func(line string) string {
		if line == "uptime" {
			return "up 3 days\r\n/ # "
		}
		return ""
	})

	sess, err := Dial(host, port, testSettings)
	require.NoError(t, err)
	defer sess.Close()

	start := time.Now()
	out, err := sess.RunCommand("uptime", 300*time.Millisecond, false)
	require.NoError(t, err)

	assert.Contains(t, out, "up 3 days")
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestRunCommandWithStatus(t *testing.T) {
	_, host, port := startShell(t, func(line string) string {
		switch {
		case strings.HasPrefix(line, "cat /etc/hostname;"):
			return "node1\r\n" + StatusSentinel + "0\r\n/ # "
		case strings.HasPrefix(line, "false;"):
			return StatusSentinel + "1\r\n/ # "
		}
		return ""
	})

	sess, err := Dial(host, port, testSettings)
	require.NoError(t, err)
	defer sess.Close()

	out, code, err := sess.RunCommandWithStatus("cat /etc/hostname", 200*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, 0, *code)
	assert.Contains(t, out, "node1")

	_, code, err = sess.RunCommandWithStatus("false", 200*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, code)
	assert.Equal(t, 1, *code)
}

func TestRunCommandWithStatusWrapsCommand(t *testing.T) {
	shell, host, port := startShell(t, func(string) string {
		return StatusSentinel + "0\r\n"
	})

	sess, err := Dial(host, port, testSettings)
	require.NoError(t, err)
	defer sess.Close()

	_, _, err = sess.RunCommandWithStatus("rm -f /tmp/x", 100*time.Millisecond)
	require.NoError(t, err)

	lines := shell.received()
	require.NotEmpty(t, lines)
	assert.Equal(t, `rm -f /tmp/x; printf '`+StatusSentinel+`%s\n' $?`, lines[0])
}

func TestParseStatusOutput(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name     string
		raw      string
		wantOut  string
		wantCode *int
	}{
		{"no sentinel", "plain output\r\n", "plain output\r\n", nil},
		{"zero exit", StatusSentinel + "0\r\n", "", intPtr(0)},
		{"nonzero exit with output", "out\r\n" + StatusSentinel + "3\r\n/ # ", "out\r\n", intPtr(3)},
		{"garbage status", StatusSentinel + "abc\r\n", "", nil},
		{"sentinel at end", "x" + StatusSentinel, "x", nil},
		{
			// Terminal echo repeats the wrapped command before the
			// real sentinel line; the last occurrence wins.
			"echoed command",
			"cat f; printf '" + StatusSentinel + "%s\\n' $?\r\nhello\r\n" + StatusSentinel + "0\r\n",
			"cat f; printf '" + StatusSentinel + "%s\\n' $?\r\nhello\r\n",
			intPtr(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := parseStatusOutput(tt.raw)
			if out != tt.wantOut {
				t.Errorf("output = %q, want %q", out, tt.wantOut)
			}
			switch {
			case tt.wantCode == nil && code != nil:
				t.Errorf("exit code = %d, want nil", *code)
			case tt.wantCode != nil && code == nil:
				t.Errorf("exit code = nil, want %d", *tt.wantCode)
			case tt.wantCode != nil && code != nil && *code != *tt.wantCode:
				t.Errorf("exit code = %d, want %d", *code, *tt.wantCode)
			}
		})
	}
}

func TestEndsWithPrompt(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"busybox prompt", "hi\r\n/ # ", true},
		{"root prompt", "done\r\n# ", true},
		{"user prompt", "done\n$ ", true},
		{"router prompt", "R1> ", true},
		{"mid output", "downloading...", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := endsWithPrompt(tt.output, shellPrompts); got != tt.want {
				t.Errorf("endsWithPrompt(%q) = %v, want %v", tt.output, got, tt.want)
			}
		})
	}
}

func TestEndsWithPromptNoPrompts(t *testing.T) {
	assert.False(t, endsWithPrompt("/ # ", nil))
}

func TestRunSequence(t *testing.T) {
	_, host, port := startShell(t, func(line string) string {
		switch line {
		case "hostname":
			return "node1\r\n"
		case "uname":
			return "Linux\r\n"
		}
		return ""
	})

	out, err := RunSequence(host, port, []Command{
		{Text: "hostname", ReadDuration: 150 * time.Millisecond},
		{Text: "uname", ReadDuration: 150 * time.Millisecond},
	}, 0, testSettings)
	require.NoError(t, err)

	assert.Contains(t, out, "node1")
	assert.Contains(t, out, "Linux")
}
