// Package console implements the telnet-style console protocol used to
// reach node shells on the emulation server. GNS3 exposes each node's
// serial console as a plain TCP endpoint; the session reads are
// poll-based with prompt detection because the protocol has no framing
// and no reliable end-of-output marker.
package console

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultConnectTimeout bounds the TCP dial to a node console.
	DefaultConnectTimeout = 10 * time.Second
	// DefaultPollInterval is the timeout for each read attempt while
	// collecting command output.
	DefaultPollInterval = 500 * time.Millisecond
	// DefaultNewline terminates every line sent to the console. Node
	// shells behind telnet expect a bare carriage return.
	DefaultNewline = "\r"

	// StatusSentinel marks the line carrying a command's exit status.
	StatusSentinel = "__EXIT__"

	readBufferSize = 1024
	drainDuration  = 200 * time.Millisecond
)

// shellPrompts are the prompt suffixes that end a read early. They
// cover busybox, ash/bash and router CLIs.
var shellPrompts = []string{"# ", "$ ", "> ", "/ # "}

// ErrClosed is returned when an operation is attempted on a closed
// session.
var ErrClosed = errors.New("console session closed")

// State tracks where a session is in its lifecycle.
type State string

const (
	StateReady     State = "ready"
	StateExecuting State = "executing"
	StateClosed    State = "closed"
)

// Settings configures console connections. The zero value selects the
// defaults above.
type Settings struct {
	ConnectTimeout time.Duration
	PollInterval   time.Duration
	Newline        string
}

func (s Settings) withDefaults() Settings {
	if s.ConnectTimeout <= 0 {
		s.ConnectTimeout = DefaultConnectTimeout
	}
	if s.PollInterval <= 0 {
		s.PollInterval = DefaultPollInterval
	}
	if s.Newline == "" {
		s.Newline = DefaultNewline
	}
	return s
}

// Session is one interactive console connection. Sessions are not safe
// for concurrent use; the push orchestrator opens one per job.
type Session interface {
	// Send writes data plus the configured newline to the console.
	Send(data string) error
	// ReadFor collects output for at most the given duration. When
	// prompts are given the read returns early once the output ends
	// with one of them.
	ReadFor(duration time.Duration, prompts ...string) (string, error)
	// RunCommand sends a command and collects its output. With
	// earlyReturn the read stops at the next shell prompt.
	RunCommand(command string, readDuration time.Duration, earlyReturn bool) (string, error)
	// RunCommandWithStatus runs a command wrapped so the shell prints
	// its exit status on a sentinel line, and parses that status back
	// out. A nil exit code means the sentinel never came back or did
	// not parse.
	RunCommandWithStatus(command string, readDuration time.Duration) (string, *int, error)
	// State reports the session lifecycle state.
	State() State
	// Close sends a best-effort "exit" and tears the connection down.
	// Safe to call more than once.
	Close() error
}

// Dialer opens console sessions. The push orchestrator takes a Dialer
// so tests can substitute an in-memory console.
type Dialer interface {
	Dial(host string, port int) (Session, error)
}

// NetDialer dials real TCP consoles with the given settings.
type NetDialer struct {
	Settings Settings
}

// Dial implements Dialer.
func (d NetDialer) Dial(host string, port int) (Session, error) {
	return Dial(host, port, d.Settings)
}

// Dial opens a console session to the node shell at host:port.
func Dial(host string, port int, settings Settings) (Session, error) {
	settings = settings.withDefaults()

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, settings.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to console %s: %w", addr, err)
	}

	return &session{conn: conn, settings: settings, state: StateReady}, nil
}

type session struct {
	conn     net.Conn
	settings Settings
	state    State
	eof      bool
}

func (s *session) State() State {
	return s.state
}

func (s *session) Send(data string) error {
	if s.state == StateClosed {
		return ErrClosed
	}
	_, err := s.conn.Write([]byte(data + s.settings.Newline))
	if err != nil {
		return fmt.Errorf("console write failed: %w", err)
	}
	return nil
}

// readChunk reads once with the given timeout. A timeout yields an
// empty string, not an error; the caller's deadline decides when to
// give up.
func (s *session) readChunk(timeout time.Duration) (string, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return "", err
	}

	buf := make([]byte, readBufferSize)
	n, err := s.conn.Read(buf)
	if n > 0 {
		return string(buf[:n]), nil
	}
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", nil
		}
		return "", err
	}
	return "", nil
}

func (s *session) ReadFor(duration time.Duration, prompts ...string) (string, error) {
	if s.state == StateClosed {
		return "", ErrClosed
	}
	if s.eof {
		return "", nil
	}

	deadline := time.Now().Add(duration)
	var out strings.Builder

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return out.String(), nil
		}

		timeout := s.settings.PollInterval
		if remaining < timeout {
			timeout = remaining
		}

		chunk, err := s.readChunk(timeout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Remote shell hung up; whatever arrived is the answer.
				s.eof = true
				return out.String(), nil
			}
			return out.String(), fmt.Errorf("console read failed: %w", err)
		}
		if chunk == "" {
			continue
		}
		out.WriteString(chunk)

		if endsWithPrompt(out.String(), prompts) {
			return out.String(), nil
		}
	}
}

func (s *session) RunCommand(command string, readDuration time.Duration, earlyReturn bool) (string, error) {
	if s.state == StateClosed {
		return "", ErrClosed
	}
	s.state = StateExecuting
	defer func() { s.state = StateReady }()

	if err := s.Send(command); err != nil {
		return "", err
	}
	if earlyReturn {
		return s.ReadFor(readDuration, shellPrompts...)
	}
	return s.ReadFor(readDuration)
}

func (s *session) RunCommandWithStatus(command string, readDuration time.Duration) (string, *int, error) {
	if s.state == StateClosed {
		return "", nil, ErrClosed
	}
	s.state = StateExecuting
	defer func() { s.state = StateReady }()

	wrapped := fmt.Sprintf("%s; printf '%s%%s\\n' $?", command, StatusSentinel)
	if err := s.Send(wrapped); err != nil {
		return "", nil, err
	}

	raw, err := s.ReadFor(readDuration)
	if err != nil {
		return raw, nil, err
	}

	output, exitCode := parseStatusOutput(raw)

	// Swallow the trailing prompt so it does not leak into the next
	// command's output.
	if _, drainErr := s.ReadFor(drainDuration); drainErr != nil {
		return output, exitCode, drainErr
	}
	return output, exitCode, nil
}

func (s *session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed

	// The remote shell may already be gone; the exit is best effort.
	_ = s.conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, _ = s.conn.Write([]byte("exit" + s.settings.Newline))

	return s.conn.Close()
}

// parseStatusOutput splits raw console output at the last sentinel
// occurrence. The first line after the sentinel carries the exit
// status; terminal echo of the wrapped command is skipped because the
// real sentinel line always comes later.
func parseStatusOutput(raw string) (string, *int) {
	idx := strings.LastIndex(raw, StatusSentinel)
	if idx < 0 {
		return raw, nil
	}

	output := raw[:idx]
	suffix := raw[idx+len(StatusSentinel):]
	exitLine := strings.TrimSpace(firstLine(suffix))

	code, err := strconv.Atoi(exitLine)
	if err != nil {
		return output, nil
	}
	return output, &code
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// endsWithPrompt reports whether output, ignoring trailing whitespace,
// ends in one of the given shell prompts.
func endsWithPrompt(output string, prompts []string) bool {
	if len(prompts) == 0 {
		return false
	}
	trimmed := strings.TrimRight(output, " \t\r\n")
	for _, prompt := range prompts {
		if strings.HasSuffix(trimmed, strings.TrimRight(prompt, " \t\r\n")) {
			return true
		}
	}
	return false
}

// RunCommand dials the console, runs one command with prompt-based
// early return and closes the session. Backs the one-shot CLI path.
func RunCommand(host string, port int, command string, readDuration time.Duration, settings Settings) (string, error) {
	sess, err := Dial(host, port, settings)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	return sess.RunCommand(command, readDuration, true)
}

// Command pairs a console command with how long to read its output.
type Command struct {
	Text         string
	ReadDuration time.Duration
}

// RunSequence runs several commands over a single session, pausing
// delay between them, and returns the concatenated output.
func RunSequence(host string, port int, commands []Command, delay time.Duration, settings Settings) (string, error) {
	sess, err := Dial(host, port, settings)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	var out strings.Builder
	for i, cmd := range commands {
		chunk, err := sess.RunCommand(cmd.Text, cmd.ReadDuration, false)
		out.WriteString(chunk)
		if err != nil {
			return out.String(), err
		}
		if delay > 0 && i < len(commands)-1 {
			time.Sleep(delay)
		}
	}
	return out.String(), nil
}
