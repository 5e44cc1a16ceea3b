// Package exec provides a qalink.Matcher implementation that invokes an
// external command-line tool, passing the prompt as the final argument and
// capturing standard output as the reply. A non-zero exit is a hard
// failure.
package exec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/qalink"
)

// DefaultTimeout is the deadline applied when the caller's context carries
// none. The external tool may take seconds per call.
const DefaultTimeout = 150 * time.Second

// Ensure Matcher implements qalink.Matcher at compile time.
var _ qalink.Matcher = (*Matcher)(nil)

// Matcher runs an external command per query. The command name and any
// flags are configuration; callers see only the qalink.Matcher signature.
type Matcher struct {
	command string
	args    []string
	timeout time.Duration
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithArgs sets arguments placed before the prompt on the command line.
func WithArgs(args ...string) Option {
	return func(m *Matcher) {
		m.args = args
	}
}

// WithTimeout sets the per-call deadline applied when the context has none.
// Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Matcher) {
		m.timeout = d
	}
}

// NewMatcher creates a Matcher for the given command.
func NewMatcher(command string, opts ...Option) *Matcher {
	m := &Matcher{
		command: command,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Query runs the tool once and returns its trimmed standard output.
func (m *Matcher) Query(ctx context.Context, prompt string) (string, error) {
	if m.command == "" {
		return "", qalink.Errorf(qalink.EINVALID, "matcher command required")
	}
	if prompt == "" {
		return "", qalink.Errorf(qalink.EINVALID, "prompt required")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	args := append(slices.Clone(m.args), prompt)
	cmd := exec.CommandContext(ctx, m.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", qalink.Errorf(qalink.EUNAVAILABLE, "matching tool timed out")
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", qalink.Errorf(qalink.EUNAVAILABLE, "matching tool failed: %s", detail)
	}

	return strings.TrimSpace(stdout.String()), nil
}
