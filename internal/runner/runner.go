// Package runner executes hook scripts the way the host does: a JSON payload
// on stdin, the verdict in the exit code.
package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/randalmurphal/claude-hooks/internal/registry"
)

const defaultTimeout = 10 * time.Second

// ExitBlock is the exit status with which a hook blocks the tool call.
const ExitBlock = 2

// Result holds the outcome of one hook run.
type Result struct {
	ExitCode int           `json:"exit_code"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Blocked  bool          `json:"blocked"`
	Duration time.Duration `json:"duration"`
}

// Passed reports whether the hook allowed the call.
func (r *Result) Passed() bool {
	return r.ExitCode == 0
}

// Runner runs hook scripts with an interpreter.
type Runner struct {
	logger  *slog.Logger
	python  string
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-run timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithInterpreter sets the program used to run scripts. An empty
// interpreter executes the script directly.
func WithInterpreter(python string) Option {
	return func(r *Runner) {
		r.python = python
	}
}

// New creates a Runner that uses python3 by default.
func New(logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		logger:  logger,
		python:  "python3",
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes scriptPath with payload on stdin. A non-zero exit is reported
// in the Result, not as an error; errors are reserved for failures to run
// the script at all (missing interpreter, timeout, cancellation).
func (r *Runner) Run(ctx context.Context, scriptPath, payload string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var cmd *exec.Cmd
	if r.python != "" {
		cmd = exec.CommandContext(ctx, r.python, scriptPath)
	} else {
		cmd = exec.CommandContext(ctx, scriptPath)
	}
	cmd.Stdin = strings.NewReader(payload)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running hook", "path", scriptPath, "interpreter", r.python)

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("run hook %s: %w", scriptPath, ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			result.Blocked = result.ExitCode == ExitBlock
			return result, nil
		}
		return nil, fmt.Errorf("run hook %s: %w", scriptPath, err)
	}
	return result, nil
}

// SamplePayload builds a harmless payload of the shape the host sends to d.
func SamplePayload(d registry.Descriptor) string {
	payload := map[string]any{
		"session_id":      "claude-hooks-test",
		"hook_event_name": string(d.Event),
	}

	switch d.Event {
	case registry.EventPreToolUse, registry.EventPostToolUse:
		tool := "Bash"
		if len(d.Tools) > 0 {
			tool = d.Tools[0]
		}
		payload["tool_name"] = tool
		payload["tool_input"] = sampleToolInput(tool)
	case registry.EventStop, registry.EventSubagentStop:
		payload["stop_hook_active"] = true
		payload["transcript_path"] = "/tmp/claude-hooks-test.jsonl"
	case registry.EventUserPromptSubmit:
		payload["prompt"] = "hello"
	case registry.EventPreCompact:
		payload["trigger"] = "manual"
	}

	out, _ := json.Marshal(payload)
	return string(out)
}

func sampleToolInput(tool string) map[string]any {
	switch {
	case tool == "Bash":
		return map[string]any{"command": "ls -la", "description": "List files"}
	case tool == "Write":
		return map[string]any{"file_path": "test.js", "content": "const x = 1\n"}
	case tool == "Edit" || tool == "MultiEdit":
		return map[string]any{"file_path": "test.js", "old_string": "const x = 1", "new_string": "const x = 2"}
	case strings.HasPrefix(tool, "mcp__"):
		return map[string]any{"title": "Test Task"}
	default:
		return map[string]any{}
	}
}
