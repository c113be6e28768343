package hooks

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/randalmurphal/claude-hooks/templates"
)

// State is the derived on-disk state of a hook.
type State int

const (
	StateAbsent State = iota
	StateActive
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	default:
		return "absent"
	}
}

// MarshalText renders the state by name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "absent":
		*s = StateAbsent
	case "active":
		*s = StateActive
	case "disabled":
		*s = StateDisabled
	default:
		return fmt.Errorf("unknown hook state %q", text)
	}
	return nil
}

// Snapshot records which of a hook's files exist.
type Snapshot struct {
	ActiveExists bool `json:"active_exists"`
	ActiveIsStub bool `json:"active_is_stub"`
	BackupExists bool `json:"backup_exists"`
	LegacyExists bool `json:"legacy_exists"`
}

// Classify maps a snapshot to a state. Each branch is one on-disk
// convention; the function never touches the filesystem.
func Classify(s Snapshot) State {
	switch {
	case s.BackupExists:
		// Stub plus backup, or an interrupted disable.
		return StateDisabled
	case s.ActiveExists && s.ActiveIsStub:
		return StateDisabled
	case s.ActiveExists:
		return StateActive
	case s.LegacyExists:
		// Legacy: <name>.py.disabled with nothing at the active path.
		return StateDisabled
	default:
		return StateAbsent
	}
}

// StubMarker identifies a file written by Disable.
const StubMarker = "# claude-hooks: disabled-stub"

const (
	stubScanLines = 10
	stubScanBytes = 4096
)

// IsStub reports whether the content read from r carries the stub marker in
// its first lines.
func IsStub(r io.Reader) (bool, error) {
	head, err := io.ReadAll(io.LimitReader(r, stubScanBytes))
	if err != nil {
		return false, err
	}
	for i, line := range bytes.SplitN(head, []byte("\n"), stubScanLines+1) {
		if i == stubScanLines {
			break
		}
		if strings.TrimSpace(string(line)) == StubMarker {
			return true, nil
		}
	}
	return false, nil
}

func isStubFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return IsStub(f)
}

// RenderStub returns the placeholder script written at the active path of a
// disabled hook. It drains stdin, reports itself on stderr and exits 0.
func RenderStub(name string) ([]byte, error) {
	out, err := templates.Render("stub.py.tmpl", struct{ Name string }{Name: name})
	if err != nil {
		return nil, fmt.Errorf("render stub for %s: %w", name, err)
	}
	return out, nil
}
