// Package registry holds the hook descriptors known to claude-hooks.
//
// The built-in set is compiled into the binary. A user overlay file
// (registry.toml) may add descriptors for hooks created locally; it is read
// once at start-up and the resulting Registry is never mutated afterwards.
package registry

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/sahilm/fuzzy"
)

// Event is the host lifecycle event a hook is registered for.
// It is informational: the state controller never enforces it.
type Event string

const (
	EventPreToolUse       Event = "PreToolUse"
	EventPostToolUse      Event = "PostToolUse"
	EventSessionStart     Event = "SessionStart"
	EventPreCompact       Event = "PreCompact"
	EventUserPromptSubmit Event = "UserPromptSubmit"
	EventNotification     Event = "Notification"
	EventStop             Event = "Stop"
	EventSubagentStop     Event = "SubagentStop"
)

// EventOrder is the display order used when grouping hooks by event.
var EventOrder = []Event{
	EventPreToolUse,
	EventPostToolUse,
	EventSessionStart,
	EventPreCompact,
	EventUserPromptSubmit,
	EventNotification,
	EventStop,
	EventSubagentStop,
}

// ValidEvent reports whether e is a known host event.
func ValidEvent(e Event) bool {
	for _, known := range EventOrder {
		if e == known {
			return true
		}
	}
	return false
}

// Descriptor describes one hook.
type Descriptor struct {
	Name        string   `toml:"-" json:"name"`
	Event       Event    `toml:"event" json:"event,omitempty"`
	Tools       []string `toml:"tools,omitempty" json:"tools,omitempty"` // empty means every tool
	Description string   `toml:"description" json:"description,omitempty"`
}

// AllTools reports whether the hook applies to every tool.
func (d Descriptor) AllTools() bool {
	return len(d.Tools) == 0
}

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidName reports whether name is lowercase kebab-case.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Registry is an immutable set of descriptors keyed by name.
type Registry struct {
	byName  map[string]Descriptor
	sources map[string]string
	names   []string
}

// New builds a registry from descriptors, rejecting invalid or duplicate names.
func New(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]Descriptor, len(descs)),
		sources: make(map[string]string, len(descs)),
	}
	for _, d := range descs {
		if err := r.add(d, SourceBuiltin); err != nil {
			return nil, err
		}
	}
	r.sortNames()
	return r, nil
}

// SourceBuiltin marks descriptors compiled into the binary.
const SourceBuiltin = "builtin"

func (r *Registry) add(d Descriptor, source string) error {
	if !ValidName(d.Name) {
		return fmt.Errorf("hook name %q is not kebab-case", d.Name)
	}
	if _, dup := r.byName[d.Name]; dup {
		return fmt.Errorf("hook %q is defined more than once (%s and %s)", d.Name, r.sources[d.Name], source)
	}
	if d.Event != "" && !ValidEvent(d.Event) {
		return fmt.Errorf("hook %q has unknown event %q", d.Name, d.Event)
	}
	r.byName[d.Name] = d
	r.sources[d.Name] = source
	return nil
}

func (r *Registry) sortNames() {
	r.names = make([]string, 0, len(r.byName))
	for name := range r.byName {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Source returns where a descriptor came from: SourceBuiltin or an overlay path.
func (r *Registry) Source(name string) string {
	return r.sources[name]
}

// Names returns all hook names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// All returns all descriptors sorted by name.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of descriptors.
func (r *Registry) Len() int {
	return len(r.names)
}

// Suggest returns up to three known names that fuzzily match name, best first.
// Extra candidates (for example hook files found on disk) are considered too.
func (r *Registry) Suggest(name string, extra ...string) []string {
	seen := make(map[string]bool, len(r.names)+len(extra))
	candidates := make([]string, 0, len(r.names)+len(extra))
	for _, c := range append(r.Names(), extra...) {
		if !seen[c] && c != name {
			seen[c] = true
			candidates = append(candidates, c)
		}
	}

	matches := fuzzy.Find(name, candidates)
	out := make([]string, 0, 3)
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}
