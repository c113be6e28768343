// Package settings edits the hook registrations in the host's settings.json.
//
// The file is owned by the host, so everything claude-hooks does not manage is
// kept as-is: unknown top-level keys, other hooks and extra fields on matcher
// entries all survive a load/save cycle.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/fsutil"
	"github.com/randalmurphal/claude-hooks/internal/registry"
)

const defaultMode os.FileMode = 0o644

// File is a loaded settings.json.
type File struct {
	path string
	mode os.FileMode
	data map[string]any
}

// Command returns the command line registered for a hook script.
func Command(python, scriptPath string) string {
	if python == "" {
		return scriptPath
	}
	return python + " " + scriptPath
}

// Load reads path. A missing file yields an empty document that Save
// will create.
func Load(path string) (*File, error) {
	f := &File{path: path, mode: defaultMode, data: map[string]any{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, herrors.ErrFilesystem("read", path, err)
	}
	if info, err := os.Stat(path); err == nil {
		f.mode = info.Mode().Perm()
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &f.data); err != nil {
			return nil, herrors.ErrSettingsInvalid(path, err)
		}
		if f.data == nil {
			return nil, herrors.ErrSettingsInvalid(path, errors.New("top level is not an object"))
		}
	}
	if err := f.validate(); err != nil {
		return nil, herrors.ErrSettingsInvalid(path, err)
	}
	return f, nil
}

// validate checks that the hooks section has the layout this package edits.
func (f *File) validate() error {
	raw, ok := f.data["hooks"]
	if !ok {
		return nil
	}
	events, ok := raw.(map[string]any)
	if !ok {
		return errors.New("\"hooks\" is not an object")
	}
	for event, v := range events {
		groups, ok := v.([]any)
		if !ok {
			return fmt.Errorf("hooks.%s is not a list", event)
		}
		for i, g := range groups {
			group, ok := g.(map[string]any)
			if !ok {
				return fmt.Errorf("hooks.%s[%d] is not an object", event, i)
			}
			if _, ok := group["hooks"].([]any); !ok && group["hooks"] != nil {
				return fmt.Errorf("hooks.%s[%d].hooks is not a list", event, i)
			}
		}
	}
	return nil
}

// Path returns the settings file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) events() map[string]any {
	events, _ := f.data["hooks"].(map[string]any)
	if events == nil {
		events = make(map[string]any)
		f.data["hooks"] = events
	}
	return events
}

// Register adds command under d's event with a matcher built from d's tools.
// It reports false when an identical entry already exists.
func (f *File) Register(d registry.Descriptor, command string) bool {
	event := string(d.Event)
	matcher := strings.Join(d.Tools, "|")
	events := f.events()
	groups, _ := events[event].([]any)

	for _, g := range groups {
		group := g.(map[string]any)
		entries, _ := group["hooks"].([]any)
		for _, e := range entries {
			if entry, ok := e.(map[string]any); ok && entry["command"] == command {
				return false
			}
		}
	}

	entry := map[string]any{"type": "command", "command": command}
	for _, g := range groups {
		group := g.(map[string]any)
		if m, _ := group["matcher"].(string); m == matcher {
			entries, _ := group["hooks"].([]any)
			group["hooks"] = append(entries, entry)
			return true
		}
	}

	group := map[string]any{"hooks": []any{entry}}
	if matcher != "" {
		group["matcher"] = matcher
	}
	events[event] = append(groups, group)
	return true
}

// Unregister removes every entry whose command references scriptPath and
// drops matcher groups and events left empty. It returns the number of
// entries removed.
func (f *File) Unregister(scriptPath string) int {
	events, _ := f.data["hooks"].(map[string]any)
	removed := 0

	for event, v := range events {
		groups, _ := v.([]any)
		kept := groups[:0]
		for _, g := range groups {
			group := g.(map[string]any)
			entries, _ := group["hooks"].([]any)
			keptEntries := make([]any, 0, len(entries))
			for _, e := range entries {
				if entry, ok := e.(map[string]any); ok && references(entry, scriptPath) {
					removed++
					continue
				}
				keptEntries = append(keptEntries, e)
			}
			if len(keptEntries) == 0 && len(entries) > 0 {
				continue
			}
			if len(entries) > 0 {
				group["hooks"] = keptEntries
			}
			kept = append(kept, group)
		}
		if len(kept) == 0 {
			delete(events, event)
		} else {
			events[event] = kept
		}
	}
	if events != nil && len(events) == 0 {
		delete(f.data, "hooks")
	}
	return removed
}

func references(entry map[string]any, scriptPath string) bool {
	cmd, _ := entry["command"].(string)
	return commandReferences(cmd, scriptPath)
}

// commandReferences reports whether cmd runs scriptPath. Commands written
// with ~ or $HOME are expanded before comparing.
func commandReferences(cmd, scriptPath string) bool {
	if cmd == "" || scriptPath == "" {
		return false
	}
	return strings.Contains(cmd, scriptPath) || strings.Contains(expandHome(cmd), scriptPath)
}

// expandHome replaces ~ at the start of a word and $HOME / ${HOME} with the
// home directory. Other variables are left as written.
func expandHome(cmd string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return cmd
	}
	fields := strings.Fields(cmd)
	for i, f := range fields {
		quote := ""
		if len(f) > 0 && (f[0] == '"' || f[0] == '\'') {
			quote, f = f[:1], f[1:]
		}
		if f == "~" || strings.HasPrefix(f, "~/") {
			f = home + f[1:]
		}
		f = strings.ReplaceAll(f, "${HOME}", home)
		f = strings.ReplaceAll(f, "$HOME", home)
		fields[i] = quote + f
	}
	return strings.Join(fields, " ")
}

// Bytes returns the document as indented JSON.
func (f *File) Bytes() ([]byte, error) {
	out, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return append(out, '\n'), nil
}

// Save writes the document back atomically, keeping the file's mode.
func (f *File) Save() error {
	out, err := f.Bytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return herrors.ErrFilesystem("create directory", filepath.Dir(f.path), err)
	}
	if err := fsutil.AtomicWriteFile(f.path, out, f.mode); err != nil {
		return herrors.ErrFilesystem("write", f.path, err)
	}
	return nil
}

// Registration is one place a script is registered.
type Registration struct {
	Event   string `json:"event"`
	Matcher string `json:"matcher,omitempty"`
	Command string `json:"command"`
}

// Registrations lists the entries in the document that reference scriptPath.
func (f *File) Registrations(scriptPath string) ([]Registration, error) {
	out, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	return Registrations(out, scriptPath), nil
}

// Registrations scans raw settings JSON for entries whose command references
// scriptPath. Malformed input yields no registrations.
func Registrations(raw []byte, scriptPath string) []Registration {
	var regs []Registration
	gjson.GetBytes(raw, "hooks").ForEach(func(event, groups gjson.Result) bool {
		groups.ForEach(func(_, group gjson.Result) bool {
			matcher := group.Get("matcher").String()
			group.Get("hooks").ForEach(func(_, entry gjson.Result) bool {
				cmd := entry.Get("command").String()
				if commandReferences(cmd, scriptPath) {
					regs = append(regs, Registration{Event: event.String(), Matcher: matcher, Command: cmd})
				}
				return true
			})
			return true
		})
		return true
	})
	return regs
}
