package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/randalmurphal/claude-hooks/internal/fsutil"
)

// overlayFile is the on-disk layout of registry.toml:
//
//	[hooks.my-hook]
//	event = "PreToolUse"
//	tools = ["Bash"]
//	description = "..."
type overlayFile struct {
	Hooks map[string]Descriptor `toml:"hooks"`
}

// Load returns the built-in registry extended with the descriptors in
// overlayPath. A missing overlay file is not an error.
func Load(overlayPath string) (*Registry, error) {
	r := Builtin()
	if overlayPath == "" {
		return r, nil
	}

	overlay, err := readOverlay(overlayPath)
	if err != nil {
		return nil, err
	}
	for name, d := range overlay.Hooks {
		d.Name = name
		if err := r.add(d, overlayPath); err != nil {
			return nil, err
		}
	}
	r.sortNames()
	return r, nil
}

func readOverlay(path string) (*overlayFile, error) {
	overlay := &overlayFile{Hooks: map[string]Descriptor{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return overlay, nil
		}
		return nil, fmt.Errorf("read registry overlay: %w", err)
	}

	if _, err := toml.Decode(string(data), overlay); err != nil {
		return nil, fmt.Errorf("parse registry overlay %s: %w", path, err)
	}
	if overlay.Hooks == nil {
		overlay.Hooks = map[string]Descriptor{}
	}
	return overlay, nil
}

func writeOverlay(path string, overlay *overlayFile) error {
	var buf bytes.Buffer
	buf.WriteString("# Hooks created with 'claude-hooks create'.\n\n")
	if err := toml.NewEncoder(&buf).Encode(overlay); err != nil {
		return fmt.Errorf("encode registry overlay: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create registry directory: %w", err)
	}
	return fsutil.AtomicWriteFile(path, buf.Bytes(), 0o644)
}

// AppendOverlay records d in the overlay file at path. It refuses names that
// are already built in or already present in the overlay.
func AppendOverlay(path string, d Descriptor) error {
	if !ValidName(d.Name) {
		return fmt.Errorf("hook name %q is not kebab-case", d.Name)
	}
	if d.Event != "" && !ValidEvent(d.Event) {
		return fmt.Errorf("unknown event %q", d.Event)
	}
	if _, ok := Builtin().Lookup(d.Name); ok {
		return fmt.Errorf("hook %q is a built-in hook", d.Name)
	}

	overlay, err := readOverlay(path)
	if err != nil {
		return err
	}
	if _, dup := overlay.Hooks[d.Name]; dup {
		return fmt.Errorf("hook %q is already in %s", d.Name, path)
	}

	overlay.Hooks[d.Name] = d
	return writeOverlay(path, overlay)
}

// RemoveOverlay drops name from the overlay file. It reports whether an
// entry was removed; a missing file or entry is not an error.
func RemoveOverlay(path, name string) (bool, error) {
	overlay, err := readOverlay(path)
	if err != nil {
		return false, err
	}
	if _, ok := overlay.Hooks[name]; !ok {
		return false, nil
	}
	delete(overlay.Hooks, name)
	return true, writeOverlay(path, overlay)
}
