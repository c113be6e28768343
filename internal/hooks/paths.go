package hooks

import (
	"path/filepath"
	"strings"
)

// File name conventions inside the hooks directory. The host runtime invokes
// <name>.py, so the extension is fixed.
const (
	Ext          = ".py"
	BackupSuffix = ".original"
	LegacySuffix = ".disabled" // written by older releases; read-only
)

// Paths are the files that can make up one hook.
type Paths struct {
	Active string `json:"active"`
	Backup string `json:"backup"`
	Legacy string `json:"legacy"`
}

// PathsFor returns the hook file paths for name in dir.
func PathsFor(dir, name string) Paths {
	active := filepath.Join(dir, name+Ext)
	return Paths{
		Active: active,
		Backup: active + BackupSuffix,
		Legacy: active + LegacySuffix,
	}
}

// nameFromFile maps a directory entry to the hook it belongs to.
func nameFromFile(file string) (string, bool) {
	if strings.HasPrefix(file, ".") {
		return "", false
	}
	for _, suffix := range []string{Ext, Ext + BackupSuffix, Ext + LegacySuffix} {
		if name, ok := strings.CutSuffix(file, suffix); ok && name != "" {
			return name, true
		}
	}
	return "", false
}
