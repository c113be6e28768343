package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hook.py")
	content := []byte("print('hi')\n")

	if err := AtomicWriteFile(path, content, 0o755); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("content mismatch: got %q, want %q", data, content)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("permissions mismatch: got %o, want %o", info.Mode().Perm(), 0o755)
	}
}

func TestAtomicWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "hook.py")

	if err := AtomicWriteFile(path, []byte("x"), 0o644); err == nil {
		t.Fatal("expected error when the directory does not exist")
	}
}

func TestAtomicWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	if err := AtomicWriteFile(path, []byte("initial"), 0o644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0o600); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "updated" {
		t.Errorf("content mismatch: got %q, want %q", data, "updated")
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("permissions mismatch: got %o, want %o", info.Mode().Perm(), 0o600)
	}
}

func TestAtomicWriteFile_NoTempFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hook.py")

	if err := AtomicWriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "hook.py" {
			t.Errorf("unexpected file in directory: %s", entry.Name())
		}
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.py")
	dst := filepath.Join(dir, "dst.py")
	if err := os.WriteFile(src, []byte("body"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst, 0o755); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "body" {
		t.Errorf("content = %q, want %q", data, "body")
	}
	info, _ := os.Stat(dst)
	if !IsExecutable(info.Mode()) {
		t.Errorf("mode %o should be executable", info.Mode().Perm())
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "nope.py"), filepath.Join(dir, "dst.py"), 0o755); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestExistsAndRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")

	ok, err := Exists(path)
	if err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}

	removed, err := RemoveIfExists(path)
	if err != nil || removed {
		t.Fatalf("RemoveIfExists(missing) = %v, %v", removed, err)
	}

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	ok, err = Exists(path)
	if err != nil || !ok {
		t.Fatalf("Exists(present) = %v, %v", ok, err)
	}

	removed, err = RemoveIfExists(path)
	if err != nil || !removed {
		t.Fatalf("RemoveIfExists(present) = %v, %v", removed, err)
	}
}

func TestIsExecutable(t *testing.T) {
	tests := []struct {
		mode os.FileMode
		want bool
	}{
		{0o755, true},
		{0o700, true},
		{0o644, false},
		{0o600, false},
		{0o001, true},
	}
	for _, tt := range tests {
		if got := IsExecutable(tt.mode); got != tt.want {
			t.Errorf("IsExecutable(%o) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
