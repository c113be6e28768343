// Package hooks manages hook scripts in the hooks directory.
//
// A hook's state is never cached: every call re-derives it from the files on
// disk (see Classify). Once a hook has been installed, some file always exists
// at its active path, because the host runtime treats a missing file as a fatal
// lookup error. Disable therefore swaps in a stub instead of renaming the hook
// away.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	herrors "github.com/randalmurphal/claude-hooks/internal/errors"
	"github.com/randalmurphal/claude-hooks/internal/fsutil"
	"github.com/randalmurphal/claude-hooks/internal/lock"
	"github.com/randalmurphal/claude-hooks/internal/registry"
	"github.com/randalmurphal/claude-hooks/templates"
)

// HookMode is the permission set for active hooks and stubs.
const HookMode os.FileMode = 0o755

// Service manages the hooks in one directory.
type Service struct {
	dir    string
	locker lock.Locker
	logger *slog.Logger

	// writeFile writes stubs and scaffolds; replaced in tests to inject faults.
	writeFile func(path string, data []byte, perm os.FileMode) error
}

// Option configures a Service.
type Option func(*Service)

// WithLocker sets the lock taken around mutations.
func WithLocker(l lock.Locker) Option {
	return func(s *Service) { s.locker = l }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a service for dir. Without WithLocker, mutations take
// a DirLock on the directory with the default timeout.
func NewService(dir string, opts ...Option) *Service {
	s := &Service{
		dir:       dir,
		logger:    slog.Default(),
		writeFile: fsutil.AtomicWriteFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.locker == nil {
		s.locker = lock.NewDirLock(dir, lock.DefaultTimeout, s.logger)
	}
	return s
}

// Dir returns the hooks directory.
func (s *Service) Dir() string {
	return s.dir
}

// Paths returns the file paths for name.
func (s *Service) Paths(name string) Paths {
	return PathsFor(s.dir, name)
}

func (s *Service) snapshot(name string) (Paths, Snapshot, error) {
	p := s.Paths(name)
	var snap Snapshot
	var err error

	if snap.ActiveExists, err = fsutil.Exists(p.Active); err != nil {
		return p, snap, herrors.ErrFilesystem("stat", p.Active, err)
	}
	if snap.ActiveExists {
		if snap.ActiveIsStub, err = isStubFile(p.Active); err != nil {
			return p, snap, herrors.ErrFilesystem("read", p.Active, err)
		}
	}
	if snap.BackupExists, err = fsutil.Exists(p.Backup); err != nil {
		return p, snap, herrors.ErrFilesystem("stat", p.Backup, err)
	}
	if snap.LegacyExists, err = fsutil.Exists(p.Legacy); err != nil {
		return p, snap, herrors.ErrFilesystem("stat", p.Legacy, err)
	}
	return p, snap, nil
}

// QueryState returns the current state of name. It has no side effects.
func (s *Service) QueryState(name string) (State, error) {
	if !registry.ValidName(name) {
		return StateAbsent, herrors.ErrHookNameInvalid(name)
	}
	_, snap, err := s.snapshot(name)
	if err != nil {
		return StateAbsent, err
	}
	return Classify(snap), nil
}

// Status is a hook's state together with the evidence it was derived from.
type Status struct {
	Name     string   `json:"name"`
	State    State    `json:"state"`
	Paths    Paths    `json:"paths"`
	Files    Snapshot `json:"files"`
	Legacy   bool     `json:"legacy,omitempty"`
	Problem  string   `json:"problem,omitempty"`
	Editable string   `json:"editable,omitempty"`
}

// Status returns the state of name plus a note for inconsistent layouts.
func (s *Service) Status(name string) (*Status, error) {
	if !registry.ValidName(name) {
		return nil, herrors.ErrHookNameInvalid(name)
	}
	p, snap, err := s.snapshot(name)
	if err != nil {
		return nil, err
	}
	st := &Status{
		Name:   name,
		State:  Classify(snap),
		Paths:  p,
		Files:  snap,
		Legacy: snap.LegacyExists && !snap.ActiveExists && !snap.BackupExists,
	}
	st.Problem = problem(snap)
	st.Editable = editable(p, snap)
	return st, nil
}

func problem(snap Snapshot) string {
	switch {
	case snap.BackupExists && !snap.ActiveExists:
		return "disable was interrupted: the original is in the backup file and nothing is at the active path (run enable)"
	case snap.BackupExists && !snap.ActiveIsStub:
		return "both the active file and the backup hold real logic"
	case snap.ActiveIsStub && !snap.BackupExists && !snap.LegacyExists:
		return "the active file is a stub but the original implementation is missing"
	case snap.LegacyExists && (snap.ActiveExists || snap.BackupExists):
		return "a leftover .disabled file from an older release sits next to the hook"
	}
	return ""
}

// editable is the file holding the real logic, or "" when there is none.
func editable(p Paths, snap Snapshot) string {
	switch {
	case snap.ActiveExists && !snap.ActiveIsStub:
		return p.Active
	case snap.BackupExists:
		return p.Backup
	case snap.LegacyExists:
		return p.Legacy
	}
	return ""
}

// DiskNames returns the names of all hooks with at least one file in the
// directory. Hidden files, temp files and names that are not kebab-case
// are skipped.
func (s *Service) DiskNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, herrors.ErrFilesystem("read directory", s.dir, err)
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := nameFromFile(entry.Name())
		if !ok {
			continue
		}
		if !registry.ValidName(name) {
			s.logger.Debug("skipping hook file with unsupported name", "file", entry.Name())
			continue
		}
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Entry is one row of List.
type Entry struct {
	Status
	Descriptor registry.Descriptor `json:"descriptor"`
	Registered bool                `json:"registered"`
}

// List returns the status of every hook in reg followed by hooks found on
// disk that reg does not know about.
func (s *Service) List(reg *registry.Registry) ([]Entry, error) {
	onDisk, err := s.DiskNames()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, reg.Len()+len(onDisk))
	for _, d := range reg.All() {
		st, err := s.Status(d.Name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Status: *st, Descriptor: d, Registered: true})
	}
	for _, name := range onDisk {
		if _, ok := reg.Lookup(name); ok {
			continue
		}
		st, err := s.Status(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Status: *st, Descriptor: registry.Descriptor{Name: name}})
	}
	return entries, nil
}

// check inspects a snapshot and refuses the transition, or returns nil.
type check func(p Paths, snap Snapshot) error

// apply performs the transition. The snapshot was taken under the lock.
type apply func(p Paths, snap Snapshot) error

// transition runs check without the lock so rejected requests touch nothing,
// then takes the lock and runs check again before apply.
func (s *Service) transition(ctx context.Context, action, name string, chk check, do apply) error {
	if !registry.ValidName(name) {
		return herrors.ErrHookNameInvalid(name)
	}
	p, snap, err := s.snapshot(name)
	if err != nil {
		return err
	}
	if err := chk(p, snap); err != nil {
		return err
	}

	release, err := s.acquire(ctx, action+" "+name)
	if err != nil {
		return err
	}
	defer release()

	p, snap, err = s.snapshot(name)
	if err != nil {
		return err
	}
	if err := chk(p, snap); err != nil {
		return err
	}
	return do(p, snap)
}

func (s *Service) acquire(ctx context.Context, action string) (func(), error) {
	release, err := s.locker.Acquire(ctx, action)
	if err == nil {
		return release, nil
	}
	var te *lock.TimeoutError
	if errors.As(err, &te) {
		he := herrors.ErrLockTimeout(te.Path, te.Timeout.String())
		if te.Holder != nil {
			he = he.WithFix(fmt.Sprintf("Process %d is running %q", te.Holder.PID, te.Holder.Action))
		}
		return nil, he.WithCause(err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, herrors.ErrFilesystem("lock", s.dir, err)
}

// Disable moves the implementation of name to its backup path and writes a
// stub in its place. A stub write failure after the move is reported as
// HOOK_PARTIAL_DISABLE; the original is never deleted.
func (s *Service) Disable(ctx context.Context, name string) error {
	stub, err := RenderStub(name)
	if err != nil {
		return herrors.Wrap(err, "cannot render disabled stub")
	}
	return s.transition(ctx, "disable", name, s.checkDisable(name), func(p Paths, _ Snapshot) error {
		if err := os.Rename(p.Active, p.Backup); err != nil {
			return herrors.ErrFilesystem("rename", p.Active, err)
		}
		if err := s.writeFile(p.Active, stub, HookMode); err != nil {
			s.logger.Error("stub write failed after rename", "hook", name, "backup", p.Backup, "error", err)
			return herrors.ErrHookPartialDisable(name, p.Active, p.Backup).WithCause(err)
		}
		s.logger.Debug("disabled hook", "hook", name, "backup", p.Backup)
		return nil
	})
}

func (s *Service) checkDisable(name string) check {
	return func(p Paths, snap Snapshot) error {
		switch {
		case Classify(snap) == StateAbsent:
			return herrors.ErrHookNotFound(name, s.dir)
		case snap.BackupExists && !snap.ActiveExists:
			return herrors.ErrHookDisableIncomplete(name, p.Active, p.Backup)
		case snap.BackupExists && !snap.ActiveIsStub:
			return herrors.ErrHookBackupConflict(name, p.Active, p.Backup)
		case Classify(snap) == StateDisabled:
			return herrors.ErrHookAlreadyDisabled(name)
		}
		return nil
	}
}

// Enable moves the backup of name (or a legacy .disabled file) back over
// the stub at the active path.
func (s *Service) Enable(ctx context.Context, name string) error {
	return s.transition(ctx, "enable", name, s.checkEnable(name), func(p Paths, snap Snapshot) error {
		src := p.Backup
		if !snap.BackupExists {
			src = p.Legacy
		}

		// Rename replaces the stub in one step.
		if err := os.Rename(src, p.Active); err != nil {
			return herrors.ErrFilesystem("rename", src, err)
		}

		if src == p.Legacy {
			if err := ensureExecutable(p.Active); err != nil {
				s.logger.Warn("restored legacy hook is not executable", "path", p.Active, "error", err)
			}
		}
		s.logger.Debug("enabled hook", "hook", name, "from", src)
		return nil
	})
}

func (s *Service) checkEnable(name string) check {
	return func(p Paths, snap Snapshot) error {
		switch {
		case Classify(snap) == StateAbsent:
			return herrors.ErrHookNotFound(name, s.dir)
		case snap.BackupExists && snap.ActiveExists && !snap.ActiveIsStub:
			return herrors.ErrHookBackupConflict(name, p.Active, p.Backup)
		case Classify(snap) == StateActive:
			return herrors.ErrHookAlreadyEnabled(name)
		case !snap.BackupExists && !snap.LegacyExists:
			return herrors.ErrHookBackupMissing(name, p.Backup)
		}
		return nil
	}
}

func ensureExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fsutil.IsExecutable(info.Mode()) {
		return nil
	}
	return os.Chmod(path, HookMode)
}

// Remove deletes every file of name that exists and returns the removed
// paths. Missing files are not an error; removing an absent hook is a no-op.
// Callers confirm with the operator first.
func (s *Service) Remove(ctx context.Context, name string) ([]string, error) {
	var removed []string
	chk := func(_ Paths, snap Snapshot) error {
		if Classify(snap) == StateAbsent {
			return errNothingToRemove
		}
		return nil
	}
	err := s.transition(ctx, "remove", name, chk, func(p Paths, _ Snapshot) error {
		var errs []error
		for _, path := range []string{p.Active, p.Backup, p.Legacy} {
			ok, err := fsutil.RemoveIfExists(path)
			if err != nil {
				errs = append(errs, herrors.ErrFilesystem("remove", path, err))
				continue
			}
			if ok {
				removed = append(removed, path)
			}
		}
		s.logger.Debug("removed hook", "hook", name, "files", removed)
		return errors.Join(errs...)
	})
	if errors.Is(err, errNothingToRemove) {
		return nil, nil
	}
	return removed, err
}

var errNothingToRemove = errors.New("nothing to remove")

// Install copies <sourceDir>/<name>.py to the active path. An existing hook
// is only replaced with force, in which case its backup and legacy files are
// deleted too so no stale original survives.
func (s *Service) Install(ctx context.Context, name, sourceDir string, force bool) error {
	src := PathsFor(sourceDir, name).Active
	if ok, err := fsutil.Exists(src); err != nil {
		return herrors.ErrFilesystem("stat", src, err)
	} else if !ok {
		return herrors.ErrHookNotFound(name, sourceDir)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return herrors.ErrFilesystem("create directory", s.dir, err)
	}

	chk := func(_ Paths, snap Snapshot) error {
		if st := Classify(snap); st != StateAbsent && !force {
			return herrors.ErrHookExists(name, st.String())
		}
		return nil
	}
	return s.transition(ctx, "install", name, chk, func(p Paths, snap Snapshot) error {
		// Stale originals are dropped only after the copy succeeded.
		if err := fsutil.CopyFile(src, p.Active, HookMode); err != nil {
			return herrors.ErrFilesystem("copy", src, err)
		}
		for _, stale := range []string{p.Backup, p.Legacy} {
			if _, err := fsutil.RemoveIfExists(stale); err != nil {
				return herrors.ErrFilesystem("remove", stale, err)
			}
		}
		s.logger.Debug("installed hook", "hook", name, "from", src, "replaced", Classify(snap) != StateAbsent)
		return nil
	})
}

var toolPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Create writes a new hook scaffold for d and records d in the overlay
// registry at overlayPath (skipped when overlayPath is empty). If the
// overlay cannot be updated the scaffold is removed again.
func (s *Service) Create(ctx context.Context, d registry.Descriptor, overlayPath string) (string, error) {
	if !registry.ValidName(d.Name) {
		return "", herrors.ErrHookNameInvalid(d.Name)
	}
	if !registry.ValidEvent(d.Event) {
		return "", herrors.ErrRegistryInvalid(overlayPath, fmt.Sprintf("unknown event %q", d.Event))
	}
	for _, tool := range d.Tools {
		if !toolPattern.MatchString(tool) {
			return "", herrors.ErrRegistryInvalid(overlayPath, fmt.Sprintf("invalid tool name %q", tool))
		}
	}
	if _, builtin := registry.Builtin().Lookup(d.Name); builtin {
		return "", herrors.ErrRegistryInvalid(overlayPath,
			fmt.Sprintf("%s is a built-in hook; use 'claude-hooks install %s'", d.Name, d.Name))
	}

	data := struct {
		Name        string
		Event       registry.Event
		Tools       []string
		Description string
	}{
		Name:        d.Name,
		Event:       d.Event,
		Tools:       d.Tools,
		Description: sanitizeDocstring(d.Description),
	}
	if data.Description == "" {
		data.Description = d.Name + " hook"
	}
	script, err := templates.Render("new_hook.py.tmpl", data)
	if err != nil {
		return "", herrors.Wrap(err, "cannot render hook scaffold")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", herrors.ErrFilesystem("create directory", s.dir, err)
	}

	chk := func(_ Paths, snap Snapshot) error {
		if st := Classify(snap); st != StateAbsent {
			return herrors.ErrHookExists(d.Name, st.String())
		}
		return nil
	}
	var created string
	err = s.transition(ctx, "create", d.Name, chk, func(p Paths, _ Snapshot) error {
		if err := s.writeFile(p.Active, script, HookMode); err != nil {
			return herrors.ErrFilesystem("write", p.Active, err)
		}
		if overlayPath != "" {
			if err := registry.AppendOverlay(overlayPath, d); err != nil {
				if _, rmErr := fsutil.RemoveIfExists(p.Active); rmErr != nil {
					s.logger.Warn("could not remove scaffold", "path", p.Active, "error", rmErr)
				}
				return herrors.ErrRegistryInvalid(overlayPath, err.Error())
			}
		}
		created = p.Active
		s.logger.Debug("created hook", "hook", d.Name, "path", p.Active)
		return nil
	})
	return created, err
}

func sanitizeDocstring(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"""`, `\"\"\"`)
}

// EditablePath returns the file holding the real logic of name: the backup
// while disabled, the active file otherwise.
func (s *Service) EditablePath(name string) (string, State, error) {
	st, err := s.Status(name)
	if err != nil {
		return "", StateAbsent, err
	}
	switch {
	case st.State == StateAbsent:
		return "", st.State, herrors.ErrHookNotFound(name, s.dir)
	case st.Editable == "":
		return "", st.State, herrors.ErrHookBackupMissing(name, st.Paths.Backup)
	}
	return st.Editable, st.State, nil
}
