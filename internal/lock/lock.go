// Package lock serialises mutations of the hooks directory.
//
// Transitions such as disable (rename, then write stub) are not atomic as a
// whole. A DirLock makes concurrent claude-hooks invocations take turns so
// neither observes the other's intermediate state. Solo callers and tests can
// use NoOpLocker.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// FileName is the lock file created inside the hooks directory.
const FileName = ".claude-hooks.lock"

// DefaultTimeout is how long Acquire waits for another holder.
const DefaultTimeout = 5 * time.Second

const retryDelay = 50 * time.Millisecond

// Holder is written into the lock file by the process holding it.
type Holder struct {
	PID      int       `yaml:"pid"`
	Acquired time.Time `yaml:"acquired"`
	Action   string    `yaml:"action"`
}

// Locker defines the interface for directory locking.
type Locker interface {
	// Acquire blocks until the lock is held or the timeout elapses.
	// The returned function releases the lock.
	Acquire(ctx context.Context, action string) (func(), error)
}

// NoOpLocker never blocks.
type NoOpLocker struct{}

// NewNoOpLocker creates a new NoOpLocker.
func NewNoOpLocker() *NoOpLocker {
	return &NoOpLocker{}
}

// Acquire always succeeds for NoOpLocker.
func (l *NoOpLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

// TimeoutError reports that another process kept the lock past the timeout.
type TimeoutError struct {
	Path    string
	Timeout time.Duration
	Holder  *Holder // nil when the holder could not be read
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s", e.Timeout, e.Path)
	if e.Holder != nil {
		msg += fmt.Sprintf(" (held by pid %d for %q since %s)",
			e.Holder.PID, e.Holder.Action, e.Holder.Acquired.Format(time.RFC3339))
	}
	return msg
}

// IsTimeout reports whether err is a lock TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// DirLock is an advisory flock on <dir>/.claude-hooks.lock.
type DirLock struct {
	path    string
	timeout time.Duration
	logger  *slog.Logger
}

// NewDirLock creates a lock for dir. A zero timeout means DefaultTimeout.
func NewDirLock(dir string, timeout time.Duration, logger *slog.Logger) *DirLock {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DirLock{
		path:    filepath.Join(dir, FileName),
		timeout: timeout,
		logger:  logger,
	}
}

// Path returns the lock file path.
func (l *DirLock) Path() string {
	return l.path
}

// Acquire takes the lock, creating the directory if needed.
func (l *DirLock) Acquire(ctx context.Context, action string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fl := flock.New(l.path)
	waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	locked, err := fl.TryLockContext(waitCtx, retryDelay)
	if !locked {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil || errors.Is(err, context.DeadlineExceeded) {
			holder, _ := ReadHolder(l.path)
			return nil, &TimeoutError{Path: l.path, Timeout: l.timeout, Holder: holder}
		}
		return nil, fmt.Errorf("acquire lock %s: %w", l.path, err)
	}

	if err := writeHolder(l.path, action); err != nil {
		l.logger.Warn("could not record lock holder", "path", l.path, "error", err)
	}
	l.logger.Debug("acquired hooks lock", "path", l.path, "action", action)

	return func() {
		if err := fl.Unlock(); err != nil {
			l.logger.Warn("release hooks lock", "path", l.path, "error", err)
		}
	}, nil
}

func writeHolder(path, action string) error {
	data, err := yaml.Marshal(&Holder{
		PID:      os.Getpid(),
		Acquired: time.Now().UTC(),
		Action:   action,
	})
	if err != nil {
		return err
	}
	// Truncating in place keeps the inode flock is attached to.
	return os.WriteFile(path, data, 0o600)
}

// ReadHolder returns the holder recorded in a lock file.
func ReadHolder(path string) (*Holder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var h Holder
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parse lock file: %w", err)
	}
	if h.PID == 0 {
		return nil, fmt.Errorf("lock file %s has no holder", path)
	}
	return &h, nil
}
