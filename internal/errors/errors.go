// Package errors provides structured error types for claude-hooks.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for claude-hooks.
const (
	// Hook state errors
	CodeHookNotFound          Code = "HOOK_NOT_FOUND"
	CodeHookAlreadyEnabled    Code = "HOOK_ALREADY_ENABLED"
	CodeHookAlreadyDisabled   Code = "HOOK_ALREADY_DISABLED"
	CodeHookExists            Code = "HOOK_EXISTS"
	CodeHookBackupConflict    Code = "HOOK_BACKUP_CONFLICT"
	CodeHookDisableIncomplete Code = "HOOK_DISABLE_INCOMPLETE"
	CodeHookPartialDisable    Code = "HOOK_PARTIAL_DISABLE"
	CodeHookBackupMissing     Code = "HOOK_BACKUP_MISSING"
	CodeHookNameInvalid       Code = "HOOK_NAME_INVALID"

	// Environment errors
	CodeFilesystem  Code = "FILESYSTEM_ERROR"
	CodeLockTimeout Code = "LOCK_TIMEOUT"

	// Config errors
	CodeConfigInvalid   Code = "CONFIG_INVALID"
	CodeSettingsInvalid Code = "SETTINGS_INVALID"
	CodeRegistryInvalid Code = "REGISTRY_INVALID"

	// Interaction errors
	CodeConfirmationRequired Code = "CONFIRMATION_REQUIRED"
	CodeEditorMissing        Code = "EDITOR_MISSING"
)

// Category groups error codes for exit status mapping.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNotFound
	CategoryAlreadyInState
	CategoryConflict
	CategoryFilesystem
	CategoryBadRequest
	CategoryInternal
)

var codeCategories = map[Code]Category{
	CodeHookNotFound:          CategoryNotFound,
	CodeHookAlreadyEnabled:    CategoryAlreadyInState,
	CodeHookAlreadyDisabled:   CategoryAlreadyInState,
	CodeHookExists:            CategoryConflict,
	CodeHookBackupConflict:    CategoryConflict,
	CodeHookDisableIncomplete: CategoryConflict,
	CodeHookPartialDisable:    CategoryFilesystem,
	CodeHookBackupMissing:     CategoryNotFound,
	CodeHookNameInvalid:       CategoryBadRequest,
	CodeFilesystem:            CategoryFilesystem,
	CodeLockTimeout:           CategoryConflict,
	CodeConfigInvalid:         CategoryBadRequest,
	CodeSettingsInvalid:       CategoryBadRequest,
	CodeRegistryInvalid:       CategoryBadRequest,
	CodeConfirmationRequired:  CategoryBadRequest,
	CodeEditorMissing:         CategoryBadRequest,
}

// ExitCode returns the process exit status for a category.
// AlreadyInState is informational and exits 0.
func (c Category) ExitCode() int {
	switch c {
	case CategoryAlreadyInState:
		return 0
	case CategoryNotFound:
		return 2
	case CategoryConflict:
		return 3
	case CategoryFilesystem:
		return 4
	default:
		return 1
	}
}

// HookError is the structured error type for claude-hooks.
type HookError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *HookError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *HookError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *HookError) UserMessage() string {
	var b strings.Builder
	if !e.Informational() {
		b.WriteString("Error: ")
	}
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil && e.Category() == CategoryFilesystem {
		b.WriteString("\n\nSystem: ")
		b.WriteString(e.Cause.Error())
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// Category returns the error category.
func (e *HookError) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// ExitCode returns the process exit status for this error.
func (e *HookError) ExitCode() int {
	return e.Category().ExitCode()
}

// Informational reports whether the error describes a no-op rather than a failure.
func (e *HookError) Informational() bool {
	return e.Category() == CategoryAlreadyInState
}

// MarshalJSON implements json.Marshaler.
func (e *HookError) MarshalJSON() ([]byte, error) {
	type alias HookError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a HookError with the same code.
func (e *HookError) Is(target error) bool {
	t, ok := target.(*HookError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *HookError) WithCause(err error) *HookError {
	return &HookError{
		Code:  e.Code,
		What:  e.What,
		Why:   e.Why,
		Fix:   e.Fix,
		Cause: err,
	}
}

// WithFix returns a copy of the error with fix placed ahead of the existing Fix text.
func (e *HookError) WithFix(fix string) *HookError {
	c := e.WithCause(e.Cause)
	if c.Fix == "" {
		c.Fix = fix
	} else {
		c.Fix = fix + "\n" + c.Fix
	}
	return c
}

// --- Error constructors ---

// ErrHookNotFound returns an error when a hook has no files in any expected location.
func ErrHookNotFound(name, dir string) *HookError {
	return &HookError{
		Code: CodeHookNotFound,
		What: fmt.Sprintf("hook %s not found", name),
		Why:  fmt.Sprintf("No %s.py, %s.py.original or %s.py.disabled exists in %s", name, name, name, dir),
		Fix:  "Run 'claude-hooks list --all' to see available hooks, or 'claude-hooks install " + name + "' to install it",
	}
}

// ErrHookAlreadyEnabled returns an informational error for a no-op enable.
func ErrHookAlreadyEnabled(name string) *HookError {
	return &HookError{
		Code: CodeHookAlreadyEnabled,
		What: fmt.Sprintf("hook %s is already enabled", name),
	}
}

// ErrHookAlreadyDisabled returns an informational error for a no-op disable.
func ErrHookAlreadyDisabled(name string) *HookError {
	return &HookError{
		Code: CodeHookAlreadyDisabled,
		What: fmt.Sprintf("hook %s is already disabled", name),
		Fix:  fmt.Sprintf("Run 'claude-hooks enable %s' to turn it back on", name),
	}
}

// ErrHookExists returns an error when installing over an existing hook.
func ErrHookExists(name, state string) *HookError {
	return &HookError{
		Code: CodeHookExists,
		What: fmt.Sprintf("hook %s already exists", name),
		Why:  fmt.Sprintf("The hook is currently %s", state),
		Fix:  fmt.Sprintf("Use 'claude-hooks install %s --force' to overwrite it", name),
	}
}

// ErrHookBackupConflict returns an error when a backup already exists next to real logic.
func ErrHookBackupConflict(name, activePath, backupPath string) *HookError {
	return &HookError{
		Code: CodeHookBackupConflict,
		What: fmt.Sprintf("hook %s has both an implementation and a backup", name),
		Why:  fmt.Sprintf("%s is not a stub but %s already exists, so disabling would overwrite one of them", activePath, backupPath),
		Fix:  fmt.Sprintf("Compare the two files, then delete the one you do not want to keep (for example 'rm %s')", backupPath),
	}
}

// ErrHookDisableIncomplete returns an error for a backup with nothing at the active path.
func ErrHookDisableIncomplete(name, activePath, backupPath string) *HookError {
	return &HookError{
		Code: CodeHookDisableIncomplete,
		What: fmt.Sprintf("hook %s was left half-disabled", name),
		Why:  fmt.Sprintf("The original is at %s but nothing exists at %s", backupPath, activePath),
		Fix:  fmt.Sprintf("Run 'claude-hooks enable %s' to restore the original, then disable it again", name),
	}
}

// ErrHookPartialDisable returns an error when the stub could not be written after the rename.
func ErrHookPartialDisable(name, activePath, backupPath string) *HookError {
	return &HookError{
		Code: CodeHookPartialDisable,
		What: fmt.Sprintf("disabling %s stopped halfway", name),
		Why:  fmt.Sprintf("The original is now at %s and nothing is at %s", backupPath, activePath),
		Fix:  fmt.Sprintf("Revert with 'mv %s %s', or run 'claude-hooks enable %s'", backupPath, activePath, name),
	}
}

// ErrHookBackupMissing returns an error when a stub exists but the original is gone.
func ErrHookBackupMissing(name, backupPath string) *HookError {
	return &HookError{
		Code: CodeHookBackupMissing,
		What: fmt.Sprintf("cannot enable %s: original implementation not found", name),
		Why:  fmt.Sprintf("The active file is a disabled stub and %s does not exist", backupPath),
		Fix:  fmt.Sprintf("Reinstall it with 'claude-hooks install %s --force'", name),
	}
}

// ErrHookNameInvalid returns an error for a name that is not kebab-case.
func ErrHookNameInvalid(name string) *HookError {
	return &HookError{
		Code: CodeHookNameInvalid,
		What: fmt.Sprintf("invalid hook name %q", name),
		Why:  "Hook names must be lowercase kebab-case (letters, digits and single dashes)",
		Fix:  "Pick a name such as 'secret-scanner'",
	}
}

// ErrFilesystem wraps an I/O failure during a hook operation.
func ErrFilesystem(op, path string, cause error) *HookError {
	return &HookError{
		Code:  CodeFilesystem,
		What:  fmt.Sprintf("%s failed for %s", op, path),
		Fix:   "Check permissions and free space, then run 'claude-hooks status' before retrying",
		Cause: cause,
	}
}

// ErrLockTimeout returns an error when another invocation holds the hooks lock.
func ErrLockTimeout(path, timeout string) *HookError {
	return &HookError{
		Code: CodeLockTimeout,
		What: "another claude-hooks command is modifying the hooks directory",
		Why:  fmt.Sprintf("Could not acquire %s within %s", path, timeout),
		Fix:  "Wait for the other command to finish and try again",
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *HookError {
	return &HookError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Check ~/.claude-hooks/config.yaml and CLAUDE_HOOKS_* environment variables",
	}
}

// ErrSettingsInvalid returns an error for an unreadable host settings file.
func ErrSettingsInvalid(path string, cause error) *HookError {
	return &HookError{
		Code:  CodeSettingsInvalid,
		What:  fmt.Sprintf("cannot parse %s", path),
		Why:   "The settings file is not valid JSON or has an unexpected hooks layout",
		Fix:   "Fix the file by hand; claude-hooks will not overwrite a file it cannot parse",
		Cause: cause,
	}
}

// ErrRegistryInvalid returns an error for a bad registry entry.
func ErrRegistryInvalid(source, reason string) *HookError {
	return &HookError{
		Code: CodeRegistryInvalid,
		What: fmt.Sprintf("invalid hook registry %s", source),
		Why:  reason,
		Fix:  "Edit the registry file and remove or rename the offending entry",
	}
}

// ErrConfirmationRequired returns an error when a destructive action was not confirmed.
func ErrConfirmationRequired(action string) *HookError {
	return &HookError{
		Code: CodeConfirmationRequired,
		What: fmt.Sprintf("%s was not confirmed", action),
		Why:  "Destructive commands need an interactive 'y' or the --yes flag",
		Fix:  "Re-run with --yes to skip the prompt",
	}
}

// ErrEditorMissing returns an error when no editor is configured.
func ErrEditorMissing() *HookError {
	return &HookError{
		Code: CodeEditorMissing,
		What: "no editor configured",
		Why:  "Neither the editor setting nor $VISUAL or $EDITOR is set",
		Fix:  "Set $EDITOR, or add 'editor: vim' to ~/.claude-hooks/config.yaml",
	}
}

// AsHookError attempts to convert an error to a HookError.
// Returns nil if the error is not a HookError.
func AsHookError(err error) *HookError {
	var hookErr *HookError
	if stderrors.As(err, &hookErr) {
		return hookErr
	}
	return nil
}

// HasCode reports whether err is a HookError carrying code.
func HasCode(err error, code Code) bool {
	hookErr := AsHookError(err)
	return hookErr != nil && hookErr.Code == code
}

// Wrap wraps a generic error into a HookError with unknown code.
func Wrap(err error, what string) *HookError {
	return &HookError{
		Code:  Code("UNKNOWN"),
		What:  what,
		Cause: err,
	}
}
