package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestHookErrorFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      *HookError
		wantErr  string
		wantUser string
	}{
		{
			name:     "what only",
			err:      &HookError{What: "something broke"},
			wantErr:  "something broke",
			wantUser: "Error: something broke",
		},
		{
			name:     "what and why",
			err:      &HookError{What: "something broke", Why: "bad input"},
			wantErr:  "something broke: bad input",
			wantUser: "Error: something broke\n\nWhy: bad input",
		},
		{
			name: "full error",
			err: &HookError{
				What: "something broke",
				Why:  "bad input",
				Fix:  "try again",
			},
			wantErr:  "something broke: bad input",
			wantUser: "Error: something broke\n\nWhy: bad input\n\nFix: try again",
		},
		{
			name: "with cause",
			err: &HookError{
				What:  "something broke",
				Cause: errors.New("underlying error"),
			},
			wantErr:  "something broke: underlying error",
			wantUser: "Error: something broke",
		},
		{
			name: "filesystem cause is shown to the user",
			err: &HookError{
				Code:  CodeFilesystem,
				What:  "rename failed",
				Fix:   "check permissions",
				Cause: errors.New("permission denied"),
			},
			wantErr:  "rename failed: permission denied",
			wantUser: "Error: rename failed\n\nSystem: permission denied\n\nFix: check permissions",
		},
		{
			name:     "informational has no error prefix",
			err:      ErrHookAlreadyEnabled("secret-scanner"),
			wantErr:  "hook secret-scanner is already enabled",
			wantUser: "hook secret-scanner is already enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantErr {
				t.Errorf("Error() = %q, want %q", got, tt.wantErr)
			}
			if got := tt.err.UserMessage(); got != tt.wantUser {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestHookErrorJSON(t *testing.T) {
	err := &HookError{
		Code:  CodeHookNotFound,
		What:  "hook nope not found",
		Why:   "No nope.py exists",
		Fix:   "Run 'claude-hooks list'",
		Cause: errors.New("file not found"),
	}

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("MarshalJSON failed: %v", marshalErr)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if result["code"] != string(CodeHookNotFound) {
		t.Errorf("code = %v, want %v", result["code"], CodeHookNotFound)
	}
	if result["what"] != "hook nope not found" {
		t.Errorf("what = %v, want %v", result["what"], "hook nope not found")
	}
	if result["cause"] != "file not found" {
		t.Errorf("cause = %v, want %v", result["cause"], "file not found")
	}
}

func TestErrHookNotFound(t *testing.T) {
	err := ErrHookNotFound("nonexistent-hook", "/home/u/.claude/hooks")

	if err.Code != CodeHookNotFound {
		t.Errorf("Code = %v, want %v", err.Code, CodeHookNotFound)
	}
	if err.What != "hook nonexistent-hook not found" {
		t.Errorf("What = %q", err.What)
	}
	if err.Fix == "" {
		t.Error("Fix should suggest listing hooks")
	}
}

func TestErrHookPartialDisableNamesBothPaths(t *testing.T) {
	err := ErrHookPartialDisable("secret-scanner", "/h/secret-scanner.py", "/h/secret-scanner.py.original")

	msg := err.UserMessage()
	for _, want := range []string{"/h/secret-scanner.py.original", "nothing is at /h/secret-scanner.py", "mv "} {
		if !strings.Contains(msg, want) {
			t.Errorf("UserMessage() = %q, missing %q", msg, want)
		}
	}
}

func TestErrorCodeUniqueness(t *testing.T) {
	codes := []Code{
		CodeHookNotFound,
		CodeHookAlreadyEnabled,
		CodeHookAlreadyDisabled,
		CodeHookExists,
		CodeHookBackupConflict,
		CodeHookDisableIncomplete,
		CodeHookPartialDisable,
		CodeHookBackupMissing,
		CodeHookNameInvalid,
		CodeFilesystem,
		CodeLockTimeout,
		CodeConfigInvalid,
		CodeSettingsInvalid,
		CodeRegistryInvalid,
		CodeConfirmationRequired,
		CodeEditorMissing,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("duplicate error code: %s", code)
		}
		seen[code] = true
		if _, ok := codeCategories[code]; !ok {
			t.Errorf("code %s has no category", code)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err      *HookError
		wantCode int
	}{
		{ErrHookNotFound("x", "/d"), 2},
		{ErrHookAlreadyEnabled("x"), 0},
		{ErrHookAlreadyDisabled("x"), 0},
		{ErrHookExists("x", "active"), 3},
		{ErrHookBackupConflict("x", "a", "b"), 3},
		{ErrHookDisableIncomplete("x", "a", "b"), 3},
		{ErrHookPartialDisable("x", "a", "b"), 4},
		{ErrHookBackupMissing("x", "b"), 2},
		{ErrHookNameInvalid("X"), 1},
		{ErrFilesystem("rename", "p", errors.New("eperm")), 4},
		{ErrLockTimeout("l", "5s"), 3},
		{ErrConfigInvalid("x", "y"), 1},
		{ErrSettingsInvalid("s", nil), 1},
		{ErrRegistryInvalid("r", "y"), 1},
		{ErrConfirmationRequired("remove"), 1},
		{ErrEditorMissing(), 1},
		{Wrap(errors.New("x"), "y"), 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if got := tt.err.ExitCode(); got != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := ErrHookNotFound("x", "/d").WithCause(cause)

	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestWithCause(t *testing.T) {
	original := ErrHookNotFound("x", "/d")
	cause := errors.New("file not found")
	wrapped := original.WithCause(cause)

	if wrapped.Cause != cause {
		t.Error("WithCause should set the cause")
	}
	if original.Cause != nil {
		t.Error("Original should not be modified")
	}
	if wrapped.Code != original.Code || wrapped.What != original.What {
		t.Error("Code and What should be copied")
	}
}

func TestWithFix(t *testing.T) {
	original := ErrHookNotFound("secret-scaner", "/d")
	withHint := original.WithFix("Did you mean 'secret-scanner'?")

	if withHint.Fix != "Did you mean 'secret-scanner'?\n"+original.Fix {
		t.Errorf("Fix = %q", withHint.Fix)
	}
	if original.Fix == withHint.Fix {
		t.Error("Original should not be modified")
	}
}

func TestIs(t *testing.T) {
	err1 := ErrHookNotFound("a", "/d")
	err2 := ErrHookNotFound("b", "/d")
	err3 := ErrHookAlreadyEnabled("a")

	if !errors.Is(err1, err2) {
		t.Error("errors with same code should match with Is")
	}
	if errors.Is(err1, err3) {
		t.Error("errors with different codes should not match")
	}
}

func TestAsHookError(t *testing.T) {
	hookErr := ErrHookNotFound("x", "/d")

	if AsHookError(hookErr) == nil {
		t.Error("AsHookError should return the error")
	}

	wrapped := fmt.Errorf("disable: %w", hookErr)
	if AsHookError(wrapped) == nil {
		t.Error("AsHookError should find a HookError behind fmt.Errorf wrapping")
	}

	if AsHookError(errors.New("regular error")) != nil {
		t.Error("AsHookError should return nil for non-HookError")
	}

	if AsHookError(nil) != nil {
		t.Error("AsHookError should return nil for nil error")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("enable: %w", ErrHookAlreadyEnabled("x"))

	if !HasCode(err, CodeHookAlreadyEnabled) {
		t.Error("HasCode should match wrapped code")
	}
	if HasCode(err, CodeHookNotFound) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(nil, CodeHookNotFound) {
		t.Error("HasCode(nil) should be false")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, "operation failed")

	if err.What != "operation failed" {
		t.Errorf("What = %v, want 'operation failed'", err.What)
	}
	if err.Cause != cause {
		t.Error("Cause should be set")
	}
	if err.Code != Code("UNKNOWN") {
		t.Errorf("Code = %v, want UNKNOWN", err.Code)
	}
}
