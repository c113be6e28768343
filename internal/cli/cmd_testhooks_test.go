package cli

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTest_ReportsOutcomes(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e := newCLIEnv(t)
	e.writeConfig(t, "python: sh\ntest_parallelism: 2\n")
	e.writeHook(t, "log-commands", "cat > /dev/null\nexit 0\n")
	e.writeHook(t, "secret-scanner", "cat > /dev/null\necho 'found an API key' >&2\nexit 2\n")

	out, err := e.run("test", "--all")
	require.NoError(t, err, out)
	assert.Contains(t, out, "log-commands  exit 0")
	assert.Contains(t, out, "secret-scanner  blocked (exit 2")
	assert.Contains(t, out, "found an API key")

	e.writeHook(t, "no-mock-code", "cat > /dev/null\nexit 1\n")
	out, err = e.run("test", "no-mock-code", "log-commands")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, out, "1 of 2 hook(s) failed")
}

func TestTest_Payload(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	e := newCLIEnv(t)
	e.writeConfig(t, "python: sh\n")
	e.writeHook(t, "log-commands", "grep -q '\"marker\"' || exit 1\n")

	_, err := e.run("test", "log-commands", "--payload", `{"marker": true}`)
	require.NoError(t, err)

	_, err = e.run("test", "log-commands", "--payload", `{not json`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestTest_DisabledHookRunsStub(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
	e := newCLIEnv(t)
	e.writeHook(t, "secret-scanner", scannerSource)
	_, err := e.run("disable", "secret-scanner")
	require.NoError(t, err)

	out, err := e.run("test", "secret-scanner")
	require.NoError(t, err, out)
	assert.Contains(t, out, "(disabled)")
	assert.Contains(t, out, "exit 0")
}
