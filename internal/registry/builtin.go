package registry

import "fmt"

// writeTools are the file-mutating tools most content checks watch.
var writeTools = []string{"Write", "Edit", "MultiEdit"}

func withBash(ts []string) []string {
	return append([]string{"Bash"}, ts...)
}

// builtins lists the hooks shipped with claude-hooks.
var builtins = []Descriptor{
	{
		Name:        "api-docs-enforcer",
		Event:       EventPreToolUse,
		Tools:       withBash(writeTools),
		Description: "Requires API changes to be documented in OpenAPI/Postman and internal APIs to be secured",
	},
	{
		Name:        "api-endpoint-verifier",
		Event:       EventPreToolUse,
		Tools:       writeTools,
		Description: "Verifies API endpoints are configured and follow naming conventions",
	},
	{
		Name:        "database-extension-check",
		Event:       EventPreToolUse,
		Tools:       writeTools,
		Description: "Blocks new table creation and suggests extending existing tables",
	},
	{
		Name:        "duplicate-detector",
		Event:       EventPreToolUse,
		Tools:       []string{"Write"},
		Description: "Prevents duplicate routes, pages, API endpoints and components",
	},
	{
		Name:        "env-sync-validator",
		Event:       EventPreToolUse,
		Tools:       writeTools,
		Description: "Keeps .env and .env.example in sync",
	},
	{
		Name:        "gitignore-enforcer",
		Event:       EventPreToolUse,
		Tools:       []string{"Bash", "Write"},
		Description: "Ensures .gitignore exists and blocks committing sensitive or generated files",
	},
	{
		Name:        "log-commands",
		Event:       EventPreToolUse,
		Tools:       []string{"Bash"},
		Description: "Logs every Bash command with a timestamp and description",
	},
	{
		Name:        "mcp-tool-enforcer",
		Event:       EventPreToolUse,
		Tools:       withBash(writeTools),
		Description: "Suggests MCP tools when a better alternative to the requested tool exists",
	},
	{
		Name:        "no-mock-code",
		Event:       EventPreToolUse,
		Tools:       []string{"Write", "Edit"},
		Description: "Blocks placeholder, mock and pseudo code from being written",
	},
	{
		Name:        "pre-commit-validator",
		Event:       EventPreToolUse,
		Tools:       []string{"Bash"},
		Description: "Runs tests, lint and type checks before git commit or push",
	},
	{
		Name:        "readme-update-validator",
		Event:       EventPreToolUse,
		Tools:       []string{"Bash", "Write"},
		Description: "Reminds to update the README when features change",
	},
	{
		Name:        "secret-scanner",
		Event:       EventPreToolUse,
		Tools:       withBash(writeTools),
		Description: "Blocks API keys, private keys, passwords and other secrets from being written or committed",
	},
	{
		Name:        "session-end-summary",
		Event:       EventStop,
		Description: "Summarises the session and reminds about pending task and documentation updates",
	},
	{
		Name:        "style-consistency",
		Event:       EventPreToolUse,
		Tools:       []string{"Write", "Edit"},
		Description: "Enforces theme-aware CSS classes and consistent component usage",
	},
	{
		Name:        "sync-docs-to-dart",
		Event:       EventPostToolUse,
		Tools:       []string{"Write", "Edit"},
		Description: "Reminds to sync Markdown documentation to Dart after it changes",
	},
	{
		Name:        "timestamp-validator",
		Event:       EventPreToolUse,
		Tools:       []string{"Write", "Edit"},
		Description: "Rejects hard-coded or wrong dates in docs, changelogs and commits",
	},
	{
		Name:        "validate-dart-task",
		Event:       EventPreToolUse,
		Tools:       []string{"mcp__dart__create_task"},
		Description: "Requires Dart tasks to be created under a Phase parent",
	},
	{
		Name:        "validate-git-commit",
		Event:       EventPreToolUse,
		Tools:       []string{"Bash"},
		Description: "Enforces commit message standards and blocks co-authored commits",
	},
	{
		Name:        "precompact-context-refresh",
		Event:       EventPreCompact,
		Description: "Prepares Context Forge refresh instructions before compaction",
	},
	{
		Name:        "stop-context-refresh",
		Event:       EventStop,
		Description: "Enforces a Context Forge context refresh after compaction",
	},
}

// Builtin returns the registry of hooks shipped with claude-hooks.
func Builtin() *Registry {
	r, err := New(builtins...)
	if err != nil {
		panic(fmt.Sprintf("registry: invalid builtin descriptors: %v", err))
	}
	return r
}
