// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	SettingsParseErrorId
	NoEcosystemDetectedId
	ToolNotInstalledId
	UnsupportedIntentId
	WorkspaceEnumerationFailedId
	CacheWriteFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the workscope configuration file.

## Configuration file locations:
- Linux: ~/.config/workscope/config.cue
- macOS: ~/Library/Application Support/workscope/config.cue
- Windows: %APPDATA%\workscope\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ workscope config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/workscope/config.cue
~~~

## Example configuration:
~~~cue
cache: {
  enabled: true
  hash_strategy: "content"
}

defaults: {
  node_package_manager: "pnpm"
}

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	settingsParseErrorIssue = &Issue{
		id: SettingsParseErrorId,
		mdMsg: `
# Failed to parse a settings file!

A .workscope/settings.json file contains invalid JSON. The broken layer
was skipped, so the effective configuration came from the remaining
layers only.

## Settings layers (highest precedence first):
1. <package>/.workscope/settings.json
2. <workspace root>/.workscope/settings.json
3. <config dir>/settings.json

## Things you can try:
- Check the reported file for trailing commas or unquoted keys
- Validate it with any JSON tool:
~~~
$ python3 -m json.tool .workscope/settings.json
~~~

- Delete the file to fall back to the other layers`,
	}

	noEcosystemDetectedIssue = &Issue{
		id: NoEcosystemDetectedId,
		mdMsg: `
# No ecosystem detected!

The directory carries none of the manifests workscope recognizes.

## Recognized manifests include:
- package.json (Node.js)
- pyproject.toml, setup.py, requirements.txt (Python)
- pom.xml (Maven), build.gradle / build.gradle.kts (Gradle)
- Cargo.toml (Rust), go.mod (Go), *.csproj / *.sln (.NET)

## Things you can try:
- Run from the project directory, not its parent:
~~~
$ cd /path/to/project
$ workscope setup
~~~

- Check what was scanned:
~~~
$ workscope setup-ecosystem --detect
~~~`,
	}

	toolNotInstalledIssue = &Issue{
		id: ToolNotInstalledId,
		mdMsg: `
# Required tool not installed!

A tool the detected ecosystem relies on did not resolve on PATH.
Detection itself still works; only commands using the tool will fail.

## Things you can try:
- See which tools resolved and which did not:
~~~
$ workscope doctor
~~~

- Install the missing tool with your platform's package manager
- Check that its install location is on PATH:
~~~
$ echo $PATH
~~~`,
	}

	unsupportedIntentIssue = &Issue{
		id: UnsupportedIntentId,
		mdMsg: `
# Unsupported intent for this ecosystem!

The requested intent has no command for the detected ecosystem (for
example, Maven has no portable lint command).

## Supported intents:
- **install**: resolve/fetch dependencies
- **build**: produce build artifacts
- **test**: run the test suite
- **lint**: run static analysis

## Things you can try:
- List what the current package supports:
~~~
$ workscope setup
~~~

- Run the ecosystem's own tooling directly for unsupported intents`,
	}

	workspaceEnumerationFailedIssue = &Issue{
		id: WorkspaceEnumerationFailedId,
		mdMsg: `
# Could not enumerate workspace members!

A workspace root was found but its member list could not be resolved, so
only the current directory was considered.

## Common causes:
- Malformed pnpm-workspace.yaml or lerna.json
- Glob patterns matching no directories
- Unreadable member directories

## Things you can try:
- Validate the workspace manifest at the reported root
- Check the member globs match real directories:
~~~
$ ls <workspace-root>/packages/
~~~`,
	}

	cacheWriteFailedIssue = &Issue{
		id: CacheWriteFailedId,
		mdMsg: `
# Failed to persist detection results!

Detection succeeded but the .workscope/ecosystems.json record could not
be written. Results are correct; the next run will just re-scan.

## Common causes:
- Read-only project directory
- Disk full

## Things you can try:
- Check permissions on the project directory
- Disable the cache if the tree must stay pristine:
~~~cue
cache: enabled: false
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- Reading a project directory owned by another user
- Writing state into a read-only checkout

## Things you can try:
- Check file/directory permissions
- Run workscope from a directory you own
- Disable cache writes for read-only trees:
~~~cue
cache: enabled: false
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():           configLoadFailedIssue,
		settingsParseErrorIssue.Id():         settingsParseErrorIssue,
		noEcosystemDetectedIssue.Id():        noEcosystemDetectedIssue,
		toolNotInstalledIssue.Id():           toolNotInstalledIssue,
		unsupportedIntentIssue.Id():          unsupportedIntentIssue,
		workspaceEnumerationFailedIssue.Id(): workspaceEnumerationFailedIssue,
		cacheWriteFailedIssue.Id():           cacheWriteFailedIssue,
		permissionDeniedIssue.Id():           permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
