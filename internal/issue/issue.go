// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	EngineNotFoundId Id = iota + 1
	ManifestNotFoundId
	ManifestParseErrorId
	DependencyResolutionId
	ToolchainId
	BindId
	EntryPointId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links to upstream docs about the failure
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

	engineNotFoundIssue = &Issue{
		id: EngineNotFoundId,
		mdMsg: `
# Container engine not found!

slipway needs a container engine to build and launch images.

## Supported container engines:
- **Podman** (recommended for rootless setups)
- **Docker**

## Things you can try:
- Install Podman:
  - Linux: ` + "`sudo apt install podman`" + ` or ` + "`sudo dnf install podman`" + `
  - macOS: ` + "`brew install podman`" + `
- Install Docker:
  - https://docs.docker.com/get-docker/

- Configure your preferred engine in ~/.config/slipway/config.yaml:
~~~yaml
container_engine: podman  # or docker
~~~`,
		extLinks: []HttpLink{"https://podman.io", "https://docs.docker.com/get-docker/"},
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No dependency manifest found!

Every build needs a requirements.txt next to the application source.

## Things you can try:
- Create one in the source directory:
~~~
$ cd /path/to/app
$ printf 'flask==2.0.0\n' > requirements.txt
~~~

- Or point the build at the directory that has one:
~~~
$ slipway build path/to/app
~~~

An empty requirements.txt is valid (no third-party dependencies).`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse the dependency manifest!

requirements.txt entries must be one package per line:

~~~
flask==2.0.0
uvicorn>=0.20
gunicorn
# comments and blank lines are fine
~~~

## Common issues:
- Duplicate package names
- Stray characters in a package name
- A constraint operator with no version after it`,
	}

	dependencyResolutionIssue = &Issue{
		id: DependencyResolutionId,
		mdMsg: `
# Dependency resolution failed!

A manifest entry could not be satisfied: the package does not exist on the
index, or no release matches its version constraint.

## Things you can try:
- Check the failing entry named in the error message for typos
- Loosen the version constraint (e.g. ` + "`>=`" + ` instead of ` + "`==`" + `)
- Verify the package exists: https://pypi.org/project/<name>/

The build produced no image; fix the manifest and rerun ` + "`slipway build`" + `.`,
		extLinks: []HttpLink{"https://pypi.org"},
	}

	toolchainIssue = &Issue{
		id: ToolchainId,
		mdMsg: `
# Toolchain provisioning failed!

The build could not install the system compiler toolchain that native
dependency extensions require.

## Common causes:
- No network access to the distro package archives during the build
- A stale base image (try pulling python:3.11-slim again)
- A package archive outage

The build produced no image; fix the environment and rerun the build.`,
	}

	bindIssue = &Issue{
		id: BindId,
		mdMsg: `
# Could not bind the server port!

The configured port is already in use by another process, or outside the
valid range (1-65535).

## Things you can try:
- Find what holds the port: ` + "`ss -ltnp | grep <port>`" + `
- Launch on a different port:
~~~
$ PORT=9000 slipway launch
~~~

No socket is left open; restart the container once the port is free.`,
	}

	entryPointIssue = &Issue{
		id: EntryPointId,
		mdMsg: `
# Application entry object not found!

The server runtime could not import the configured entry point
(module:attribute) from the image's source tree.

## Things you can try:
- Check the descriptor matches your code layout; for a top-level app.py
  exposing ` + "`app`" + `, the descriptor is ` + "`app:app`" + `
- Set it explicitly at build or launch time:
~~~
$ slipway launch --entrypoint backend.main:app
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config file contains errors or could not be read.

## Things you can try:
- Check the YAML syntax of ~/.config/slipway/config.yaml
- Unset malformed SLIPWAY_* environment variables
- Remove the config file to fall back to defaults`,
	}

	issues = map[Id]*Issue{
		engineNotFoundIssue.Id():       engineNotFoundIssue,
		manifestNotFoundIssue.Id():     manifestNotFoundIssue,
		manifestParseErrorIssue.Id():   manifestParseErrorIssue,
		dependencyResolutionIssue.Id(): dependencyResolutionIssue,
		toolchainIssue.Id():            toolchainIssue,
		bindIssue.Id():                 bindIssue,
		entryPointIssue.Id():           entryPointIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
