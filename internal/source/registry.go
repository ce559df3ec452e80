package source

import (
	"fmt"
	"strings"
)

// DefaultSelector is the data source used when none is configured.
const DefaultSelector = "github-releases:efabless/volare"

// Constructor builds a DataSource from one backend-specific argument string.
type Constructor func(arg string) (DataSource, error)

// Registry maps backend identifiers to constructors. The zero value is not
// usable; use NewRegistry or the package Default.
type Registry map[string]Constructor

// Default holds the built-in backends. It is populated once at package
// initialization and read-only afterwards.
var Default = Registry{
	"github-releases": func(arg string) (DataSource, error) {
		return NewGitHubReleases(arg)
	},
}

// Register adds a backend constructor under an identifier, replacing any
// existing entry.
func (r Registry) Register(id string, c Constructor) {
	r[id] = c
}

// New builds a DataSource from a "<backend-id>:<argument>" selector. A
// selector without a separator, or naming an unregistered backend, is a
// configuration error the caller should treat as fatal.
func (r Registry) New(selector string) (DataSource, error) {
	id, arg, ok := strings.Cut(selector, ":")
	if !ok {
		return nil, fmt.Errorf("data source %q must be in the form <backend-id>:<argument>", selector)
	}
	ctor, ok := r[id]
	if !ok {
		return nil, fmt.Errorf("unknown data source backend %q", id)
	}
	return ctor(arg)
}
