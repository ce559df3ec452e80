// Package source turns remote release feeds into installable PDK versions.
// A DataSource backend produces, for one PDK family, the ordered list of
// published versions and, for any one version, the manifest of downloadable
// archive assets. Backends are selected by a short identifier through the
// package Registry.
package source

import (
	"fmt"

	"github.com/pdktools/pdkman/internal/pdk"
)

// Asset describes one downloadable file attached to a release. Content is the
// logical artifact name (the archive filename with its suffix stripped),
// Filename the literal remote name, and URL a directly fetchable location.
type Asset struct {
	Content  string
	Filename string
	URL      string
}

// DataSource is the contract a release-feed backend satisfies.
type DataSource interface {
	// GetAvailableVersions returns the published, non-draft versions of one
	// PDK family, newest first. When no version matches the family it
	// returns a *NotFoundError rather than an empty list, so callers can
	// tell "no such family" from a transport hiccup.
	GetAvailableVersions(family string) ([]pdk.Version, error)

	// GetDownloadsForVersion returns every archive asset attached to the
	// version's release. A release with no archive assets yields an empty
	// slice, not an error.
	GetDownloadsForVersion(version pdk.Version) ([]Asset, error)
}

// NotFoundError reports that a family has no published versions on a source.
type NotFoundError struct {
	Family string
	Source string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no versions found for %q on %s", e.Family, e.Source)
}
