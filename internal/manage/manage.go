// Package manage orchestrates fetching, enabling and pruning PDK versions:
// it asks a data source for assets, downloads and extracts them into the
// store, and switches the current link.
package manage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/pdktools/pdkman/internal/download"
	"github.com/pdktools/pdkman/internal/extract"
	"github.com/pdktools/pdkman/internal/ghapi"
	"github.com/pdktools/pdkman/internal/pdk"
	"github.com/pdktools/pdkman/internal/source"
)

const downloadWorkers = 4

// Manager wires a data source to the local version store.
type Manager struct {
	source     source.DataSource
	root       string
	downloader *download.Downloader
	logger     *log.Logger
}

// New creates a Manager operating on the store under root.
func New(ds source.DataSource, root string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Manager{
		source:     ds,
		root:       root,
		downloader: download.NewDownloader(downloadWorkers),
		logger:     logger,
	}
}

// Fetch downloads and extracts one version into the store without enabling
// it. includeLibraries narrows the assets to the named contents; empty, or
// containing "all", keeps everything. Fetching an already-installed version
// is a no-op.
func (m *Manager) Fetch(family, name string, includeLibraries []string) (pdk.Version, error) {
	version := pdk.Version{Name: name, Family: family}

	if version.Installed(m.root) {
		m.logger.Info("version already installed", "version", version.String())
		return version, nil
	}

	assets, err := m.source.GetDownloadsForVersion(version)
	if err != nil {
		var statusErr *ghapi.StatusError
		if errors.As(err, &statusErr) && statusErr.NotFound() {
			return version, fmt.Errorf("version %s not found on the data source", version)
		}
		return version, err
	}
	if len(assets) == 0 {
		return version, fmt.Errorf("release %s has no downloadable archives", version)
	}

	assets, err = filterAssets(assets, includeLibraries)
	if err != nil {
		return version, err
	}

	scratch, err := os.MkdirTemp("", "pdkman-fetch-*")
	if err != nil {
		return version, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	jobs := make([]download.Job, 0, len(assets))
	for _, asset := range assets {
		m.logger.Info("downloading", "asset", asset.Filename)
		jobs = append(jobs, download.Job{
			URL:      asset.URL,
			DestPath: filepath.Join(scratch, asset.Filename),
		})
	}
	for _, result := range m.downloader.Download(jobs) {
		if result.Error != nil {
			return version, result.Error
		}
	}

	dir := version.Dir(m.root)
	for _, asset := range assets {
		m.logger.Info("extracting", "asset", asset.Filename)
		if err := extract.Archive(filepath.Join(scratch, asset.Filename), dir); err != nil {
			os.RemoveAll(dir)
			return version, err
		}
	}

	m.logger.Info("installed", "version", version.String())
	return version, nil
}

// Enable fetches the version if needed and makes it the current one for its
// family.
func (m *Manager) Enable(family, name string, includeLibraries []string) (pdk.Version, error) {
	version, err := m.Fetch(family, name, includeLibraries)
	if err != nil {
		return version, err
	}
	if err := version.SetCurrent(m.root); err != nil {
		return version, err
	}
	m.logger.Info("enabled", "version", version.String())
	return version, nil
}

// Prune uninstalls every version of family except the current one. Failures
// are reported per version; pruning continues past them.
func (m *Manager) Prune(family string) error {
	versions, err := pdk.InstalledVersions(m.root, family)
	if err != nil {
		return err
	}
	var failed int
	for _, version := range versions {
		if version.IsCurrent(m.root) {
			continue
		}
		if err := version.Uninstall(m.root); err != nil {
			m.logger.Error("failed to delete", "version", version.String(), "err", err)
			failed++
			continue
		}
		m.logger.Info("deleted", "version", version.String())
	}
	if failed > 0 {
		return fmt.Errorf("failed to delete %d version(s)", failed)
	}
	return nil
}

// filterAssets narrows assets to the requested content names. Requesting a
// content the release does not ship is an error so typos do not silently
// install nothing.
func filterAssets(assets []source.Asset, include []string) ([]source.Asset, error) {
	if len(include) == 0 {
		return assets, nil
	}
	byContent := make(map[string]source.Asset, len(assets))
	for _, asset := range assets {
		byContent[asset.Content] = asset
	}

	var kept []source.Asset
	for _, name := range include {
		if name == "all" {
			return assets, nil
		}
		asset, ok := byContent[name]
		if !ok {
			return nil, fmt.Errorf("release has no archive for library %q", name)
		}
		kept = append(kept, asset)
	}
	return kept, nil
}
