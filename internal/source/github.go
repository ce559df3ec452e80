package source

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdktools/pdkman/internal/ghapi"
	"github.com/pdktools/pdkman/internal/pdk"
)

const (
	// Release tags encode "<family>-<commit-hash>". Family names may
	// themselves contain hyphens, so tags split at the last one.
	tagSeparator = "-"

	// ArchiveSuffix is the filename suffix of installable release assets.
	ArchiveSuffix = ".tar.zst"

	releasePageSize = 100
)

// Release bodies optionally carry the source commit's timestamp as
// "released on <ISO-8601>". Anything else in the body is ignored.
var commitDateRx = regexp.MustCompile(`released on ([\d\-:TZ]+)`)

// GitHubReleasesDataSource lists PDK versions from the releases of one GitHub
// repository.
type GitHubReleasesDataSource struct {
	session *ghapi.Session
	repo    ghapi.RepoInfo
}

// NewGitHubReleases creates a data source for an "owner/repo" identifier,
// with its own API session.
func NewGitHubReleases(repoID string) (*GitHubReleasesDataSource, error) {
	repo, err := ghapi.ParseRepo(repoID)
	if err != nil {
		return nil, err
	}
	return &GitHubReleasesDataSource{session: ghapi.NewSession(), repo: repo}, nil
}

// Repo returns the repository this source reads from.
func (d *GitHubReleasesDataSource) Repo() ghapi.RepoInfo {
	return d.repo
}

func (d *GitHubReleasesDataSource) String() string {
	return "github.com/" + d.repo.String()
}

type release struct {
	TagName     string         `json:"tag_name"`
	Draft       bool           `json:"draft"`
	Prerelease  bool           `json:"prerelease"`
	PublishedAt time.Time      `json:"published_at"`
	Body        string         `json:"body"`
	Assets      []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// releaseAssets is the narrow shape decoded by the downloads lookup. Only
// the asset list matters there; fields like published_at may be empty on
// odd feeds and must not make the decode fail.
type releaseAssets struct {
	Assets []releaseAsset `json:"assets"`
}

// GetAvailableVersions pages through the repository's releases and returns
// the versions belonging to family, newest first.
//
// All pages are fetched before anything is filtered: a page full of drafts or
// foreign families must not be mistaken for the end of the feed. The feed
// ends at the first page shorter than the page size.
func (d *GitHubReleasesDataSource) GetAvailableVersions(family string) ([]pdk.Version, error) {
	var releases []release
	for page := 1; ; page++ {
		params := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(releasePageSize)},
		}
		var batch []release
		if err := d.session.API(d.repo, "/releases", params, &batch); err != nil {
			return nil, err
		}
		releases = append(releases, batch...)
		if len(batch) < releasePageSize {
			break
		}
	}

	var versions []pdk.Version
	for _, rel := range releases {
		if rel.Draft {
			continue
		}

		sep := strings.LastIndex(rel.TagName, tagSeparator)
		if sep < 0 {
			// A tag without a separator belongs to no family.
			continue
		}
		tagFamily, hash := rel.TagName[:sep], rel.TagName[sep+1:]
		if tagFamily != family {
			continue
		}

		versions = append(versions, pdk.Version{
			Name:       hash,
			Family:     tagFamily,
			CommitDate: commitDateFromBody(rel.Body),
			UploadDate: rel.PublishedAt,
			Prerelease: rel.Prerelease,
		})
	}

	pdk.SortByNewest(versions)
	if len(versions) == 0 {
		return nil, &NotFoundError{Family: family, Source: d.String()}
	}
	return versions, nil
}

// commitDateFromBody scans a release body for the commit timestamp
// annotation. A missing or unparseable annotation yields nil; the annotation
// is enrichment, never a requirement.
func commitDateFromBody(body string) *time.Time {
	m := commitDateRx.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, m[1])
	if err != nil {
		return nil
	}
	return &ts
}

// GetDownloadsForVersion looks up the version's release by tag and returns
// its archive assets in feed order. Content names are the filenames with the
// archive suffix stripped.
func (d *GitHubReleasesDataSource) GetDownloadsForVersion(version pdk.Version) ([]Asset, error) {
	tag := version.Family + tagSeparator + version.Name
	var rel releaseAssets
	if err := d.session.API(d.repo, "/releases/tags/"+url.PathEscape(tag), nil, &rel); err != nil {
		return nil, err
	}

	assets := []Asset{}
	for _, a := range rel.Assets {
		if !strings.HasSuffix(a.Name, ArchiveSuffix) {
			continue
		}
		assets = append(assets, Asset{
			Content:  strings.TrimSuffix(a.Name, ArchiveSuffix),
			Filename: a.Name,
			URL:      a.BrowserDownloadURL,
		})
	}
	return assets, nil
}
