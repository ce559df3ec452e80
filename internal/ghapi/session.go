// Package ghapi is a minimal client for the GitHub REST API, covering the
// release endpoints pdkman consumes. It distinguishes HTTP status failures
// (*StatusError) from transport failures so callers can present them
// differently.
package ghapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const defaultBaseURL = "https://api.github.com"

// RepoInfo identifies one repository on the hosting platform.
type RepoInfo struct {
	Owner string
	Name  string
}

// ParseRepo parses an "owner/repo" identifier.
func ParseRepo(id string) (RepoInfo, error) {
	owner, name, ok := strings.Cut(id, "/")
	if !ok || owner == "" || name == "" {
		return RepoInfo{}, fmt.Errorf("repository %q must be in the form owner/repo", id)
	}
	return RepoInfo{Owner: owner, Name: name}, nil
}

func (r RepoInfo) String() string {
	return r.Owner + "/" + r.Name
}

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d", e.URL, e.StatusCode)
}

// NotFound reports whether the error is a 404 status error.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// DecodeError is returned when a 2xx response body does not decode as the
// expected JSON shape. It is distinct from both *StatusError and transport
// failures: the feed answered, but with something unusable.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// HTTPClient is the transport surface Session needs, replaceable in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session issues authenticated requests against one API host. A Session is
// owned by the data source that created it for that source's full lifetime.
type Session struct {
	baseURL string
	token   string
	client  HTTPClient
}

// Option configures a Session.
type Option func(*Session)

// WithToken sets the bearer token. An empty token leaves requests anonymous.
func WithToken(token string) Option {
	return func(s *Session) { s.token = token }
}

// WithBaseURL overrides the API host, mainly for tests.
func WithBaseURL(base string) Option {
	return func(s *Session) {
		if base != "" {
			s.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c HTTPClient) Option {
	return func(s *Session) {
		if c != nil {
			s.client = c
		}
	}
}

// NewSession creates a session against api.github.com. Unless overridden with
// WithToken, the token is taken from the environment (PDKMAN_GITHUB_TOKEN,
// then GITHUB_TOKEN).
func NewSession(opts ...Option) *Session {
	s := &Session{
		baseURL: defaultBaseURL,
		token:   TokenFromEnv(),
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenFromEnv returns the access token configured in the environment, if any.
func TokenFromEnv() string {
	if token := os.Getenv("PDKMAN_GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// API performs a GET against a repository-scoped path (e.g. "/releases") and
// decodes the JSON response into out. Non-2xx responses yield a *StatusError;
// transport failures are returned wrapped and are never *StatusError.
func (s *Session) API(repo RepoInfo, path string, params url.Values, out any) error {
	u := fmt.Sprintf("%s/repos/%s/%s%s", s.baseURL, repo.Owner, repo.Name, path)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, URL: u}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{URL: u, Err: err}
	}
	return nil
}
