package ghapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		id      string
		want    RepoInfo
		wantErr bool
	}{
		{id: "efabless/volare", want: RepoInfo{Owner: "efabless", Name: "volare"}},
		{id: "a/b/c", want: RepoInfo{Owner: "a", Name: "b/c"}},
		{id: "norepo", wantErr: true},
		{id: "/name", wantErr: true},
		{id: "owner/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseRepo(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepo(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRepo(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestSession_API(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]string{"tag_name": "sky130-abcd"})
	}))
	defer server.Close()

	session := NewSession(WithBaseURL(server.URL), WithToken("secret"))
	repo := RepoInfo{Owner: "efabless", Name: "volare"}

	var out struct {
		TagName string `json:"tag_name"`
	}
	params := url.Values{"page": {"1"}}
	if err := session.API(repo, "/releases", params, &out); err != nil {
		t.Fatalf("API() error = %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want Bearer secret", gotAuth)
	}
	if want := "/repos/efabless/volare/releases"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if want := "page=1"; gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if out.TagName != "sky130-abcd" {
		t.Errorf("decoded tag = %q, want sky130-abcd", out.TagName)
	}
}

func TestSession_API_NoTokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("anonymous session sent an Authorization header")
		}
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	session := NewSession(WithBaseURL(server.URL), WithToken(""))
	if err := session.API(RepoInfo{Owner: "o", Name: "r"}, "/releases", nil, nil); err != nil {
		t.Fatalf("API() error = %v", err)
	}
}

func TestSession_API_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	session := NewSession(WithBaseURL(server.URL), WithToken(""))
	err := session.API(RepoInfo{Owner: "o", Name: "r"}, "/releases", nil, nil)

	var status *StatusError
	if !errors.As(err, &status) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if status.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", status.StatusCode)
	}
	if !status.NotFound() {
		t.Error("NotFound() = false, want true")
	}
}

func TestSession_API_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	session := NewSession(WithBaseURL(server.URL), WithToken(""))
	var out map[string]string
	err := session.API(RepoInfo{Owner: "o", Name: "r"}, "/releases", nil, &out)

	var decode *DecodeError
	if !errors.As(err, &decode) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	var status *StatusError
	if errors.As(err, &status) {
		t.Error("decode error also matches *StatusError")
	}
}

func TestSession_API_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close() // connection refused from here on

	session := NewSession(WithBaseURL(base), WithToken(""))
	err := session.API(RepoInfo{Owner: "o", Name: "r"}, "/releases", nil, nil)
	if err == nil {
		t.Fatal("API() succeeded against a closed server")
	}

	// Transport failures must stay distinguishable from status errors.
	var status *StatusError
	if errors.As(err, &status) {
		t.Errorf("transport error reported as *StatusError: %v", err)
	}
}
