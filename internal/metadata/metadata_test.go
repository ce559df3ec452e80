package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleMetadata = `tools:
- name: magic
  repo: https://github.com/RTimothyEdwards/magic
  commit: aaaaaaaa
- name: open_pdks
  repo: https://github.com/RTimothyEdwards/open_pdks
  commit: e6f9c8876da77220403014b116761b0b2d79aab4
`

func writeMetadata(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveVersion_Explicit(t *testing.T) {
	got, err := ResolveVersion("abc123", "")
	if err != nil {
		t.Fatalf("ResolveVersion() error = %v", err)
	}
	if got != "abc123" {
		t.Errorf("version = %q, want abc123", got)
	}
}

func TestResolveVersion_FromFile(t *testing.T) {
	path := writeMetadata(t, t.TempDir(), sampleMetadata)

	got, err := ResolveVersion("", path)
	if err != nil {
		t.Fatalf("ResolveVersion() error = %v", err)
	}
	if want := "e6f9c8876da77220403014b116761b0b2d79aab4"; got != want {
		t.Errorf("version = %q, want %q", got, want)
	}
}

func TestResolveVersion_NoPin(t *testing.T) {
	path := writeMetadata(t, t.TempDir(), "tools:\n- name: magic\n  commit: aaaa\n")

	if _, err := ResolveVersion("", path); err == nil {
		t.Error("ResolveVersion() succeeded without an open_pdks pin")
	}
}

func TestResolveVersion_FindsFileInParent(t *testing.T) {
	root := t.TempDir()
	writeMetadata(t, root, sampleMetadata)
	sub := filepath.Join(root, "designs", "counter")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(sub); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})

	got, err := ResolveVersion("", "")
	if err != nil {
		t.Fatalf("ResolveVersion() error = %v", err)
	}
	if want := "e6f9c8876da77220403014b116761b0b2d79aab4"; got != want {
		t.Errorf("version = %q, want %q", got, want)
	}
}
