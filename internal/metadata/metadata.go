// Package metadata resolves the PDK version a project pins in its
// tool_metadata.yml file, so enable/fetch can run without an explicit
// version argument inside tool trees like OpenLane.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the metadata file searched for in the working directory and
// its parents.
const FileName = "tool_metadata.yml"

// The tool whose pinned commit identifies the PDK build.
const pdkTool = "open_pdks"

type toolMetadata struct {
	Tools []struct {
		Name   string `yaml:"name"`
		Commit string `yaml:"commit"`
	} `yaml:"tools"`
}

// ResolveVersion returns the version to operate on. An explicit version wins;
// otherwise the metadata file (at path, or found by walking up from the
// working directory when path is empty) supplies the open_pdks commit.
func ResolveVersion(explicit, path string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if path == "" {
		found, err := findUp(FileName)
		if err != nil {
			return "", err
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	var meta toolMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, tool := range meta.Tools {
		if tool.Name == pdkTool && tool.Commit != "" {
			return tool.Commit, nil
		}
	}
	return "", fmt.Errorf("%s does not pin an %s version", path, pdkTool)
}

// findUp searches for name in the working directory and each parent.
func findUp(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in the current directory or any parent", name)
		}
		dir = parent
	}
}
