// Package config loads pdkman's process-wide settings. Everything is
// environment-driven; there is no config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pdktools/pdkman/internal/source"
)

// Config holds the settings read once at startup.
type Config struct {
	// PDKRoot is the directory PDK versions are installed under.
	PDKRoot string
	// DataSource is the "<backend-id>:<argument>" selector for the remote
	// release feed.
	DataSource string
}

// Load reads configuration from the environment. Recognized variables:
// PDKMAN_PDK_ROOT (legacy PDK_ROOT also honored) and PDKMAN_DATA_SOURCE.
// API tokens are read by the session layer, not here.
func Load() (*Config, error) {
	root, err := defaultRoot()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("PDKMAN")
	v.AutomaticEnv()
	v.SetDefault("pdk_root", root)
	v.SetDefault("data_source", source.DefaultSelector)
	if err := v.BindEnv("pdk_root", "PDKMAN_PDK_ROOT", "PDK_ROOT"); err != nil {
		return nil, err
	}

	return &Config{
		PDKRoot:    v.GetString("pdk_root"),
		DataSource: v.GetString("data_source"),
	}, nil
}

func defaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pdkman"), nil
}
