package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdktools/pdkman/internal/manage"
	"github.com/pdktools/pdkman/internal/metadata"
)

func enableCmd() *cobra.Command {
	var (
		metadataFile     string
		includeLibraries []string
	)

	cmd := &cobra.Command{
		Use:   "enable [version]",
		Short: "Install (if needed) and activate a PDK version",
		Long:  "Installs and activates a PDK version. Without a version argument, the version pinned by the nearest tool_metadata.yml is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := resolveVersionArg(args, metadataFile)
			if err != nil {
				return err
			}
			mgr := manage.New(dataSource, cfg.PDKRoot, logger)
			_, err = mgr.Enable(pdkFamily, version, includeLibraries)
			return err
		},
	}

	cmd.Flags().StringVarP(&metadataFile, "metadata-file", "f", "", "Tool metadata file to read the version from instead of searching for one")
	cmd.Flags().StringArrayVarP(&includeLibraries, "include-libraries", "l", nil, "Libraries to include; repeatable, 'all' for every library")
	return cmd
}

func fetchCmd() *cobra.Command {
	var (
		metadataFile     string
		includeLibraries []string
	)

	cmd := &cobra.Command{
		Use:   "fetch [version]",
		Short: "Install a PDK version without activating it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := resolveVersionArg(args, metadataFile)
			if err != nil {
				return err
			}
			mgr := manage.New(dataSource, cfg.PDKRoot, logger)
			fetched, err := mgr.Fetch(pdkFamily, version, includeLibraries)
			if err != nil {
				return err
			}
			fmt.Print(fetched.Dir(cfg.PDKRoot))
			return nil
		},
	}

	cmd.Flags().StringVarP(&metadataFile, "metadata-file", "f", "", "Tool metadata file to read the version from instead of searching for one")
	cmd.Flags().StringArrayVarP(&includeLibraries, "include-libraries", "l", nil, "Libraries to include; repeatable, 'all' for every library")
	return cmd
}

func resolveVersionArg(args []string, metadataFile string) (string, error) {
	explicit := ""
	if len(args) == 1 {
		explicit = args[0]
	}
	version, err := metadata.ResolveVersion(explicit, metadataFile)
	if err != nil {
		return "", fmt.Errorf("could not determine the PDK version: %w", err)
	}
	return version, nil
}
