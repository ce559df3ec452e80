package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pdktools/pdkman/internal/ghapi"
	"github.com/pdktools/pdkman/internal/manage"
	"github.com/pdktools/pdkman/internal/pdk"
	"github.com/pdktools/pdkman/internal/source"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List locally installed PDK versions (JSON if not a tty)",
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := pdk.InstalledVersions(cfg.PDKRoot, pdkFamily)
			if err != nil {
				return err
			}

			if isatty.IsTerminal(os.Stdout.Fd()) {
				manage.PrintInstalled(os.Stdout, cfg.PDKRoot, versions)
				return nil
			}

			names := make([]string, 0, len(versions))
			for _, version := range versions {
				names = append(names, version.Name)
			}
			return json.NewEncoder(os.Stdout).Encode(names)
		},
	}
}

func listRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-remote",
		Short: "List remotely available PDK versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			versions, err := dataSource.GetAvailableVersions(pdkFamily)
			if err != nil {
				return remoteError(err)
			}

			if isatty.IsTerminal(os.Stdout.Fd()) {
				manage.PrintRemote(os.Stdout, cfg.PDKRoot, versions)
				return nil
			}

			for _, version := range versions {
				fmt.Println(version.Name)
			}
			return nil
		},
	}
}

// remoteError translates data source failures into actionable messages:
// "no such family" reads differently from "feed unreachable".
func remoteError(err error) error {
	var notFound *source.NotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	var status *ghapi.StatusError
	if errors.As(err, &status) {
		return fmt.Errorf("polling the version list failed: %w", err)
	}
	var decode *ghapi.DecodeError
	if errors.As(err, &decode) {
		return fmt.Errorf("the data source returned a malformed response: %w", err)
	}
	return fmt.Errorf("could not reach the data source, check your internet connection: %w", err)
}
