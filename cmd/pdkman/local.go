package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pdktools/pdkman/internal/manage"
	"github.com/pdktools/pdkman/internal/pdk"
)

func rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <version>",
		Short: "Remove an installed PDK version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm("This will delete this version of the PDK from your computer. Are you sure?") {
				return nil
			}
			version := pdk.Version{Name: args[0], Family: pdkFamily}
			if err := version.Uninstall(cfg.PDKRoot); err != nil {
				return err
			}
			logger.Info("deleted", "version", version.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func pruneCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove all PDK versions other than the enabled one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm("This will delete all non-enabled versions of the PDK from your computer. Are you sure?") {
				return nil
			}
			mgr := manage.New(dataSource, cfg.PDKRoot, logger)
			return mgr.Prune(pdkFamily)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func pathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path [version]",
		Short: "Print the PDK store path, or the path of one version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				version := pdk.Version{Name: args[0], Family: pdkFamily}
				fmt.Print(version.Dir(cfg.PDKRoot))
				return nil
			}
			fmt.Println(pdk.StoreDir(cfg.PDKRoot))
			return nil
		},
	}
}

func outputCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "output",
		Short: "Print the currently enabled PDK version",
		Long:  "Prints the currently enabled PDK version. When not outputting to a tty, the bare version string is printed, or nothing with exit status 1 if no version is enabled.",
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := pdk.Current(cfg.PDKRoot, pdkFamily)
			if err != nil {
				return err
			}

			if !isatty.IsTerminal(os.Stdout.Fd()) {
				if current == nil {
					os.Exit(1)
				}
				fmt.Print(current.Name)
				return nil
			}

			if current == nil {
				fmt.Printf("No version of the PDK %s is currently enabled at %s.\n", pdkFamily, cfg.PDKRoot)
				fmt.Println("Invoke pdkman --help for assistance installing and enabling versions.")
				os.Exit(1)
			}
			fmt.Printf("Installed: %s v%s\n", pdkFamily, current.Name)
			return nil
		},
	}
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
