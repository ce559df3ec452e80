package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pdktools/pdkman/internal/config"
	"github.com/pdktools/pdkman/internal/source"
)

var (
	pdkRoot        string
	pdkFamily      string
	dataSourceFlag string

	cfg        *config.Config
	dataSource source.DataSource
	logger     *log.Logger
)

func main() {
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "pdkman"})

	rootCmd := &cobra.Command{
		Use:              "pdkman",
		Short:            "Version manager for prebuilt process design kits",
		Long:             "pdkman installs prebuilt PDK archives from a release feed, keeps multiple versions side by side under a PDK root, and switches the enabled one.",
		SilenceUsage:     true,
		PersistentPreRun: setup,
	}

	rootCmd.PersistentFlags().StringVar(&pdkRoot, "pdk-root", "", "Directory to install PDKs under (default: $PDK_ROOT or ~/.pdkman)")
	rootCmd.PersistentFlags().StringVar(&pdkFamily, "pdk", "sky130", "PDK family to operate on")
	rootCmd.PersistentFlags().StringVar(&dataSourceFlag, "data-source", "", "Data source selector in the form <backend-id>:<argument>")

	rootCmd.AddCommand(
		listCmd(),
		listRemoteCmd(),
		enableCmd(),
		fetchCmd(),
		rmCmd(),
		pruneCmd(),
		pathCmd(),
		outputCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and selects the data source backend. Selector
// errors are configuration mistakes, fatal with a distinguished status.
func setup(cmd *cobra.Command, args []string) {
	loaded, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	cfg = loaded

	if pdkRoot != "" {
		cfg.PDKRoot = pdkRoot
	}
	if dataSourceFlag != "" {
		cfg.DataSource = dataSourceFlag
	}

	ds, err := source.Default.New(cfg.DataSource)
	if err != nil {
		logger.Error("invalid data source configuration", "err", err)
		os.Exit(2)
	}
	dataSource = ds
}
