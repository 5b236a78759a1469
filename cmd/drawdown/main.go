package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand needs once settings are loaded
type app struct {
	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.CalculationEngine
}

// setup loads settings, builds the logger and the calculation engine. Flags on
// the root command take precedence over the settings file.
func setup(cmd *cobra.Command) (*app, error) {
	settingsPath, _ := cmd.Flags().GetString("settings")
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	if regulatory, _ := cmd.Flags().GetString("regulatory-config"); regulatory != "" {
		settings.RegulatoryFile = regulatory
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		settings.Output.Format = format
	}

	levelOverride, _ := cmd.Flags().GetString("log-level")
	if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
		levelOverride = "debug"
	}
	logger, err := config.NewLogger(settings.Logging, levelOverride)
	if err != nil {
		return nil, err
	}

	table, err := config.LoadStatutoryAgeTable(settings.RegulatoryFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("statutory age table loaded",
		zap.String("jurisdiction", table.Metadata.Jurisdiction),
		zap.Int("rules", len(table.Rules)))

	engine := calculation.NewCalculationEngine(table)
	engine.SetLogger(calculation.NewZapLogger(logger))

	return &app{settings: settings, logger: logger, engine: engine}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "drawdown",
		Short: "Retirement capital drawdown calculator",
		Long: `Plans the drawdown of retirement capital: statutory pension eligibility,
the build-up of savings, a year-by-year withdrawal schedule net of pensions,
and the capital (lump sum and/or monthly deposits) a target income requires.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("settings", "", "Application settings file (YAML)")
	root.PersistentFlags().String("regulatory-config", "", "Statutory pension age table (YAML), replaces the built-in table")
	root.PersistentFlags().StringP("format", "f", "", "Output format: console, console-lite, csv, json (aliases: verbose, table, summary, lite)")
	root.PersistentFlags().String("log-level", "", "Log level override: debug, info, warn, error")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(
		newCalculateCmd(),
		newEligibilityCmd(),
		newBuildUpCmd(),
		newForwardCmd(),
		newReverseCmd(),
		newCompareCmd(),
		newValidateCmd(),
		newServeCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := version, commit, date
			if info, ok := debug.ReadBuildInfo(); ok && v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
				v = info.Main.Version
			}
			fmt.Fprintf(cmd.OutOrStdout(), "drawdown %s (commit %s, built %s)\n", v, c, d)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
