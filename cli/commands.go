package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ankit-chaubey/image-metadata-report/core"
	"github.com/ankit-chaubey/image-metadata-report/core/batch"
	"github.com/ankit-chaubey/image-metadata-report/core/config"
	"github.com/ankit-chaubey/image-metadata-report/core/logging"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "imgmeta",
		Short: "Write human readable EXIF and XMP reports for images",
		Long: `imgmeta reads the EXIF and XMP metadata of images and writes a short,
sectioned text report for each one: camera and lens, exposure settings,
crop and post-processing adjustments, and capture date.

Run without arguments to report every file in the configured input
directory into the output directory.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner(cmd.OutOrStdout()).Run()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: search imgmeta.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	viewCmd := &cobra.Command{
		Use:   "view <image>",
		Short: "Print the metadata report of one image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runner(cmd.OutOrStdout()).View(args[0])
		},
	}
	viewCmd.Flags().BoolVar(&a.jsonOutput, "json", false, "Print the report as JSON")

	saveCmd := &cobra.Command{
		Use:   "save <image>",
		Short: "Save the metadata report of one image to the output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.runner(cmd.OutOrStdout())
			path, err := r.Save(args[0])
			if err != nil {
				return err
			}
			a.printer(cmd.OutOrStdout()).PrintSuccess(fmt.Sprintf("Saved metadata from %s in %s", args[0], path))
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Encode(cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(viewCmd, saveCmd, configCmd)
	return rootCmd
}

// setup loads the configuration and builds the logger before any command
// runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	// Keep stdout clean for JSON reports.
	var w io.Writer = cmd.OutOrStdout()
	if a.jsonOutput {
		w = os.Stderr
	}
	a.logger, err = logging.New(level, w)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func (a *app) printer(w io.Writer) *core.Printer {
	return core.NewPrinter(a.jsonOutput, w)
}

func (a *app) runner(w io.Writer) *batch.Runner {
	return batch.New(a.cfg, a.printer(w), a.logger)
}
