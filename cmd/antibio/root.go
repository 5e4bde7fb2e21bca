package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"antibio/pkg/config"
	"antibio/pkg/logging"
	"antibio/pkg/pipeline"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	configPath      string
	inputDir        string
	outputDir       string
	imagesDir       string
	file            string
	delimiter       string
	logLevel        string
	distributionDay int
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "antibio",
		Short: "Filter the mouse experiment table and chart live bacteria frequency",
		Long: "antibio reads a semicolon-delimited experiment table, checks its columns,\n" +
			"writes the fecal, cecal and ileal views as CSV and draws a line chart of the\n" +
			"fecal samples and a violin chart per gut sample type.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			log, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			defer func() { _ = log.Sync() }()

			// failures are logged by the pipeline itself
			return pipeline.New(cfg, log).Run()
		},
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fl.StringVar(&f.inputDir, "input-dir", "", "directory holding the input table (default input)")
	fl.StringVar(&f.outputDir, "output-dir", "", "directory for the filtered CSV views (default output)")
	fl.StringVar(&f.imagesDir, "images-dir", "", "directory for the chart images (default images)")
	fl.StringVar(&f.file, "file", "", "input table file name (default data_small.csv)")
	fl.StringVar(&f.delimiter, "delimiter", "", "input field delimiter (default ;)")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warning or error (default info)")
	fl.IntVar(&f.distributionDay, "distribution-day", 0, "keep only this experimental day in the violin charts")
	cmd.SetOut(os.Stdout)
	return cmd
}

// resolveConfig layers flags over the config file and environment.
func resolveConfig(cmd *cobra.Command, f rootFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	fl := cmd.Flags()
	for name, src := range map[string]struct{ flag, dst *string }{
		"input-dir":  {&f.inputDir, &cfg.InputDir},
		"output-dir": {&f.outputDir, &cfg.OutputDir},
		"images-dir": {&f.imagesDir, &cfg.ImagesDir},
		"file":       {&f.file, &cfg.InputFile},
		"delimiter":  {&f.delimiter, &cfg.InputDelimiter},
		"log-level":  {&f.logLevel, &cfg.LogLevel},
	} {
		if fl.Changed(name) {
			*src.dst = *src.flag
		}
	}
	if fl.Changed("distribution-day") {
		day := f.distributionDay
		cfg.DistributionDay = &day
	}
	return cfg, cfg.Validate()
}
