package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/maisem/aoc2024"
)

type cli struct {
	verbose    bool
	configPath string

	cfg    aoc.Config
	logger *log.Logger
	stdout io.Writer
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// setup loads the config and builds the logger before any subcommand runs.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := aoc.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.cfg = cfg
	c.logger = newLogger(cmd.ErrOrStderr(), level)
	c.stdout = cmd.OutOrStdout()
	c.logger.Debug("config loaded", "year", cfg.Year, "input_dir", cfg.InputDir, "workers", cfg.Workers)
	return nil
}

func rootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:               "aoc2024",
		Short:             "Run the Advent of Code 2024 solutions",
		Long:              "aoc2024 solves each day on its embedded sample, then on the real input.\n\nEnvironment:\n" + aoc.ConfigUsage(),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML or TOML config file")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.daysCommand())
	return root
}

func (c *cli) runCommand() *cobra.Command {
	var opts aoc.RunOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Solve the selected days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.OnlySample && opts.SkipSample {
				return fmt.Errorf("--sample and --skip-sample are mutually exclusive")
			}
			opts.Debug = c.verbose
			opts.Out = c.stdout
			return aoc.Run(cmd.Context(), c.cfg, opts, source, &solver{}, c.logger)
		},
	}
	cmd.Flags().IntVar(&opts.Day, "day", 0, "day to run; 0 runs all")
	cmd.Flags().StringVar(&opts.Part, "part", "", "part to run; empty runs all")
	cmd.Flags().BoolVar(&opts.OnlySample, "sample", false, "only run the samples")
	cmd.Flags().BoolVar(&opts.SkipSample, "skip-sample", false, "skip the samples")
	return cmd
}

func (c *cli) daysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List the implemented days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			days, err := aoc.Days(&solver{})
			if err != nil {
				return err
			}
			for _, d := range days {
				fmt.Fprintln(c.stdout, d)
			}
			return nil
		},
	}
}
