package main

import (
	"github.com/spf13/cobra"

	"github.com/mhr3/substr/bench"
)

type compareOptions struct {
	configPath string
	seed       int64
	repeats    int
	workers    int
	modulus    int
	fold       bool
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run both matchers over benchmark scenarios and check they agree",
		Long: `Runs the brute force and rolling hash matchers over every scenario of a
YAML config (or the built-in demonstration scenarios), times them and
reports whether they returned the same offsets. Exits non-zero if any
scenario disagrees.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML scenario config")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Override the config's random seed")
	cmd.Flags().IntVar(&opts.repeats, "repeats", 0, "Override the config's timed runs per matcher")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "Override the config's worker count")
	cmd.Flags().IntVar(&opts.modulus, "modulus", 0, "Override the config's rolling hash modulus")
	cmd.Flags().BoolVarP(&opts.fold, "ignore-case", "i", false, "Match ASCII letters case-insensitively")
	return cmd
}

func runCompare(cmd *cobra.Command, root *rootOptions, opts *compareOptions) error {
	cfg := bench.DefaultConfig()
	if opts.configPath != "" {
		var err error
		cfg, err = bench.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		root.logger.Info("loaded config", "path", opts.configPath, "cases", len(cfg.Cases))
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("repeats") {
		cfg.Repeats = opts.repeats
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("modulus") {
		cfg.Modulus = opts.modulus
	}
	if flags.Changed("ignore-case") {
		cfg.Fold = opts.fold
	}

	runner, err := bench.NewRunner(cfg, root.logger)
	if err != nil {
		return err
	}
	reports, runErr := runner.Run(cmd.Context())
	if err := bench.Render(cmd.OutOrStdout(), bench.CurrentEnvironment(), reports); err != nil {
		return err
	}
	return runErr
}
