package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/fuzzymatch/internal/config"
	"github.com/stacklok/fuzzymatch/internal/document"
	"github.com/stacklok/fuzzymatch/internal/filtering"
	"github.com/stacklok/fuzzymatch/internal/versions"
	pkgversions "github.com/stacklok/fuzzymatch/pkg/versions"
)

// filterOptions holds the resolved flags of the filter command
type filterOptions struct {
	include    []string
	exclude    []string
	matchTypes []string
	configPath string
	selectPath string
	output     string
}

func newFilterCmd(v *viper.Viper, service filtering.FilterService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter [FILE]",
		Short: "Filter a sequence or mapping with include and exclude patterns",
		Long: `Filter reads a YAML or JSON document (standard input when FILE is omitted
or "-") and prints the elements, or mapping entries, that survive the filter.

Patterns given with --include run before patterns given with --exclude. A
pipeline file given with --config runs first; its format is:

  minVersion: "0.1.0"
  matchTypes: [EXACT, PREFIX]
  steps:
    - include: ["postgres", "mysql"]
    - exclude: ["*-experimental"]
      matchTypes: [GLOB]`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			opts := filterOptions{
				include:    v.GetStringSlice("filter.include"),
				exclude:    v.GetStringSlice("filter.exclude"),
				matchTypes: v.GetStringSlice("filter.match-type"),
				configPath: v.GetString("filter.config"),
				selectPath: v.GetString("filter.select"),
				output:     v.GetString("filter.output"),
			}
			return runFilter(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), service, path, opts)
		},
	}

	cmd.Flags().StringSliceP("include", "i", nil, "Keep elements matching any of these patterns")
	cmd.Flags().StringSliceP("exclude", "e", nil, "Drop elements matching any of these patterns")
	cmd.Flags().StringSliceP("match-type", "m", nil,
		"Fallback chain for --include and --exclude, e.g. EXACT,PREFIX (default EXACT,IGNORECASE,PREFIX,CONTAINS)")
	cmd.Flags().StringP("config", "c", "", "Path to a filter pipeline file (YAML format)")
	cmd.Flags().StringP("select", "s", "", "Filter the part of the document at this path, e.g. registry.servers")
	cmd.Flags().StringP("output", "o", outputYAML, "Output format (yaml or json)")
	bindFlags(v, cmd, "filter", "include", "exclude", "match-type", "config", "select", "output")

	return cmd
}

func runFilter(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	service filtering.FilterService,
	path string,
	opts filterOptions) error {
	if err := checkOutput(opts.output, outputYAML, outputJSON); err != nil {
		return err
	}

	cfg, err := opts.pipeline()
	if err != nil {
		return err
	}

	doc, err := readDocument(in, path)
	if err != nil {
		return err
	}
	doc, err = document.Select(doc, opts.selectPath)
	if err != nil {
		return err
	}

	c, err := document.RequireCollection(doc)
	if err != nil {
		return fmt.Errorf("cannot filter %s: %w", path, err)
	}

	filtered, err := service.Apply(ctx, c, cfg)
	if err != nil {
		return fmt.Errorf("failed to filter %s: %w", path, err)
	}

	return writeDocument(out, filtered, opts.output)
}

// pipeline combines the --config file with the flag patterns. A nil result
// means there is nothing to apply.
func (o filterOptions) pipeline() (*config.Config, error) {
	var cfg *config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(config.WithConfigPath(o.configPath))
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		slog.Info("Loaded filter pipeline", "path", o.configPath, "steps", len(loaded.Steps))
		cfg = loaded
	}

	if flags := config.FromFlags(o.include, o.exclude, o.matchTypes); len(flags.Steps) > 0 {
		cfg = cfg.Append(flags)
	}
	if cfg == nil {
		return nil, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if err := versions.CheckMinVersion(pkgversions.GetVersionInfo().Version, cfg.MinVersion); err != nil {
		return nil, err
	}
	return cfg, nil
}
