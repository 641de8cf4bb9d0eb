// Package app provides the command line interface of fuzzy.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/fuzzymatch/internal/config"
	"github.com/stacklok/fuzzymatch/internal/filtering"
	"github.com/stacklok/fuzzymatch/pkg/versions"
)

// logLevel is shared by the default handler so --debug can lower it after startup
var logLevel = new(slog.LevelVar)

// SetupLogging installs a JSON slog handler writing to w as the default logger
func SetupLogging(w io.Writer, level slog.Level) {
	logLevel.Set(level)
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})))
}

// NewRootCmd creates a new root command for fuzzy.
func NewRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:               "fuzzy",
		DisableAutoGenTag: true,
		SilenceErrors:     true,
		SilenceUsage:      true,
		Short:             "Filter YAML and JSON collections with fuzzy matching",
		Long: `fuzzy filters sequences and mappings read from YAML or JSON documents.

Patterns are compared with a fallback chain of match types (EXACT, IGNORECASE,
PREFIX, SUFFIX, CONTAINS, GLOB, REGEX). The first match type in the chain that
selects anything decides the result.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if v.GetBool("debug") {
				logLevel.Set(slog.LevelDebug)
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				slog.Error("Error displaying help", "error", err)
			}
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	if err := v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		slog.Error("Error binding debug flag", "error", err)
	}

	// Add subcommands
	rootCmd.AddCommand(newFilterCmd(v, filtering.NewDefaultFilterService()))
	rootCmd.AddCommand(newMatchCmd(v))
	rootCmd.AddCommand(newMergeCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newViper returns a viper instance reading FUZZY_* environment variables.
// Flag keys are namespaced by command, so "filter.match-type" maps to FUZZY_FILTER_MATCH_TYPE.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags binds the named flags of cmd to "<prefix>.<name>" keys in v
func bindFlags(v *viper.Viper, cmd *cobra.Command, prefix string, names ...string) {
	for _, name := range names {
		if err := v.BindPFlag(prefix+"."+name, cmd.Flags().Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
		}
	}
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetVersionInfo()
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("error retrieving format flag: %w", err)
			}

			if format == "json" {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("error formatting version info as JSON: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "fuzzy %s\ncommit: %s\nbuilt: %s\ngo: %s\nplatform: %s\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
			return err
		},
	}
	cmd.Flags().String("format", "", "Output format (json)")
	return cmd
}
