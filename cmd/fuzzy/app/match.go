package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/fuzzymatch/internal/document"
	"github.com/stacklok/fuzzymatch/internal/filtering"
	"github.com/stacklok/fuzzymatch/pkg/fuzzy"
)

var (
	includedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	excludedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// decision is one row of match output
type decision struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
	Reason   string `json:"reason"`
}

// matchOptions holds the resolved flags of the match command
type matchOptions struct {
	include    []string
	exclude    []string
	matchTypes []string
	tags       bool
	output     string
}

func newMatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match NAME...",
		Short: "Explain whether names pass include and exclude patterns",
		Long: `Match reports, for every NAME, whether it passes the include and exclude
patterns and which pattern and match type decided it. Exclude patterns take
precedence over include patterns.

With --tags the names are treated as the tag set of a single element, which
passes an include when any tag matches.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := matchOptions{
				include:    v.GetStringSlice("match.include"),
				exclude:    v.GetStringSlice("match.exclude"),
				matchTypes: v.GetStringSlice("match.match-type"),
				tags:       v.GetBool("match.tags"),
				output:     v.GetString("match.output"),
			}
			return runMatch(cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringSliceP("include", "i", nil, "Include patterns")
	cmd.Flags().StringSliceP("exclude", "e", nil, "Exclude patterns")
	cmd.Flags().StringSliceP("match-type", "m", nil, "Fallback chain, e.g. EXACT,GLOB")
	cmd.Flags().Bool("tags", false, "Treat all names as the tags of one element")
	cmd.Flags().StringP("output", "o", outputTable, "Output format (table or json)")
	bindFlags(v, cmd, "match", "include", "exclude", "match-type", "tags", "output")

	return cmd
}

func runMatch(out io.Writer, names []string, opts matchOptions) error {
	if err := checkOutput(opts.output, outputTable, outputJSON); err != nil {
		return err
	}

	chain, err := fuzzy.ParseMatchTypes(opts.matchTypes)
	if err != nil {
		return err
	}

	var decisions []decision
	if opts.tags {
		filter, err := filtering.NewTagFilter(chain...)
		if err != nil {
			return err
		}
		included, reason := filter.ShouldInclude(names, opts.include, opts.exclude)
		decisions = append(decisions, decision{Name: strings.Join(names, ","), Included: included, Reason: reason})
	} else {
		filter, err := filtering.NewNameFilter(chain...)
		if err != nil {
			return err
		}
		for _, name := range names {
			included, reason := filter.ShouldInclude(name, opts.include, opts.exclude)
			decisions = append(decisions, decision{Name: name, Included: included, Reason: reason})
		}
	}

	if opts.output == outputJSON {
		return document.EncodeJSON(out, decisions, true)
	}
	return renderDecisions(out, decisions)
}

func renderDecisions(out io.Writer, decisions []decision) error {
	table := tablewriter.NewWriter(out)
	table.Header("Name", "Included", "Reason")
	for _, d := range decisions {
		verdict := excludedStyle.Render("no")
		if d.Included {
			verdict = includedStyle.Render("yes")
		}
		if err := table.Append(d.Name, verdict, d.Reason); err != nil {
			return fmt.Errorf("failed to render %s: %w", d.Name, err)
		}
	}
	return table.Render()
}
