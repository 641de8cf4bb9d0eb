package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/stacklok/fuzzymatch/internal/document"
	"github.com/stacklok/fuzzymatch/pkg/dictionary"
)

// maxConcurrentReads bounds the number of files merge reads at once
const maxConcurrentReads = 8

func newMergeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Deep-merge YAML or JSON documents",
		Long: `Merge reads every FILE and merges them in order: mappings merge key by key,
sequences are concatenated and scalars are replaced by later values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context(), cmd.OutOrStdout(), args,
				v.GetBool("merge.body"), v.GetString("merge.output"))
		},
	}

	cmd.Flags().Bool("body", false, "Print the value under the single top-level key of the result")
	cmd.Flags().StringP("output", "o", outputYAML, "Output format (yaml or json)")
	bindFlags(v, cmd, "merge", "body", "output")

	return cmd
}

func runMerge(ctx context.Context, out io.Writer, paths []string, body bool, output string) error {
	if err := checkOutput(output, outputYAML, outputJSON); err != nil {
		return err
	}

	// Files are read concurrently but merged in argument order.
	docs := make([]any, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := document.ReadFile(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	merged, err := dictionary.Merge(docs...)
	if err != nil {
		return fmt.Errorf("failed to merge documents: %w", err)
	}
	slog.Info("Merged documents", "files", len(paths))

	if body {
		merged, err = dictionary.Body(merged)
		if err != nil {
			return err
		}
	}

	return writeDocument(out, merged, output)
}
