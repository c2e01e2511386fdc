package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docask/internal/core/domain"
)

var (
	indexSource string
	indexWatch  bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the document index",
	Long: `Reads every .txt, .md, .markdown and .pdf file under the source folder,
fits a TF-IDF model over them and writes the index, replacing any previous one.

The source defaults to the index.source setting (./data).

With --watch the command stays running and rebuilds the whole index each
time a file under the source changes.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexSource, "source", "s", "", "folder to index (default from settings)")
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "rebuild when the source changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	settings, err := currentSettings()
	if err != nil {
		return err
	}
	source := indexSource
	if source == "" {
		source = settings.Index.Source
	}

	ctx := cmd.Context()
	idx, err := indexService.BuildFromSource(ctx, source)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	cmd.Printf("Indexed %d documents into %s\n", idx.Len(), settings.Index.Dir)

	if !indexWatch {
		return nil
	}

	cmd.Printf("Watching %s for changes (ctrl+c to stop)\n", source)
	err = indexService.Watch(ctx, source, func(idx *domain.Index, err error) {
		if err != nil {
			cmd.PrintErrf("Rebuild failed: %v\n", err)
			return
		}
		cmd.Printf("Indexed %d documents into %s\n", idx.Len(), settings.Index.Dir)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
