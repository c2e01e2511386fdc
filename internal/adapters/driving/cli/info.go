package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what is indexed",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	info, err := searchService.Info(cmd.Context())
	if err != nil {
		return explain(err)
	}

	if infoJSON {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal index info: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Build:      %s\n", info.BuildID)
	cmd.Printf("Created:    %s\n", info.CreatedAt.Local().Format(time.RFC3339))
	cmd.Printf("Documents:  %d\n", info.Documents)
	cmd.Printf("Vocabulary: %d terms\n", info.VocabularySize)
	cmd.Printf("Location:   %s\n", info.Location)
	return nil
}
