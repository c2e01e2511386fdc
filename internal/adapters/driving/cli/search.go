package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docask/internal/core/domain"
)

var (
	searchTop  int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Ranks indexed documents by TF-IDF cosine similarity to the query and
prints the best matches. Documents sharing no terms with the query are
never returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTop, "top", "n", 0, "number of results (default from settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if searchService == nil {
		return errors.New("search service not configured")
	}

	top, err := resolveTop(cmd, searchTop)
	if err != nil {
		return err
	}

	results, err := searchService.Search(cmd.Context(), query, domain.SearchOptions{TopK: top})
	if err != nil {
		return explain(err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	printMatches(cmd, results)
	return nil
}

// resolveTop returns the --top flag when given, otherwise search.top.
func resolveTop(cmd *cobra.Command, flagValue int) (int, error) {
	if cmd.Flags().Changed("top") {
		if flagValue < 1 {
			return 0, fmt.Errorf("%w: --top must be at least 1", domain.ErrInvalidInput)
		}
		return flagValue, nil
	}
	settings, err := currentSettings()
	if err != nil {
		return 0, err
	}
	return settings.Search.TopK, nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printMatches writes the ranked paths with three-decimal scores.
func printMatches(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No matching documents found.")
		return
	}

	cmd.Println("Top matches:")
	for _, r := range results {
		cmd.Printf("- %s (score: %.3f)\n", r.Path, r.Score)
	}
}
