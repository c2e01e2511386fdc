package services

import (
	"strings"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// BuildContext renders ranked results as generation context.
// Each result becomes "Source: <path>\n<content>"; blocks are separated by a
// blank line and keep ranking order.
func BuildContext(results []domain.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, "Source: "+r.Path+"\n"+r.Content)
	}
	return strings.Join(blocks, "\n\n")
}
