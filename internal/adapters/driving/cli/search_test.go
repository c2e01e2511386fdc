package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docask/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search indexed documents", searchCmd.Short)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestSearchCmd_HasTopFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("top")
	require.NotNil(t, flag, "top flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestSearchCmd_UsesSettingsTop(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "search", "sleepy", "cats")

	require.NoError(t, err)
	assert.Equal(t, "sleepy cats", mocks.search.query)
	assert.Equal(t, domain.DefaultTopK, mocks.search.lastOpts.TopK)
	assert.Equal(t, "Top matches:\n"+
		"- data/cats.txt (score: 0.612)\n"+
		"- data/dogs.txt (score: 0.200)\n"+
		"- data/fish.txt (score: 0.100)\n", out)
}

func TestSearchCmd_TopFlag(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "search", "-n", "1", "cats")

	require.NoError(t, err)
	assert.Equal(t, 1, mocks.search.lastOpts.TopK)
	assert.NotContains(t, out, "dogs")
}

func TestSearchCmd_InvalidTop(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "search", "--top", "0", "cats")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchCmd_NoMatches(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	mocks.search.results = nil

	out, err := execute(t, "", "search", "zebra")

	require.NoError(t, err)
	assert.Equal(t, "No matching documents found.\n", out)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "search", "--json", "cats")
	require.NoError(t, err)

	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "data/cats.txt", results[0].Path)
	assert.Contains(t, out, `"content"`)
}

func TestSearchCmd_IndexNotFound(t *testing.T) {
	mocks, cleanup := setupTestServices()
	defer cleanup()
	mocks.search.err = domain.ErrIndexNotFound

	_, err := execute(t, "", "search", "cats")

	require.Error(t, err)
	assert.Equal(t, "index not found, run: docask index", err.Error())
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	searchService = nil

	_, err := execute(t, "", "search", "test")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestOutputSearchJSON_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputSearchJSON(rootCmd, nil)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "[]")
}
