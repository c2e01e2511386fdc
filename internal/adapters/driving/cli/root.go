// Package cli provides the docask command line.
// It is a driving adapter: every command talks to the core through the
// driving ports injected by the composition root.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driving"
	"github.com/custodia-labs/docask/internal/logger"
)

// version is set by SetVersion, usually from build flags.
var version = "dev"

var verbose bool

// Services configured by the composition root.
var (
	indexService    driving.IndexService
	searchService   driving.SearchService
	askService      driving.AskService
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "docask",
	Short: "Ask questions against your local documents",
	Long: `docask indexes a folder of text, Markdown and PDF files with TF-IDF,
ranks them against free-text questions and can optionally generate an
answer from the best matches with an LLM.

Start by building the index:
  docask index --source ./data

Then ask:
  docask ask "how do I rotate the keys?" --answer`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline details to stderr")
}

// Services groups the driving ports used by the commands.
type Services struct {
	Index    driving.IndexService
	Search   driving.SearchService
	Ask      driving.AskService
	Settings driving.SettingsService
}

// SetServices injects the driving ports.
func SetServices(s Services) {
	indexService = s.Index
	searchService = s.Search
	askService = s.Ask
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command and MCP server.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. Command output goes to stdout and
// diagnostics to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	return rootCmd.ExecuteContext(ctx)
}

// currentSettings returns the configured settings, or defaults when no
// settings service is wired.
func currentSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// explain rewrites errors the user can act on into guidance.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrIndexNotFound):
		return errors.New("index not found, run: docask index")
	case errors.Is(err, domain.ErrIndexCorrupt):
		return fmt.Errorf("%w, rebuild it with: docask index", err)
	case errors.Is(err, domain.ErrMissingCredential):
		return fmt.Errorf("%w: set OPENAI_API_KEY or run: docask settings set llm.api_key <key>", err)
	default:
		return err
	}
}
