package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docask/internal/adapters/driving/tui"
)

var tuiModel string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docask.

Type a question to rank the indexed documents, open a match to read it,
or press "a" to generate an answer from the top matches.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search / Open
  a        - Answer
  n, /     - New question
  Esc      - Back
  ctrl+c   - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiModel, "model", "m", "", "model used for answers")
	rootCmd.AddCommand(tuiCmd)
}

// newTUIPorts builds the TUI ports from the configured services.
func newTUIPorts() (*tui.Ports, error) {
	settings, err := currentSettings()
	if err != nil {
		return nil, err
	}
	ports := tui.NewPorts(searchService, askService)
	ports.TopK = settings.Search.TopK
	ports.Model = tuiModel
	return ports, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports, err := newTUIPorts()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
