package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docask/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change where the index lives, how many results are returned
and which LLM answers questions.

Settings are stored in ~/.docask/config.toml (or $DOCASK_CONFIG_DIR).
OPENAI_API_KEY and OPENAI_MODEL override the stored OpenAI values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a single setting",
	Long: `Change a single setting by key.

Keys:
  index.dir            directory holding the index
  index.source         default folder to index
  index.store          file | sqlite
  search.top           default number of results
  llm.provider         openai | ollama
  llm.model            model used for answers
  llm.base_url         API endpoint (empty for the provider default)
  llm.api_key          API key for OpenAI
  llm.timeout_seconds  limit for one answer request`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Interactively choose the provider, model and credentials used for --answer.`,
	RunE:  runSettingsLLM,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Directory: %s\n", settings.Index.Dir)
	cmd.Printf("  Source: %s\n", settings.Index.Source)
	cmd.Printf("  Store: %s\n", settings.Index.Store.Description())
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Top results: %d\n", settings.Search.TopK)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Timeout: %ds\n", settings.LLM.TimeoutSeconds)
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if key == "llm.api_key" {
		shown = maskAPIKey(value)
	}
	cmd.Printf("%s = %s\n", key, shown)
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return configureLLMProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	providers := domain.AllLLMProviders()
	cmd.Println("Select LLM provider:")
	defaultChoice := 1
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
		if p == settings.LLM.Provider {
			defaultChoice = i + 1
		}
	}
	cmd.Printf("Choice [%d]: ", defaultChoice)
	provider := providers[parseChoice(readLine(reader), len(providers), defaultChoice)-1]

	model := domain.DefaultLLMModels()[provider]
	if provider == settings.LLM.Provider && settings.LLM.Model != "" {
		model = settings.LLM.Model
	}
	cmd.Printf("Model [%s]: ", model)
	if input := readLine(reader); input != "" {
		model = input
	}

	updates := [][2]string{
		{"llm.provider", provider.String()},
		{"llm.model", model},
	}

	if provider.IsLocal() {
		cmd.Printf("Base URL [%s]: ", settings.LLM.BaseURL)
		if input := readLine(reader); input != "" {
			updates = append(updates, [2]string{"llm.base_url", input})
		}
	}

	if provider.RequiresAPIKey() {
		cmd.Print("API key (leave empty to keep current or use OPENAI_API_KEY): ")
		if key := readPassword(reader); key != "" {
			updates = append(updates, [2]string{"llm.api_key", key})
		}
		cmd.Println()
	}

	for _, u := range updates {
		if err := settingsService.Set(u[0], u[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", u[0], err)
		}
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo on a terminal, otherwise from reader.
func readPassword(reader *bufio.Reader) string {
	if stdinIsTerminal() {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
