package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docask/internal/core/domain"
)

var (
	askTop    int
	askAnswer bool
	askModel  string
)

// stdinIsTerminal reports whether the question prompt should be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the indexed documents",
	Long: `Prints the documents that best match the question. With --answer the
matches are sent as context to the configured LLM, which answers using only
that context.

Without a question argument, the question is read from standard input.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTop, "top", "n", 0, "number of results (default from settings)")
	askCmd.Flags().BoolVarP(&askAnswer, "answer", "a", false, "generate an answer from the matches")
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "model for --answer (default OPENAI_MODEL or llm.model)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		question = promptQuestion(cmd)
	}
	if question == "" {
		return errors.New("please provide a question")
	}

	top, err := resolveTop(cmd, askTop)
	if err != nil {
		return err
	}

	opts := domain.AskOptions{
		SearchOptions: domain.SearchOptions{TopK: top},
		Answer:        askAnswer,
		Model:         askModel,
	}
	res, err := askService.Ask(cmd.Context(), question, opts)
	if res == nil {
		return explain(err)
	}

	printMatches(cmd, res.Results)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", explain(err))
	}

	if res.Answer != "" {
		cmd.Println()
		cmd.Println("Answer:")
		cmd.Println(res.Answer)
	}
	return nil
}

// promptQuestion reads one line from standard input, showing a prompt
// when it is a terminal.
func promptQuestion(cmd *cobra.Command) string {
	if stdinIsTerminal() {
		cmd.Print("Question: ")
	}
	return readLine(bufio.NewReader(cmd.InOrStdin()))
}
