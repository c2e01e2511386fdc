// Package search provides the query and results view for the TUI.
package search

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docask/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docask/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docask/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docask/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docask/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docask/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driving"
)

// Options configures queries issued by the view.
type Options struct {
	// TopK is the number of results. Zero means domain.DefaultTopK.
	TopK int
	// Model overrides the answer model when non-empty.
	Model string
}

// View is the search view: a query input, ranked results, an optional
// generated answer and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	askService    driving.AskService
	opts          Options
	ctx           context.Context

	query      string
	answer     string
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	askService driving.AskService,
	opts Options,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if opts.TopK < 1 {
		opts.TopK = domain.DefaultTopK
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQueryInput(s),
		list:          list.NewResultList(s),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		askService:    askService,
		opts:          opts,
		ctx:           context.Background(),
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.AnswerCompleted:
		v.handleAnswerCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.query = query
			v.answer = ""
			v.err = nil
			v.statusbar.SetState(status.StateSearching)
			v.statusbar.SetMessage("")
			v.focusInput = false
			v.input.Blur()
			return v, v.performSearch(query)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case msg.Type == tea.KeyEnter:
		if result := v.list.SelectedResult(); result != nil {
			selected := *result
			return v, func() tea.Msg {
				return messages.ResultSelected{Result: selected}
			}
		}
	case keymap.Matches(key, v.keymap.Answer):
		if v.query == "" || v.list.IsEmpty() {
			return v, nil
		}
		v.err = nil
		v.statusbar.SetState(status.StateAnswering)
		return v, v.performAnswer(v.query)
	case keymap.Matches(key, v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	return v, nil
}

// performSearch ranks documents for query.
func (v *View) performSearch(query string) tea.Cmd {
	ctx := v.ctx
	svc := v.searchService
	opts := domain.SearchOptions{TopK: v.opts.TopK}
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: ErrNoSearchService}
		}
		results, err := svc.Search(ctx, query, opts)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// performAnswer asks for a generated answer to query.
func (v *View) performAnswer(query string) tea.Cmd {
	ctx := v.ctx
	svc := v.askService
	opts := domain.AskOptions{
		SearchOptions: domain.SearchOptions{TopK: v.opts.TopK},
		Answer:        true,
		Model:         v.opts.Model,
	}
	return func() tea.Msg {
		if svc == nil {
			return messages.AnswerCompleted{Query: query, Err: ErrNoAskService}
		}
		res, err := svc.Ask(ctx, query, opts)
		msg := messages.AnswerCompleted{Query: query, Err: err}
		if res != nil {
			msg.Answer = res.Answer
			msg.Results = res.Results
		}
		return msg
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		v.list.SetResults(nil)
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results)
	v.statusbar.SetResultCount(len(msg.Results))
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateResults)
	if len(msg.Results) == 0 {
		v.statusbar.SetMessage("No matching documents found.")
	}
}

func (v *View) handleAnswerCompleted(msg messages.AnswerCompleted) {
	if msg.Query != v.query {
		return
	}
	if len(msg.Results) > 0 {
		selected := v.list.Selected()
		v.list.SetResults(msg.Results)
		v.list.SetSelected(selected)
		v.statusbar.SetResultCount(len(msg.Results))
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	v.answer = msg.Answer
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("Answer ready")
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(Describe(err))
}

// Describe turns an error into guidance for the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrIndexNotFound):
		return "index not found, run: docask index"
	case errors.Is(err, domain.ErrIndexCorrupt):
		return "index is unreadable, rebuild it with: docask index"
	case errors.Is(err, domain.ErrMissingCredential):
		return "no API key configured, set OPENAI_API_KEY or llm.api_key"
	default:
		return err.Error()
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("docask"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+Describe(v.err)), "")
	}

	if v.query != "" {
		sections = append(sections, v.list.View())
	}

	if v.answer != "" {
		sections = append(sections, "",
			v.styles.Subtitle.Render("Answer:"),
			v.styles.Answer.Width(max(v.width-4, 20)).Render(v.answer))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the last submitted query.
func (v *View) Query() string {
	return v.query
}

// Answer returns the generated answer for the current query, if any.
func (v *View) Answer() string {
	return v.answer
}

// Results returns the current results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns the view to an empty query.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil)
	v.query = ""
	v.answer = ""
	v.err = nil
	v.statusbar.Clear()
}
