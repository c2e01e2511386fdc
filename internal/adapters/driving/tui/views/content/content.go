// Package content provides the full-text view of a single search result.
package content

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docask/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docask/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docask/internal/core/domain"
)

// reservedLines covers the title, separator, position and help rows.
const reservedLines = 7

// View shows the text of one result in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	viewport viewport.Model
	result   *domain.SearchResult
	width    int
	height   int
	ready    bool
}

// NewView creates a new content view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		viewport: viewport.New(80, 24-reservedLines),
		width:    80,
		height:   24,
	}
}

// SetResult replaces the displayed result and scrolls to the top.
func (v *View) SetResult(result domain.SearchResult) {
	v.result = &result
	v.refresh()
	v.viewport.GotoTop()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ResultSelected:
		v.SetResult(msg.Result)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewSearch}
			}
		case "home", "g":
			v.viewport.GotoTop()
			return v, nil
		case "end", "G":
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// refresh wraps the result text to the current width.
func (v *View) refresh() {
	if v.result == nil {
		v.viewport.SetContent("")
		return
	}
	text := strings.TrimSpace(v.result.Content)
	if text == "" {
		v.viewport.SetContent(v.styles.Muted.Render("(No content)"))
		return
	}
	wrapped := lipgloss.NewStyle().Width(max(v.width-4, 20)).Render(text)
	v.viewport.SetContent(wrapped)
}

// View renders the content view.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.result != nil {
		title = v.result.Path
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.result != nil {
		b.WriteString(v.styles.Score.Render(fmt.Sprintf("score: %.3f", v.result.Score)))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n")

	b.WriteString(v.viewport.View())
	b.WriteString("\n")

	if v.viewport.TotalLineCount() > v.viewport.VisibleLineCount() {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%3.f%%]", v.viewport.ScrollPercent()*100)))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Muted.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.viewport.Width = width
	v.viewport.Height = max(height-reservedLines, 1)
	v.refresh()
}

// Result returns the displayed result, or nil.
func (v *View) Result() *domain.SearchResult {
	return v.result
}

// ScrollPercent reports how far the viewport is scrolled.
func (v *View) ScrollPercent() float64 {
	return v.viewport.ScrollPercent()
}

// Ready returns whether the view has been sized.
func (v *View) Ready() bool {
	return v.ready
}
