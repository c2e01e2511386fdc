// Package info provides the index summary view for the TUI.
package info

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docask/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docask/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docask/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driving"
)

// View shows what the stored index contains.
type View struct {
	styles        *styles.Styles
	searchService driving.SearchService
	ctx           context.Context

	info    *domain.IndexInfo
	err     error
	loading bool
	width   int
	height  int
	ready   bool
}

// NewView creates a new info view.
func NewView(s *styles.Styles, searchService driving.SearchService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		searchService: searchService,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load returns a command that reads the index summary.
func (v *View) Load() tea.Cmd {
	v.loading = true
	ctx := v.ctx
	svc := v.searchService
	return func() tea.Msg {
		if svc == nil {
			return messages.InfoLoaded{Err: search.ErrNoSearchService}
		}
		info, err := svc.Info(ctx)
		return messages.InfoLoaded{Info: info, Err: err}
	}
}

// Update handles messages for the info view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.InfoLoaded:
		v.loading = false
		v.info = msg.Info
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return v, v.Load()
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the info view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Index"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + search.Describe(v.err)))
	case v.info == nil:
		b.WriteString(v.styles.Muted.Render("No index information."))
	default:
		rows := [][2]string{
			{"Build", v.info.BuildID},
			{"Created", v.info.CreatedAt.Local().Format(time.DateTime)},
			{"Documents", fmt.Sprintf("%d", v.info.Documents)},
			{"Vocabulary", fmt.Sprintf("%d terms", v.info.VocabularySize)},
			{"Location", v.info.Location},
		}
		for _, row := range rows {
			b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%-12s", row[0])))
			b.WriteString(v.styles.Normal.Render(row[1]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("[r] reload  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Info returns the loaded summary, or nil.
func (v *View) Info() *domain.IndexInfo {
	return v.info
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}
