package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docask/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docask/internal/core/domain"
)

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{Path: "data/cats.txt", Score: 0.7, Content: "Cats sleep most of the day."},
		{Path: "data/dogs.txt", Score: 0.3, Content: "Dogs like long walks."},
	}
}

func newTestPorts() *Ports {
	return &Ports{
		Search: &MockSearchService{
			SearchFunc: func(context.Context, string, domain.SearchOptions) ([]domain.SearchResult, error) {
				return testResults(), nil
			},
		},
		Ask: &MockAskService{
			AskFunc: func(context.Context, string, domain.AskOptions) (*domain.AskResult, error) {
				return &domain.AskResult{Results: testResults(), Answer: "Mostly sleeping."}, nil
			},
		},
	}
}

// goToSearchView navigates the app from menu to search view for testing.
func goToSearchView(app *App) {
	app.SetDimensions(100, 40)
	app.Update(messages.ViewChanged{View: messages.ViewSearch})
}

// runCmd executes cmd and feeds its message back into the app.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func typeQuery(t *testing.T, app *App, query string) {
	t.Helper()
	for _, r := range query {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, app, cmd)
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingSearchService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Nil(t, cmd)
	assert.True(t, model.(*App).Ready())
	assert.Contains(t, app.View(), "Ask")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_QuitMessage(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	_, cmd := app.Update(messages.Quit{})
	require.NotNil(t, cmd)
}

func TestApp_SearchFlow(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	goToSearchView(app)
	require.Equal(t, messages.ViewSearch, app.CurrentView())

	typeQuery(t, app, "cats")

	assert.Equal(t, "cats", app.Query())
	assert.Len(t, app.Results(), 2)
	assert.NoError(t, app.Err())
	assert.Contains(t, app.View(), "data/cats.txt")
}

func TestApp_AnswerFlow(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	goToSearchView(app)
	typeQuery(t, app, "cats")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	runCmd(t, app, cmd)

	assert.Equal(t, "Mostly sleeping.", app.Answer())
	assert.Contains(t, app.View(), "Mostly sleeping.")
}

func TestApp_OpenResultAndReturn(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	goToSearchView(app)
	typeQuery(t, app, "cats")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, app, cmd)

	assert.Equal(t, messages.ViewContent, app.CurrentView())
	assert.Contains(t, app.View(), "Cats sleep most of the day.")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	runCmd(t, app, cmd)

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Equal(t, "cats", app.Query())
	assert.Len(t, app.Results(), 2)
}

func TestApp_MenuResetsSearch(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	goToSearchView(app)
	typeQuery(t, app, "cats")

	app.Update(messages.ViewChanged{View: messages.ViewMenu})
	app.Update(messages.ViewChanged{View: messages.ViewSearch})

	assert.Empty(t, app.Query())
	assert.Empty(t, app.Results())
}

func TestApp_InfoView(t *testing.T) {
	ports := newTestPorts()
	ports.Search = &MockSearchService{
		InfoFunc: func(context.Context) (*domain.IndexInfo, error) {
			return &domain.IndexInfo{BuildID: "b-42", Documents: 3, VocabularySize: 20}, nil
		},
	}
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewInfo})
	runCmd(t, app, cmd)

	assert.Equal(t, messages.ViewInfo, app.CurrentView())
	assert.Contains(t, app.View(), "b-42")
}

func TestApp_InfoViewError(t *testing.T) {
	ports := newTestPorts()
	ports.Search = &MockSearchService{
		InfoFunc: func(context.Context) (*domain.IndexInfo, error) {
			return nil, domain.ErrIndexNotFound
		},
	}
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewInfo})
	runCmd(t, app, cmd)

	assert.ErrorIs(t, app.Err(), domain.ErrIndexNotFound)
	assert.Contains(t, app.View(), "docask index")
}

func TestApp_HelpView(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Generate an answer")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	goToSearchView(app)

	app.Update(messages.ErrorOccurred{Err: domain.ErrIndexCorrupt})

	assert.ErrorIs(t, app.Err(), domain.ErrIndexCorrupt)
	assert.Contains(t, app.View(), "unreadable")
}

func TestApp_MenuNavigation(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	runCmd(t, app, cmd)

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
}
