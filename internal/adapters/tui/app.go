package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lcatrace/internal/adapters/editor"
	"lcatrace/internal/adapters/tui/views"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPicker ViewState = iota
	ViewReport
	ViewHelp
)

// Options configures the TUI
type Options struct {
	SupplyChain commands.SupplyChainOptions
	Recursive   commands.RecursiveOptions
	Cache       ports.ScoreCache
}

// App is the main TUI application model
type App struct {
	editor *editor.Opener

	state    ViewState
	previous ViewState
	picker   *views.PickerModel
	report   *views.ReportModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. methods lists the impact methods
// offered in score mode; scorer may be nil when no method is available.
func NewApp(inv ports.Inventory, scorer ports.UnitScoreProvider, methods []domain.Method, opts Options, ed *editor.Opener) *App {
	source := views.ReportSource{
		Graph:   inv,
		Scorer:  scorer,
		Cache:   opts.Cache,
		Methods: methods,
	}

	return &App{
		editor: ed,
		state:  ViewPicker,
		picker: views.NewPickerModel(inv),
		report: views.NewReportModel(source, opts.SupplyChain, opts.Recursive),
		help:   views.NewHelpModel(),
	}
}

// Report exposes the report view, e.g. to preselect a method
func (a *App) Report() *views.ReportModel {
	return a.report
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.picker.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetSize(msg.Width, msg.Height)
		a.report.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SelectActivityMsg:
		a.state = ViewReport
		return a, a.report.SetActivity(msg.Activity)

	case views.SwitchToPickerMsg:
		a.state = ViewPicker
		return a, nil

	case views.SwitchToHelpMsg:
		a.previous = a.state
		a.state = ViewHelp
		return a, nil

	case views.SwitchToReportMsg:
		// Help closes back to whichever view opened it
		a.state = a.previous
		return a, nil

	case views.OpenReportMsg:
		return a, a.openEditor(msg.Text)

	case editorFinishedMsg:
		if msg.path != "" {
			os.Remove(msg.path)
		}
		if msg.err != nil {
			a.report.SetMessage(msg.err.Error(), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewPicker:
		_, cmd = a.picker.Update(msg)
	case ViewReport:
		_, cmd = a.report.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct {
	path string
	err  error
}

func (a *App) openEditor(text string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	path, err := a.editor.WriteReport(text)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{path: path, err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewReport:
		return a.report.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.picker.View()
	}
}
