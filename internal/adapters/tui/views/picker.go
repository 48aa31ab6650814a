package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lcatrace/internal/adapters/tui/styles"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// PickerKeyMap defines key bindings for the activity picker
type PickerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

var PickerKeys = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "prev page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "next page"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "trace"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear/quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// PickerModel lists inventory processes with fuzzy filtering
type PickerModel struct {
	ViewState
	inventory  ports.Inventory
	input      textinput.Model
	activities []domain.Activity
	results    []domain.Activity
	paginator  *Paginator
	loaded     bool
}

// NewPickerModel creates a new activity picker
func NewPickerModel(inventory ports.Inventory) *PickerModel {
	input := textinput.New()
	input.Placeholder = "Filter activities..."
	input.Focus()

	return &PickerModel{
		inventory: inventory,
		input:     input,
		paginator: NewPaginator(15),
	}
}

// Init loads the activity list
func (m *PickerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load)
}

func (m *PickerModel) load() tea.Msg {
	activities, err := commands.NewListActivitiesCommand(m.inventory, true).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return activitiesLoadedMsg{activities}
}

type activitiesLoadedMsg struct {
	activities []domain.Activity
}

type errMsg struct {
	err error
}

// SelectActivityMsg is sent when an activity is chosen for tracing
type SelectActivityMsg struct {
	Activity domain.Activity
}

// Update handles messages for the picker
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case activitiesLoadedMsg:
		m.activities = msg.activities
		m.loaded = true
		m.filter()
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PickerKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, PickerKeys.Clear):
			if m.input.Value() == "" {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.filter()
			return m, nil

		case key.Matches(msg, PickerKeys.Up):
			m.paginator.CursorUp()
			return m, nil

		case key.Matches(msg, PickerKeys.Down):
			m.paginator.CursorDown()
			return m, nil

		case key.Matches(msg, PickerKeys.PageUp):
			m.paginator.PrevPage()
			return m, nil

		case key.Matches(msg, PickerKeys.PageDown):
			m.paginator.NextPage()
			return m, nil

		case key.Matches(msg, PickerKeys.Select):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg {
					return SelectActivityMsg{Activity: a}
				}
			}
			return m, nil
		}
	}

	// Update input and refilter on change
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

// filter applies the query; short queries show every activity
func (m *PickerModel) filter() {
	query := m.input.Value()
	if len(query) < 2 {
		m.results = m.activities
	} else {
		ranked := commands.FuzzySort(m.activities, query)
		m.results = make([]domain.Activity, len(ranked))
		for i, r := range ranked {
			m.results[i] = r.Activity
		}
	}
	m.paginator.SetCursor(0)
	m.paginator.SetTotal(len(m.results))
}

// Selected returns the activity under the cursor
func (m *PickerModel) Selected() (domain.Activity, bool) {
	i := m.paginator.Cursor()
	if i >= 0 && i < len(m.results) {
		return m.results[i], true
	}
	return domain.Activity{}, false
}

// View renders the picker
func (m *PickerModel) View() string {
	v := NewViewBuilder().
		Title("lcatrace").
		Subtitle("Pick an activity to trace its supply chain").
		Line(styles.InputFocused.Render(m.input.View())).
		BlankLine()

	switch {
	case !m.loaded:
		v.Muted("Loading...")
	case len(m.results) == 0:
		v.Muted("No matching activities")
	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			a := m.results[i]
			text := fmt.Sprintf("%s  %s", a.Key, a.Label().Text)
			if i == m.paginator.Cursor() {
				text = styles.NodeSelected.Render(text)
			}
			v.Line(text)
		}
		v.BlankLine().Muted(fmt.Sprintf("%d activities • page %d/%d",
			len(m.results), m.paginator.CurrentPage(), m.paginator.TotalPages()))
	}

	return v.BlankLine().
		Message(m.Message, m.MessageErr).
		Help(PickerKeys.Up, PickerKeys.Down, PickerKeys.Select, PickerKeys.Clear).
		String()
}

// SetSize updates the view dimensions and page size
func (m *PickerModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(m.listRows(12))
}
