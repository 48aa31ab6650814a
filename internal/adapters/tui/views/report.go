package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lcatrace/internal/adapters/tui/styles"
	"lcatrace/internal/application/commands"
	"lcatrace/internal/domain"
	"lcatrace/internal/ports"
)

// ReportKeyMap defines key bindings for the report view
type ReportKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	Mode        key.Binding
	Deeper      key.Binding
	Shallower   key.Binding
	RaiseCutoff key.Binding
	LowerCutoff key.Binding
	Method      key.Binding
	Copy        key.Binding
	Open        key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var ReportKeys = ReportKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "prev page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "next page"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	Mode: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "quantity/score"),
	),
	Deeper: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "deeper"),
	),
	Shallower: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "shallower"),
	),
	RaiseCutoff: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "raise cutoff"),
	),
	LowerCutoff: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "lower cutoff"),
	),
	Method: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "next method"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Open: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "open in editor"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// minCutoff is the smallest non-zero cutoff reachable with LowerCutoff;
// halving below it switches the cutoff off
const minCutoff = 1e-6

// maxWarningLines caps the warnings listed under the report
const maxWarningLines = 3

// ReportSource bundles what the report view needs to run traversals
type ReportSource struct {
	Graph   ports.GraphAccessor
	Scorer  ports.UnitScoreProvider
	Cache   ports.ScoreCache
	Methods []domain.Method
}

// ReportModel shows the supply chain of one activity as a collapsible tree
type ReportModel struct {
	ViewState
	source    ReportSource
	root      domain.Activity
	scoreMode bool
	methodIdx int
	supply    commands.SupplyChainOptions
	recursive commands.RecursiveOptions

	records   []domain.VisitRecord
	warnings  []ports.Warning
	tree      *domain.TreeNode
	flatNodes []*domain.TreeNode
	paginator *Paginator
	loading   bool
}

// NewReportModel creates a report view with the given defaults
func NewReportModel(source ReportSource, supply commands.SupplyChainOptions, recursive commands.RecursiveOptions) *ReportModel {
	if source.Cache != nil {
		recursive.Cache = source.Cache
	}
	return &ReportModel{
		source:    source,
		supply:    supply,
		recursive: recursive,
		paginator: NewPaginator(20),
	}
}

type reportLoadedMsg struct {
	records  []domain.VisitRecord
	warnings []ports.Warning
}

type reportErrMsg struct {
	err error
}

type copiedMsg struct {
	lines int
	err   error
}

// Ensure the report view is a bubbletea model
var _ tea.Model = (*ReportModel)(nil)

// Init traces the selected activity, if one is set
func (m *ReportModel) Init() tea.Cmd {
	if m.root.Key.IsZero() {
		return nil
	}
	return m.Reload()
}

// SetActivity selects the traced activity and reloads the report
func (m *ReportModel) SetActivity(a domain.Activity) tea.Cmd {
	m.root = a
	m.ClearMessage()
	return m.Reload()
}

// SetMethod selects the impact method by name and switches to score mode.
// Unknown names are ignored.
func (m *ReportModel) SetMethod(method domain.Method) {
	for i, candidate := range m.source.Methods {
		if candidate == method {
			m.methodIdx = i
			m.scoreMode = true
			return
		}
	}
}

// Method returns the selected impact method, if any
func (m *ReportModel) Method() (domain.Method, bool) {
	if len(m.source.Methods) == 0 || m.source.Scorer == nil {
		return "", false
	}
	return m.source.Methods[m.methodIdx], true
}

// ScoreMode reports whether the view shows score attribution
func (m *ReportModel) ScoreMode() bool {
	return m.scoreMode
}

// Reload reruns the traversal with the current parameters
func (m *ReportModel) Reload() tea.Cmd {
	m.loading = true
	root := m.root.Key
	scoreMode := m.scoreMode
	supply := m.supply
	recursive := m.recursive
	method, _ := m.Method()

	return func() tea.Msg {
		var (
			records []domain.VisitRecord
			result  *commands.Result
			err     error
		)
		if scoreMode {
			cmd := commands.NewRecursiveCalculationCommand(m.source.Graph, m.source.Scorer, root, method, recursive)
			records, result, err = cmd.Records(context.Background())
		} else {
			cmd := commands.NewSupplyChainCommand(m.source.Graph, root, supply)
			records, result, err = cmd.Records(context.Background())
		}
		if err != nil {
			return reportErrMsg{err}
		}
		return reportLoadedMsg{records: records, warnings: result.Warnings}
	}
}

// Update handles messages for the report view
func (m *ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case reportLoadedMsg:
		m.loading = false
		m.records = msg.records
		m.warnings = msg.warnings
		m.tree = domain.BuildTree(msg.records)
		m.paginator.SetCursor(0)
		m.refreshFlatNodes()
		return m, nil

	case reportErrMsg:
		m.loading = false
		m.SetError(msg.err)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.SetMessage(fmt.Sprintf("Copy failed: %v", msg.err), true)
		} else {
			m.SetMessage(fmt.Sprintf("Copied %d lines to clipboard", msg.lines), false)
		}
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, ReportKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, ReportKeys.Back):
			return m, func() tea.Msg { return SwitchToPickerMsg{} }

		case key.Matches(msg, ReportKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }

		case key.Matches(msg, ReportKeys.Up):
			m.paginator.CursorUp()
			return m, nil

		case key.Matches(msg, ReportKeys.Down):
			m.paginator.CursorDown()
			return m, nil

		case key.Matches(msg, ReportKeys.PageUp):
			m.paginator.PrevPage()
			return m, nil

		case key.Matches(msg, ReportKeys.PageDown):
			m.paginator.NextPage()
			return m, nil

		case key.Matches(msg, ReportKeys.Left):
			if node := m.selectedNode(); node != nil {
				if node.IsExpanded && !node.IsLeaf() {
					node.Collapse()
					m.refreshFlatNodes()
				} else if node.Parent != nil {
					m.selectNode(node.Parent)
				}
			}
			return m, nil

		case key.Matches(msg, ReportKeys.Right):
			if node := m.selectedNode(); node != nil && !node.IsExpanded {
				node.Expand()
				m.refreshFlatNodes()
			}
			return m, nil

		case key.Matches(msg, ReportKeys.Enter):
			if node := m.selectedNode(); node != nil && !node.IsLeaf() {
				node.Toggle()
				m.refreshFlatNodes()
			}
			return m, nil

		case key.Matches(msg, ReportKeys.Mode):
			if !m.scoreMode {
				if _, ok := m.Method(); !ok {
					m.SetMessage("No impact method available for scoring", true)
					return m, nil
				}
			}
			m.scoreMode = !m.scoreMode
			return m, m.Reload()

		case key.Matches(msg, ReportKeys.Method):
			if len(m.source.Methods) > 1 {
				m.methodIdx = (m.methodIdx + 1) % len(m.source.Methods)
				if m.scoreMode {
					return m, m.Reload()
				}
			}
			return m, nil

		case key.Matches(msg, ReportKeys.Deeper):
			*m.maxLevel()++
			return m, m.Reload()

		case key.Matches(msg, ReportKeys.Shallower):
			if *m.maxLevel() > 0 {
				*m.maxLevel()--
				return m, m.Reload()
			}
			return m, nil

		case key.Matches(msg, ReportKeys.RaiseCutoff):
			c := m.cutoff()
			switch {
			case *c == 0:
				*c = minCutoff
			case *c*2 < 1:
				*c *= 2
			default:
				return m, nil
			}
			return m, m.Reload()

		case key.Matches(msg, ReportKeys.LowerCutoff):
			c := m.cutoff()
			if *c == 0 {
				return m, nil
			}
			*c /= 2
			if *c < minCutoff {
				*c = 0
			}
			return m, m.Reload()

		case key.Matches(msg, ReportKeys.Open):
			if len(m.records) == 0 {
				return m, nil
			}
			text := m.ReportText()
			return m, func() tea.Msg { return OpenReportMsg{Text: text} }

		case key.Matches(msg, ReportKeys.Copy):
			text, lines := m.ReportText(), len(m.records)
			return m, func() tea.Msg {
				return copiedMsg{lines: lines, err: clipboard.WriteAll(text)}
			}
		}
	}

	return m, nil
}

func (m *ReportModel) maxLevel() *int {
	if m.scoreMode {
		return &m.recursive.MaxLevel
	}
	return &m.supply.MaxLevel
}

func (m *ReportModel) cutoff() *float64 {
	if m.scoreMode {
		return &m.recursive.Cutoff
	}
	return &m.supply.Cutoff
}

// ReportText renders the whole report as plain text, ignoring collapsed
// nodes
func (m *ReportModel) ReportText() string {
	var b strings.Builder
	if m.scoreMode {
		b.WriteString(domain.ScoreHeader)
		b.WriteByte('\n')
		for _, rec := range m.records {
			b.WriteString(domain.FormatScoreLine(rec, m.recursive.Indent, m.recursive.LabelWidth))
			b.WriteByte('\n')
		}
		return b.String()
	}
	for _, rec := range m.records {
		b.WriteString(domain.FormatQuantityLine(rec, m.supply.Indent))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *ReportModel) selectedNode() *domain.TreeNode {
	i := m.paginator.Cursor()
	if i >= 0 && i < len(m.flatNodes) {
		return m.flatNodes[i]
	}
	return nil
}

func (m *ReportModel) selectNode(node *domain.TreeNode) {
	for i, n := range m.flatNodes {
		if n == node {
			m.paginator.SetCursor(i)
			return
		}
	}
}

func (m *ReportModel) refreshFlatNodes() {
	m.flatNodes = nil
	if m.tree != nil {
		m.flatNodes = m.tree.Flatten()
	}
	m.paginator.SetTotal(len(m.flatNodes))
}

// View renders the report
func (m *ReportModel) View() string {
	v := NewViewBuilder().
		Title(m.root.Label().Text).
		Line(m.renderStatus()).
		BlankLine()

	switch {
	case m.loading && m.tree == nil:
		v.Muted("Tracing...")
	case m.tree == nil:
		v.Muted("No report")
	default:
		if m.scoreMode {
			v.Muted(domain.ScoreHeader)
		}
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderNode(m.flatNodes[i], i == m.paginator.Cursor()))
		}
	}

	if len(m.warnings) > 0 {
		v.BlankLine().Lines(RenderWarnings(m.warnings, maxWarningLines))
	}

	return v.BlankLine().
		Message(m.Message, m.MessageErr).
		Help(ReportKeys.Mode, ReportKeys.Deeper, ReportKeys.Shallower, ReportKeys.RaiseCutoff,
			ReportKeys.LowerCutoff, ReportKeys.Copy, ReportKeys.Open, ReportKeys.Back, ReportKeys.Help).
		String()
}

func (m *ReportModel) renderStatus() string {
	mode := "quantity"
	if m.scoreMode {
		mode = "score"
		if method, ok := m.Method(); ok {
			mode += " • " + string(method)
		}
	}
	return RenderStatus(
		mode,
		fmt.Sprintf("max level %d", *m.maxLevel()),
		fmt.Sprintf("cutoff %g", *m.cutoff()),
		fmt.Sprintf("%d rows", len(m.records)),
	)
}

func (m *ReportModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth())

	var prefix string
	switch {
	case node.IsLeaf():
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	var text string
	if m.scoreMode {
		text = domain.FormatScoreLine(node.Record, "", m.recursive.LabelWidth)
	} else {
		text = domain.FormatQuantityLine(node.Record, "")
	}

	var style lipgloss.Style
	switch {
	case selected:
		style = styles.NodeSelected
	case node.Record.Activity.Label().Fallback:
		style = styles.NodeIncomplete
	case node.Parent == nil:
		style = styles.NodeRoot
	case m.scoreMode && node.Record.Score != nil:
		style = styles.NodeActivity.Foreground(styles.ShareColor(node.Record.Score.Fraction))
	default:
		style = styles.NodeActivity
	}

	return fmt.Sprintf("%s%s%s", indent, styles.TreeBranch.Render(prefix), style.Render(text))
}

// SetSize updates the view dimensions and page size
func (m *ReportModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(m.listRows(14))
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToPickerMsg struct{}

type SwitchToReportMsg struct{}

// OpenReportMsg asks the app to show the rendered report in an editor
type OpenReportMsg struct {
	Text string
}
