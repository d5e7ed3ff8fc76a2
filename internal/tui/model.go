package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"weekcal/internal/core"
	"weekcal/internal/storage"
)

// KeyMap defines the keybindings for the TUI
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PrevWeek   key.Binding
	NextWeek   key.Binding
	Today      key.Binding
	CycleSlot  key.Binding
	Detail     key.Binding
	DelSeries  key.Binding
	DelOccur   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
	Help       key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "row up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "row down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "prev day"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next day"),
	),
	PrevWeek: key.NewBinding(
		key.WithKeys("[", "pgup"),
		key.WithHelp("[", "prev week"),
	),
	NextWeek: key.NewBinding(
		key.WithKeys("]", "pgdown"),
		key.WithHelp("]", "next week"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	CycleSlot: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next event in cell"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	DelSeries: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete event"),
	),
	DelOccur: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete this occurrence"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

const gutterWidth = 7

// Model is the Bubble Tea model for the week-grid TUI.
type Model struct {
	store *core.Store
	week  core.Week

	// Cursor: day column 0..6, row core.AllDayRow or 0..23, and the
	// slot index inside a shared cell.
	selDay int
	selRow int
	selIdx int

	width         int
	height        int
	contentHeight int
	colWidth      int

	gridView      viewport.Model
	viewportReady bool

	showDetail bool
	showHelp   bool
	warn       string

	keys       KeyMap
	timeFormat string
}

// NewModel creates a TUI model over the given store, opening on the week
// containing anchor. timeFormat is "12h" or "24h".
func NewModel(store *core.Store, anchor time.Time, timeFormat string) Model {
	now := time.Now()
	m := Model{
		store:      store,
		week:       core.WeekOf(anchor),
		keys:       DefaultKeyMap,
		timeFormat: timeFormat,
		selRow:     now.Hour(),
	}
	if m.week.Contains(now) {
		m.selDay = int(now.Weekday())
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) calculateLayout() {
	// Header: 2, day header: 2, all-day row: 1, help: 2, padding: 2
	m.contentHeight = m.height - 9
	if m.contentHeight < 5 {
		m.contentHeight = 5
	}

	usable := m.width - 4 - gutterWidth - 6 // app padding, gutter, separators
	m.colWidth = usable / 7
	if m.colWidth < 4 {
		m.colWidth = 4
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculateLayout()

		if !m.viewportReady {
			m.gridView = viewport.New(m.width-4, m.contentHeight)
			m.gridView.Style = lipgloss.NewStyle()
			m.viewportReady = true
		} else {
			m.gridView.Width = m.width - 4
			m.gridView.Height = m.contentHeight
		}
		m.refreshGrid()
		m.scrollToSelection()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.showDetail {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, m.keys.DelSeries):
				m.deleteSeries()
				m.showDetail = false
			case key.Matches(msg, m.keys.DelOccur):
				m.deleteOccurrence()
				m.showDetail = false
			default:
				m.showDetail = false
			}
			m.refreshGrid()
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = true

		case key.Matches(msg, m.keys.Up):
			if m.selRow == 0 {
				m.selRow = core.AllDayRow
			} else if m.selRow > 0 {
				m.selRow--
			}
			m.selIdx = 0

		case key.Matches(msg, m.keys.Down):
			if m.selRow == core.AllDayRow {
				m.selRow = 0
			} else if m.selRow < core.HoursPerDay-1 {
				m.selRow++
			}
			m.selIdx = 0

		case key.Matches(msg, m.keys.Left):
			if m.selDay == 0 {
				m.week = m.week.Prev()
				m.selDay = 6
			} else {
				m.selDay--
			}
			m.selIdx = 0

		case key.Matches(msg, m.keys.Right):
			if m.selDay == 6 {
				m.week = m.week.Next()
				m.selDay = 0
			} else {
				m.selDay++
			}
			m.selIdx = 0

		case key.Matches(msg, m.keys.PrevWeek):
			m.week = m.week.Prev()
			m.selIdx = 0

		case key.Matches(msg, m.keys.NextWeek):
			m.week = m.week.Next()
			m.selIdx = 0

		case key.Matches(msg, m.keys.Today):
			now := time.Now()
			m.week = core.WeekOf(now)
			m.selDay = int(now.Weekday())
			m.selRow = now.Hour()
			m.selIdx = 0

		case key.Matches(msg, m.keys.CycleSlot):
			if n := len(m.cellPlacements()); n > 0 {
				m.selIdx = (m.selIdx + 1) % n
			}

		case key.Matches(msg, m.keys.Detail):
			if _, ok := m.selectedEvent(); ok {
				m.showDetail = true
			}

		case key.Matches(msg, m.keys.DelSeries):
			m.deleteSeries()

		case key.Matches(msg, m.keys.DelOccur):
			m.deleteOccurrence()

		case key.Matches(msg, m.keys.ScrollUp):
			m.gridView.ViewUp()
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			m.gridView.ViewDown()
			return m, nil
		}

		m.refreshGrid()
		m.scrollToSelection()
		return m, nil
	}
	return m, nil
}

// cellPlacements resolves the currently selected cell.
func (m Model) cellPlacements() []core.Placement {
	return core.CellPlacements(m.store.Events(), m.week.Day(m.selDay), m.selRow)
}

// selectedEvent returns the event under the cursor, if any.
func (m Model) selectedEvent() (core.Event, bool) {
	cell := m.cellPlacements()
	if len(cell) == 0 {
		return core.Event{}, false
	}
	idx := m.selIdx
	if idx >= len(cell) {
		idx = len(cell) - 1
	}
	return cell[idx].Event, true
}

func (m *Model) deleteSeries() {
	ev, ok := m.selectedEvent()
	if !ok {
		return
	}
	m.reportPersist(m.store.DeleteSeries(ev.ID))
	m.selIdx = 0
}

// deleteOccurrence removes only the occurrence under the cursor. For a
// one-off event that is the same thing as deleting the event, so the
// branch on recurrence kind lives here, not in the store.
func (m *Model) deleteOccurrence() {
	ev, ok := m.selectedEvent()
	if !ok {
		return
	}
	if !ev.Recurring() {
		m.reportPersist(m.store.DeleteSeries(ev.ID))
	} else {
		m.reportPersist(m.store.DeleteOccurrence(ev.ID, core.ISODate(m.week.Day(m.selDay))))
	}
	m.selIdx = 0
}

// reportPersist turns a write-through failure into a status-line warning.
// The mutation itself has already taken effect in memory.
func (m *Model) reportPersist(err error) {
	switch {
	case err == nil:
		m.warn = ""
	case errors.Is(err, storage.ErrQuotaExceeded):
		m.warn = "Storage quota exceeded: change kept in memory but not saved"
	default:
		m.warn = fmt.Sprintf("Save failed: %v", err)
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	dayHeader := m.renderDayHeader()
	allDayRow := m.renderRow(core.AllDayRow)

	var content string
	switch {
	case m.showHelp:
		content = m.renderHelpPanel()
	case m.showDetail:
		content = m.renderDetailPanel()
	default:
		content = m.gridView.View()
	}

	status := m.renderStatus()

	return AppStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, dayHeader, allDayRow, content, status),
	)
}

func (m Model) renderHeader() string {
	days := m.week.Days()
	rangeStr := fmt.Sprintf("%s – %s", days[0].Format("Jan 2"), days[6].Format("Jan 2, 2006"))
	title := HeaderStyle.Render("📅 weekcal")
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", GutterStyle.Render(rangeStr))
}

func (m Model) renderDayHeader() string {
	now := time.Now()
	cols := make([]string, 0, 7)
	for i, day := range m.week.Days() {
		label := fmt.Sprintf("%s %d", day.Format("Mon"), day.Day())
		label = padCell(label, m.colWidth)
		switch {
		case core.SameDate(day, now):
			label = TodayStyle.Render(label)
		case i == m.selDay:
			label = DayHeaderStyle.Render(label)
		default:
			label = GutterStyle.Render(label)
		}
		cols = append(cols, label)
	}
	gutter := strings.Repeat(" ", gutterWidth)
	return gutter + strings.Join(cols, " ")
}

// refreshGrid rebuilds the 24 hourly rows into the viewport.
func (m *Model) refreshGrid() {
	if !m.viewportReady {
		return
	}
	rows := make([]string, 0, core.HoursPerDay)
	for hour := 0; hour < core.HoursPerDay; hour++ {
		rows = append(rows, m.renderRow(hour))
	}
	m.gridView.SetContent(strings.Join(rows, "\n"))
}

// renderRow renders one grid row: the gutter label plus seven cells.
func (m Model) renderRow(row int) string {
	gutter := GutterStyle.Render(fmt.Sprintf("%*s ", gutterWidth-1, m.rowLabel(row)))
	events := m.store.Events()

	cols := make([]string, 0, 7)
	for i, day := range m.week.Days() {
		selected := i == m.selDay && row == m.selRow
		cols = append(cols, m.renderCell(events, day, row, selected))
	}
	return gutter + strings.Join(cols, " ")
}

func (m Model) rowLabel(row int) string {
	if row == core.AllDayRow {
		return "all-day"
	}
	if m.timeFormat == "24h" {
		return fmt.Sprintf("%02d:00", row)
	}
	// 12-hour labels the way the hour axis reads: 12am, 1am, ... 11pm.
	h := row % 12
	if h == 0 {
		h = 12
	}
	suffix := "am"
	if row >= 12 {
		suffix = "pm"
	}
	return fmt.Sprintf("%d%s", h, suffix)
}

// renderCell lays the cell's events out as equal-width slices in storage
// order, the terminal rendition of the 1/N packing contract.
func (m Model) renderCell(events []core.Event, day time.Time, row int, selected bool) string {
	cell := core.CellPlacements(events, day, row)
	if len(cell) == 0 {
		blank := padCell("", m.colWidth)
		if selected {
			return CursorStyle.Render(blank)
		}
		return EmptyCellStyle.Render(blank)
	}

	var b strings.Builder
	used := 0
	for _, p := range cell {
		w := int(p.Width() * float64(m.colWidth))
		if p.Index == p.Count-1 {
			w = m.colWidth - used // last slice absorbs the remainder
		}
		if w <= 0 {
			continue
		}
		used += w

		label := padCell(ansi.Truncate(p.Event.Title, w, "…"), w)
		slotSelected := selected && p.Index == clampIdx(m.selIdx, p.Count)
		b.WriteString(ChipStyle(core.ColorHex[p.Event.Color], slotSelected).Render(label))
	}
	return b.String()
}

func clampIdx(idx, n int) int {
	if idx >= n {
		return n - 1
	}
	return idx
}

// scrollToSelection keeps the selected hourly row visible; the all-day
// row is pinned above the viewport and never scrolls.
func (m *Model) scrollToSelection() {
	if !m.viewportReady || m.selRow == core.AllDayRow {
		return
	}
	top := m.gridView.YOffset
	bottom := top + m.gridView.Height
	if m.selRow < top {
		m.gridView.SetYOffset(m.selRow)
	}
	if m.selRow >= bottom {
		m.gridView.SetYOffset(m.selRow - m.gridView.Height + 1)
	}
}

func (m Model) renderDetailPanel() string {
	ev, ok := m.selectedEvent()
	if !ok {
		return DetailPanelStyle.Width(m.width - 4).Height(m.contentHeight).Render("No event selected")
	}

	width := m.width - 10
	if width < 20 {
		width = 20
	}

	var lines []string
	lines = append(lines, TitleStyle.Render(ansi.Wordwrap(ev.Title, width, "")))
	lines = append(lines, renderField("When", m.formatEventTime(ev)))
	if !ev.AllDay {
		lines = append(lines, renderField("Duration", formatDuration(ev.Duration())))
	}
	lines = append(lines, renderField("Repeat", repeatLabel(ev)))
	if opts := ev.Repeat.Options; opts != nil && len(opts.Exceptions) > 0 {
		lines = append(lines, renderField("Skipped", fmt.Sprintf("%d occurrence(s)", len(opts.Exceptions))))
	}
	lines = append(lines, renderField("Color", ChipStyle(core.ColorHex[ev.Color], false).Render(" "+ev.Color+" ")))
	if ev.Notes != "" {
		lines = append(lines, "")
		lines = append(lines, LabelStyle.Render("Notes"))
		lines = append(lines, ValueStyle.Render(ansi.Wordwrap(ev.Notes, width, "")))
	}
	lines = append(lines, "")
	lines = append(lines, GutterStyle.Render("ID "+ev.ID))
	lines = append(lines, "")
	hint := HelpKeyStyle.Render("d") + " delete event"
	if ev.Recurring() {
		hint += "  •  " + HelpKeyStyle.Render("x") + " delete this occurrence"
	}
	hint += "  •  any other key to close"
	lines = append(lines, HelpStyle.Render(hint))

	return DetailPanelStyle.Width(m.width - 4).Height(m.contentHeight).Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelpPanel() string {
	header := lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Render("Keyboard Shortcuts")
	lines := []string{
		"",
		HelpKeyStyle.Render("  ←/→        ") + " Previous / next day",
		HelpKeyStyle.Render("  ↑/↓        ") + " Previous / next row (top row is all-day)",
		HelpKeyStyle.Render("  [ / ]      ") + " Previous / next week",
		HelpKeyStyle.Render("  t          ") + " Jump to today",
		HelpKeyStyle.Render("  tab        ") + " Cycle events sharing a cell",
		HelpKeyStyle.Render("  enter      ") + " Event details",
		HelpKeyStyle.Render("  d          ") + " Delete event (whole series)",
		HelpKeyStyle.Render("  x          ") + " Delete only this occurrence",
		HelpKeyStyle.Render("  ctrl+u/d   ") + " Scroll the grid",
		HelpKeyStyle.Render("  q / ctrl+c ") + " Quit",
		"",
		lipgloss.NewStyle().Foreground(mutedColor).Italic(true).Render("  Press any key to close"),
	}
	return DetailPanelStyle.Width(m.width - 4).Height(m.contentHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n")),
	)
}

func (m Model) renderStatus() string {
	if m.warn != "" {
		return HelpStyle.Render(WarnStyle.Render("⚠ " + m.warn))
	}

	keys := []string{
		HelpKeyStyle.Render("←/→/↑/↓") + " move",
		HelpKeyStyle.Render("[/]") + " week",
		HelpKeyStyle.Render("t") + " today",
		HelpKeyStyle.Render("enter") + " details",
		HelpKeyStyle.Render("d") + " delete",
		HelpKeyStyle.Render("x") + " occurrence",
		HelpKeyStyle.Render("q") + " quit",
	}
	fullLine := strings.Join(keys, "  •  ")
	if lipgloss.Width(fullLine) > m.width-4 {
		return HelpStyle.Render(HelpKeyStyle.Render("?") + " help")
	}
	return HelpStyle.Render(fullLine)
}

func (m Model) formatEventTime(ev core.Event) string {
	if ev.AllDay {
		return ev.Start.Format("Mon, Jan 2") + " (all day)"
	}
	layout := "3:04 PM"
	if m.timeFormat == "24h" {
		layout = "15:04"
	}
	return fmt.Sprintf("%s, %s - %s",
		ev.Start.Format("Mon, Jan 2"),
		ev.Start.Format(layout),
		ev.End.Format(layout))
}

// Helper functions
func renderField(label, value string) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
}

func padCell(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

// repeatLabel describes the recurrence rule the way the detail view
// shows it.
func repeatLabel(ev core.Event) string {
	switch ev.Repeat.Type {
	case core.RepeatWeekly:
		days := []time.Weekday{ev.Start.Weekday()}
		if opts := ev.Repeat.Options; opts != nil && len(opts.Days) > 0 {
			days = opts.Days
		}
		names := make([]string, len(days))
		for i, d := range days {
			names[i] = d.String()[:3]
		}
		return "Weekly on " + strings.Join(names, ", ")
	case core.RepeatYearly:
		return "Yearly on " + ev.Start.Format("Jan 2")
	case core.RepeatDaily:
		return "Daily"
	case core.RepeatCustom:
		return "Custom"
	default:
		return "Does not repeat"
	}
}
