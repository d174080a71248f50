package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/presence/internal/exportlog"
)

// historyLimits are cycled with the l key.
var historyLimits = []int{exportlog.DefaultLimit, 50, exportlog.MaxLimit}

type HistoryModel struct {
	CommonModel
	history *exportlog.Service

	table    table.Model
	entries  []*exportlog.Entry
	limitIdx int
	mine     bool
	username string

	loading bool
	err     error
}

func NewHistoryModel(history *exportlog.Service, username string) HistoryModel {
	columns := []table.Column{
		{Title: "When", Width: 17},
		{Title: "File", Width: 46},
		{Title: "Format", Width: 6},
		{Title: "Layout", Width: 9},
		{Title: "Rows", Width: 6},
		{Title: "User", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return HistoryModel{
		history:  history,
		table:    t,
		username: username,
		loading:  history != nil,
	}
}

func (m HistoryModel) Title() string { return "Export History" }

func (m HistoryModel) ShortHelp() string {
	return "Esc: back | r: refresh | l: limit | m: mine/all"
}

func (m HistoryModel) Init() tea.Cmd {
	if m.history == nil {
		return nil
	}

	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadHistoryMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.entries = msg.entries
			m.refreshTable()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m.reload()
		case "l":
			m.limitIdx = (m.limitIdx + 1) % len(historyLimits)
			return m.reload()
		case "m":
			m.mine = !m.mine
			return m.reload()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) reload() (tea.Model, tea.Cmd) {
	if m.history == nil {
		return m, nil
	}

	m.loading = true

	return m, m.loadCmd()
}

func (m HistoryModel) View() string {
	if m.history == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			faintStyle.Render("Export history is unavailable: no database connection."),
		)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading export history...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	who := "All users"
	if m.mine {
		who = m.username
	}

	header := fmt.Sprintf(
		"[l] Limit: %s | [m] User: %s",
		activeStyle(strconv.Itoa(historyLimits[m.limitIdx])),
		activeStyle(who),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	))
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		rows = append(rows, table.Row{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Filename,
			e.Format,
			e.Layout,
			strconv.Itoa(e.Rows),
			e.Username,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadHistoryMsg struct {
	entries []*exportlog.Entry
	err     error
}

func (m HistoryModel) loadCmd() tea.Cmd {
	filter := exportlog.ListFilter{Limit: historyLimits[m.limitIdx]}
	if m.mine {
		filter.Username = new(m.username)
	}

	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		entries, err := m.history.List(ctx, filter)

		return loadHistoryMsg{entries: entries, err: err}
	}
}
