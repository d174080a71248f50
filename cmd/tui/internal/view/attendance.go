package view

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/dashboard"
)

type attendanceState int

const (
	attendanceStateBrowse attendanceState = iota
	attendanceStateSearch
	attendanceStateExport
)

var statusFilters = []attendance.Status{"", attendance.StatusOnTime, attendance.StatusLate, attendance.StatusEarly}

type AttendanceModel struct {
	CommonModel
	loader  *dashboard.Loader
	exports ExportDeps

	state  attendanceState
	table  table.Model
	search textinput.Model
	export ExportModel

	query   dashboard.Query
	view    *dashboard.View
	deptIdx int
	statIdx int

	status string
}

func NewAttendanceModel(loader *dashboard.Loader, deps ExportDeps) AttendanceModel {
	t := table.New(
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

	ti := textinput.New()
	ti.Placeholder = "name or employee ID"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := AttendanceModel{
		loader:  loader,
		exports: deps,
		table:   t,
		search:  ti,
		query:   dashboard.Query{Scope: attendance.ScopeToday},
	}
	m.refreshTable()

	return m
}

func (m AttendanceModel) Title() string { return "Attendance" }

func (m AttendanceModel) ShortHelp() string {
	switch m.state {
	case attendanceStateSearch:
		return "Enter: apply | Esc: cancel"
	case attendanceStateExport:
		return m.export.ShortHelp()
	}

	return "Esc: back | r: refresh | t: today/all | i: check-ins | o: check-outs | d: department | s: status | /: search | c: clear | e: export"
}

func (m AttendanceModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AttendanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAttendanceMsg:
		if !msg.committed {
			return m, nil
		}

		if msg.err != nil {
			slog.Error("failed to load attendance", "token", msg.token, "error", msg.err)
		}

		m.status = ""
		m.refreshTable()

		return m, nil

	case exportClosedMsg:
		m.state = attendanceStateBrowse
		m.table.Focus()

		if msg.status != "" {
			m.status = msg.status
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case attendanceStateSearch:
		return m.updateSearch(msg)
	case attendanceStateExport:
		var cmd tea.Cmd
		m.export, cmd = m.export.Update(msg)

		return m, cmd
	}

	return m.updateBrowse(msg)
}

func (m AttendanceModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "t":
			if m.query.Scope == attendance.ScopeToday {
				m.query.Scope = attendance.ScopeAll
			} else {
				m.query.Scope = attendance.ScopeToday
			}

			return m, m.loadCmd()
		case "i":
			m.query.Facets.CheckIn = !m.query.Facets.CheckIn
			m.refreshTable()

			return m, nil
		case "o":
			m.query.Facets.CheckOut = !m.query.Facets.CheckOut
			m.refreshTable()

			return m, nil
		case "d":
			m.cycleDepartment()
			m.refreshTable()

			return m, nil
		case "s":
			m.statIdx = (m.statIdx + 1) % len(statusFilters)
			m.query.Filter.Status = statusFilters[m.statIdx]
			m.refreshTable()

			return m, nil
		case "c":
			m.query.Filter = attendance.Filter{}
			m.deptIdx, m.statIdx = 0, 0
			m.search.SetValue("")
			m.refreshTable()

			return m, nil
		case "/":
			m.state = attendanceStateSearch
			m.table.Blur()
			m.search.SetValue(m.query.Filter.Query)

			return m, m.search.Focus()
		case "e":
			return m.enterExport()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AttendanceModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = attendanceStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.query.Filter.Query = strings.TrimSpace(m.search.Value())
			m.state = attendanceStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m AttendanceModel) enterExport() (tea.Model, tea.Cmd) {
	snap := m.loader.Snapshot()
	if snap.State != dashboard.StateLoaded {
		m.status = "Nothing loaded yet"
		return m, nil
	}

	view := snap.View(m.query)

	m.export = NewExportModel(m.exports, view.Rows, m.query.Scope, m.query.Facets)
	m.state = attendanceStateExport
	m.table.Blur()

	return m, m.export.Init()
}

func (m *AttendanceModel) cycleDepartment() {
	departments := attendance.Departments(m.loader.Snapshot().Records)

	m.deptIdx = (m.deptIdx + 1) % (len(departments) + 1)
	if m.deptIdx == 0 {
		m.query.Filter.Department = ""
		return
	}

	m.query.Filter.Department = departments[m.deptIdx-1]
}

func (m AttendanceModel) View() string {
	if m.state == attendanceStateExport {
		return m.export.View()
	}

	snap := m.loader.Snapshot()

	var body string

	switch snap.State {
	case dashboard.StateIdle, dashboard.StateLoading:
		body = "Loading attendance..."
	case dashboard.StateError:
		body = errorStyle.Render(fmt.Sprintf("Error: %v", snap.Err)) + "\n\n" + faintStyle.Render("Press r to retry")
	default:
		if len(m.table.Rows()) == 0 {
			body = faintStyle.Render("No attendance records")
		} else {
			body = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				Render(m.table.View())
		}
	}

	parts := []string{
		lipgloss.NewStyle().PaddingBottom(1).Render(m.header()),
	}

	if m.view != nil && snap.State == dashboard.StateLoaded {
		parts = append(parts, m.summary())
	}

	parts = append(parts, body)

	if m.state == attendanceStateSearch {
		parts = append(parts, "", m.search.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m AttendanceModel) header() string {
	scope := "Today"
	if m.query.Scope == attendance.ScopeAll {
		scope = "All Time"
	}

	dept := m.query.Filter.Department
	if dept == "" {
		dept = "All"
	}

	status := string(m.query.Filter.Status)
	if status == "" {
		status = "All"
	}

	line := fmt.Sprintf(
		"[t] %s | [i] Check-ins: %s | [o] Check-outs: %s | [d] Dept: %s | [s] Status: %s",
		activeStyle(scope),
		activeStyle(onOff(m.query.Facets.CheckIn)),
		activeStyle(onOff(m.query.Facets.CheckOut)),
		activeStyle(dept),
		activeStyle(status),
	)

	if m.query.Filter.Query != "" {
		line += " | Search: " + activeStyle(m.query.Filter.Query)
	}

	return line
}

func (m AttendanceModel) summary() string {
	s := m.view.Summary

	return lipgloss.NewStyle().PaddingBottom(1).Render(fmt.Sprintf(
		"Present %d  %s %d  %s %d  Checked out %d  %s %d",
		s.Present,
		StatusLabel(attendance.StatusOnTime), s.OnTime,
		StatusLabel(attendance.StatusLate), s.Late,
		s.CheckedOut,
		StatusLabel(attendance.StatusEarly), s.LeftEarly,
	))
}

func onOff(b bool) string {
	if b {
		return "on"
	}

	return "off"
}

// refreshTable recomputes the rows from the loaded set. The base set is
// never modified.
func (m *AttendanceModel) refreshTable() {
	m.view = m.loader.Snapshot().View(m.query)

	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(m.view.Layout))
	m.table.SetRows(tableRows(m.view.Rows))
	m.table.SetCursor(0)
}

func columnsFor(layout attendance.Layout) []table.Column {
	base := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Name", Width: 22},
		{Title: "Department", Width: 14},
		{Title: "Date", Width: 11},
	}

	switch layout {
	case attendance.LayoutCheckIns:
		return append(base, table.Column{Title: "Check In", Width: 9}, table.Column{Title: "Status", Width: 8})
	case attendance.LayoutCheckOuts:
		return append(base, table.Column{Title: "Check Out", Width: 9}, table.Column{Title: "Status", Width: 8})
	case attendance.LayoutPaired:
		return append(base,
			table.Column{Title: "In", Width: 6},
			table.Column{Title: "In Status", Width: 9},
			table.Column{Title: "Out", Width: 6},
			table.Column{Title: "Out Status", Width: 10},
			table.Column{Title: "Hours", Width: 9},
		)
	}

	return append(base,
		table.Column{Title: "Action", Width: 10},
		table.Column{Title: "Status", Width: 8},
		table.Column{Title: "Time", Width: 6},
	)
}

func tableRows(rows []attendance.Row) []table.Row {
	out := make([]table.Row, 0, len(rows))

	for _, r := range rows {
		row := table.Row{r.EmployeeID, r.Name, r.Department, r.Date}

		switch r.Layout {
		case attendance.LayoutCheckIns, attendance.LayoutCheckOuts:
			row = append(row, FormatTime(r.Timestamp), string(r.Status))
		case attendance.LayoutPaired:
			row = append(row,
				FormatTime(r.CheckIn), string(r.CheckInStatus),
				FormatTime(r.CheckOut), string(r.CheckOutStatus),
				r.WorkingHours,
			)
		default:
			row = append(row, string(r.Action), string(r.Status), FormatTime(r.Timestamp))
		}

		out = append(out, row)
	}

	return out
}

// Messages

type loadAttendanceMsg struct {
	token     uint64
	committed bool
	err       error
}

// loadCmd starts a new request on the loader. Only the result of the most
// recent request is committed; older ones arrive with committed=false.
func (m AttendanceModel) loadCmd() tea.Cmd {
	scope := m.query.Scope
	token := m.loader.Begin(scope)

	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		committed, err := m.loader.Run(ctx, token, scope)

		return loadAttendanceMsg{token: token, committed: committed, err: err}
	}
}
