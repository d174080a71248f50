package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/export"
	"github.com/MrJamesThe3rd/presence/internal/exportlog"
)

// ExportDeps are the collaborators of the export flow. History is optional.
type ExportDeps struct {
	Service  *export.Service
	History  *exportlog.Service
	Dir      string
	Username string
}

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	deps ExportDeps

	rows   []attendance.Row
	scope  attendance.Scope
	facets attendance.Facets

	state   exportState
	form    *huh.Form
	spinner spinner.Model
	err     error
	path    string
}

func NewExportModel(deps ExportDeps, rows []attendance.Row, scope attendance.Scope, facets attendance.Facets) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	dir := deps.Dir
	if dir == "" {
		dir = "./exports"
	}

	return ExportModel{
		deps:    deps,
		rows:    rows,
		scope:   scope,
		facets:  facets,
		state:   exportStateForm,
		form:    buildExportForm(dir),
		spinner: s,
	}
}

func (m ExportModel) Title() string { return "Export Attendance" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc/Enter: back to attendance"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: cancel | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	if len(m.rows) == 0 {
		return func() tea.Msg { return exportClosedMsg{status: export.NoRowsNotice} }
	}

	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (ExportModel, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (ExportModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, closeExport("")
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	format, err := export.ParseFormat(m.form.GetString("format"))
	if err != nil {
		m.state = exportStateResult
		m.err = err

		return m, nil
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(format, m.form.GetString("dir")))
}

func (m ExportModel) updateExporting(msg tea.Msg) (ExportModel, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.path = result.path

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (ExportModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyEnter {
			if m.err != nil {
				return m, closeExport("")
			}

			return m, closeExport("Saved " + m.path)
		}
	}

	return m, nil
}

func buildExportForm(dir string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV (UTF-8)", string(export.FormatCSV)),
					huh.NewOption("Excel workbook", string(export.FormatXLSX)),
				),
			huh.NewInput().
				Key("dir").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		title := lipgloss.NewStyle().Bold(true).Render(
			fmt.Sprintf("Export %d rows (%s, %s)", len(m.rows), m.scope.Label(), m.facets.Layout()),
		)

		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing export...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		msg := fmt.Sprintf("Error: %v", m.err)
		if errors.Is(m.err, export.ErrNoRows) {
			msg = export.NoRowsNotice
		}

		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(msg))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%d rows written to %s", len(m.rows), m.path),
		),
	)
}

type exportClosedMsg struct {
	status string
}

func closeExport(status string) tea.Cmd {
	return func() tea.Msg { return exportClosedMsg{status: status} }
}

type exportResultMsg struct {
	path string
	err  error
}

const historyTimeout = 5 * time.Second

func (m ExportModel) runExportCmd(format export.Format, dir string) tea.Cmd {
	rows, scope, facets, deps := m.rows, m.scope, m.facets, m.deps

	return func() tea.Msg {
		file, err := deps.Service.Export(format, rows, scope, facets)
		if err != nil {
			return exportResultMsg{err: err}
		}

		path, err := deps.Service.Save(dir, file)
		if err != nil {
			return exportResultMsg{err: err}
		}

		if deps.History != nil {
			ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
			defer cancel()

			if _, err := deps.History.Record(ctx, file, deps.Username); err != nil {
				slog.Error("failed to record export", "file", file.Name, "error", err)
			}
		}

		return exportResultMsg{path: path}
	}
}
