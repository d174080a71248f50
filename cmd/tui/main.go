package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/presence/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/presence/internal/backend"
	"github.com/MrJamesThe3rd/presence/internal/config"
	"github.com/MrJamesThe3rd/presence/internal/dashboard"
	"github.com/MrJamesThe3rd/presence/internal/database"
	"github.com/MrJamesThe3rd/presence/internal/export"
	"github.com/MrJamesThe3rd/presence/internal/exportlog"
	exportlogStore "github.com/MrJamesThe3rd/presence/internal/exportlog/store"
	"github.com/MrJamesThe3rd/presence/internal/logging"
	"github.com/MrJamesThe3rd/presence/internal/session"
)

type model struct {
	cfg           *config.Config
	client        *backend.Client
	sessions      *session.Manager
	exportService *export.Service
	history       *exportlog.Service

	session     *session.Session
	currentView View
	width       int
	height      int

	loginView      view.LoginModel
	attendanceView view.AttendanceModel
	historyView    view.HistoryModel
}

type View int

const (
	ViewLogin      View = 0
	ViewMenu       View = 1
	ViewAttendance View = 2
	ViewHistory    View = 3
)

func initialModel(cfg *config.Config, db *sql.DB) model {
	client, err := backend.New(cfg.Backend.URL, cfg.Backend.Timeout)
	if err != nil {
		slog.Error("invalid backend url", "error", err)
		os.Exit(1)
	}

	// The TUI never hands its session token out, so an ephemeral secret is enough.
	secret := cfg.Auth.Secret
	if secret == "" {
		secret = uuid.NewString()
	}

	sessions := session.NewManager(client, secret, cfg.Auth.TTL, nil)

	var history *exportlog.Service
	if db != nil {
		history = exportlog.NewService(exportlogStore.New(db))
	}

	return model{
		cfg:           cfg,
		client:        client,
		sessions:      sessions,
		exportService: export.NewService(nil),
		history:       history,
		currentView:   ViewLogin,
		loginView:     view.NewLoginModel(sessions),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAttendance
				m.attendanceView = view.NewAttendanceModel(m.newLoader(), m.exportDeps())

				return m, tea.Batch(m.attendanceView.Init(), m.resize())
			case "2":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.history, m.session.Username)

				return m, tea.Batch(m.historyView.Init(), m.resize())
			case "l":
				return m.logout()
			}
		}
	case view.LoggedInMsg:
		m.session = msg.Session
		m.currentView = ViewMenu

		slog.Info("admin logged in", "username", msg.Session.Username, "session", msg.Session.ID)

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu

		if m.session != nil && m.session.Expired(time.Now()) {
			return m.logout()
		}

		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewAttendance:
		var newModel tea.Model
		newModel, cmd = m.attendanceView.Update(msg)
		m.attendanceView = newModel.(view.AttendanceModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	}

	return m, cmd
}

// logout drops the session and everything loaded under it.
func (m model) logout() (tea.Model, tea.Cmd) {
	if m.session != nil {
		m.sessions.Revoke(m.session.ID)
		slog.Info("admin logged out", "username", m.session.Username, "session", m.session.ID)
	}

	m.session = nil
	m.attendanceView = view.AttendanceModel{}
	m.historyView = view.HistoryModel{}
	m.currentView = ViewLogin
	m.loginView = view.NewLoginModel(m.sessions)

	return m, m.loginView.Init()
}

func (m model) newLoader() *dashboard.Loader {
	return dashboard.NewLoader(m.client.WithToken(m.session.BackendToken), nil)
}

func (m model) exportDeps() view.ExportDeps {
	return view.ExportDeps{
		Service:  m.exportService,
		History:  m.history,
		Dir:      m.cfg.Export.Dir,
		Username: m.session.Username,
	}
}

func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	return func() tea.Msg { return size }
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		historyLine := "2. Export History\n"
		if m.history == nil {
			historyLine = "2. Export History (no database)\n"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s (signed in as %s)\n\n", m.cfg.App.Name, m.session.Name) +
				"1. Attendance Dashboard\n" +
				historyLine + "\n" +
				"l. Log Out\n" +
				"q. Quit",
		)
	case ViewAttendance:
		return m.withHelp(m.attendanceView)
	case ViewHistory:
		return m.withHelp(m.historyView)
	}

	return "Unknown View"
}

func (m model) withHelp(v view.View) string {
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, v.View(), help)
}

// openHistory connects to the export log database. The dashboard works
// without it, so failures are only logged.
func openHistory(ctx context.Context, cfg *config.Config) *sql.DB {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Warn("export history disabled", "error", err)
		return nil
	}

	if _, err := database.Migrate(ctx, db); err != nil {
		slog.Warn("export history disabled", "error", err)
		db.Close()

		return nil
	}

	return db
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile("presence-tui.log", "")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logging.Setup(logFile, cfg.App.LogLevel)

	db := openHistory(context.Background(), cfg)
	if db != nil {
		defer db.Close()
	}

	p := tea.NewProgram(initialModel(cfg, db), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
