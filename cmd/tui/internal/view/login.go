package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/presence/internal/backend"
	"github.com/MrJamesThe3rd/presence/internal/session"
)

type loginState int

const (
	loginStateForm loginState = iota
	loginStateSubmitting
)

// LoggedInMsg is sent once the administrator has authenticated.
type LoggedInMsg struct {
	Session *session.Session
}

type LoginModel struct {
	CommonModel
	sessions *session.Manager

	state loginState
	form  *huh.Form
	err   error
}

func NewLoginModel(sessions *session.Manager) LoginModel {
	return LoginModel{
		sessions: sessions,
		form:     buildLoginForm(),
	}
}

func (m LoginModel) Title() string { return "Admin Login" }

func (m LoginModel) ShortHelp() string {
	if m.state == loginStateSubmitting {
		return "Signing in..."
	}

	return "Tab: next field | Enter: sign in | Ctrl+C: quit"
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(loginResultMsg); ok {
		if res.err != nil {
			m.err = res.err
			m.state = loginStateForm
			m.form = buildLoginForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Session: res.session} }
	}

	if m.state == loginStateSubmitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = loginStateSubmitting
	m.err = nil

	return m, m.loginCmd(m.form.GetString("username"), m.form.GetString("password"))
}

func (m LoginModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Presence Attendance Dashboard")

	body := m.form.View()
	if m.state == loginStateSubmitting {
		body = "Signing in..."
	}

	parts := []string{header, "", body}

	if m.err != nil {
		parts = append(parts, "", errorStyle.Render(loginError(m.err)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func loginError(err error) string {
	if errors.Is(err, backend.ErrInvalidCredentials) {
		return "Invalid username or password"
	}

	return fmt.Sprintf("Login failed: %v", err)
}

func buildLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("username is required")
					}

					return nil
				}),
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword),
		),
	).WithWidth(40).WithShowHelp(false)
}

type loginResultMsg struct {
	session *session.Session
	err     error
}

func (m LoginModel) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		s, err := m.sessions.Login(ctx, username, password)

		return loginResultMsg{session: s, err: err}
	}
}
