package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
)

const requestTimeout = 15 * time.Second

// RequestCtx returns a context with a standard timeout for backend calls.
func RequestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// FormatTime renders an attendance timestamp as local wall-clock time.
// Unparseable values are shown as received; absent ones as "-".
func FormatTime(ts string) string {
	if ts == "" {
		return attendance.NoHours
	}

	t, err := attendance.ParseTimestamp(ts)
	if err != nil {
		return ts
	}

	return t.Local().Format("15:04")
}

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	activeColor = lipgloss.Color("205")
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(activeColor).Render(s)
}

// StatusLabel renders a punctuality status with its colour.
func StatusLabel(s attendance.Status) string {
	switch s {
	case attendance.StatusLate:
		return errorStyle.Render("late")
	case attendance.StatusEarly:
		return warnStyle.Render("early")
	case attendance.StatusOnTime:
		return okStyle.Render("on time")
	}

	return string(s)
}
