package backend

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/presence/internal/validation"
)

// Employee is a registered employee as listed by GET /employees.
type Employee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

func (c *Client) Employees(ctx context.Context) ([]Employee, error) {
	employees, err := doGetJSON[[]Employee](ctx, c, "employees")
	if err != nil {
		return nil, err
	}

	return *employees, nil
}

// Settings are the attendance policy settings of the backend.
type Settings struct {
	StartTime     string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime       string `json:"endTime" validate:"required,datetime=15:04"`
	SyncFrequency int    `json:"syncFrequency" validate:"gte=0"`
}

// clockLayout is the HH:MM format of the settings times.
const clockLayout = "15:04"

func init() {
	validation.RegisterStructValidation(settingsRule, Settings{})
}

// settingsRule requires the work day to end after it starts.
func settingsRule(sl validator.StructLevel) {
	s := sl.Current().Interface().(Settings)

	start, err := time.Parse(clockLayout, s.StartTime)
	if err != nil {
		return
	}

	end, err := time.Parse(clockLayout, s.EndTime)
	if err != nil {
		return
	}

	if !end.After(start) {
		sl.ReportError(s.EndTime, "endTime", "EndTime", "gtfield", "startTime")
	}
}

// Validate checks the time formats, the sync frequency and that the work
// day ends after it starts.
func (s Settings) Validate() error {
	return validation.Struct(s)
}

func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	return doGetJSON[Settings](ctx, c, "settings")
}

// UpdateSettings stores s and returns the settings as saved by the backend.
func (c *Client) UpdateSettings(ctx context.Context, s Settings) (*Settings, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return doPostJSON[Settings](ctx, c, "settings", s)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the admin login response.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Error   string `json:"error,omitempty"`
}

// Login authenticates an administrator. Rejected credentials, whether
// reported with a 401 or with success=false, yield ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	res, err := doPostJSON[LoginResult](ctx, c, "admin/login", loginRequest{Username: username, Password: password})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !res.Success || res.Token == "" {
		return nil, ErrInvalidCredentials
	}

	return res, nil
}
