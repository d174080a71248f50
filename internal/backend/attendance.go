package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
)

// FetchAttendance reads the raw attendance documents for scope. For
// ScopeToday the date is taken from now, the caller's clock, in now's
// location. The response must be a JSON array; anything else is rejected
// with ErrMalformedPayload and nothing is returned.
func (c *Client) FetchAttendance(ctx context.Context, scope attendance.Scope, now time.Time) ([]attendance.RawDoc, error) {
	endpoint := "attendance?date=" + url.QueryEscape(scope.DateParam(now))

	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: attendance response is not an array", ErrMalformedPayload)
	}

	var docs []attendance.RawDoc
	if err := json.Unmarshal(trimmed, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return docs, nil
}

// Stats returns the aggregate statistics object untouched.
func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "attendance/stats", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: stats response is not JSON", ErrMalformedPayload)
	}

	return json.RawMessage(body), nil
}

// ManualRequest records an attendance punch on behalf of an employee.
type ManualRequest struct {
	Employees string `json:"employees"`
	// Photo is a base64 data URL, see DataURL.
	Photo     string `json:"photo"`
	Timestamp string `json:"timestamp"`
}

// Result is the generic {success, error} acknowledgement of the backend.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ManualAttendance posts a manual punch. A response with success=false is
// returned as an error carrying the server message.
func (c *Client) ManualAttendance(ctx context.Context, req ManualRequest) (*Result, error) {
	res, err := doPostJSON[Result](ctx, c, "attendance/manual", req)
	if err != nil {
		return nil, err
	}

	if !res.Success {
		return res, fmt.Errorf("manual attendance rejected: %s", res.Error)
	}

	return res, nil
}

// AutoRequest records a punch for a recognized employee.
type AutoRequest struct {
	EmployeeID string  `json:"employeeId"`
	Confidence float64 `json:"confidence"`
}

// AutoResult is the backend decision for an automatic punch.
type AutoResult struct {
	Action      string          `json:"action"`
	Status      string          `json:"status,omitempty"`
	Punctuality string          `json:"punctuality,omitempty"`
	Employee    json.RawMessage `json:"employee,omitempty"`
}

// PunctualityStatus returns the punctuality label, whichever field carried it.
func (r AutoResult) PunctualityStatus() attendance.Status {
	if r.Status != "" {
		return attendance.Status(r.Status)
	}

	return attendance.Status(r.Punctuality)
}

// EmployeeName returns the employee name whether the backend sent a plain
// string or an object with a name field.
func (r AutoResult) EmployeeName() string {
	if len(r.Employee) == 0 {
		return ""
	}

	var name string
	if err := json.Unmarshal(r.Employee, &name); err == nil {
		return strings.TrimSpace(name)
	}

	var obj struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal(r.Employee, &obj); err == nil {
		return strings.TrimSpace(obj.Name)
	}

	return ""
}

// AutoAttendance lets the backend decide check-in or check-out for employeeID.
func (c *Client) AutoAttendance(ctx context.Context, req AutoRequest) (*AutoResult, error) {
	return doPostJSON[AutoResult](ctx, c, "attendance/auto", req)
}
