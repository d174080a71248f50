package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

// DefaultBaseURL is the API root of a locally running attendance backend.
const DefaultBaseURL = "http://localhost:5000/api"

var (
	// ErrMalformedPayload is returned when a response body does not have the
	// expected shape, e.g. a non-array where a list is required.
	ErrMalformedPayload = errors.New("malformed response payload")
	// ErrNoFace is returned by ExtractFace when no face was detected.
	ErrNoFace = errors.New("no face detected")
	// ErrNoMatch is returned by RecognizeFace when no employee matched.
	ErrNoMatch = errors.New("face not recognized")
	// ErrInvalidCredentials is returned by Login on a rejected login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Code)
	}

	return fmt.Sprintf("request failed with status %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client talks to the attendance backend REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url must be http or https, got %q", baseURL)
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// WithToken returns a copy of the client that authenticates with token.
// The receiver is left unchanged.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token

	return &cp
}

// resolveURL joins endpoint to the base URL. A query string in endpoint is kept.
func (c *Client) resolveURL(endpoint string) string {
	path, query, _ := strings.Cut(endpoint, "?")

	u := c.baseURL.JoinPath(path)
	u.RawQuery = query

	return u.String()
}

// doGetJSON performs a GET request and unmarshals the JSON response.
func doGetJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	return doRequestJSON[T](ctx, c, http.MethodGet, endpoint, nil, http.StatusOK)
}

// doPostJSON performs a POST request with a JSON body and unmarshals the JSON response.
func doPostJSON[T any](ctx context.Context, c *Client, endpoint string, requestBody any) (*T, error) {
	return doRequestJSON[T](ctx, c, http.MethodPost, endpoint, requestBody, http.StatusOK, http.StatusCreated)
}

// doRequestJSON sends a request and decodes the response into T. Any status
// outside expectedStatuses becomes a *StatusError.
func doRequestJSON[T any](
	ctx context.Context, c *Client, method, endpoint string, requestBody any, expectedStatuses ...int,
) (*T, error) {
	body, err := c.doRequest(ctx, method, endpoint, requestBody, expectedStatuses...)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &result, nil
}

// doRequest sends a request and returns the raw response body.
func (c *Client) doRequest(
	ctx context.Context, method, endpoint string, requestBody any, expectedStatuses ...int,
) ([]byte, error) {
	var bodyReader io.Reader

	if requestBody != nil {
		jsonBody, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}

		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if !slices.Contains(expectedStatuses, resp.StatusCode) {
		return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
	}

	return body, nil
}

// errorMessage extracts the server-provided error text from a failure body.
// JSON bodies with an "error" or "message" field yield that field; anything
// else is returned trimmed.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}

		if payload.Message != "" {
			return payload.Message
		}
	}

	return strings.TrimSpace(string(body))
}
