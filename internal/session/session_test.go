package session_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/presence/internal/backend"
	"github.com/MrJamesThe3rd/presence/internal/session"
)

type stubAuth struct {
	result *backend.LoginResult
	err    error
	calls  int
}

func (s *stubAuth) Login(_ context.Context, _, _ string) (*backend.LoginResult, error) {
	s.calls++
	return s.result, s.err
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func newClock() *clock {
	return &clock{t: time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)}
}

func TestManager_Login(t *testing.T) {
	type testCase struct {
		name      string
		username  string
		password  string
		auth      *stubAuth
		wantErr   error
		wantCalls int
	}

	tests := []testCase{
		{
			name:      "Success",
			username:  " admin ",
			password:  "secret",
			auth:      &stubAuth{result: &backend.LoginResult{Success: true, Token: "backend-token", Name: "Admin", Role: "admin"}},
			wantCalls: 1,
		},
		{
			name:     "MissingPassword",
			username: "admin",
			auth:     &stubAuth{},
			wantErr:  session.ErrMissingCredentials,
		},
		{
			name:     "BlankUsername",
			username: "   ",
			password: "secret",
			auth:     &stubAuth{},
			wantErr:  session.ErrMissingCredentials,
		},
		{
			name:      "Rejected",
			username:  "admin",
			password:  "wrong",
			auth:      &stubAuth{err: backend.ErrInvalidCredentials},
			wantErr:   backend.ErrInvalidCredentials,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClock()
			m := session.NewManager(tt.auth, "test-secret", time.Hour, c.Now)

			s, err := m.Login(context.Background(), tt.username, tt.password)
			assert.Equal(t, tt.wantCalls, tt.auth.calls)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, s.ID)
			assert.Equal(t, "admin", s.Username)
			assert.Equal(t, "Admin", s.Name)
			assert.Equal(t, "backend-token", s.BackendToken)
			assert.Equal(t, c.t.Add(time.Hour), s.ExpiresAt)
			assert.False(t, s.Expired(c.t))
			assert.True(t, s.Expired(c.t.Add(time.Hour)))
		})
	}
}

func TestManager_IssueVerify(t *testing.T) {
	c := newClock()
	auth := &stubAuth{result: &backend.LoginResult{Success: true, Token: "bt", Name: "Admin", Role: "admin"}}
	m := session.NewManager(auth, "test-secret", 30*time.Minute, c.Now)

	s, err := m.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	token, err := m.Issue(s)
	require.NoError(t, err)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Username, got.Username)
	assert.Equal(t, s.Role, got.Role)
	assert.Equal(t, "bt", got.BackendToken)
	assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))

	c.t = c.t.Add(31 * time.Minute)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, session.ErrExpired)
}

func TestManager_BackendTokenStaysServerSide(t *testing.T) {
	c := newClock()
	auth := &stubAuth{result: &backend.LoginResult{Success: true, Token: "backend-admin-token", Name: "Admin", Role: "admin"}}
	m := session.NewManager(auth, "test-secret", time.Hour, c.Now)

	s, err := m.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	token, err := m.Issue(s)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "backend-admin-token")

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "backend-admin-token", got.BackendToken)

	// A manager with the same secret but without the grant, e.g. after a
	// restart, does not accept the token.
	restarted := session.NewManager(auth, "test-secret", time.Hour, c.Now)

	_, err = restarted.Verify(token)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

func TestManager_Revoke(t *testing.T) {
	c := newClock()
	auth := &stubAuth{result: &backend.LoginResult{Success: true, Token: "bt", Name: "Admin", Role: "admin"}}
	m := session.NewManager(auth, "test-secret", time.Hour, c.Now)

	first, err := m.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	second, err := m.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)

	firstToken, err := m.Issue(first)
	require.NoError(t, err)

	secondToken, err := m.Issue(second)
	require.NoError(t, err)

	m.Revoke(first.ID)

	_, err = m.Verify(firstToken)
	assert.ErrorIs(t, err, session.ErrInvalidToken)

	_, err = m.Verify(secondToken)
	assert.NoError(t, err, "revoking one session leaves others valid")
}

func TestManager_VerifyRejects(t *testing.T) {
	c := newClock()
	m := session.NewManager(&stubAuth{}, "test-secret", time.Hour, c.Now)
	other := session.NewManager(&stubAuth{}, "other-secret", time.Hour, c.Now)

	forged, err := other.Issue(&session.Session{ID: "x", Username: "admin", IssuedAt: c.t, ExpiresAt: c.t.Add(time.Hour)})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "admin", "iss": "presence"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"Garbage":     "not-a-jwt",
		"WrongSecret": forged,
		"AlgNone":     none,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.ErrorIs(t, err, session.ErrInvalidToken)
		})
	}
}

func TestContext(t *testing.T) {
	_, ok := session.FromContext(context.Background())
	assert.False(t, ok)

	s := &session.Session{Username: "admin"}
	got, ok := session.FromContext(session.NewContext(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}
