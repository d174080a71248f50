package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/presence/internal/backend"
	"github.com/MrJamesThe3rd/presence/internal/validation"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrExpired            = errors.New("session expired")
)

// Session is an authenticated administrator. It is created at login, passed
// explicitly to whatever needs it and discarded at logout.
type Session struct {
	ID           string
	Username     string
	Name         string
	Role         string
	BackendToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Authenticator checks administrator credentials against the backend.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*backend.LoginResult, error)
}

// Claims are the JWT claims of a dashboard session token. The backend
// token is never part of them; it stays with the Manager under the JWT ID.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`

	jwt.RegisteredClaims
}

const issuer = "presence"

// grant is the server-side half of an issued token.
type grant struct {
	backendToken string
	expiresAt    time.Time
}

// Manager issues and verifies session tokens. Tokens are only valid on the
// Manager that issued them and until Revoke.
type Manager struct {
	auth   Authenticator
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu     sync.Mutex
	grants map[string]grant
}

// NewManager creates a Manager. now is used for issue and expiry checks;
// nil means time.Now.
func NewManager(auth Authenticator, secret string, ttl time.Duration, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}

	return &Manager{
		auth:   auth,
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		grants: make(map[string]grant),
	}
}

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates against the backend and returns the new session.
// Surrounding blanks in the username are ignored.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)

	if err := validation.Struct(credentials{Username: username, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingCredentials, err)
	}

	res, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	now := m.now()

	s := &Session{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         res.Name,
		Role:         res.Role,
		BackendToken: res.Token,
		IssuedAt:     now.Truncate(time.Second),
	}

	if m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl).Truncate(time.Second)
	}

	return s, nil
}

// Issue signs s into a bearer token.
func (m *Manager) Issue(s *Session) (string, error) {
	claims := &Claims{
		Name: s.Name,
		Role: s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       s.ID,
			Issuer:   issuer,
			Subject:  s.Username,
			IssuedAt: jwt.NewNumericDate(s.IssuedAt),
		},
	}

	if !s.ExpiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(s.ExpiresAt)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()
	m.grants[s.ID] = grant{backendToken: s.BackendToken, expiresAt: s.ExpiresAt}

	return token, nil
}

// Revoke invalidates every token issued for the session id.
func (m *Manager) Revoke(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.grants, id)
}

func (m *Manager) pruneLocked() {
	now := m.now()

	for id, g := range m.grants {
		if !g.expiresAt.IsZero() && !now.Before(g.expiresAt) {
			delete(m.grants, id)
		}
	}
}

// Verify parses a bearer token back into its session.
func (m *Manager) Verify(token string) (*Session, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}

		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	m.mu.Lock()
	g, ok := m.grants[claims.ID]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: session revoked", ErrInvalidToken)
	}

	s := &Session{
		ID:           claims.ID,
		Username:     claims.Subject,
		Name:         claims.Name,
		Role:         claims.Role,
		BackendToken: g.backendToken,
	}

	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}

	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}

	return s, nil
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by NewContext.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
