package auth

import (
	"context"
	"errors"
	"sync"
)

// Status of a Gate.
type Status int

const (
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// User-visible messages set by a failed Submit.
const (
	MessageInvalidPassword = "Invalid password"
	MessageMisconfigured   = "Server configuration error"
	MessageFailed          = "Authentication failed"
)

// ErrSubmitInFlight is returned when Submit is called while another Submit
// has not returned yet.
var ErrSubmitInFlight = errors.New("authentication already in progress")

// Session holds the session-scoped authenticated flag. Its lifetime is the
// application's: created at start, cleared on logout.
type Session interface {
	Authenticated() bool
	SetAuthenticated(bool) error
}

// Authenticator checks a password with the server. Implementations return
// ErrInvalidPassword or ErrSecretNotConfigured for the two refusal cases.
type Authenticator interface {
	Authenticate(ctx context.Context, password string) error
}

// Gate is the admin login state machine.
type Gate struct {
	session Session
	remote  Authenticator

	mu         sync.Mutex
	status     Status
	password   string
	message    string
	submitting bool
}

// NewGate returns a Gate in StatusLoading. Call Mount to read the session.
func NewGate(session Session, remote Authenticator) *Gate {
	return &Gate{session: session, remote: remote, status: StatusLoading}
}

// Mount reads the session flag and leaves StatusLoading.
func (g *Gate) Mount() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session.Authenticated() {
		g.status = StatusAuthenticated
	} else {
		g.status = StatusUnauthenticated
	}
	return g.status
}

// Submit verifies password with the server. On success the session flag is
// set; on failure the gate stays unauthenticated and Message explains why.
func (g *Gate) Submit(ctx context.Context, password string) error {
	g.mu.Lock()
	if g.submitting {
		g.mu.Unlock()
		return ErrSubmitInFlight
	}
	g.submitting = true
	g.password = password
	g.message = ""
	g.mu.Unlock()

	err := g.remote.Authenticate(ctx, password)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitting = false

	if err != nil {
		g.status = StatusUnauthenticated
		g.message = messageFor(err)
		return err
	}

	if err := g.session.SetAuthenticated(true); err != nil {
		g.status = StatusUnauthenticated
		g.message = MessageFailed
		return err
	}
	g.status = StatusAuthenticated
	return nil
}

// Logout clears the session flag and the password input.
func (g *Gate) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = StatusUnauthenticated
	g.password = ""
	g.message = ""
	return g.session.SetAuthenticated(false)
}

// Status returns the current state.
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Message is the error shown next to the login form.
func (g *Gate) Message() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

// Password is the current content of the password input.
func (g *Gate) Password() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.password
}

// Submitting reports whether the submit control should be disabled.
func (g *Gate) Submitting() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitting
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPassword):
		return MessageInvalidPassword
	case errors.Is(err, ErrSecretNotConfigured):
		return MessageMisconfigured
	default:
		return MessageFailed
	}
}

// MemorySession keeps the flag in memory.
type MemorySession struct {
	mu   sync.Mutex
	flag bool
}

// Authenticated implements Session.
func (s *MemorySession) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flag
}

// SetAuthenticated implements Session.
func (s *MemorySession) SetAuthenticated(v bool) error {
	s.mu.Lock()
	s.flag = v
	s.mu.Unlock()
	return nil
}
