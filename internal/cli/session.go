package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultServer is used until a login records another one.
const DefaultServer = "http://localhost:3000"

type sessionData struct {
	Server        string `yaml:"server"`
	Token         string `yaml:"token,omitempty"`
	Authenticated bool   `yaml:"authenticated"`
}

// SessionFile is an auth.Session persisted as yaml. It lives from login to
// logout.
type SessionFile struct {
	path string

	mu   sync.Mutex
	data sessionData
}

// DefaultSessionPath is $XDG_CONFIG_HOME/portfolioctl/session.yaml or the
// platform equivalent.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".portfolioctl-session.yaml"
	}
	return filepath.Join(dir, "portfolioctl", "session.yaml")
}

// LoadSession reads path. A missing file yields an empty session.
func LoadSession(path string) (*SessionFile, error) {
	s := &SessionFile{path: path, data: sessionData{Server: DefaultServer}}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	if s.data.Server == "" {
		s.data.Server = DefaultServer
	}
	return s, nil
}

// Authenticated implements auth.Session.
func (s *SessionFile) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Authenticated && s.data.Token != ""
}

// SetAuthenticated implements auth.Session. Clearing the flag also drops
// the cookie.
func (s *SessionFile) SetAuthenticated(v bool) error {
	s.mu.Lock()
	s.data.Authenticated = v
	if !v {
		s.data.Token = ""
	}
	s.mu.Unlock()
	return s.Save()
}

// Server is the base URL of the portfolio service.
func (s *SessionFile) Server() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Server
}

// SetServer records a new base URL. A different server invalidates the
// session.
func (s *SessionFile) SetServer(server string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if server == "" || server == s.data.Server {
		return
	}
	s.data = sessionData{Server: server}
}

// Token is the saved session cookie.
func (s *SessionFile) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Token
}

// SetToken records the session cookie and saves.
func (s *SessionFile) SetToken(token string) error {
	s.mu.Lock()
	s.data.Token = token
	s.mu.Unlock()
	return s.Save()
}

// Save writes the session with owner-only permissions.
func (s *SessionFile) Save() error {
	s.mu.Lock()
	raw, err := yaml.Marshal(s.data)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
