package session

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// User is the identity record exchanged with the remote store's users
// collection. The password travels in plain form on this wire; see
// DESIGN.md for the hardening option.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Listener is notified after the current user changes. A nil user means the
// session ended (logout); a non-nil user means a login.
type Listener interface {
	SessionChanged(ctx context.Context, u *User)
}

// Manager owns the current-user identity and its persisted slot. All
// user-scoped components read the active user through it.
type Manager struct {
	fs   afero.Fs
	path string

	mu        sync.RWMutex
	current   *User
	listeners []Listener
}

// NewManager creates a Manager persisting the session to path on fs.
func NewManager(fs afero.Fs, path string) *Manager {
	return &Manager{fs: fs, path: path}
}

// Subscribe registers a listener for login/logout notifications.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Restore reads the persisted session slot and, if present, sets the
// current user without re-validating it against the remote store. Listeners
// are not notified; callers refresh their caches after Restore.
func (m *Manager) Restore() {
	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[Session] Failed to read session file: %v", err)
		}
		return
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		log.Printf("[Session] Ignoring corrupt session file: %v", err)
		return
	}

	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()
}

// Login sets the current user to the given already-validated record and
// persists it. Persistence failures are logged; Login itself cannot fail.
func (m *Manager) Login(ctx context.Context, u User) {
	m.mu.Lock()
	m.current = &u
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if err := m.persist(u); err != nil {
		log.Printf("[Session] Failed to persist session: %v", err)
	}

	for _, l := range listeners {
		l.SessionChanged(ctx, &u)
	}
}

// Logout clears the current user and the persisted slot, then notifies
// listeners so they invalidate their caches.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if err := m.fs.Remove(m.path); err != nil && !os.IsNotExist(err) {
		log.Printf("[Session] Failed to remove session file: %v", err)
	}

	for _, l := range listeners {
		l.SessionChanged(ctx, nil)
	}
}

// Current returns the active user, if any.
func (m *Manager) Current() (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return User{}, false
	}
	return *m.current, true
}

// UserID returns the active user's id, or "" when anonymous.
func (m *Manager) UserID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.ID
}

func (m *Manager) persist(u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(m.path); dir != "." {
		if err := m.fs.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return afero.WriteFile(m.fs, m.path, data, 0o600)
}
