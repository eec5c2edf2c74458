// Package session persists the logged-in identity and the shopping cart
// for a client device. The backing store is a single JSON file mutated
// by read-modify-write of the whole blob; a missing or corrupt file
// reads as an empty store, so a damaged session degrades to logged-out
// rather than erroring.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type blob struct {
	User  json.RawMessage `json:"user,omitempty"`
	Role  string          `json:"role,omitempty"`
	Token string          `json:"token,omitempty"`
	Cart  json.RawMessage `json:"cart,omitempty"`
}

// Store is a file-backed session store. Safe for concurrent use within
// one process; not shared across processes.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store { return &Store{path: path} }

func (s *Store) read() blob {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return blob{}
	}
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return blob{}
	}
	return b
}

func (s *Store) write(b blob) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Save stores the authenticated user's profile, role tag and bearer
// token. The cart, if any, survives.
func (s *Store) Save(user interface{}, role, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	b.User, b.Role, b.Token = raw, role, token
	return s.write(b)
}

// Load returns the stored profile blob and role. ok is false when no
// session exists, including when the file is unreadable or corrupt.
func (s *Store) Load() (user json.RawMessage, role string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	if len(b.User) == 0 || b.Role == "" {
		return nil, "", false
	}
	return b.User, b.Role, true
}

// LoadUser decodes the stored profile into dst. ok is false when no
// session exists.
func (s *Store) LoadUser(dst interface{}) (ok bool, err error) {
	user, _, ok := s.Load()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(user, dst); err != nil {
		return false, fmt.Errorf("decode user: %w", err)
	}
	return true, nil
}

// Token returns the stored bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Token
}

// Clear is logout: it drops the identity, token and cart together.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// SaveCart replaces the persisted cart blob.
func (s *Store) SaveCart(v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	b.Cart = raw
	return s.write(b)
}

// LoadCart decodes the persisted cart into dst. ok is false when no
// cart is stored; a corrupt cart blob reads as absent.
func (s *Store) LoadCart(dst interface{}) (ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	if len(b.Cart) == 0 {
		return false
	}
	if err := json.Unmarshal(b.Cart, dst); err != nil {
		return false
	}
	return true
}

// ClearCart drops the cart, keeping the identity.
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	b.Cart = nil
	return s.write(b)
}
