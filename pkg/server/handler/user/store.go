/*
Copyright 2026 the Petstore QA Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package user

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/petstore-qa/petstore-api/pkg/openapi"
)

var (
	// ErrNotFound is raised when a user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidCredentials is raised when a login does not match a known user.
	ErrInvalidCredentials = errors.New("invalid username/password supplied")

	// ErrSessionInvalid is raised when a session is unknown or has expired.
	ErrSessionInvalid = errors.New("session invalid")
)

// sessionIDLimit bounds generated session IDs to 13 digits, the width of a
// millisecond timestamp, which is what the real service hands out.
//
//nolint:gochecknoglobals
var sessionIDLimit = big.NewInt(10_000_000_000_000)

// Session is a logged in user.
type Session struct {
	ID       string
	Username string
	Expires  time.Time
}

// Store is an in-memory user database and session table.  It is safe for
// concurrent use.
type Store struct {
	lock     sync.RWMutex
	users    map[string]openapi.User
	sessions map[string]Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    map[string]openapi.User{},
		sessions: map[string]Session{},
	}
}

// Put creates or replaces users, keyed by username.
func (s *Store) Put(users ...openapi.User) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for i := range users {
		s.users[users[i].Username] = *users[i].DeepCopy()
	}
}

// Get returns a user by name.
func (s *Store) Get(username string) (*openapi.User, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	return user.DeepCopy(), nil
}

// Update replaces an existing user.  The user may be renamed, in which case
// the old record is removed.
func (s *Store) Update(username string, user openapi.User) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.users[username]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	delete(s.users, username)

	s.users[user.Username] = *user.DeepCopy()

	return nil
}

// Delete removes a user.
func (s *Store) Delete(username string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.users[username]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}

	delete(s.users, username)

	return nil
}

// Login checks the credentials and opens a session that lasts for the given
// lifetime.
func (s *Store) Login(credentials openapi.Credentials, now time.Time, lifetime time.Duration) (*Session, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	user, ok := s.users[credentials.Username]
	if !ok || user.Password != credentials.Password {
		return nil, ErrInvalidCredentials
	}

	id, err := s.newSessionID()
	if err != nil {
		return nil, err
	}

	session := Session{
		ID:       id,
		Username: user.Username,
		Expires:  now.Add(lifetime),
	}

	s.sessions[id] = session

	return &session, nil
}

// Logout ends a session, unknown sessions are ignored.
func (s *Store) Logout(id string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.sessions, id)
}

// Session returns a live session, expired sessions are reaped on access.
func (s *Store) Session(id string, now time.Time) (*Session, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionInvalid
	}

	if !now.Before(session.Expires) {
		delete(s.sessions, id)

		return nil, ErrSessionInvalid
	}

	return &session, nil
}

// Reset clears all users and sessions.
func (s *Store) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.users = map[string]openapi.User{}
	s.sessions = map[string]Session{}
}

// LoadSeed adds users from a YAML list.
func (s *Store) LoadSeed(data []byte) error {
	var users openapi.Users

	if err := yaml.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("decoding seed users: %w", err)
	}

	for i := range users {
		var username openapi.Username

		if err := username.UnmarshalText([]byte(users[i].Username)); err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
	}

	s.Put(users...)

	return nil
}

// newSessionID must be called with the lock held.
func (s *Store) newSessionID() (string, error) {
	for {
		n, err := rand.Int(rand.Reader, sessionIDLimit)
		if err != nil {
			return "", fmt.Errorf("generating session id: %w", err)
		}

		id := fmt.Sprintf("%013d", n)

		if _, ok := s.sessions[id]; !ok {
			return id, nil
		}
	}
}
