// Package session holds the per-user interaction state: the authentication
// gate and the append-only chat transcript.
package session

import (
	"crypto/subtle"
	"errors"
)

// ErrInvalidCredentials is returned when the username/password pair does not
// match the configured mapping. The session state is left unchanged.
var ErrInvalidCredentials = errors.New("credenciales incorrectas")

// State is the authentication state of a session.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

// Message is one transcript entry. The transcript is display-only; the
// retrieval and answer paths only ever see the current query.
type Message struct {
	Role    string
	Content string
}

// Session is an explicit session context passed to the UI handlers. It owns
// the transcript and the authentication flag; nothing else in the process
// carries per-user state.
type Session struct {
	users      map[string]string
	state      State
	user       string
	transcript []Message
}

// New creates an unauthenticated session over the given credential mapping.
func New(users map[string]string) *Session {
	return &Session{users: users}
}

// Login transitions the session to Authenticated when the pair matches.
// Stored passwords are plain text; comparison is constant-time.
func (s *Session) Login(user, pass string) error {
	want, ok := s.users[user]
	if !ok {
		// Compare anyway to keep timing uniform for unknown users.
		subtle.ConstantTimeCompare([]byte(pass), []byte(pass))
		return ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(pass)) != 1 {
		return ErrInvalidCredentials
	}
	s.state = Authenticated
	s.user = user
	return nil
}

// Logout returns the session to Unauthenticated and clears the transcript.
func (s *Session) Logout() {
	s.state = Unauthenticated
	s.user = ""
	s.transcript = nil
}

// State returns the current authentication state.
func (s *Session) State() State { return s.state }

// User returns the authenticated username, or "" when unauthenticated.
func (s *Session) User() string { return s.user }

// Append adds a message to the transcript.
func (s *Session) Append(role, content string) {
	s.transcript = append(s.transcript, Message{Role: role, Content: content})
}

// Transcript returns a copy of the transcript in insertion order.
func (s *Session) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}
