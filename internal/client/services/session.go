// Package services contains application services for the docsession client.
// This file defines the session service: login, signup, logout and field
// writes against the remote user collection, plus the two event hooks.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/docsession/internal/client/client"
	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/cryptox"
	"github.com/dmitrijs2005/docsession/internal/logging"
)

// Event names accepted by SetEventListener.
const (
	EventStatusChange = "status_change"
	EventDataWrite    = "data_write"
)

var (
	ErrNoRecordID   = errors.New("current user record has no id")
	ErrInvalidState = errors.New("invalid session state")
	ErrNoFields     = errors.New("no fields to write")
)

// SessionService defines the session operations the CLI relies on.
//
// Contract:
//   - Login/Signup: LoggedOut -> LoggedIn; rejected with ErrAlreadyLoggedIn otherwise.
//   - Logout: LoggedIn -> LoggedOut; rejected with ErrNotLoggedIn otherwise.
//   - Write: $set fields on the current user; rejected with ErrNotLoggedIn when logged out.
//   - Snapshot/Restore: carry the session across process restarts.
//
// All blocking methods honor context cancellation/timeouts.
type SessionService interface {
	FindUser(ctx context.Context, name string) (models.Record, error)
	Login(ctx context.Context, creds models.Credentials) error
	Logout(ctx context.Context) error
	Signup(ctx context.Context, creds models.Credentials, fields models.Record) error
	Write(ctx context.Context, fields models.Record) error
	Active() bool
	CurrentUser() models.Record
	Snapshot() models.SessionState
	Restore(state models.SessionState) error
	SetEventListener(name string, fn any)
	OnStatusChange(fn func(active bool))
	OnDataWrite(fn func(fields models.Record))
	Ping(ctx context.Context) error
	Close() error
}

// Session is the SessionService backed by a remote Store.
//
// Preconditions are checked against the state at call time; the lock is not
// held across the store round trip. Two overlapping Login/Signup calls can
// therefore both pass the check, and whichever response arrives last wins.
// Callers that need strict ordering must serialise their own calls.
type Session struct {
	store client.Store
	log   logging.Logger

	mu       sync.Mutex
	active   bool
	user     models.Record
	onStatus func(active bool)
	onWrite  func(fields models.Record)
}

var _ SessionService = (*Session)(nil)

// NewSession constructs a logged-out Session over store.
func NewSession(store client.Store, log logging.Logger) *Session {
	return &Session{store: store, log: log.With("component", "session")}
}

// FindUser looks the user up by exact, case-sensitive name. It returns
// (nil, nil) when no record matches. Session state is not touched.
func (s *Session) FindUser(ctx context.Context, name string) (models.Record, error) {
	rec, err := s.store.FindUser(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return rec, nil
}

// Login digests creds.Password, fetches the record for creds.Name and
// compares digests. On success the session becomes active with that record
// and status_change(true) fires.
func (s *Session) Login(ctx context.Context, creds models.Credentials) error {
	if s.Active() {
		return &StateError{Kind: StateAlreadyActive, Op: "login"}
	}

	digest := cryptox.Digest(creds.Password)

	rec, err := s.FindUser(ctx, creds.Name)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if rec == nil {
		s.log.Info(ctx, "login rejected", "user", creds.Name, "reason", AuthNotFound)
		return &AuthError{Kind: AuthNotFound, Name: creds.Name}
	}
	if !cryptox.DigestEqual(rec.PasswordHash(), digest) {
		s.log.Info(ctx, "login rejected", "user", creds.Name, "reason", AuthWrongPassword)
		return &AuthError{Kind: AuthWrongPassword, Name: creds.Name}
	}

	s.activate(ctx, rec)
	return nil
}

// Signup creates a record for creds.Name unless one already exists, then
// logs in as it. fields are stored alongside name and the password digest;
// they cannot override either.
func (s *Session) Signup(ctx context.Context, creds models.Credentials, fields models.Record) error {
	if s.Active() {
		return &StateError{Kind: StateAlreadyActive, Op: "signup"}
	}

	digest := cryptox.Digest(creds.Password)

	existing, err := s.FindUser(ctx, creds.Name)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	if existing != nil {
		s.log.Info(ctx, "signup rejected", "user", creds.Name, "reason", AuthAlreadyExists)
		return &AuthError{Kind: AuthAlreadyExists, Name: creds.Name}
	}

	rec := fields.Clone()
	if rec == nil {
		rec = models.Record{}
	}
	rec[models.FieldName] = creds.Name
	rec[models.FieldPassword] = digest

	created, err := s.store.CreateUser(ctx, rec)
	if err != nil {
		return fmt.Errorf("signup: create user: %w", err)
	}

	s.activate(ctx, created)
	return nil
}

// Logout drops the current user and fires status_change(false).
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return &StateError{Kind: StateNotActive, Op: "logout"}
	}
	name := s.user.Name()
	s.active = false
	s.user = nil
	listener := s.onStatus
	s.mu.Unlock()

	s.log.Info(ctx, "logged out", "user", name)
	if listener != nil {
		listener(false)
	}
	return nil
}

// Write sends fields as a $set to the current user's record. Once the store
// accepts it the local copy is updated with models.Record.Merge and
// data_write(fields) fires. An empty fields set is rejected with
// ErrNoFields before anything is sent.
//
// If the session was logged out (or switched user) while the request was in
// flight, the store keeps the write but the local merge is skipped.
func (s *Session) Write(ctx context.Context, fields models.Record) error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return &StateError{Kind: StateNotActive, Op: "write"}
	}
	id := s.user.ID()
	s.mu.Unlock()

	if id == "" {
		return fmt.Errorf("write: %w", ErrNoRecordID)
	}
	if len(fields) == 0 {
		return fmt.Errorf("write: %w", ErrNoFields)
	}

	if err := s.store.UpdateUser(ctx, id, fields); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	s.mu.Lock()
	if s.active && s.user.ID() == id {
		s.user.Merge(fields)
	}
	listener := s.onWrite
	s.mu.Unlock()

	s.log.Debug(ctx, "fields written", "id", id, "count", len(fields))
	if listener != nil {
		listener(fields.Clone())
	}
	return nil
}

func (s *Session) activate(ctx context.Context, rec models.Record) {
	s.mu.Lock()
	s.active = true
	s.user = rec
	listener := s.onStatus
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "user", rec.Name(), "id", rec.ID())
	if listener != nil {
		listener(true)
	}
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// CurrentUser returns a copy of the logged-in user's record, or nil.
func (s *Session) CurrentUser() models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

func (s *Session) Snapshot() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionState{Active: s.active, User: s.user.Clone()}
}

// Restore loads a previously saved snapshot into a logged-out session.
// No event fires: the session is resumed, not newly established.
func (s *Session) Restore(state models.SessionState) error {
	if state.Active != (state.User != nil) {
		return ErrInvalidState
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return &StateError{Kind: StateAlreadyActive, Op: "restore"}
	}
	s.active = state.Active
	s.user = state.User.Clone()
	return nil
}

// SetEventListener replaces one of the two hooks by name: status_change takes
// a func(bool), data_write a func(models.Record). Unknown names and
// mismatched function types are ignored.
func (s *Session) SetEventListener(name string, fn any) {
	switch name {
	case EventStatusChange:
		if f, ok := fn.(func(bool)); ok {
			s.OnStatusChange(f)
		}
	case EventDataWrite:
		if f, ok := fn.(func(models.Record)); ok {
			s.OnDataWrite(f)
		}
	}
}

func (s *Session) OnStatusChange(fn func(active bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStatus = fn
}

func (s *Session) OnDataWrite(fn func(fields models.Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onWrite = fn
}

// Ping proxies a liveness check to the underlying store.
func (s *Session) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Close releases resources held by the underlying store.
func (s *Session) Close() error {
	return s.store.Close()
}
