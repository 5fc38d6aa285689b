package services

import "fmt"

// AuthErrorKind tells which credential check failed.
type AuthErrorKind int

const (
	AuthNotFound AuthErrorKind = iota + 1
	AuthWrongPassword
	AuthAlreadyExists
)

func (k AuthErrorKind) String() string {
	switch k {
	case AuthNotFound:
		return "user not found"
	case AuthWrongPassword:
		return "incorrect password"
	case AuthAlreadyExists:
		return "user already exists"
	default:
		return fmt.Sprintf("auth error %d", int(k))
	}
}

// AuthError is returned by Login and Signup when the store answered but the
// credentials do not fit: no such user, wrong password, or name taken.
type AuthError struct {
	Kind AuthErrorKind
	Name string
}

func (e *AuthError) Error() string {
	if e.Name == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Name)
}

// Is matches any *AuthError of the same kind, so errors.Is(err, ErrUserNotFound)
// works regardless of the user name carried.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

// StateErrorKind tells which session precondition was violated.
type StateErrorKind int

const (
	StateAlreadyActive StateErrorKind = iota + 1
	StateNotActive
)

// StateError is returned when an operation is called in the wrong session
// state. Op names the rejected operation.
type StateError struct {
	Kind StateErrorKind
	Op   string
}

func (e *StateError) Error() string {
	switch {
	case e.Kind == StateAlreadyActive:
		return "already logged in"
	case e.Kind == StateNotActive && e.Op == "logout":
		return "already logged out"
	case e.Kind == StateNotActive:
		return "not logged in"
	default:
		return fmt.Sprintf("state error %d", int(e.Kind))
	}
}

func (e *StateError) Is(target error) bool {
	t, ok := target.(*StateError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUserNotFound    = &AuthError{Kind: AuthNotFound}
	ErrWrongPassword   = &AuthError{Kind: AuthWrongPassword}
	ErrUserExists      = &AuthError{Kind: AuthAlreadyExists}
	ErrAlreadyLoggedIn = &StateError{Kind: StateAlreadyActive}
	ErrNotLoggedIn     = &StateError{Kind: StateNotActive}
)
