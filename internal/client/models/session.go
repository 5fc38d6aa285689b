package models

// Credentials is what a user types in to log in or sign up. Password is the
// plain text; callers wipe it once the session service has digested it.
type Credentials struct {
	Name     string
	Password []byte
}

// SessionState is the serialisable snapshot of a session. It is what gets
// saved locally so a later run can pick the session back up.
type SessionState struct {
	Active bool   `json:"active"`
	User   Record `json:"user,omitempty"`
}
