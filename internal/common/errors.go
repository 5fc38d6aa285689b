// Package common defines shared constants and sentinel errors used across
// the client, the CLI and the store emulator. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
)
