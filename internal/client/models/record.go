// Package models defines the user record, credentials and session snapshot
// types shared by the transport, the session service and the CLI.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Well-known record fields.
const (
	FieldID       = "_id"
	FieldName     = "name"
	FieldPassword = "password"
)

// ObjectID is the store-assigned record identifier as it appears on the wire:
// {"$oid": "<hex>"}.
type ObjectID struct {
	OID string `json:"$oid"`
}

// Record is one document of the user collection. Besides _id, name and
// password it may hold any other fields.
type Record map[string]any

// ID returns the $oid of the record, or "" if it has none.
func (r Record) ID() string {
	switch v := r[FieldID].(type) {
	case map[string]any:
		s, _ := v["$oid"].(string)
		return s
	case ObjectID:
		return v.OID
	case string:
		return v
	}
	return ""
}

func (r Record) Name() string {
	s, _ := r[FieldName].(string)
	return s
}

// PasswordHash returns the stored password digest.
func (r Record) PasswordHash() string {
	s, _ := r[FieldPassword].(string)
	return s
}

// Clone returns a deep copy of r. Nested maps and slices are copied as well,
// so the clone can be handed out without exposing session internals.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return cloneValue(map[string]any(r)).(map[string]any)
}

// ErrPathConflict is returned when a dotted key runs through a value that
// is neither an object nor an array, or uses a non-numeric array index.
var ErrPathConflict = errors.New("path runs through a non-container value")

// Merge applies fields to r the same way a {"$set": fields} update applies
// them to the stored document:
//
//   - a plain key replaces the whole top-level value (nested objects are
//     replaced, not deep-merged);
//   - a dotted key such as "profile.city" sets that path only, creating
//     missing intermediate objects and leaving sibling sub-fields intact;
//   - a numeric step into an array ("tags.0") sets that element, padding
//     the array with nulls when the index is past its end.
//
// A key whose path conflicts with the existing value is skipped; the store
// rejects such an update, so it never reaches the local copy.
func (r Record) Merge(fields Record) {
	for key, value := range fields {
		_ = r.SetPath(key, value)
	}
}

// ApplySet is Merge for a whole update: either every key applies or r is
// left unchanged and the first conflict is returned.
func (r Record) ApplySet(fields Record) error {
	next := r.Clone()
	if next == nil {
		next = Record{}
	}
	for key, value := range fields {
		if err := next.SetPath(key, value); err != nil {
			return err
		}
	}
	for k := range r {
		delete(r, k)
	}
	for k, v := range next {
		r[k] = v
	}
	return nil
}

// SetPath sets one $set key on r. value is copied.
func (r Record) SetPath(key string, value any) error {
	value = cloneValue(value)
	if !strings.Contains(key, ".") {
		r[key] = value
		return nil
	}

	parts := strings.Split(key, ".")
	updated, err := setIn(r[parts[0]], parts[1:], value)
	if err != nil {
		return fmt.Errorf("%w: %q", err, key)
	}
	r[parts[0]] = updated
	return nil
}

// setIn sets parts inside container and returns the container to store
// back in the parent. Arrays may be reallocated when padded.
func setIn(container any, parts []string, value any) (any, error) {
	step, rest := parts[0], parts[1:]

	descend := func(cur any) (any, error) {
		if len(rest) == 0 {
			return value, nil
		}
		return setIn(cur, rest, value)
	}

	switch c := container.(type) {
	case nil:
		child, err := descend(nil)
		if err != nil {
			return nil, err
		}
		return map[string]any{step: child}, nil

	case Record:
		return setIn(map[string]any(c), parts, value)

	case map[string]any:
		if c == nil {
			c = map[string]any{}
		}
		child, err := descend(c[step])
		if err != nil {
			return nil, err
		}
		c[step] = child
		return c, nil

	case []any:
		idx, err := strconv.Atoi(step)
		if err != nil || idx < 0 {
			return nil, ErrPathConflict
		}
		for len(c) <= idx {
			c = append(c, nil)
		}
		child, err := descend(c[idx])
		if err != nil {
			return nil, err
		}
		c[idx] = child
		return c, nil

	default:
		return nil, ErrPathConflict
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[k] = cloneValue(item)
		}
		return m
	case Record:
		return Record(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		s := make([]any, len(t))
		for i, item := range t {
			s[i] = cloneValue(item)
		}
		return s
	default:
		return v
	}
}

var ErrIncorrectField = errors.New("field must be name=value")

// FieldsFromStrings parses "name=value" lines into a Record. A value that is
// valid JSON (numbers, true/false, objects, quoted strings) is decoded as
// JSON; anything else is kept as a plain string.
func FieldsFromStrings(lines []string) (Record, error) {
	fields := make(Record, len(lines))
	for _, line := range lines {
		name, raw, ok := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectField, line)
		}

		raw = strings.TrimSpace(raw)
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		fields[name] = value
	}
	return fields, nil
}
