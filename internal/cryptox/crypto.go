// Package cryptox holds the password digest used to match stored user records.
//
// Records in the document store carry the password as the lowercase hex of an
// unsalted, single-round MD5. The format is fixed by existing data, so it is
// kept here as-is; treat it as a weak-auth boundary and never reuse it for
// anything that needs real password hashing.
package cryptox

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
)

// Digest returns the lowercase hex MD5 of password.
func Digest(password []byte) string {
	sum := md5.Sum(password)
	return hex.EncodeToString(sum[:])
}

// DigestEqual reports whether two hex digests are equal, in constant time.
func DigestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
