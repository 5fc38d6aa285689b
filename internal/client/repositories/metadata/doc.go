// Package metadata stores small key/value blobs in the local sqlite database.
// The CLI keeps its saved session there so a restart can resume it.
package metadata
