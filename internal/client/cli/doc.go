// Package cli provides the interactive docsession command-line client.
//
// It wires configuration, the local state database, the document-store
// transport and the session service into a small REPL. A saved session is
// resumed at startup, and a background watcher pings the store to show
// whether it is reachable.
//
// Commands:
//   - signup / login / logout
//   - write k=v ...   set fields on the current user
//   - show            print the current user record
//   - find <name>     look a user up without logging in
//   - status
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
