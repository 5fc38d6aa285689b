// Package client contains the client-side building blocks for talking to
// the remote user collection.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Store interface) for the four
//     calls the session service needs: FindUser, CreateUser, UpdateUser and Ping.
//  2. A concrete REST implementation (see HTTPStore). Each request gets its
//     own timeout and an X-Request-ID header, and any non-2xx response is
//     turned into a *NetworkError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the CLI's sqlite file and applies embedded goose migrations.
//
// # Error Handling
//
// Every failed store call returns a *NetworkError. Its cause can be matched
// with errors.Is against ErrUnavailable (transport failures and 5xx),
// ErrUnauthorized (401/403), ErrUnexpectedStatus (any other non-2xx) and
// ErrMalformedResponse (a body that does not decode).
//
// # Security
//
// The access key is sent as a URL query parameter, the way the store expects
// it. Anything that logs full request URLs will leak it; HTTPStore itself
// only logs the path.
package client
