package common

// RequestIDHeaderName is the HTTP header carrying the per-request
// correlation id on outbound store calls.
const RequestIDHeaderName = "X-Request-ID"

// APIKeyParam is the query parameter the document store reads the access key from.
const APIKeyParam = "apiKey"

// SessionMetadataKey is the local metadata key holding the saved session state.
const SessionMetadataKey = "session"
