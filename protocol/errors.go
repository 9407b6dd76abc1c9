package protocol

import (
	"errors"
	"fmt"
)

// Error types for the admin protocol.
// These errors let callers decide how to handle the session, in particular
// whether the underlying connection can still be used.

// ConnectionError wraps underlying I/O errors from socket operations.
//
// Common causes:
//   - Socket could not be opened
//   - Read timeout exceeded
//   - Connection reset mid-command
//
// Connection handling: the connection is already broken, reconnect required
type ConnectionError struct {
	Op  string // Operation that failed (dial, read, write)
	Err error  // Underlying error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns true - connection errors mean the socket is broken
func (e *ConnectionError) ShouldCloseConnection() bool {
	return true
}

// ProtocolError indicates the reply stream violated the line protocol:
// a reply line without the <3 digits><space> prefix, or two consecutive
// end-of-stream signals during a read.
//
// Connection handling: the stream position is unknown, reconnect required
type ProtocolError struct {
	Message string
	Err     error // Underlying error, if any
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return "protocol error: " + e.Message + ": " + e.Err.Error()
	}
	return "protocol error: " + e.Message
}

// Unwrap returns the underlying error for error chain inspection
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ShouldCloseConnection returns true - the reply stream is out of sync
func (e *ProtocolError) ShouldCloseConnection() bool {
	return true
}

// ServerError is a reply whose status code is outside the success whitelist.
// The code and the rest-of-line message are carried verbatim so callers can
// distinguish, e.g., "unknown account" from "name already exists".
//
// Connection handling: the connection is still in sync and can be reused
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

// ShouldCloseConnection returns false - the command failed but the stream is intact
func (e *ServerError) ShouldCloseConnection() bool {
	return false
}

// ValidationError is an input rejected locally before any command is sent,
// e.g. an account name containing disallowed characters.
//
// Connection handling: nothing was sent, the connection is untouched
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

// ShouldCloseConnection returns false - no traffic happened
func (e *ValidationError) ShouldCloseConnection() bool {
	return false
}

// ErrorWithConnectionState is an interface for errors that indicate
// whether the connection should be closed.
// Implemented by all protocol error types.
type ErrorWithConnectionState interface {
	error
	ShouldCloseConnection() bool
}

// ShouldCloseConnection reports whether err requires abandoning the
// connection. Returns false for nil, ServerError and ValidationError,
// true for everything else (unknown errors are treated conservatively).
func ShouldCloseConnection(err error) bool {
	if err == nil {
		return false
	}

	var e ErrorWithConnectionState
	if errors.As(err, &e) {
		return e.ShouldCloseConnection()
	}

	return true
}
