package dav

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAddress matches every *MalformedAddressError.
	ErrMalformedAddress = errors.New("malformed resource address")
	// ErrProtocol matches every *ProtocolError.
	ErrProtocol = errors.New("webdav protocol error")

	errEmptyHref  = errors.New("empty href")
	errOpaqueHref = errors.New("href has no path")
)

// MalformedAddressError is returned by NewResource when the href is neither
// a path nor a URI.
type MalformedAddressError struct {
	Href string
	Err  error
}

func (e *MalformedAddressError) Error() string {
	return fmt.Sprintf("malformed href %q: %v", e.Href, e.Err)
}

func (e *MalformedAddressError) Unwrap() error { return e.Err }

func (e *MalformedAddressError) Is(target error) bool { return target == ErrMalformedAddress }

// ProtocolError reports a response the server completed but which signals
// failure, such as a 403 to a PROPFIND. Network failures never take this
// form.
type ProtocolError struct {
	msg            string
	statusCode     int
	responsePhrase string
}

// NewProtocolError builds a ProtocolError from a diagnostic message and the
// status line the server sent.
func NewProtocolError(msg string, statusCode int, responsePhrase string) *ProtocolError {
	return &ProtocolError{msg: msg, statusCode: statusCode, responsePhrase: responsePhrase}
}

// Error returns "<message> (<status> <phrase>)".
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s (%d %s)", e.msg, e.statusCode, e.responsePhrase)
}

// Message returns the diagnostic message without the status line.
func (e *ProtocolError) Message() string { return e.msg }

// ResponsePhrase returns the reason phrase, or "" if the server sent none.
func (e *ProtocolError) ResponsePhrase() string { return e.responsePhrase }

func (e *ProtocolError) StatusCode() int { return e.statusCode }

func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }

// StatusCode extracts the status code of a ProtocolError anywhere in err's
// chain.
func StatusCode(err error) (int, bool) {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.StatusCode(), true
	}
	return 0, false
}
