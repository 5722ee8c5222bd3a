package dav

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Compile-time checks.
var (
	_ error = (*ProtocolError)(nil)
	_ error = (*MalformedAddressError)(nil)
)

func TestProtocolErrorMessage(t *testing.T) {
	e := NewProtocolError("m", 400, "response phrase")
	assert.Equal(t, "m (400 response phrase)", e.Error())
	assert.Equal(t, "m", e.Message())
	assert.Equal(t, "response phrase", e.ResponsePhrase())
	assert.Equal(t, 400, e.StatusCode())
}

func TestProtocolErrorEmptyPhrase(t *testing.T) {
	e := NewProtocolError("PROPFIND /x failed", http.StatusInternalServerError, "")
	assert.Equal(t, "PROPFIND /x failed (500 )", e.Error())
	assert.Empty(t, e.ResponsePhrase())
}

func TestProtocolErrorWrapping(t *testing.T) {
	orig := NewProtocolError("denied", http.StatusForbidden, "Forbidden")
	wrapped := fmt.Errorf("list /private: %w", orig)

	assert.True(t, errors.Is(wrapped, ErrProtocol))
	assert.False(t, errors.Is(wrapped, ErrMalformedAddress))

	var target *ProtocolError
	assert.True(t, errors.As(wrapped, &target))
	assert.Same(t, orig, target)

	code, ok := StatusCode(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestStatusCodeOnTransportError(t *testing.T) {
	code, ok := StatusCode(errors.New("dial tcp: connection refused"))
	assert.False(t, ok)
	assert.Zero(t, code)
	assert.False(t, errors.Is(errors.New("timeout"), ErrProtocol))
}

func TestMalformedAddressError(t *testing.T) {
	inner := errors.New("bad escape")
	e := &MalformedAddressError{Href: "/%zz", Err: inner}
	assert.Equal(t, `malformed href "/%zz": bad escape`, e.Error())
	assert.True(t, errors.Is(e, ErrMalformedAddress))
	assert.True(t, errors.Is(e, inner))
	assert.False(t, errors.Is(e, ErrProtocol))
}
