// Package dav models resources returned by a WebDAV server.
//
// A Resource is built once from the href and decoded properties of a single
// PROPFIND response entry and never changes afterwards. Server-reported
// failures are surfaced as *ProtocolError, distinct from transport errors.
package dav
