package props

import (
	"fmt"
	"time"
)

// Layouts seen in creationdate and getlastmodified values. RFC 4918 asks
// for RFC 3339 and RFC 1123 respectively, but servers mix them up.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
}

// ParseDate parses a WebDAV date value and returns it in UTC
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
