package dav

import (
	"cmp"
	"strings"
)

// QName is a namespace-qualified XML name.
type QName struct {
	Space string
	Local string
}

// String renders the name in Clark notation: {space}local.
func (n QName) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// ParseQName is the inverse of QName.String.
func ParseQName(s string) QName {
	if strings.HasPrefix(s, "{") {
		if end := strings.Index(s, "}"); end > 0 {
			return QName{Space: s[1:end], Local: s[end+1:]}
		}
	}
	return QName{Local: s}
}

func compareQName(a, b QName) int {
	if c := cmp.Compare(a.Space, b.Space); c != 0 {
		return c
	}
	return cmp.Compare(a.Local, b.Local)
}
