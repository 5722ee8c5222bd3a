package xml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// MultistatusResponse represents a multistatus response
type MultistatusResponse struct {
	Responses []Response
}

// Response represents a single response within a multistatus
type Response struct {
	Href      string
	PropStats []PropStat
	Error     *Error
	Status    string
}

// PropStat represents property status in a response
type PropStat struct {
	Props  []Property
	Status string
}

// StatusCode returns the numeric code of the propstat status line
func (p PropStat) StatusCode() int {
	return ParseStatusCode(p.Status)
}

// OK reports whether the propstat carries properties the server returned
func (p PropStat) OK() bool {
	code := p.StatusCode()
	return code >= 200 && code < 300
}

// ParseStatusCode extracts the code from a status line such as
// "HTTP/1.1 404 Not Found". It returns 0 when the line is malformed.
func ParseStatusCode(status string) int {
	fields := strings.Fields(status)
	if len(fields) < 2 {
		return 0
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return code
}

// ReadMultistatus parses a multistatus body
func ReadMultistatus(r io.Reader) (*MultistatusResponse, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to read XML: %w", err)
	}
	var ms MultistatusResponse
	if err := ms.Parse(doc); err != nil {
		return nil, err
	}
	return &ms, nil
}

// Parse parses a multistatus response from an XML document
func (m *MultistatusResponse) Parse(doc *etree.Document) error {
	if doc == nil || doc.Root() == nil {
		return fmt.Errorf("empty document")
	}

	root := doc.Root()
	if root.Tag != TagMultistatus {
		return fmt.Errorf("invalid root tag: %s", root.Tag)
	}

	m.Responses = nil // Reset responses

	for _, respElem := range root.SelectElements(TagResponse) {
		resp := Response{}

		if hrefElem := respElem.SelectElement(TagHref); hrefElem != nil {
			resp.Href = strings.TrimSpace(hrefElem.Text())
		}

		// Response-level status, used when the whole resource failed
		if statusElem := respElem.SelectElement(TagStatus); statusElem != nil {
			resp.Status = strings.TrimSpace(statusElem.Text())
		}

		if errorElem := respElem.SelectElement(TagError); errorElem != nil {
			if child := errorElem.ChildElements(); len(child) > 0 {
				resp.Error = &Error{
					Tag:       child[0].Tag,
					Namespace: child[0].NamespaceURI(),
					Message:   strings.TrimSpace(child[0].Text()),
				}
			}
		}

		for _, propstatElem := range respElem.SelectElements(TagPropstat) {
			propstat := PropStat{}

			if propElem := propstatElem.SelectElement(TagProp); propElem != nil {
				for _, prop := range propElem.ChildElements() {
					property := Property{}
					property.FromElement(prop)
					propstat.Props = append(propstat.Props, property)
				}
			}

			if statusElem := propstatElem.SelectElement(TagStatus); statusElem != nil {
				propstat.Status = strings.TrimSpace(statusElem.Text())
			}

			resp.PropStats = append(resp.PropStats, propstat)
		}

		m.Responses = append(m.Responses, resp)
	}

	return nil
}
