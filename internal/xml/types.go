package xml

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/cyp0633/libwebdav/dav"
)

// Common XML tag names used in WebDAV
const (
	TagPropfind     = "propfind"
	TagProp         = "prop"
	TagAllprop      = "allprop"
	TagMultistatus  = "multistatus"
	TagResponse     = "response"
	TagHref         = "href"
	TagPropstat     = "propstat"
	TagStatus       = "status"
	TagError        = "error"
	TagResourcetype = "resourcetype"
	TagCollection   = "collection"
)

// Property represents a generic XML property
type Property struct {
	Name        string
	Namespace   string
	TextContent string
	Children    []Property
	Attributes  map[string]string
}

// FromElement populates a Property from an etree.Element. Namespace holds
// the resolved namespace URI, not the prefix used in the document.
func (p *Property) FromElement(elem *etree.Element) {
	p.Name = elem.Tag
	p.Namespace = elem.NamespaceURI()
	p.TextContent = strings.TrimSpace(elem.Text())
	p.Children = nil
	p.Attributes = make(map[string]string)

	for _, attr := range elem.Attr {
		// Namespace declarations are not attributes of the property.
		if attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns") {
			continue
		}
		p.Attributes[attr.Key] = attr.Value
	}

	for _, child := range elem.ChildElements() {
		childProp := Property{}
		childProp.FromElement(child)
		p.Children = append(p.Children, childProp)
	}
}

// QName returns the qualified name of the property
func (p *Property) QName() dav.QName {
	return dav.QName{Space: p.Namespace, Local: p.Name}
}

// Is reports whether the property has the given namespace and name
func (p *Property) Is(namespace, name string) bool {
	return p.Namespace == namespace && p.Name == name
}

// GetAttr returns the value of an attribute, or empty string if not found
func (p *Property) GetAttr(name string) string {
	if p.Attributes == nil {
		return ""
	}
	return p.Attributes[name]
}

// Error represents a WebDAV precondition/postcondition error element
type Error struct {
	Namespace string
	Tag       string
	Message   string
}
