package xml

import "github.com/beevik/etree"

// Namespace definitions for WebDAV
const (
	// DAV is the WebDAV namespace
	DAV = "DAV:"
	// DAVPrefix is the prefix used for DAV: in documents we build
	DAVPrefix = "D"
)

// AddNamespaces declares the DAV namespace on the document root.
func AddNamespaces(doc *etree.Document) {
	root := doc.Root()
	if root == nil {
		return
	}
	root.CreateAttr("xmlns:"+DAVPrefix, DAV)
}
