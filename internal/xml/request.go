package xml

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/cyp0633/libwebdav/dav"
)

// BuildPropfind builds a PROPFIND body. With no names it asks for allprop;
// otherwise each name becomes an empty element under prop. Namespaces other
// than DAV: get generated prefixes declared on the root.
func BuildPropfind(names ...dav.QName) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(TagPropfind)
	root.Space = DAVPrefix
	AddNamespaces(doc)

	if len(names) == 0 {
		allprop := root.CreateElement(TagAllprop)
		allprop.Space = DAVPrefix
		return doc
	}

	prop := root.CreateElement(TagProp)
	prop.Space = DAVPrefix

	prefixes := map[string]string{DAV: DAVPrefix}
	for _, name := range names {
		prefix, ok := prefixes[name.Space]
		if !ok && name.Space != "" {
			prefix = fmt.Sprintf("ns%d", len(prefixes))
			prefixes[name.Space] = prefix
			root.CreateAttr("xmlns:"+prefix, name.Space)
		}
		elem := prop.CreateElement(name.Local)
		elem.Space = prefix
	}
	return doc
}
