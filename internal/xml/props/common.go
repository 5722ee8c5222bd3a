// Package props decodes the properties of a single multistatus response
// into dav.Options.
package props

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cyp0633/libwebdav/dav"
	"github.com/cyp0633/libwebdav/internal/xml"
	"github.com/samber/mo"
)

// decoder applies one DAV: live property to the options being built
type decoder func(p xml.Property, d *decoded) error

type decoded struct {
	opts       dav.Options
	collection bool
}

// liveProps maps DAV: live property names to their decoders. Anything
// outside this table is reported as a custom property.
var liveProps = map[string]decoder{
	"creationdate":         decodeCreationDate,
	"getlastmodified":      decodeLastModified,
	"getcontenttype":       decodeContentType,
	"getcontentlength":     decodeContentLength,
	"getetag":              decodeEtag,
	"displayname":          decodeDisplayName,
	"resourcetype":         decodeResourcetype,
	"getcontentlanguage":   decodeContentLanguage,
	"supported-report-set": decodeSupportedReportSet,
}

// Decode flattens the successful propstats of resp into dav.Options.
// Properties that fail to decode are left absent; their errors are joined
// into the returned error, which never invalidates the options.
func Decode(resp xml.Response) (dav.Options, error) {
	d := decoded{opts: dav.Options{CustomProps: make(map[dav.QName]string)}}
	var errs []error

	for _, ps := range resp.PropStats {
		if !ps.OK() {
			continue
		}
		for _, p := range ps.Props {
			dec, live := liveProps[p.Name]
			if !live || p.Namespace != xml.DAV {
				d.opts.CustomProps[p.QName()] = textContent(p)
				continue
			}
			if err := dec(p, &d); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p.QName(), err))
			}
		}
	}

	// resourcetype is authoritative for collections, whatever
	// getcontenttype said.
	if d.collection {
		d.opts.ContentType = mo.Some(dav.DirectoryContentType)
	}
	return d.opts, errors.Join(errs...)
}

// textContent concatenates the text of a property and its descendants
func textContent(p xml.Property) string {
	if len(p.Children) == 0 {
		return p.TextContent
	}
	var sb strings.Builder
	sb.WriteString(p.TextContent)
	for _, c := range p.Children {
		sb.WriteString(textContent(c))
	}
	return strings.TrimSpace(sb.String())
}
