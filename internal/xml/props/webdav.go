package props

import (
	"errors"
	"strconv"

	"github.com/cyp0633/libwebdav/dav"
	"github.com/cyp0633/libwebdav/internal/xml"
	"github.com/samber/mo"
)

var errNegativeLength = errors.New("negative content length")

// optionalText treats an empty element the same as a missing one
func optionalText(p xml.Property) mo.Option[string] {
	return mo.EmptyableToOption(p.TextContent)
}

func decodeCreationDate(p xml.Property, d *decoded) error {
	if p.TextContent == "" {
		return nil
	}
	t, err := ParseDate(p.TextContent)
	if err != nil {
		return err
	}
	d.opts.Creation = mo.Some(t)
	return nil
}

func decodeLastModified(p xml.Property, d *decoded) error {
	if p.TextContent == "" {
		return nil
	}
	t, err := ParseDate(p.TextContent)
	if err != nil {
		return err
	}
	d.opts.Modified = mo.Some(t)
	return nil
}

func decodeContentType(p xml.Property, d *decoded) error {
	d.opts.ContentType = optionalText(p)
	return nil
}

func decodeContentLength(p xml.Property, d *decoded) error {
	if p.TextContent == "" {
		return nil
	}
	n, err := strconv.ParseInt(p.TextContent, 10, 64)
	if err != nil {
		return err
	}
	if n < 0 {
		return errNegativeLength
	}
	d.opts.ContentLength = mo.Some(n)
	return nil
}

func decodeEtag(p xml.Property, d *decoded) error {
	d.opts.Etag = optionalText(p)
	return nil
}

func decodeDisplayName(p xml.Property, d *decoded) error {
	d.opts.DisplayName = optionalText(p)
	return nil
}

func decodeContentLanguage(p xml.Property, d *decoded) error {
	d.opts.ContentLanguage = optionalText(p)
	return nil
}

// <D:resourcetype><D:collection/><C:calendar/></D:resourcetype>
func decodeResourcetype(p xml.Property, d *decoded) error {
	types := make([]dav.QName, 0, len(p.Children))
	for _, c := range p.Children {
		types = append(types, c.QName())
		if c.Is(xml.DAV, xml.TagCollection) {
			d.collection = true
		}
	}
	d.opts.ResourceTypes = types
	return nil
}

// <D:supported-report-set>
//
//	<D:supported-report><D:report><D:sync-collection/></D:report></D:supported-report>
//
// </D:supported-report-set>
func decodeSupportedReportSet(p xml.Property, d *decoded) error {
	var reports []dav.QName
	for _, sr := range p.Children {
		if !sr.Is(xml.DAV, "supported-report") {
			continue
		}
		for _, report := range sr.Children {
			if !report.Is(xml.DAV, "report") {
				continue
			}
			for _, r := range report.Children {
				reports = append(reports, r.QName())
			}
		}
	}
	d.opts.SupportedReports = reports
	return nil
}
