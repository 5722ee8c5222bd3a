package dav

import (
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/samber/mo"
)

// DirectoryContentType is the content type servers report for collections.
const DirectoryContentType = "httpd/unix-directory"

// Options carries the decoded properties of a resource. The zero value is
// valid: every property is absent and the content length is unknown.
type Options struct {
	Creation         mo.Option[time.Time]
	Modified         mo.Option[time.Time]
	ContentType      mo.Option[string]
	ContentLength    mo.Option[int64]
	Etag             mo.Option[string]
	DisplayName      mo.Option[string]
	ResourceTypes    []QName
	ContentLanguage  mo.Option[string]
	SupportedReports []QName
	CustomProps      map[QName]string
}

// Resource is a single file or collection as described by a WebDAV server.
// A Resource is immutable once built and may be shared between goroutines.
type Resource struct {
	rawHref string
	href    *url.URL

	creation         mo.Option[time.Time]
	modified         mo.Option[time.Time]
	contentType      mo.Option[string]
	contentLength    int64
	etag             mo.Option[string]
	displayName      mo.Option[string]
	resourceTypes    []QName
	contentLanguage  mo.Option[string]
	supportedReports []QName

	customProps   map[string]string
	customPropsNS map[QName]string
}

// NewResource builds a Resource from an href and its decoded properties.
// The href may be a server-relative path or an absolute URI; only its path
// is kept. An href that cannot be parsed yields a *MalformedAddressError
// and a nil Resource.
func NewResource(href string, opts Options) (*Resource, error) {
	if strings.TrimSpace(href) == "" {
		return nil, &MalformedAddressError{Href: href, Err: errEmptyHref}
	}
	u, err := url.Parse(href)
	if err != nil {
		return nil, &MalformedAddressError{Href: href, Err: err}
	}
	if u.Opaque != "" {
		// mailto:x, urn:x:y
		return nil, &MalformedAddressError{Href: href, Err: errOpaqueHref}
	}
	// Keep the path only; scheme, host, query and fragment do not identify
	// the resource on this server.
	u = &url.URL{Path: u.Path, RawPath: u.RawPath}
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}

	r := &Resource{
		rawHref:          href,
		href:             u,
		creation:         opts.Creation,
		modified:         opts.Modified,
		contentType:      opts.ContentType,
		contentLength:    opts.ContentLength.OrElse(-1),
		etag:             opts.Etag,
		displayName:      opts.DisplayName,
		resourceTypes:    slices.Clone(opts.ResourceTypes),
		contentLanguage:  opts.ContentLanguage,
		supportedReports: slices.Clone(opts.SupportedReports),
		customProps:      make(map[string]string, len(opts.CustomProps)),
		customPropsNS:    make(map[QName]string, len(opts.CustomProps)),
	}

	// The local-name view is filled in (Space, Local) order, so when two
	// namespaces share a local name the namespace sorting last wins.
	keys := slices.SortedFunc(maps.Keys(opts.CustomProps), compareQName)
	for _, k := range keys {
		v := opts.CustomProps[k]
		r.customPropsNS[k] = v
		r.customProps[k.Local] = v
	}
	return r, nil
}

// Href returns a copy of the parsed href, reduced to its path.
func (r *Resource) Href() *url.URL {
	u := *r.href
	return &u
}

// RawHref returns the href exactly as it was passed to NewResource.
func (r *Resource) RawHref() string { return r.rawHref }

// RawPath returns the percent-encoded path as received from the server.
func (r *Resource) RawPath() string { return r.href.EscapedPath() }

// Path returns the percent-decoded path.
func (r *Resource) Path() string { return r.href.Path }

// Name returns the last segment of the decoded path, ignoring a trailing
// slash. The root collection has an empty name.
func (r *Resource) Name() string {
	p := strings.TrimSuffix(r.href.Path, "/")
	return p[strings.LastIndex(p, "/")+1:]
}

// IsDirectory reports whether the server described the resource as a
// collection.
func (r *Resource) IsDirectory() bool {
	ct, ok := r.contentType.Get()
	return ok && ct == DirectoryContentType
}

func (r *Resource) Creation() mo.Option[time.Time] { return r.creation }

func (r *Resource) Modified() mo.Option[time.Time] { return r.modified }

func (r *Resource) ContentType() mo.Option[string] { return r.contentType }

// ContentLength returns the size in bytes, or -1 when the server did not
// report one.
func (r *Resource) ContentLength() int64 { return r.contentLength }

func (r *Resource) Etag() mo.Option[string] { return r.etag }

func (r *Resource) DisplayName() mo.Option[string] { return r.displayName }

// ResourceTypes returns the resourcetype children in server order.
func (r *Resource) ResourceTypes() []QName { return slices.Clone(r.resourceTypes) }

func (r *Resource) ContentLanguage() mo.Option[string] { return r.contentLanguage }

// SupportedReports returns the reports advertised in supported-report-set.
func (r *Resource) SupportedReports() []QName { return slices.Clone(r.supportedReports) }

// CustomProps returns custom properties keyed by local name only.
func (r *Resource) CustomProps() map[string]string { return maps.Clone(r.customProps) }

// CustomPropsNS returns custom properties keyed by qualified name.
func (r *Resource) CustomPropsNS() map[QName]string { return maps.Clone(r.customPropsNS) }

// Options returns the properties the resource was built from, so that
// NewResource(r.RawHref(), r.Options()) yields an equal resource.
func (r *Resource) Options() Options {
	length := mo.None[int64]()
	if r.contentLength >= 0 {
		length = mo.Some(r.contentLength)
	}
	return Options{
		Creation:         r.creation,
		Modified:         r.modified,
		ContentType:      r.contentType,
		ContentLength:    length,
		Etag:             r.etag,
		DisplayName:      r.displayName,
		ResourceTypes:    slices.Clone(r.resourceTypes),
		ContentLanguage:  r.contentLanguage,
		SupportedReports: slices.Clone(r.supportedReports),
		CustomProps:      maps.Clone(r.customPropsNS),
	}
}

func (r *Resource) String() string { return r.href.Path }
