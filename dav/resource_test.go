package dav

import (
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResource(t *testing.T, href string, opts Options) *Resource {
	t.Helper()
	r, err := NewResource(href, opts)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func TestResourceTimestamps(t *testing.T) {
	creation := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	modified := creation.Add(time.Hour)

	r := mustResource(t, "/test/path/", Options{
		Creation: mo.Some(creation),
		Modified: mo.Some(modified),
	})
	assert.Equal(t, mo.Some(creation), r.Creation())
	assert.Equal(t, mo.Some(modified), r.Modified())

	empty := mustResource(t, "/test/path/", Options{})
	assert.True(t, empty.Creation().IsAbsent())
	assert.True(t, empty.Modified().IsAbsent())
}

func TestResourceScalarProps(t *testing.T) {
	r := mustResource(t, "/test/path/", Options{
		ContentType:     mo.Some(DirectoryContentType),
		ContentLength:   mo.Some[int64](3423),
		Etag:            mo.Some(`"abc123"`),
		DisplayName:     mo.Some("My path"),
		ContentLanguage: mo.Some("en_us"),
	})

	assert.Equal(t, mo.Some("httpd/unix-directory"), r.ContentType())
	assert.Equal(t, int64(3423), r.ContentLength())
	assert.Equal(t, mo.Some(`"abc123"`), r.Etag())
	assert.Equal(t, mo.Some("My path"), r.DisplayName())
	assert.Equal(t, mo.Some("en_us"), r.ContentLanguage())
}

func TestResourceContentLengthDefault(t *testing.T) {
	r := mustResource(t, "/test/path/", Options{})
	assert.Equal(t, int64(-1), r.ContentLength())

	zero := mustResource(t, "/Meine%20Anlagen", Options{ContentLength: mo.Some[int64](0)})
	assert.Equal(t, int64(0), zero.ContentLength())
}

func TestResourceIsDirectory(t *testing.T) {
	tests := []struct {
		name        string
		contentType mo.Option[string]
		want        bool
	}{
		{name: "directory sentinel", contentType: mo.Some("httpd/unix-directory"), want: true},
		{name: "absent", contentType: mo.None[string](), want: false},
		{name: "regular file", contentType: mo.Some("text/html"), want: false},
		{name: "case differs", contentType: mo.Some("HTTPD/Unix-Directory"), want: false},
		{name: "empty", contentType: mo.Some(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A trailing slash alone never makes a collection.
			r := mustResource(t, "/test/path/", Options{ContentType: tt.contentType})
			assert.Equal(t, tt.want, r.IsDirectory())
		})
	}
}

func TestResourceTypesKeepOrder(t *testing.T) {
	types := []QName{{Space: "namespace", Local: "tag"}, {Space: "namespace", Local: "othertag"}}
	r := mustResource(t, "/test/path/", Options{ResourceTypes: types})
	assert.Equal(t, types, r.ResourceTypes())

	reports := []QName{{Space: "DAV:", Local: "sync-collection"}, {Space: "DAV:", Local: "expand-property"}}
	r = mustResource(t, "/test/path/", Options{SupportedReports: reports})
	assert.Equal(t, reports, r.SupportedReports())
	assert.Empty(t, r.ResourceTypes())
}

func TestResourceNameAndPath(t *testing.T) {
	tests := []struct {
		href     string
		wantPath string
		wantName string
		wantRaw  string
	}{
		{href: "/test/path/", wantPath: "/test/path/", wantName: "path", wantRaw: "/test/path/"},
		{href: "/test/path/file.html", wantPath: "/test/path/file.html", wantName: "file.html", wantRaw: "/test/path/file.html"},
		{href: "http://example.net/test/path/", wantPath: "/test/path/", wantName: "path", wantRaw: "/test/path/"},
		{href: "https://example.net:8443/dav/a.txt?x=1", wantPath: "/dav/a.txt", wantName: "a.txt", wantRaw: "/dav/a.txt"},
		{href: "http://example.net", wantPath: "/", wantName: "", wantRaw: "/"},
		{href: "/", wantPath: "/", wantName: "", wantRaw: "/"},
		{
			href:     "http://example.net/path/%C3%A4%C3%B6%C3%BC/",
			wantPath: "/path/äöü/",
			wantName: "äöü",
			wantRaw:  "/path/%C3%A4%C3%B6%C3%BC/",
		},
		{href: "/Meine%20Anlagen", wantPath: "/Meine Anlagen", wantName: "Meine Anlagen", wantRaw: "/Meine%20Anlagen"},
		{href: "/path/%c3%a4/", wantPath: "/path/ä/", wantName: "ä", wantRaw: "/path/%c3%a4/"},
		{href: "/a%2Fb/c", wantPath: "/a/b/c", wantName: "c", wantRaw: "/a%2Fb/c"},
		{href: "/a b/", wantPath: "/a b/", wantName: "a b", wantRaw: "/a%20b/"},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			r := mustResource(t, tt.href, Options{})
			assert.Equal(t, tt.wantPath, r.Path())
			assert.Equal(t, tt.wantName, r.Name())
			assert.Equal(t, tt.wantRaw, r.RawPath())
			assert.Equal(t, tt.wantRaw, r.Href().EscapedPath())
			assert.Equal(t, tt.href, r.RawHref())
			assert.Equal(t, tt.wantPath, r.String())
		})
	}
}

func TestResourceHrefIsCopied(t *testing.T) {
	r := mustResource(t, "/test/path/", Options{})
	u := r.Href()
	u.Path = "/elsewhere"
	assert.Equal(t, "/test/path/", r.Path())
	assert.Empty(t, u.Host)
}

func TestResourceMalformedAddress(t *testing.T) {
	for _, href := range []string{"", "   ", "http://[::1", "/bad%zzescape", "http://host/%", "mailto:x", "urn:x:y"} {
		t.Run(href, func(t *testing.T) {
			r, err := NewResource(href, Options{ContentLength: mo.Some[int64](10)})
			assert.Nil(t, r)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedAddress))

			var mae *MalformedAddressError
			require.ErrorAs(t, err, &mae)
			assert.Equal(t, href, mae.Href)
		})
	}
}

func TestResourceCustomProps(t *testing.T) {
	name := QName{Space: "http://mynamespace", Local: "property"}
	r := mustResource(t, "/test/path/file.html", Options{
		ContentLength: mo.Some[int64](6587),
		CustomProps:   map[QName]string{name: "custom"},
	})

	assert.NotNil(t, r.CustomProps())
	assert.Equal(t, map[string]string{"property": "custom"}, r.CustomProps())
	assert.Equal(t, map[QName]string{name: "custom"}, r.CustomPropsNS())

	none := mustResource(t, "/test/path/", Options{})
	assert.NotNil(t, none.CustomProps())
	assert.Empty(t, none.CustomProps())
	assert.Empty(t, none.CustomPropsNS())
}

func TestResourceCustomPropsCollision(t *testing.T) {
	props := map[QName]string{
		{Space: "http://b.example", Local: "color"}: "blue",
		{Space: "http://a.example", Local: "color"}: "amber",
		{Space: "http://a.example", Local: "size"}:  "large",
	}
	// Map iteration order is random; the result must not be.
	for i := 0; i < 20; i++ {
		r := mustResource(t, "/x", Options{CustomProps: props})
		assert.Equal(t, map[string]string{"color": "blue", "size": "large"}, r.CustomProps())
		assert.Equal(t, props, r.CustomPropsNS())
	}
}

func TestResourceIsImmutable(t *testing.T) {
	types := []QName{{Space: "DAV:", Local: "collection"}}
	props := map[QName]string{{Space: "urn:x", Local: "p"}: "v"}
	r := mustResource(t, "/c/", Options{ResourceTypes: types, CustomProps: props})

	types[0].Local = "changed"
	props[QName{Space: "urn:x", Local: "q"}] = "w"
	r.ResourceTypes()[0].Local = "changed"
	r.CustomProps()["p"] = "changed"
	r.CustomPropsNS()[QName{Space: "urn:x", Local: "p"}] = "changed"

	assert.Equal(t, []QName{{Space: "DAV:", Local: "collection"}}, r.ResourceTypes())
	assert.Equal(t, map[string]string{"p": "v"}, r.CustomProps())
	assert.Equal(t, map[QName]string{{Space: "urn:x", Local: "p"}: "v"}, r.CustomPropsNS())
}

func TestResourceRoundTrip(t *testing.T) {
	original := mustResource(t, "http://example.net/path/%C3%A4%C3%B6%C3%BC/", Options{
		Creation:         mo.Some(time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)),
		ContentType:      mo.Some(DirectoryContentType),
		ContentLength:    mo.Some[int64](3423),
		DisplayName:      mo.Some("Umlauts"),
		ContentLanguage:  mo.Some("de"),
		ResourceTypes:    []QName{{Space: "DAV:", Local: "collection"}},
		SupportedReports: []QName{{Space: "DAV:", Local: "sync-collection"}},
		CustomProps:      map[QName]string{{Space: "urn:x", Local: "p"}: "v"},
	})

	rebuilt := mustResource(t, original.RawHref(), original.Options())
	assert.Equal(t, original, rebuilt)
	assert.Equal(t, original.RawPath(), rebuilt.RawPath())
	assert.Equal(t, original.Path(), rebuilt.Path())

	unknown := mustResource(t, "/f", Options{})
	assert.True(t, unknown.Options().ContentLength.IsAbsent())
	assert.Equal(t, int64(-1), mustResource(t, "/f", unknown.Options()).ContentLength())
}

func TestQName(t *testing.T) {
	n := QName{Space: "DAV:", Local: "getetag"}
	assert.Equal(t, "{DAV:}getetag", n.String())
	assert.Equal(t, n, ParseQName(n.String()))
	assert.Equal(t, "plain", QName{Local: "plain"}.String())
	assert.Equal(t, QName{Local: "plain"}, ParseQName("plain"))
	assert.Equal(t, QName{Local: "{broken"}, ParseQName("{broken"))
}
