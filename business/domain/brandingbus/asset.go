package brandingbus

import (
	"io"
	"net/url"
)

type assetKind int

const (
	kindUnchanged assetKind = iota
	kindURI
	kindContent
)

// Content is binary asset data owned by a branding update.
type Content struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// Asset is the value of an asset slot: unchanged, a URI reference, or owned
// binary content. Exactly one case holds. On a retrieved configuration an
// unchanged slot means nothing has been configured.
type Asset struct {
	kind    assetKind
	uri     *url.URL
	content Content
}

// Unchanged returns an asset that leaves the stored value as it is.
func Unchanged() Asset {
	return Asset{}
}

// URIReference returns an asset pointing at a remote address. A nil URI
// yields Unchanged.
func URIReference(u *url.URL) Asset {
	if u == nil {
		return Unchanged()
	}

	return Asset{kind: kindURI, uri: u}
}

// OwnedContent returns an asset carrying uploaded binary content.
func OwnedContent(c Content) Asset {
	return Asset{kind: kindContent, content: c}
}

// IsUnchanged reports whether the slot carries no new value.
func (a Asset) IsUnchanged() bool {
	return a.kind == kindUnchanged
}

// URI returns the referenced address when the asset is a URI reference.
func (a Asset) URI() (*url.URL, bool) {
	if a.kind != kindURI {
		return nil, false
	}

	return a.uri, true
}

// Content returns the binary content when the asset owns an upload.
func (a Asset) Content() (Content, bool) {
	if a.kind != kindContent {
		return Content{}, false
	}

	return a.content, true
}

// String returns the URI for references and a marker for the other cases.
func (a Asset) String() string {
	switch a.kind {
	case kindURI:
		return a.uri.String()
	case kindContent:
		return "content:" + a.content.Name
	default:
		return ""
	}
}
