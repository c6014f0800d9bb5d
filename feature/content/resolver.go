package content

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"strings"
)

// IndexFile is appended to request paths that end in a slash.
const IndexFile = "index.html"

// Resolution is the outcome of searching the roots for one request path.
// Exactly one of Content or Err is meaningful; Path is always the last
// location that was tried.
type Resolution struct {
	Path    string
	Content []byte
	Err     error
}

// NotFound reports whether the lookup failed because nothing exists at the path.
func (r Resolution) NotFound() bool {
	return r.Err != nil && errors.Is(r.Err, fs.ErrNotExist)
}

// LookupPath applies the directory to index rewrite.
func LookupPath(urlPath string) string {
	if strings.HasSuffix(urlPath, "/") {
		return urlPath + IndexFile
	}
	return urlPath
}

// DecodePath percent-decodes a request path. A malformed escape leaves the
// path as sent by the client.
func DecodePath(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Resolve tries each root in order and returns the first successful read.
// Roots are tried sequentially so earlier roots overlay later ones.
func Resolve(ctx context.Context, roots []Root, urlPath string) Resolution {
	lookup := LookupPath(urlPath)

	res := Resolution{Err: ErrNoRoots}
	for _, root := range roots {
		location := root.Locate(lookup)
		data, err := root.Read(ctx, location)
		if err == nil {
			return Resolution{Path: location, Content: data}
		}
		res = Resolution{Path: location, Err: err}
	}
	return res
}
