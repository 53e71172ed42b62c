// Package serve provides the static file handler for the server
package serve

import (
	"mime"
	"net/http"
	"sync"

	"github.com/pdiomede/BurnIt/fs"
)

var addMimeTypesOnce sync.Once

// addMimeTypes adds some more mime types which are often missing from
// the system tables and which browsers insist on for modules and wasm.
func addMimeTypes() {
	for ext, typ := range map[string]string{
		".wasm": "application/wasm",
		".js":   "text/javascript; charset=utf-8",
		".mjs":  "text/javascript; charset=utf-8",
	} {
		if err := mime.AddExtensionType(ext, typ); err != nil {
			fs.Debugf(nil, "Failed to add mime type %q for %q: %v", typ, ext, err)
		}
	}
}

// Files returns a handler which serves the directory tree rooted at
// root.
//
// Everything is delegated to net/http's file server: path resolution,
// directory listings, index.html, MIME types, ranges, conditional
// requests and not found responses.
func Files(root string) http.Handler {
	addMimeTypesOnce.Do(addMimeTypes)
	fs.Infof(nil, "Serving files from %q", root)
	return http.FileServer(http.Dir(root))
}
