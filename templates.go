package contentkit

import (
	"io/fs"

	"github.com/goliatone/go-contentkit/pkg/layout"
	"github.com/goliatone/go-contentkit/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in component templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// LayoutTemplates exposes the embedded page layout templates.
func LayoutTemplates() fs.FS {
	return layout.TemplatesFS()
}

// AssetsFS exposes the component stylesheet bundle.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(contentkit.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
