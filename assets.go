package auththeme

import (
	"io/fs"

	"github.com/goliatone/go-auththeme/pkg/fields"
	"github.com/goliatone/go-auththeme/pkg/pages"
	"github.com/goliatone/go-auththeme/pkg/styles"
)

// AssetsFS exposes the theme stylesheets so Go applications can serve them
// under the assets prefix.
//
// Typical mount:
//
//	mux.Handle("/resources/auththeme/",
//	  http.StripPrefix("/resources/auththeme",
//	    http.FileServerFS(auththeme.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return styles.AssetsFS()
}

// PageTemplates exposes the built-in page templates, a starting point for a
// templates directory passed to router.WithTemplatesDir.
func PageTemplates() fs.FS {
	return pages.TemplatesFS()
}

// FieldTemplates exposes the profile form-field templates.
func FieldTemplates() fs.FS {
	return fields.TemplatesFS()
}
