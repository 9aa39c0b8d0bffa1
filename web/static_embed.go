// ABOUTME: Embeds web/static/ CSS and JS files for serving under /static/.
// ABOUTME: Uses explicit subdirectory globs because //go:embed static/* does not recurse.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static/css/*.css static/js/*.js
var StaticFS embed.FS

func staticRoot() fs.FS {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
