package web

import (
	"embed"
	"io/fs"
	"net/http"
)

// assets holds the page templates and the stylesheet.
//
//go:embed templates static
var assets embed.FS

// subFS returns the assets below dir as an http.FileSystem rooted at dir.
func subFS(dir string) http.FileSystem {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		panic("embedded " + dir + " directory missing: " + err.Error())
	}

	return http.FS(sub)
}
