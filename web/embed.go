// web/embed.go

// Package web embeds the dashboard's static single-page application.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Assets returns the files under static/, rooted so that "index.html" is at the top.
func Assets() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		// static/ is embedded at build time; a missing directory is a build defect.
		panic(err)
	}
	return sub
}
