package dashboard

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed static/*
var embeddedStatic embed.FS

// StaticAssets returns the embedded stylesheet and event script rooted at ".".
func StaticAssets() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(fmt.Errorf("dashboard: failed to prepare embedded static assets: %w", err))
	}
	return sub
}

// StaticFS exposes StaticAssets as an http.FileSystem.
func StaticFS() http.FileSystem {
	return http.FS(StaticAssets())
}

// StaticHandler serves the embedded assets below prefix.
func StaticHandler(prefix string) http.Handler {
	return http.StripPrefix(ensureTrailingSlash(prefix), http.FileServer(StaticFS()))
}
