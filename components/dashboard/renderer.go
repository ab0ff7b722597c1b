package dashboard

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html templates/pages/*.html
var embeddedTemplates embed.FS

// Renderer describes the template renderer contract needed by the controller.
// Names are template paths below templates/ without the extension.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// NewTemplateRenderer creates a go-template renderer over the embedded layout
// and page partials. Nothing is read from the working directory.
func NewTemplateRenderer() (Renderer, error) {
	return template.NewRenderer(
		template.WithFS(TemplatesFS()),
		template.WithExtension(".html"),
	)
}

// TemplatesFS exposes the embedded templates rooted at ".".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// the directory is embedded at build time
		panic(fmt.Errorf("dashboard: failed to prepare embedded templates: %w", err))
	}
	return sub
}
