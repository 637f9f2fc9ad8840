package web

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"visitavigliano/internal/page"
)

// Page template names.
const (
	PageHome   = "index.html"
	PageEvents = "eventi.html"
)

// embeddedPages holds the default page markup.
//
//go:embed pages/*.html
var embeddedPages embed.FS

// Pages opens page templates, either the embedded ones or those in an
// override directory.
type Pages struct {
	fsys fs.FS
}

// NewPages returns Pages reading from dir, or the embedded templates when
// dir is empty. Override files are read on every open so edits show up
// without a restart.
func NewPages(dir string) (*Pages, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("pages dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("pages dir: %s is not a directory", dir)
		}
		return &Pages{fsys: os.DirFS(dir)}, nil
	}
	sub, err := fs.Sub(embeddedPages, "pages")
	if err != nil {
		return nil, err
	}
	return &Pages{fsys: sub}, nil
}

// Open parses the named template into a fresh document.
func (p *Pages) Open(name string) (*page.Document, error) {
	f, err := p.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open page %s: %w", name, err)
	}
	defer f.Close()
	return page.Parse(f)
}
