package app

import (
	"context"
	"fmt"
	"io"

	"github.com/kyaoi/mdpeek/internal/config"
	"github.com/kyaoi/mdpeek/internal/document"
	"github.com/kyaoi/mdpeek/internal/render"
)

// Export loads path with the same rules as the viewer and writes it to w as
// a standalone HTML page.
func Export(ctx context.Context, path, title string, cfg config.Config, w io.Writer) error {
	ctrl := document.NewController()
	if err := ctrl.LoadFileSync(ctx, document.NewLocalFile(path)); err != nil {
		return err
	}

	doc := ctrl.Document()
	if title == "" && cfg.FrontMatter {
		title = render.Title(doc.Text)
	}
	if title == "" {
		title = doc.FileName
	}
	html := render.NewHTML(render.HTMLOptions{
		Emoji:       cfg.Emoji,
		RawHTML:     cfg.ExportRawHTML,
		FrontMatter: cfg.FrontMatter,
	})
	page, err := html.Page(title, doc.Text)
	if err != nil {
		return err
	}
	if _, err := w.Write(page); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
