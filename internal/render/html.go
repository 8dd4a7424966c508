package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// HTMLOptions configures an HTML renderer.
type HTMLOptions struct {
	Emoji bool
	// RawHTML lets inline HTML through, scrubbed by a UGC policy. When false
	// raw HTML is omitted from the output.
	RawHTML     bool
	FrontMatter bool
}

// HTML renders markdown to HTML with the GFM extension set.
type HTML struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	opts   HTMLOptions
}

// NewHTML builds an HTML renderer.
func NewHTML(opts HTMLOptions) *HTML {
	exts := []goldmark.Extender{extension.GFM}
	if opts.Emoji {
		exts = append(exts, emoji.Emoji)
	}

	var rendererOptions []goldmark.Option
	if opts.RawHTML {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}, rendererOptions...)...)

	h := &HTML{md: md, opts: opts}
	if opts.RawHTML {
		h.policy = ugcPolicy()
	}
	return h
}

func ugcPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Task list items render as disabled checkboxes.
	p.AllowElements("input")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return p
}

// Render converts text to an HTML fragment.
func (h *HTML) Render(text string) ([]byte, error) {
	body := text
	if h.opts.FrontMatter {
		_, body = SplitFrontMatter(text)
	}
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	if h.policy != nil {
		return h.policy.SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { max-width: 64rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.6; }
table { border-collapse: collapse; display: block; overflow-x: auto; }
th, td { border: 1px solid #d0d7de; padding: .3rem .6rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
.empty { text-align: center; color: #6b7280; padding: 5rem 0; }
</style>
</head>
<body>
<article>
{{if .Empty}}<div class="empty"><p>{{.EmptyTitle}}</p></div>{{else}}{{.Body}}{{end}}
</article>
</body>
</html>
`))

// Page renders text as a standalone HTML document. An empty title falls back
// to the front-matter title.
func (h *HTML) Page(title, text string) ([]byte, error) {
	if title == "" {
		title = Title(text)
	}
	if title == "" {
		title = "Markdown"
	}

	var body []byte
	if !IsEmpty(text) {
		var err error
		body, err = h.Render(text)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title      string
		Empty      bool
		EmptyTitle string
		Body       template.HTML
	}{
		Title:      title,
		Empty:      IsEmpty(text),
		EmptyTitle: EmptyTitle,
		Body:       template.HTML(body),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
