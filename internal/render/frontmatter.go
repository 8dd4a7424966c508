package render

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the metadata the viewer shows from a document header.
type FrontMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// SplitFrontMatter separates a YAML or TOML header from the markdown body.
// Text without a header, or with one that does not parse, is returned as is.
func SplitFrontMatter(text string) (FrontMatter, string) {
	if !strings.HasPrefix(text, "---\n") && !strings.HasPrefix(text, "+++\n") &&
		!strings.HasPrefix(text, "---\r\n") && !strings.HasPrefix(text, "+++\r\n") {
		return FrontMatter{}, text
	}

	var meta FrontMatter
	body, err := frontmatter.Parse(strings.NewReader(text), &meta)
	if err != nil {
		return FrontMatter{}, text
	}
	return meta, string(body)
}

// Title returns the front-matter title of text, or an empty string.
func Title(text string) string {
	meta, _ := SplitFrontMatter(text)
	return strings.TrimSpace(meta.Title)
}
