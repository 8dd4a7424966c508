package config

import "github.com/kyaoi/mdpeek/internal/render"

// Option describes one configuration key, its default and its meaning.
type Option struct {
	Key     string
	Value   any
	Comment string
}

// Options returns the configuration keys with their defaults. It is the
// single source of defaults and of the `mdpeek config` listing.
func Options() []Option {
	return []Option{
		{Key: "style", Value: render.DefaultStyle, Comment: "glamour style: tokyo-night, dark, light, dracula, pink, ascii, notty or auto"},
		{Key: "word_wrap", Value: 0, Comment: "wrap width for rendered markdown; 0 follows the window width"},
		{Key: "watch", Value: true, Comment: "reload the open file when it changes on disk"},
		{Key: "log_file", Value: "", Comment: "write diagnostics to this file; empty disables logging"},
		{Key: "picker.width", Value: 28, Comment: "preferred width of the file picker panel"},
		{Key: "picker.extensions", Value: []string{".md", ".markdown", ".txt"}, Comment: "file extensions listed by the picker"},
		{Key: "render.emoji", Value: false, Comment: "render :emoji: shortcodes"},
		{Key: "render.front_matter", Value: true, Comment: "hide YAML/TOML front matter and show its title in the header"},
		{Key: "export.raw_html", Value: false, Comment: "keep sanitised inline HTML in exported pages"},
	}
}
