package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kyaoi/mdpeek/internal/render"
)

// Config is the resolved configuration.
type Config struct {
	Style            string
	WordWrap         int
	Watch            bool
	LogFile          string
	PickerWidth      int
	PickerExtensions []string
	Emoji            bool
	FrontMatter      bool
	ExportRawHTML    bool
}

func applyDefaults(v *viper.Viper) {
	for _, o := range Options() {
		v.SetDefault(o.Key, o.Value)
	}
}

// Load resolves configuration with precedence defaults < file < env. Flags
// bound to v by the caller take precedence over all of them.
func Load(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mdpeek"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mdpeek"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("mdpeek")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// MDPEEK_PICKER_EXTENSIONS=".md,.txt"
	if s := strings.TrimSpace(os.Getenv("MDPEEK_PICKER_EXTENSIONS")); s != "" {
		v.Set("picker.extensions", splitList(s))
	}
	return nil
}

// FromViper reads the resolved values and validates them.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Style:            strings.TrimSpace(v.GetString("style")),
		WordWrap:         v.GetInt("word_wrap"),
		Watch:            v.GetBool("watch"),
		LogFile:          strings.TrimSpace(v.GetString("log_file")),
		PickerWidth:      v.GetInt("picker.width"),
		PickerExtensions: v.GetStringSlice("picker.extensions"),
		Emoji:            v.GetBool("render.emoji"),
		FrontMatter:      v.GetBool("render.front_matter"),
		ExportRawHTML:    v.GetBool("export.raw_html"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid value in one error.
func (c Config) Validate() error {
	var problems []string
	if !render.ValidStyle(c.Style) {
		problems = append(problems, fmt.Sprintf("style %q is not a known style", c.Style))
	}
	if c.WordWrap < 0 {
		problems = append(problems, "word_wrap must not be negative")
	}
	if c.PickerWidth < 0 {
		problems = append(problems, "picker.width must not be negative")
	}
	if len(c.PickerExtensions) == 0 {
		problems = append(problems, "picker.extensions must list at least one extension")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
