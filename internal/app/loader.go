package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kyaoi/mdpeek/internal/config"
	"github.com/kyaoi/mdpeek/internal/document"
	"github.com/kyaoi/mdpeek/internal/render"
	"github.com/kyaoi/mdpeek/internal/ui"
)

// LoadInitialState analyses the target path and prepares the UI state. An
// empty target opens the sample document, a directory opens the picker on
// it, and a file is loaded through the controller.
func LoadInitialState(ctx context.Context, target string, cfg config.Config, ctrl *document.Controller) (ui.State, error) {
	state := ui.State{
		Controller:       ctrl,
		PickerExtensions: cfg.PickerExtensions,
		PickerWidth:      cfg.PickerWidth,
		Render: render.TerminalOptions{
			Style:       cfg.Style,
			Width:       cfg.WordWrap,
			Emoji:       cfg.Emoji,
			FrontMatter: cfg.FrontMatter,
		},
		Watch: cfg.Watch,
	}

	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ui.State{}, err
		}
		ctrl.LoadSample()
		state.PickerRoot = wd
		return state, nil
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return ui.State{}, err
	}
	info, err := os.Stat(absTarget)
	if err != nil {
		return ui.State{}, err
	}

	if info.IsDir() {
		state.PickerRoot = absTarget
		state.PickerVisible = true
		state.FocusPicker = true
		return state, nil
	}

	if err := ctrl.LoadFileSync(ctx, document.NewLocalFile(absTarget)); err != nil {
		return ui.State{}, err
	}
	state.PickerRoot = filepath.Dir(absTarget)
	return state, nil
}
