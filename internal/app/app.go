package app

import (
	"context"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdpeek/internal/config"
	"github.com/kyaoi/mdpeek/internal/dnd"
	"github.com/kyaoi/mdpeek/internal/document"
	"github.com/kyaoi/mdpeek/internal/ui"
)

// Run executes the Bubble Tea program for the markdown viewer.
func Run(ctx context.Context, target string, cfg config.Config) error {
	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl := document.NewController(document.WithLogger(logger))
	state, err := LoadInitialState(ctx, target, cfg, ctrl)
	if err != nil {
		return err
	}
	state.Bus = dnd.NewBus()
	state.Logger = logger
	return runProgram(ctx, state)
}

func runProgram(ctx context.Context, state ui.State) error {
	model := ui.NewModel(state)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// newLogger returns the diagnostics logger. The alternate screen owns the
// terminal, so diagnostics go to a file or nowhere.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile(path, "mdpeek")
	if err != nil {
		return nil, nil, err
	}
	return log.Default(), func() { _ = f.Close() }, nil
}
