package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sjavac/internal/driver"
	"sjavac/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// runCheckDirWithUI checks files in the background while a progress model
// renders their status on stdout.
func runCheckDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) (*driver.DirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		res, err := driver.CheckFiles(ctx, dir, files, optsCopy)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// после выхода UI события больше никто не читает
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && outcome.result != nil {
		// UI сломался, но проверка прошла: результат важнее
		return outcome.result, nil
	}
	return outcome.result, outcome.err
}
