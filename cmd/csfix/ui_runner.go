package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"csfix/internal/driver"
	"csfix/internal/ui"
)

type processOutcome struct {
	result *driver.Result
	err    error
}

// runProcessWithUI runs the batch driver while a Bubble Tea program renders
// its progress events.
func runProcessWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan processOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Process(ctx, files, opts)
		outcomeCh <- processOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// drain so the driver never blocks on a program that quit early
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
