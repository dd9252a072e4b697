package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"csfix/internal/trace"
)

// setupTracing builds the tracer described by s and attaches it to the
// command context. The returned cleanup flushes and closes it; in ring mode a
// failed run also dumps the buffered events of the failed files to stderr.
func setupTracing(cmd *cobra.Command, s *settings) (func(failed bool), error) {
	flags := cmd.Root().PersistentFlags()

	level, err := trace.ParseLevel(s.trace.Level)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func(bool) {}, nil
	}

	mode, err := trace.ParseMode(s.trace.Mode)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(s.trace.Format)
	if err != nil {
		return nil, err
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: s.trace.Output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	heartbeat := trace.StartHeartbeat(tracer, heartbeatInterval)

	cleanup := func(failed bool) {
		heartbeat.Stop()
		if ring := trace.Ring(tracer); ring != nil && mode == trace.ModeRing && failed {
			if err := ring.DumpFiles(cmd.ErrOrStderr(), trace.FormatText, s.failedFiles); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
