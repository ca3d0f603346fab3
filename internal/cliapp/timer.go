package cliapp

import (
	"log/slog"
	"time"
)

// Timer logs the wall-clock duration of each named phase of a run, the
// Go idiom for original_source/src/Timer.hpp's start("phase") calls —
// see MeKo-Christian-pw_convoverb/main.go for the structured-logging
// style this follows (slog.Info with key/value pairs).
type Timer struct {
	phase   string
	started time.Time
}

// Start logs the elapsed time of the current phase (if any) and begins
// timing the next one.
func (t *Timer) Start(phase string) {
	now := time.Now()
	if t.phase != "" {
		slog.Info("phase complete", "phase", t.phase, "elapsed", now.Sub(t.started))
	}
	slog.Info("phase starting", "phase", phase)
	t.phase = phase
	t.started = now
}

// Finish logs the elapsed time of the final phase.
func (t *Timer) Finish() {
	if t.phase != "" {
		slog.Info("phase complete", "phase", t.phase, "elapsed", time.Since(t.started))
	}
}
