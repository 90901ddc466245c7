package termlog

import (
	"errors"
	"testing"
	"time"
)

type errWriter struct {
	err error
}

func (w errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return 0, errors.New("write failed")
}

var fixedTime = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

// restoreConfig resets the process-wide configuration when t ends.
func restoreConfig(t testing.TB) {
	t.Helper()
	prev := CurrentConfig()
	t.Cleanup(func() { SetConfig(WithConfig(prev)) })
}

// plainJSON returns the options of an uncolored JSON logger with a fixed
// clock.
func plainJSON(opts ...Option) []Option {
	return append([]Option{WithJSON(true), WithColor(false), WithClock(fixedClock)}, opts...)
}
