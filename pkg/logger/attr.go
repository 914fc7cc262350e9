package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers return an empty Attr for zero inputs so call sites can
// pass them unconditionally without nil checks.

// Error creates an attribute for an error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component tags log records with the emitting subsystem.
func Component(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("component", name)
}

// Duration creates an attribute for an elapsed duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Since measures elapsed time from start, for deferred logging of
// operation latency.
func Since(start time.Time) slog.Attr {
	return slog.Duration("duration", time.Since(start))
}
