// Package logger provides slog attribute helpers shared across the module.
// Helpers return empty attributes for zero values, so they can be passed
// unconditionally: log.Info("done", logger.Error(err)) is safe when err is
// nil.
package logger
