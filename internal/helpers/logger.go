package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger creates a configured handler/logger pair for a component.
// If the provided handler is nil, it creates a default text handler grouped
// under the component name.
//
// Returns:
//   - The configured handler
//   - A logger created from the handler
func SetupLogger(handler slog.Handler, component string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		defaultHandler := slog.NewTextHandler(os.Stdout, nil)
		handler = defaultHandler.WithGroup(component)
		return handler, slog.New(handler)
	}
	return handler, slog.New(handler.WithGroup(component))
}
