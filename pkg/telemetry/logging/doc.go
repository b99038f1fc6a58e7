// Package logging provides structured logging on top of log/slog.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//	logger.SetDefault()
//
//	ctx := logging.WithSession(ctx, session.ID())
//	logger.InfoContext(ctx, "configuration validated", "valid", true)
//
// Library packages do not take a Logger; they derive theirs from
// slog.Default() with a "component" attribute, so calling SetDefault once at
// startup routes every component through the configured handler.
//
// # Formats
//
//   - json: one JSON object per line
//   - text: slog key=value text
//   - console: text without timestamps, for interactive CLI use
package logging
