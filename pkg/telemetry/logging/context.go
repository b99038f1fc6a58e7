package logging

import "context"

type contextKey string

const (
	// SessionKey is the context key for configuration session ids.
	SessionKey contextKey = "session"

	// ModelKey is the context key for the feature model name.
	ModelKey contextKey = "model"

	// CommandKey is the context key for the CLI command being run.
	CommandKey contextKey = "command"
)

// WithSession adds a session id to the context.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession retrieves the session id from the context.
func GetSession(ctx context.Context) string {
	if session, ok := ctx.Value(SessionKey).(string); ok {
		return session
	}
	return ""
}

// WithModel adds a feature model name to the context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// GetModel retrieves the feature model name from the context.
func GetModel(ctx context.Context) string {
	if model, ok := ctx.Value(ModelKey).(string); ok {
		return model
	}
	return ""
}

// WithCommand adds a CLI command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand retrieves the CLI command name from the context.
func GetCommand(ctx context.Context) string {
	if command, ok := ctx.Value(CommandKey).(string); ok {
		return command
	}
	return ""
}

// extractContextFields returns the context values as key-value pairs.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if session := GetSession(ctx); session != "" {
		fields = append(fields, "session", session)
	}
	if model := GetModel(ctx); model != "" {
		fields = append(fields, "model", model)
	}
	if command := GetCommand(ctx); command != "" {
		fields = append(fields, "command", command)
	}

	return fields
}
