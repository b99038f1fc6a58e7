package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "json", config: Config{Level: "info", Format: "json"}},
		{name: "text", config: Config{Level: "debug", Format: "text"}},
		{name: "console", config: Config{Level: "warn", Format: "console"}},
		{name: "defaults", config: Config{}},
		{name: "upper case", config: Config{Level: "ERROR", Format: "JSON"}},
		{name: "invalid level", config: Config{Level: "loud"}, wantErr: true},
		{name: "invalid format", config: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "warn", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages were written: %s", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got: %s", out)
	}
	if logger.Level() != slog.LevelWarn {
		t.Errorf("Level() = %v", logger.Level())
	}
}

func TestLogger_ContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "debug", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithSession(context.Background(), "sess-1")
	ctx = WithModel(ctx, "Wardrobe")
	ctx = WithCommand(ctx, "validate")
	logger.InfoContext(ctx, "validated", "valid", true)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	for key, want := range map[string]any{
		"msg":     "validated",
		"session": "sess-1",
		"model":   "Wardrobe",
		"command": "validate",
		"valid":   true,
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
}

func TestLogger_WithContext(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "text", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	if same := logger.WithContext(context.Background()); same != logger {
		t.Error("WithContext() without fields allocated a new logger")
	}

	logger.WithContext(WithSession(context.Background(), "abc")).With("component", "test").Info("hello")
	out := buf.String()
	if !strings.Contains(out, "session=abc") || !strings.Contains(out, "component=test") {
		t.Errorf("missing fields: %s", out)
	}
}

func TestLogger_ConsoleDropsTime(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "console", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("ready")
	if strings.Contains(buf.String(), "time=") {
		t.Errorf("console output contains a timestamp: %s", buf.String())
	}
}

func TestLogger_SetDefault(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.SetDefault()

	slog.Default().With("component", "history").Info("stored")
	if !strings.Contains(buf.String(), `"component":"history"`) {
		t.Errorf("default logger not routed: %s", buf.String())
	}
	if logger.Slog() == nil {
		t.Error("Slog() = nil")
	}
}

func TestContextGetters_Empty(t *testing.T) {
	ctx := context.Background()
	if GetSession(ctx) != "" || GetModel(ctx) != "" || GetCommand(ctx) != "" {
		t.Error("getters on empty context returned values")
	}
	if len(extractContextFields(ctx)) != 0 {
		t.Error("extractContextFields() on empty context returned fields")
	}
}
