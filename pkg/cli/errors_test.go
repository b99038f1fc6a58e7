package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("format", "unsupported")
	if got := err.Error(); got != "config error in format: unsupported" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("boom")
	err := NewCommandError("lint", cause)

	if got := err.Error(); got != "command lint failed: boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("CommandError should unwrap to its cause")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "invalid", err: fmt.Errorf("validate: %w", ErrInvalid), want: ExitInvalid},
		{name: "invalid in command", err: NewCommandError("validate", ErrInvalid), want: ExitInvalid},
		{name: "config", err: NewConfigError("model", "required"), want: ExitConfig},
		{name: "wrapped config", err: NewCommandError("lint", NewConfigError("model", "required")), want: ExitConfig},
		{name: "other", err: errors.New("disk full"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
