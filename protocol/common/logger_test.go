package common

import (
	"testing"
)

func TestGetLoggerReturnsSameInstance(t *testing.T) {
	l1 := GetLogger("test-instance")
	l2 := GetLogger("test-instance")
	if l1 != l2 {
		t.Error("expected the same logger instance for the same name")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"info", INFO},
		{"INFO", INFO},
		{"warn", WARNING},
		{"warning", WARNING},
		{"error", ERROR},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseLogLevelPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an invalid level")
		}
	}()
	parseLogLevel("loud")
}

func TestInitLoggersSetsLevels(t *testing.T) {
	l := GetLogger("test-levels").(*shelfdLogger)

	InitLoggers(ServerConfig{LogLevel: "error"})
	if l.level != ERROR {
		t.Errorf("expected existing logger at ERROR, got %d", l.level)
	}

	// Loggers created afterwards pick up the configured level too.
	late := GetLogger("test-levels-late").(*shelfdLogger)
	if late.level != ERROR {
		t.Errorf("expected new logger at ERROR, got %d", late.level)
	}

	InitLoggers(ServerConfig{LogLevel: "info"})
}
