package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

func TestNew(t *testing.T) {
	if l := New(slog.LevelInfo); l == nil {
		t.Fatal("expected logger to be non-nil")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     slog.Level
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
		wantError bool
	}{
		{"DEBUG", slog.LevelDebug, true, true, true, true},
		{"INFO", slog.LevelInfo, false, true, true, true},
		{"WARN", slog.LevelWarn, false, false, true, true},
		{"ERROR", slog.LevelError, false, false, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			l := NewLogger(tc.level, buf)
			l.Debug("msg-debug")
			l.Info("msg-info")
			l.Warn("msg-warn")
			l.Error("msg-error")

			check := func(msg string, want bool) {
				got := bytes.Contains(buf.Bytes(), []byte(msg))
				if got != want {
					t.Errorf("%s logged = %v, want %v", msg, got, want)
				}
			}
			check("msg-debug", tc.wantDebug)
			check("msg-info", tc.wantInfo)
			check("msg-warn", tc.wantWarn)
			check("msg-error", tc.wantError)
		})
	}
}

func TestErr(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	l := NewLogger(slog.LevelDebug, buf)
	l.Error("this is a test", Err(errors.New("intentionally failing")))

	if !bytes.Contains(buf.Bytes(), []byte(`error="intentionally failing"`)) {
		t.Errorf("expected error attribute, got: %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	l := NewLogger(slog.LevelInfo, buf).With("provider", "nasa-power")
	l.Info("fetched")

	if !bytes.Contains(buf.Bytes(), []byte("provider=nasa-power")) {
		t.Errorf("expected provider attribute, got: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")
}
