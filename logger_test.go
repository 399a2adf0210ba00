package ink

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestLoggerDefault(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}

	// The default logger must discard everything without formatting.
	if Logger().Enabled(nil, slog.LevelError) {
		t.Error("default logger should not be enabled at any level")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(l)

	if Logger() != l {
		t.Error("Logger() did not return the logger just set")
	}

	Logger().Info("test message")
	if buf.Len() == 0 {
		t.Error("log output expected after SetLogger")
	}
}

func TestSetLoggerNilResets(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	if Logger() == nil {
		t.Fatal("Logger() returned nil after SetLogger(nil)")
	}
	Logger().Error("dropped")
	if buf.Len() != 0 {
		t.Error("nil logger should silence output")
	}
}

// loggerRecorder is an allocator that records logger propagation.
type loggerRecorder struct {
	fakeAllocator
	logger *slog.Logger
}

func (r *loggerRecorder) SetLogger(l *slog.Logger) { r.logger = l }

func TestSetLoggerPropagates(t *testing.T) {
	defer SetLogger(nil)

	rec := &loggerRecorder{}
	Register("logger-probe", 1, rec, func() bool { return false })
	defer Unregister("logger-probe")

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l)

	if rec.logger != l {
		t.Error("SetLogger did not propagate to registered allocator")
	}
}

func TestRegisterPropagatesCurrentLogger(t *testing.T) {
	defer SetLogger(nil)

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l)

	rec := &loggerRecorder{}
	Register("logger-probe-2", 1, rec, func() bool { return false })
	defer Unregister("logger-probe-2")

	if rec.logger != l {
		t.Error("Register did not hand the current logger to the allocator")
	}
}
