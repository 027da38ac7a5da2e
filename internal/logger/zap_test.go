package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetIsSingleton(t *testing.T) {
	a := Get(ErrorLevel)
	b := Get(DebugLevel)
	if a != b {
		t.Fatalf("expected the same logger instance")
	}
	if a.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("first level should win; warn must be disabled at error level")
	}
}

func TestNewAndNop(t *testing.T) {
	l := New(WarnLevel)
	if l == Get(WarnLevel) {
		t.Fatalf("New must not return the shared instance")
	}
	core := l.Desugar().Core()
	if core.Enabled(zapcore.InfoLevel) || !core.Enabled(zapcore.WarnLevel) {
		t.Fatalf("New(warn) should enable warn and above only")
	}
	if Nop().Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("Nop must drop every entry")
	}
}
