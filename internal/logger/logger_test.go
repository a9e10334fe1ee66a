package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogIsUsableBeforeInit(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should default to a no-op logger")
	}
	Log.Info("discarded", zap.Int("n", 1))
}

func TestInitReplacesGlobal(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	cfg := DefaultConfig()
	cfg.Level = zapcore.WarnLevel
	cfg.Development = false
	if err := Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Log == prev {
		t.Error("Init should replace the global logger")
	}
	if Log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Info should be disabled at Warn level")
	}
	if !Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Error should be enabled at Warn level")
	}
}
