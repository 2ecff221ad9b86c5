package obslog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_TO_CONSOLE", "false")
	t.Setenv("LOG_FORMAT", "bogus")
	t.Setenv("LOG_FILE", "")
	o := OptionsFromEnv()
	if o.Level != zapcore.WarnLevel || o.Console || o.Format != "legacy" {
		t.Fatalf("options = %+v", o)
	}
	if o.FilePath != filepath.Join("logs", "chesscore.log") {
		t.Fatalf("file path = %q", o.FilePath)
	}
}

func TestBuildWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.log")
	l, err := Build(Options{Level: zapcore.InfoLevel, File: true, FilePath: path, Format: "json"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	l.Info("game_create", zap.String("game_id", "g1"))
	_ = l.Sync()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"game_id":"g1"`) {
		t.Fatalf("log line = %s", raw)
	}
}

func TestSetRestores(t *testing.T) {
	prev := L()
	restore := Set(zap.NewExample())
	if L() == prev {
		t.Fatalf("logger not replaced")
	}
	restore()
	if L() != prev {
		t.Fatalf("logger not restored")
	}
}
