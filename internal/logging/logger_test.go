package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	l := New(cfg)

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at default level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestDisabledLoggerDiscards(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf, Enabled: false})
	l.Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

func TestInitReplacesGlobal(t *testing.T) {
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	var buf bytes.Buffer
	Init(LevelDebug, &buf)
	Debug("field order", "stream", 0, "order", "tt")

	out := buf.String()
	if !strings.Contains(out, "field order") || !strings.Contains(out, "order=tt") {
		t.Errorf("global debug record = %q", out)
	}
}

func TestSetupWritesFile(t *testing.T) {
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	path := filepath.Join(t.TempDir(), "logs", "mediameta.log")
	fl, err := Setup(path, true)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	Debug("probing", "path", "a.mkv")
	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if Global() != prev {
		t.Error("Close() should restore the previous global logger")
	}
	if fl.FilePath() != path {
		t.Errorf("FilePath() = %q, want %q", fl.FilePath(), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "mediameta starting") || !strings.Contains(string(data), "probing") {
		t.Errorf("log file contents = %q", data)
	}
}

func TestNilFileLogClose(t *testing.T) {
	var fl *FileLog
	if err := fl.Close(); err != nil {
		t.Errorf("nil Close() = %v", err)
	}
	if fl.FilePath() != "" {
		t.Error("nil FilePath() should be empty")
	}
}
